package genai

import (
	"encoding/json"
	"fmt"
	"strings"
)

func updateSystemPrompt(req UpdatePlanRequest) string {
	equipment := strings.Join(req.Constraints.Equipment, ", ")
	if equipment == "" {
		equipment = "bodyweight"
	}
	focusAreas := strings.Join(req.Constraints.FocusAreas, ", ")
	if focusAreas == "" {
		focusAreas = "balanced full body"
	}

	return fmt.Sprintf(`You are an expert personal trainer updating an active workout plan.

Your job is to decide whether to:
1) "update_current_plan" with targeted adjustments, or
2) "generate_new_plan" with a fresh structure.

Decision requirements:
- Use the user's goal, current active plan, historical plan timeline, last %d months of workout logs, and last %d months of body metrics.
- Analyze the raw logs and raw body metrics directly; summaries are supporting context only.
- Consider the phase readiness assessment and the strategy hint, both derived from the same history.
- Choose "update_current_plan" when targeted adjustments are enough.
- Choose "generate_new_plan" when evidence suggests a phase change is better (including when the athlete appears ready to step up to the next phase).
- Keep recommendations realistic and specific.

Plan construction rules:
- Sessions must fit ~%d minutes.
- Use only available equipment: %s.
- Prioritize these focus areas: %s.
- Match difficulty to a %s lifter weighing %.0fkg.
- Include exactly one week plan with clear day names.
- Each exercise needs sets, rep ranges, rest in seconds, and 1-2 alternatives.
- Include warmup and cooldown text for every day.

Respond with a single JSON object:
{"action": "update_current_plan" | "generate_new_plan", "rationale": string, "plan": {"name": string, "description": string, "days": [{"name": string, "focus": string, "warmup": string, "cooldown": string, "exercises": [{"name": string, "sets": number, "reps": string, "rest_sec": number, "notes": string, "alternatives": [string]}]}]}}`,
		req.LookbackMonths, req.LookbackMonths,
		req.Constraints.SessionDurationMinutes, equipment, focusAreas,
		req.Metrics.ExperienceLevel, req.Metrics.WeightKg,
	)
}

func updateUserPrompt(req UpdatePlanRequest) (string, error) {
	feedback := req.Feedback
	if feedback == "" {
		feedback = "No additional feedback provided."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Update this user's plan for %s.\n", req.GoalDescription)

	sections := []struct {
		title   string
		payload any
	}{
		{"User goal", req.Constraints},
		{"User metrics", req.Metrics},
		{"Current active plan", req.CurrentPlan},
		{fmt.Sprintf("Workout log summary (past %d months)", req.LookbackMonths), req.WorkoutSummary},
		{"Plan timeline (oldest to newest)", req.PlanTimeline},
		{fmt.Sprintf("Body metric summary (past %d months)", req.LookbackMonths), req.BodyMetricSummary},
		{fmt.Sprintf("Raw workout logs (past %d months)", req.LookbackMonths), req.RawLogs},
		{fmt.Sprintf("Raw body metrics (past %d months)", req.LookbackMonths), req.RawMetrics},
		{"Phase readiness assessment", req.Readiness},
		{"Strategy hint", req.StrategyHint},
	}
	for _, section := range sections {
		payloadJson, err := json.MarshalIndent(section.payload, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal %s: %w", section.title, err)
		}
		fmt.Fprintf(&sb, "\n%s:\n%s\n", section.title, payloadJson)
	}

	fmt.Fprintf(&sb, "\nUser feedback:\n%s\n", feedback)
	sb.WriteString(`
Return:
- action: "update_current_plan" or "generate_new_plan"
- rationale: concise explanation
- plan: the updated/generated weekly plan`)

	return sb.String(), nil
}

func generateSystemPrompt(req GeneratePlanRequest) string {
	equipment := strings.Join(req.Constraints.Equipment, ", ")
	if equipment == "" {
		equipment = "bodyweight"
	}
	focusAreas := strings.Join(req.Constraints.FocusAreas, ", ")
	if focusAreas == "" {
		focusAreas = "balanced full body"
	}

	return fmt.Sprintf(`You are an expert personal trainer creating a weekly workout plan.

Plan construction rules:
- Build %d training days per week, sessions must fit ~%d minutes.
- Use only available equipment: %s.
- Prioritize these focus areas: %s.
- Match difficulty to a %s lifter weighing %.0fkg.
- Each exercise needs sets, rep ranges, rest in seconds, and 1-2 alternatives.
- Include warmup and cooldown text for every day.

Respond with a single JSON object:
{"name": string, "description": string, "days": [{"name": string, "focus": string, "warmup": string, "cooldown": string, "exercises": [{"name": string, "sets": number, "reps": string, "rest_sec": number, "notes": string, "alternatives": [string]}]}]}`,
		req.Constraints.DaysPerWeek, req.Constraints.SessionDurationMinutes,
		equipment, focusAreas,
		req.Metrics.ExperienceLevel, req.Metrics.WeightKg,
	)
}

func generateUserPrompt(req GeneratePlanRequest) (string, error) {
	goalJson, err := json.MarshalIndent(req.Constraints, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal goal: %w", err)
	}
	metricsJson, err := json.MarshalIndent(req.Metrics, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal metrics: %w", err)
	}
	return fmt.Sprintf(
		"Create a weekly plan for %s.\n\nUser goal:\n%s\n\nUser metrics:\n%s",
		req.GoalDescription, goalJson, metricsJson,
	), nil
}

// stripJSONFences removes a markdown code fence if the model wrapped
// its JSON answer in one.
func stripJSONFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
