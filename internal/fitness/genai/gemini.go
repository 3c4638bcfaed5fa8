package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/mkovacek/fitplan/internal/telemetry/metrics"
	"github.com/mkovacek/fitplan/internal/telemetry/tracing"
)

// GeminiGenerator produces workout plans through the Gemini API. One
// request maps to exactly one generation call, retries are the
// caller's decision and none are made here.
type GeminiGenerator struct {
	client         *genai.Client
	modelName      string
	metricsManager *metrics.Manager
}

func NewGeminiGenerator(
	ctx context.Context,
	apiKey string,
	modelName string,
	metricsManager *metrics.Manager,
) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiGenerator{
		client:         client,
		modelName:      modelName,
		metricsManager: metricsManager,
	}, nil
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// UpdatePlan asks the model to adjust or replace the active plan.
func (g *GeminiGenerator) UpdatePlan(ctx context.Context, req UpdatePlanRequest) (_ *PlanUpdate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.genai.updatePlan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	userPrompt, err := updateUserPrompt(req)
	if err != nil {
		return nil, err
	}

	text, err := g.generate(ctx, updateSystemPrompt(req), userPrompt)
	if err != nil {
		return nil, err
	}

	var update PlanUpdate
	if err := json.Unmarshal([]byte(stripJSONFences(text)), &update); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPlanShape, err)
	}
	if err := ValidatePlanUpdate(update); err != nil {
		return nil, err
	}

	return &update, nil
}

// GeneratePlan asks the model for a brand new weekly plan, used for
// first-time plan creation where no history exists yet.
func (g *GeminiGenerator) GeneratePlan(ctx context.Context, req GeneratePlanRequest) (_ *PlanContent, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.genai.generatePlan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	userPrompt, err := generateUserPrompt(req)
	if err != nil {
		return nil, err
	}

	text, err := g.generate(ctx, generateSystemPrompt(req), userPrompt)
	if err != nil {
		return nil, err
	}

	var plan PlanContent
	if err := json.Unmarshal([]byte(stripJSONFences(text)), &plan); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPlanShape, err)
	}
	if err := ValidatePlanContent(plan); err != nil {
		return nil, err
	}

	return &plan, nil
}

func (g *GeminiGenerator) generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	defer func(begin time.Time) {
		g.metricsManager.HistPlanGenerationDuration.Observe(time.Since(begin).Seconds())
	}(time.Now())

	model := g.client.GenerativeModel(g.modelName)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		g.metricsManager.CounterPlanGenerationFails.Inc()
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		g.metricsManager.CounterPlanGenerationFails.Inc()
		return "", fmt.Errorf("no content generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		g.metricsManager.CounterPlanGenerationFails.Inc()
		return "", fmt.Errorf("generated content is not text")
	}

	return string(text), nil
}
