package workoutlog

import (
	"sort"
	"strings"
	"time"

	"github.com/mkovacek/fitplan/internal/fitness/norm"
)

// weeksPerMonth is a fixed approximation for expected workout counts.
const weeksPerMonth = 4

const (
	TrendUp      = "up"
	TrendDown    = "down"
	TrendFlat    = "flat"
	TrendUnknown = "unknown"
)

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type Note struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summary aggregates a lookback window of workout logs. Nullable
// fields stay null when there is not enough data to compute them,
// callers must not read absence as zero.
type Summary struct {
	TotalWorkouts           int        `json:"totalWorkouts"`
	ExpectedWorkouts        int        `json:"expectedWorkouts"`
	AdherenceRatio          *float64   `json:"adherenceRatio"`
	AverageDuration         *float64   `json:"averageDuration"`
	AverageDifficulty       *float64   `json:"averageDifficulty"`
	FirstHalfAvgDifficulty  *float64   `json:"firstHalfAvgDifficulty"`
	SecondHalfAvgDifficulty *float64   `json:"secondHalfAvgDifficulty"`
	DifficultyTrend         string     `json:"difficultyTrend"`
	TopLoggedDays           []DayCount `json:"topLoggedDays"`
	NoteHighlights          []Note     `json:"noteHighlights"`
}

type Analyzer struct {
	lookbackMonths int
}

func NewAnalyzer(lookbackMonths int) *Analyzer {
	return &Analyzer{
		lookbackMonths: lookbackMonths,
	}
}

// Summarize derives the workout summary from entries ordered
// oldest-first. Entries is the full lookback window for one user.
func (a *Analyzer) Summarize(entries []Entry, targetDaysPerWeek int) Summary {
	summary := Summary{
		TotalWorkouts:    len(entries),
		ExpectedWorkouts: targetDaysPerWeek * a.lookbackMonths * weeksPerMonth,
		DifficultyTrend:  TrendUnknown,
		TopLoggedDays:    []DayCount{},
		NoteHighlights:   []Note{},
	}

	if summary.ExpectedWorkouts > 0 {
		ratio := norm.Round2(float64(summary.TotalWorkouts) / float64(summary.ExpectedWorkouts))
		summary.AdherenceRatio = &ratio
	}

	var durations, difficulties []float64
	for _, entry := range entries {
		if d := norm.Float(entry.DurationMinutes); d != nil {
			durations = append(durations, *d)
		}
		if d := norm.Float(entry.DifficultyRating); d != nil {
			difficulties = append(difficulties, *d)
		}
	}

	if len(durations) > 0 {
		avg := norm.Round1(norm.Avg(durations))
		summary.AverageDuration = &avg
	}
	if len(difficulties) > 0 {
		avg := norm.Round1(norm.Avg(difficulties))
		summary.AverageDifficulty = &avg
	}

	// the chronological difficulty sequence splits at its midpoint, the
	// half averages carry the trend; with fewer than two ratings one
	// half is empty and the trend stays unknown
	mid := len(difficulties) / 2
	firstHalf := difficulties[:mid]
	secondHalf := difficulties[mid:]
	if len(firstHalf) > 0 && len(secondHalf) > 0 {
		firstAvg := norm.Round2(norm.Avg(firstHalf))
		secondAvg := norm.Round2(norm.Avg(secondHalf))
		summary.FirstHalfAvgDifficulty = &firstAvg
		summary.SecondHalfAvgDifficulty = &secondAvg
		summary.DifficultyTrend = norm.TrendDirection(norm.Avg(firstHalf), norm.Avg(secondHalf))
	}

	summary.TopLoggedDays = topLoggedDays(entries)
	summary.NoteHighlights = noteHighlights(entries)

	return summary
}

const topDaysLimit = 5

// topLoggedDays counts non-empty day labels and returns the 5 most
// frequent, ties kept in first-encounter order. Labels are trimmed so
// " Push" and "Push" count as the same day.
func topLoggedDays(entries []Entry) []DayCount {
	counts := make(map[string]int)
	var order []string
	for _, entry := range entries {
		day := strings.TrimSpace(entry.DayLabel)
		if day == "" {
			continue
		}
		if _, seen := counts[day]; !seen {
			order = append(order, day)
		}
		counts[day]++
	}

	days := make([]DayCount, 0, len(order))
	for _, day := range order {
		days = append(days, DayCount{Day: day, Count: counts[day]})
	}

	// stable, so encounter order breaks ties
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Count > days[j].Count
	})

	if len(days) > topDaysLimit {
		days = days[:topDaysLimit]
	}
	return days
}

const noteHighlightsLimit = 6

// noteHighlights returns the most recent 6 non-empty notes, in
// chronological order.
func noteHighlights(entries []Entry) []Note {
	notes := []Note{}
	for _, entry := range entries {
		text := strings.TrimSpace(entry.Notes)
		if text == "" {
			continue
		}
		notes = append(notes, Note{Text: text, CreatedAt: entry.CreatedAt})
	}
	if len(notes) > noteHighlightsLimit {
		notes = notes[len(notes)-noteHighlightsLimit:]
	}
	return notes
}
