package workoutlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mkovacek/fitplan/internal/telemetry/tracing"
	"github.com/mkovacek/fitplan/pkg"
)

// ErrUnknownUser means the log references a user row that no longer
// exists, e.g. an account removed while the session was still live.
var ErrUnknownUser = errors.New("unknown user")

// windowLimit caps one lookback window read, a user logging twice a
// day for two months stays well under it.
const windowLimit = 120

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, entry Entry) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	exercisesJson, err := json.Marshal(entry.Exercises)
	if err != nil {
		return nil, fmt.Errorf("marshal exercises: %w", err)
	}

	var durationJson, difficultyJson []byte
	if entry.DurationMinutes != nil {
		if durationJson, err = json.Marshal(entry.DurationMinutes); err != nil {
			return nil, fmt.Errorf("marshal duration: %w", err)
		}
	}
	if entry.DifficultyRating != nil {
		if difficultyJson, err = json.Marshal(entry.DifficultyRating); err != nil {
			return nil, fmt.Errorf("marshal difficulty: %w", err)
		}
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if err = r.db.QueryRow(
		ctx,
		`INSERT INTO workout_log
				(user_id, day_label, exercises, duration_minutes, difficulty_rating, notes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id;`,
		entry.UserID, entry.DayLabel, exercisesJson,
		durationJson, difficultyJson, entry.Notes, entry.CreatedAt,
	).Scan(&entry.ID); err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("workoutlog.id", entry.ID))
	return &entry, nil
}

// ListInWindow returns the user's log entries between from and to,
// oldest first. Duration and difficulty come back untyped from jsonb
// columns written by several client generations.
func (r *Repo) ListInWindow(ctx context.Context, userID string, from, to time.Time) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.listInWindow")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, day_label, exercises, duration_minutes, difficulty_rating, notes, created_at
			FROM workout_log
			WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3
			ORDER BY created_at
			LIMIT $4;`,
		userID, from, to, windowLimit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var exercisesJson []byte
		var durationJson, difficultyJson []byte
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.DayLabel, &exercisesJson,
			&durationJson, &difficultyJson, &entry.Notes, &entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(exercisesJson, &entry.Exercises); err != nil {
			return nil, fmt.Errorf("unmarshal exercises: %w", err)
		}
		if len(durationJson) > 0 {
			if err := json.Unmarshal(durationJson, &entry.DurationMinutes); err != nil {
				return nil, fmt.Errorf("unmarshal duration: %w", err)
			}
		}
		if len(difficultyJson) > 0 {
			if err := json.Unmarshal(difficultyJson, &entry.DifficultyRating); err != nil {
				return nil, fmt.Errorf("unmarshal difficulty: %w", err)
			}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("entries.count", len(entries)))
	return entries, nil
}
