package goals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mkovacek/fitplan/internal/telemetry/tracing"
	"github.com/mkovacek/fitplan/pkg"
)

var (
	ErrNoActiveGoal = errors.New("no active goal")
	// ErrGoalConflict means a concurrent goal change won the race for
	// the single active slot.
	ErrGoalConflict = errors.New("conflicting goal change in progress")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) GetActive(ctx context.Context, userID string) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.getActive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	var goal Goal
	err = r.db.QueryRow(
		ctx,
		`SELECT id, user_id, goal_type, target_weight_kg, days_per_week, session_duration_minutes,
				equipment, focus_areas, active, created_at
			FROM goal
			WHERE user_id = $1 AND active;`,
		userID,
	).Scan(
		&goal.ID, &goal.UserID, &goal.Type, &goal.TargetWeightKg, &goal.DaysPerWeek,
		&goal.SessionDurationMinutes, &goal.Equipment, &goal.FocusAreas, &goal.Active, &goal.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoActiveGoal
	}
	if err != nil {
		return nil, err
	}

	return &goal, nil
}

// Create deactivates the previous active goal and inserts the new one
// in a single transaction, so exactly one goal per user stays active.
func (r *Repo) Create(ctx context.Context, goal Goal) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(
		ctx,
		`UPDATE goal SET active = FALSE WHERE user_id = $1 AND active;`,
		goal.UserID,
	); err != nil {
		return nil, fmt.Errorf("deactivate previous goal: %w", err)
	}

	goal.Active = true
	goal.CreatedAt = time.Now()
	if err = tx.QueryRow(
		ctx,
		`INSERT INTO goal
				(user_id, goal_type, target_weight_kg, days_per_week, session_duration_minutes,
				 equipment, focus_areas, active, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8)
			RETURNING id;`,
		goal.UserID, goal.Type, goal.TargetWeightKg, goal.DaysPerWeek,
		goal.SessionDurationMinutes, goal.Equipment, goal.FocusAreas, goal.CreatedAt,
	).Scan(&goal.ID); err != nil {
		// the partial unique index on (user_id) where active catches
		// racing creates that both passed the deactivate step
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrGoalConflict
		}
		return nil, fmt.Errorf("insert goal: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	span.SetAttributes(attribute.Int("goal.id", goal.ID))
	return &goal, nil
}
