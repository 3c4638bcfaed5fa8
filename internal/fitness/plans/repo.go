package plans

import (
	"context"
	"encoding/json"
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
	ErrNoActivePlan = errors.New("no active plan")
	// ErrPlanConflict means a concurrent plan change won the race for
	// the single active slot.
	ErrPlanConflict = errors.New("conflicting plan change in progress")
)

// TimelineLimit caps how many superseded plans are returned for the
// plan history view and the generation context.
const TimelineLimit = 12

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) GetActive(ctx context.Context, userID string) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.getActive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	row := r.db.QueryRow(
		ctx,
		`SELECT id, user_id, name, description, week_number, days, active, created_at
			FROM plan
			WHERE user_id = $1 AND active;`,
		userID,
	)

	plan, err := scanPlan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoActivePlan
	}
	if err != nil {
		return nil, err
	}

	return plan, nil
}

// Timeline returns the user's oldest plans in chronological order, so
// the caller can see how the training structure evolved phase by phase.
func (r *Repo) Timeline(ctx context.Context, userID string) (_ []Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.timeline")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, name, description, week_number, days, active, created_at
			FROM plan
			WHERE user_id = $1
			ORDER BY created_at ASC, id ASC
			LIMIT $2;`,
		userID, TimelineLimit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

// Create deactivates the previous active plan and inserts the new one
// in a single transaction, so exactly one plan per user stays active.
func (r *Repo) Create(ctx context.Context, plan Plan) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	daysJson, err := json.Marshal(plan.Days)
	if err != nil {
		return nil, fmt.Errorf("marshal days: %w", err)
	}

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
		`UPDATE plan SET active = FALSE WHERE user_id = $1 AND active;`,
		plan.UserID,
	); err != nil {
		return nil, fmt.Errorf("deactivate previous plan: %w", err)
	}

	plan.Active = true
	plan.CreatedAt = time.Now()
	if err = tx.QueryRow(
		ctx,
		`INSERT INTO plan
				(user_id, name, description, week_number, days, active, created_at)
			VALUES ($1, $2, $3, $4, $5, TRUE, $6)
			RETURNING id;`,
		plan.UserID, plan.Name, plan.Description, plan.WeekNumber, daysJson, plan.CreatedAt,
	).Scan(&plan.ID); err != nil {
		// the partial unique index on (user_id) where active catches
		// racing creates that both passed the deactivate step
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrPlanConflict
		}
		return nil, fmt.Errorf("insert plan: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	span.SetAttributes(attribute.Int("plan.id", plan.ID))
	return &plan, nil
}

func scanPlan(row pgx.Row) (*Plan, error) {
	var plan Plan
	var daysJson []byte
	if err := row.Scan(
		&plan.ID, &plan.UserID, &plan.Name, &plan.Description,
		&plan.WeekNumber, &daysJson, &plan.Active, &plan.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(daysJson, &plan.Days); err != nil {
		return nil, fmt.Errorf("unmarshal days: %w", err)
	}
	return &plan, nil
}
