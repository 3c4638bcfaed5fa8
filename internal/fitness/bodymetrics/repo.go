package bodymetrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mkovacek/fitplan/internal/fitness/norm"
	"github.com/mkovacek/fitplan/internal/telemetry/tracing"
	"github.com/mkovacek/fitplan/pkg"
)

// ErrUnknownUser means the snapshot references a user row that no
// longer exists.
var ErrUnknownUser = errors.New("unknown user")

// windowLimit caps one lookback window read, a daily weigh-in habit
// over two months stays under it.
const windowLimit = 90

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, entry Entry) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodymetrics.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	valuesJson, err := json.Marshal(map[string]any{
		"weight_kg":    entry.WeightKg,
		"body_fat_pct": entry.BodyFatPct,
		"chest_cm":     entry.ChestCm,
		"waist_cm":     entry.WaistCm,
		"hips_cm":      entry.HipsCm,
		"bicep_cm":     entry.BicepCm,
		"thigh_cm":     entry.ThighCm,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal values: %w", err)
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if err = r.db.QueryRow(
		ctx,
		`INSERT INTO body_metric (user_id, measured, created_at)
			VALUES ($1, $2, $3)
			RETURNING id;`,
		entry.UserID, valuesJson, entry.CreatedAt,
	).Scan(&entry.ID); err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("bodymetric.id", entry.ID))
	return &entry, nil
}

// ListInWindow returns the user's measurement snapshots between from
// and to, oldest first.
func (r *Repo) ListInWindow(ctx context.Context, userID string, from, to time.Time) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodymetrics.listInWindow")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, measured, created_at
			FROM body_metric
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
		var measuredJson []byte
		if err := rows.Scan(&entry.ID, &entry.UserID, &measuredJson, &entry.CreatedAt); err != nil {
			return nil, err
		}
		var measured map[string]any
		if err := json.Unmarshal(measuredJson, &measured); err != nil {
			return nil, fmt.Errorf("unmarshal measured values: %w", err)
		}
		entry.WeightKg = measured["weight_kg"]
		entry.BodyFatPct = measured["body_fat_pct"]
		entry.ChestCm = measured["chest_cm"]
		entry.WaistCm = measured["waist_cm"]
		entry.HipsCm = measured["hips_cm"]
		entry.BicepCm = measured["bicep_cm"]
		entry.ThighCm = measured["thigh_cm"]
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("entries.count", len(entries)))
	return entries, nil
}

// LatestWeight returns the most recent parsable weight for the user,
// or nil if the user never recorded one.
func (r *Repo) LatestWeight(ctx context.Context, userID string) (_ *float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodymetrics.latestWeight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT measured
			FROM body_metric
			WHERE user_id = $1 AND measured ? 'weight_kg'
			ORDER BY created_at DESC
			LIMIT 20;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var measuredJson []byte
		if err := rows.Scan(&measuredJson); err != nil {
			return nil, err
		}
		var measured map[string]any
		if err := json.Unmarshal(measuredJson, &measured); err != nil {
			return nil, fmt.Errorf("unmarshal measured values: %w", err)
		}
		if weight := norm.Float(measured["weight_kg"]); weight != nil {
			return weight, nil
		}
	}
	return nil, rows.Err()
}
