package profiles

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mkovacek/fitplan/internal/telemetry/tracing"
)

var ErrProfileNotFound = errors.New("profile not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) GetByUserID(ctx context.Context, userID string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.getByUserID")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	var profile Profile
	err = r.db.QueryRow(
		ctx,
		`SELECT user_id, experience_level, height_cm, updated_at
			FROM profile
			WHERE user_id = $1;`,
		userID,
	).Scan(&profile.UserID, &profile.ExperienceLevel, &profile.HeightCm, &profile.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *Repo) Upsert(ctx context.Context, profile Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO profile (user_id, experience_level, height_cm, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id) DO UPDATE
			SET experience_level = $2, height_cm = $3, updated_at = $4;`,
		profile.UserID, profile.ExperienceLevel, profile.HeightCm, time.Now(),
	)
	return err
}
