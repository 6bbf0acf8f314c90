package usecase

import (
	"context"

	"job-catalog-api/pkg/apperror"
)

// Pinger reports whether the storage engine answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
	Ready(ctx context.Context) error
}

type healthUsecase struct {
	db Pinger
}

func NewHealthUsecase(db Pinger) HealthUsecase {
	return &healthUsecase{db: db}
}

// Check is static liveness and never fails.
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	return map[string]string{
		"status": "ok",
	}
}

func (u *healthUsecase) Ready(ctx context.Context) error {
	if u.db == nil {
		return nil
	}
	if err := u.db.Ping(ctx); err != nil {
		return apperror.Storage(err)
	}
	return nil
}
