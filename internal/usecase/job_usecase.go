package usecase

import (
	"context"
	"errors"

	"job-catalog-api/internal/domain"
	"job-catalog-api/internal/metrics"
	"job-catalog-api/pkg/apperror"
	"job-catalog-api/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	validate *validator.Validate
}

func NewJobUsecase(jobRepo domain.JobRepository, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:  jobRepo,
		validate: validate,
	}
}

// ValidateJobInput runs field rules and then the salary range rule. The range
// rule runs even when field rules already failed so callers see every problem.
func ValidateJobInput(v *validator.Validate, in domain.JobInput) []string {
	var problems []string
	if err := v.Struct(in); err != nil {
		problems = append(problems, validation.FormatValidationErrors(err)...)
	}
	if err := in.CheckSalaryRange(); err != nil {
		problems = append(problems, err.Error())
	}
	return problems
}

func (u *jobUsecase) CreateJob(ctx context.Context, in domain.JobInput) (*domain.Job, error) {
	if problems := ValidateJobInput(u.validate, in); len(problems) > 0 {
		record("create", "validation_error")
		return nil, apperror.Validation("Invalid job", problems)
	}

	job, err := u.jobRepo.Create(ctx, in)
	if err != nil {
		return nil, u.fail("create", err)
	}
	record("create", "ok")
	return job, nil
}

func (u *jobUsecase) GetJobDetails(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, u.fail("get", err)
	}
	record("get", "ok")
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.Job, int64, error) {
	if err := u.validate.Struct(filter); err != nil {
		record("list", "validation_error")
		return nil, 0, apperror.Validation("Invalid list parameters", validation.FormatValidationErrors(err))
	}

	jobs, total, err := u.jobRepo.Fetch(ctx, filter)
	if err != nil {
		return nil, 0, u.fail("list", err)
	}
	record("list", "ok")
	return jobs, total, nil
}

// UpdateJob validates before touching storage, so an invalid body for an
// unknown id reports the validation failure.
func (u *jobUsecase) UpdateJob(ctx context.Context, id int64, in domain.JobInput) (*domain.Job, error) {
	if problems := ValidateJobInput(u.validate, in); len(problems) > 0 {
		record("update", "validation_error")
		return nil, apperror.Validation("Invalid job", problems)
	}

	job, err := u.jobRepo.Update(ctx, id, in)
	if err != nil {
		return nil, u.fail("update", err)
	}
	record("update", "ok")
	return job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, id int64) error {
	if err := u.jobRepo.Delete(ctx, id); err != nil {
		return u.fail("delete", err)
	}
	record("delete", "ok")
	return nil
}

func (u *jobUsecase) fail(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		record(op, "not_found")
		return apperror.NotFound("Job not found")
	}
	record(op, "storage_error")
	return apperror.Storage(err)
}

func record(op, outcome string) {
	metrics.JobOperationsTotal.WithLabelValues(op, outcome).Inc()
}

