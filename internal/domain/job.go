package domain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnknownWorkMode    = errors.New("unknown work mode")
	ErrUnknownContract    = errors.New("unknown contract type")
	ErrInvalidTimestamp   = errors.New("invalid timestamp")
	ErrSalaryRangeInverse = errors.New("salario_min cannot be greater than salario_max")
)

// WorkMode is the closed set of work arrangements a posting can declare.
type WorkMode string

const (
	WorkModeRemote WorkMode = "Remote"
	WorkModeHybrid WorkMode = "Hybrid"
	WorkModeOnSite WorkMode = "On-site"
)

var WorkModes = []WorkMode{WorkModeRemote, WorkModeHybrid, WorkModeOnSite}

func ParseWorkMode(s string) (WorkMode, error) {
	switch WorkMode(s) {
	case WorkModeRemote, WorkModeHybrid, WorkModeOnSite:
		return WorkMode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownWorkMode, s)
	}
}

func (m WorkMode) Valid() bool {
	_, err := ParseWorkMode(string(m))
	return err == nil
}

func (m WorkMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWorkMode, string(m))
	}
	return []byte(m), nil
}

func (m *WorkMode) UnmarshalText(b []byte) error {
	parsed, err := ParseWorkMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ContractType is the closed set of contract kinds.
type ContractType string

const (
	ContractFullTime   ContractType = "Full-Time"
	ContractPartTime   ContractType = "Part-Time"
	ContractFreelance  ContractType = "Freelance"
	ContractInternship ContractType = "Internship"
)

var ContractTypes = []ContractType{ContractFullTime, ContractPartTime, ContractFreelance, ContractInternship}

func ParseContractType(s string) (ContractType, error) {
	switch ContractType(s) {
	case ContractFullTime, ContractPartTime, ContractFreelance, ContractInternship:
		return ContractType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownContract, s)
	}
}

func (t ContractType) Valid() bool {
	_, err := ParseContractType(string(t))
	return err == nil
}

func (t ContractType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownContract, string(t))
	}
	return []byte(t), nil
}

func (t *ContractType) UnmarshalText(b []byte) error {
	parsed, err := ParseContractType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// timestampLayouts are tried in order. Inputs without an offset are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp reads an ISO-8601 date-time. The result is normalized to UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// FormatTimestamp renders the canonical text form used in storage and on the wire.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// JobInput carries every client-supplied field of a posting. It is the body
// of both create and update.
type JobInput struct {
	Title        string       `json:"titulo" validate:"required,min=3"`
	Company      string       `json:"empresa" validate:"required,min=2"`
	Location     string       `json:"ubicacion" validate:"required,min=2"`
	WorkMode     WorkMode     `json:"modalidad" validate:"work_mode"`
	ContractType ContractType `json:"tipo" validate:"contract_type"`
	SalaryMin    float64      `json:"salario_min" validate:"gte=0"`
	SalaryMax    float64      `json:"salario_max" validate:"gte=0"`
	Description  string       `json:"descripcion" validate:"required,min=10"`
	PublishedAt  time.Time    `json:"publicada_en" validate:"required_time"`
}

// CheckSalaryRange is the cross-field rule shared by create and update.
func (in JobInput) CheckSalaryRange() error {
	if in.SalaryMin > in.SalaryMax {
		return ErrSalaryRangeInverse
	}
	return nil
}

type Job struct {
	ID int64 `json:"id"`
	JobInput
}

// JobFilter narrows a listing. Zero values mean "no predicate".
type JobFilter struct {
	Query        string       `json:"q"`
	WorkMode     WorkMode     `json:"modalidad" validate:"omitempty,work_mode"`
	ContractType ContractType `json:"tipo" validate:"omitempty,contract_type"`
	Page         int          `json:"page" validate:"gte=1"`
	PageSize     int          `json:"page_size" validate:"gte=1,lte=100"`
}

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Offset returns the number of rows skipped before the page. ok is false when
// the offset does not fit in an int; no table can reach such a page.
func (f JobFilter) Offset() (offset int, ok bool) {
	if f.Page <= 1 || f.PageSize <= 0 {
		return 0, true
	}
	if f.Page-1 > math.MaxInt/f.PageSize {
		return 0, false
	}
	return (f.Page - 1) * f.PageSize, true
}

type JobRepository interface {
	Create(ctx context.Context, in JobInput) (*Job, error)
	GetByID(ctx context.Context, id int64) (*Job, error)
	Fetch(ctx context.Context, filter JobFilter) ([]Job, int64, error)
	Update(ctx context.Context, id int64, in JobInput) (*Job, error)
	Delete(ctx context.Context, id int64) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, in JobInput) (*Job, error)
	GetJobDetails(ctx context.Context, id int64) (*Job, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]Job, int64, error)
	UpdateJob(ctx context.Context, id int64, in JobInput) (*Job, error)
	DeleteJob(ctx context.Context, id int64) error
}
