package postgres

import (
	"context"
	"errors"
	"fmt"

	"job-catalog-api/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnPool is the storage handle. *pgxpool.Pool satisfies it.
type ConnPool interface {
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
}

type jobRepo struct {
	pool ConnPool
}

func NewJobRepository(pool ConnPool) domain.JobRepository {
	return &jobRepo{pool: pool}
}

// acquire hands out a connection for a single operation. Callers must defer
// the returned release.
func (r *jobRepo) acquire(ctx context.Context) (*pgxpool.Conn, func(), error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, func() {}, fmt.Errorf("jobs: acquire connection: %w", err)
	}
	return conn, conn.Release, nil
}

func (r *jobRepo) Create(ctx context.Context, in domain.JobInput) (*domain.Job, error) {
	conn, release, err := r.acquire(ctx)
	defer release()
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO jobs (titulo, empresa, ubicacion, modalidad, tipo, salario_min, salario_max, descripcion, publicada_en)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING ` + jobColumns
	row := conn.QueryRow(ctx, query, insertArgs(in)...)
	job, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("jobs: insert: %w", err)
	}
	return job, nil
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	conn, release, err := r.acquire(ctx)
	defer release()
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(conn.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("jobs: get %d: %w", id, err)
	}
	return job, nil
}

// Fetch reads the page and the filtered total inside one read-only
// repeatable-read transaction, so total describes the same snapshot as the page.
func (r *jobRepo) Fetch(ctx context.Context, filter domain.JobFilter) ([]domain.Job, int64, error) {
	conn, release, err := r.acquire(ctx)
	defer release()
	if err != nil {
		return nil, 0, err
	}

	tx, err := conn.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, 0, fmt.Errorf("jobs: list begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	q := buildListQuery(filter)

	jobs := []domain.Job{}
	if !q.PastEnd {
		jobs, err = fetchPage(ctx, tx, q, filter.PageSize)
		if err != nil {
			return nil, 0, err
		}
	}

	var total int64
	if err := tx.QueryRow(ctx, q.Count, q.CountArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("jobs: count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("jobs: list commit: %w", err)
	}
	return jobs, total, nil
}

func fetchPage(ctx context.Context, tx pgx.Tx, q listQuery, pageSize int) ([]domain.Job, error) {
	rows, err := tx.Query(ctx, q.Select, q.SelectArgs...)
	if err != nil {
		return nil, fmt.Errorf("jobs: list: %w", err)
	}
	defer rows.Close()

	jobs := make([]domain.Job, 0, pageSize)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("jobs: list scan: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("jobs: list rows: %w", err)
	}
	return jobs, nil
}

// Update replaces every column of an existing row in one statement. A missing
// id surfaces as domain.ErrNotFound.
func (r *jobRepo) Update(ctx context.Context, id int64, in domain.JobInput) (*domain.Job, error) {
	conn, release, err := r.acquire(ctx)
	defer release()
	if err != nil {
		return nil, err
	}

	query := `UPDATE jobs SET
		titulo = $2,
		empresa = $3,
		ubicacion = $4,
		modalidad = $5,
		tipo = $6,
		salario_min = $7,
		salario_max = $8,
		descripcion = $9,
		publicada_en = $10
	WHERE id = $1
	RETURNING ` + jobColumns
	args := append([]any{id}, insertArgs(in)...)
	job, err := scanJob(conn.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("jobs: update %d: %w", id, err)
	}
	return job, nil
}

// Delete is idempotent: removing an absent id is not an error.
func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	conn, release, err := r.acquire(ctx)
	defer release()
	if err != nil {
		return err
	}

	if _, err := conn.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("jobs: delete %d: %w", id, err)
	}
	return nil
}

func insertArgs(in domain.JobInput) []any {
	return []any{
		in.Title, in.Company, in.Location, string(in.WorkMode), string(in.ContractType),
		in.SalaryMin, in.SalaryMax, in.Description, domain.FormatTimestamp(in.PublishedAt),
	}
}

// scanJob converts a row into a Job, rejecting labels or timestamps the
// domain does not recognise.
func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	var mode, kind, stamp string
	if err := row.Scan(
		&job.ID, &job.Title, &job.Company, &job.Location, &mode, &kind,
		&job.SalaryMin, &job.SalaryMax, &job.Description, &stamp,
	); err != nil {
		return nil, err
	}

	var err error
	if job.WorkMode, err = domain.ParseWorkMode(mode); err != nil {
		return nil, fmt.Errorf("row %d: %w", job.ID, err)
	}
	if job.ContractType, err = domain.ParseContractType(kind); err != nil {
		return nil, fmt.Errorf("row %d: %w", job.ID, err)
	}
	if job.PublishedAt, err = domain.ParseTimestamp(stamp); err != nil {
		return nil, fmt.Errorf("row %d: %w", job.ID, err)
	}
	return &job, nil
}
