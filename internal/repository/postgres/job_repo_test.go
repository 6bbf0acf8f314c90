package postgres_test

import (
	"context"
	"fmt"
	"math"
	"os"
	"testing"
	"time"

	"job-catalog-api/internal/domain"
	"job-catalog-api/internal/repository/postgres"
	"job-catalog-api/internal/usecase"
	"job-catalog-api/pkg/apperror"
	"job-catalog-api/pkg/database"
	"job-catalog-api/pkg/validation"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against a real PostgreSQL and wipe the jobs table. They are
// skipped unless TEST_DATABASE_URL is set.
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := database.NewPostgresConnection(ctx, url, database.PoolOptions{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.EnsureSchema(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE jobs RESTART IDENTITY`)
	require.NoError(t, err)
	return pool
}

func countRows(t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM jobs`).Scan(&n))
	return n
}

func sampleInput(title, company string, mode domain.WorkMode) domain.JobInput {
	return domain.JobInput{
		Title:        title,
		Company:      company,
		Location:     "Madrid",
		WorkMode:     mode,
		ContractType: domain.ContractFullTime,
		SalaryMin:    30000,
		SalaryMax:    45000.5,
		Description:  "A role with enough description text",
		PublishedAt:  time.Date(2024, 2, 1, 9, 30, 0, 123456000, time.UTC),
	}
}

func TestJobLifecycle(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	uc := usecase.NewJobUsecase(postgres.NewJobRepository(pool), validation.New())

	published, err := domain.ParseTimestamp("2024-01-15T00:00:00")
	require.NoError(t, err)
	in := domain.JobInput{
		Title:        "Backend Engineer",
		Company:      "Acme Corp",
		Location:     "Remote",
		WorkMode:     domain.WorkModeRemote,
		ContractType: domain.ContractFullTime,
		SalaryMin:    50000,
		SalaryMax:    70000,
		Description:  "Build APIs for the platform",
		PublishedAt:  published,
	}

	created, err := uc.CreateJob(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, in, created.JobInput)

	got, err := uc.GetJobDetails(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	in.WorkMode = domain.WorkModeHybrid
	updated, err := uc.UpdateJob(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, domain.WorkModeHybrid, updated.WorkMode)

	require.NoError(t, uc.DeleteJob(ctx, created.ID))
	_, err = uc.GetJobDetails(ctx, created.ID)
	assert.True(t, apperror.IsNotFound(err))

	// ids are not reused after delete
	again, err := uc.CreateJob(ctx, in)
	require.NoError(t, err)
	assert.Greater(t, again.ID, created.ID)
}

func TestTimestampPrecisionSurvivesStorage(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := postgres.NewJobRepository(pool)

	in := sampleInput("Data Engineer", "Globex", domain.WorkModeOnSite)
	in.PublishedAt = time.Date(2023, 12, 31, 23, 59, 59, 999999999, time.UTC)

	created, err := repo.Create(ctx, in)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, in.PublishedAt.Equal(got.PublishedAt))
	assert.Equal(t, in, got.JobInput)
}

func TestInvalidWritesLeaveStorageUnchanged(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	uc := usecase.NewJobUsecase(postgres.NewJobRepository(pool), validation.New())

	seed, err := uc.CreateJob(ctx, sampleInput("Site Reliability", "Initech", domain.WorkModeRemote))
	require.NoError(t, err)
	before := countRows(t, pool)

	bad := sampleInput("Site Reliability", "Initech", domain.WorkModeRemote)
	bad.SalaryMin = bad.SalaryMax + 100

	_, err = uc.CreateJob(ctx, bad)
	assert.True(t, apperror.IsValidation(err))
	_, err = uc.UpdateJob(ctx, seed.ID, bad)
	assert.True(t, apperror.IsValidation(err))

	assert.Equal(t, before, countRows(t, pool))
	got, err := uc.GetJobDetails(ctx, seed.ID)
	require.NoError(t, err)
	assert.Equal(t, seed.SalaryMin, got.SalaryMin)
}

func TestMissingIDs(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := postgres.NewJobRepository(pool)

	_, err := repo.GetByID(ctx, 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.Update(ctx, 12345, sampleInput("Anything", "Nobody", domain.WorkModeRemote))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	before := countRows(t, pool)
	assert.NoError(t, repo.Delete(ctx, 12345))
	assert.NoError(t, repo.Delete(ctx, 12345))
	assert.Equal(t, before, countRows(t, pool))
}

func TestPaginationCoversFilteredSet(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := postgres.NewJobRepository(pool)

	for i := 0; i < 23; i++ {
		_, err := repo.Create(ctx, sampleInput(fmt.Sprintf("Engineer %02d", i), "Hooli", domain.WorkModes[i%3]))
		require.NoError(t, err)
	}

	const pageSize = 5
	var all []domain.Job
	for page := 1; ; page++ {
		jobs, total, err := repo.Fetch(ctx, domain.JobFilter{Page: page, PageSize: pageSize})
		require.NoError(t, err)
		assert.Equal(t, int64(23), total)
		assert.LessOrEqual(t, len(jobs), pageSize)
		all = append(all, jobs...)
		if len(jobs) < pageSize {
			break
		}
	}

	require.Len(t, all, 23)
	seen := map[int64]bool{}
	for i, job := range all {
		assert.False(t, seen[job.ID], "duplicate id %d", job.ID)
		seen[job.ID] = true
		if i > 0 {
			assert.Less(t, job.ID, all[i-1].ID)
		}
	}
}

func TestFilterMatchesTitleOrCompany(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := postgres.NewJobRepository(pool)

	inputs := []domain.JobInput{
		sampleInput("Backend Engineer", "Acme Corp", domain.WorkModeRemote),
		sampleInput("Acme Integrations Lead", "Umbrella", domain.WorkModeHybrid),
		sampleInput("Frontend Engineer", "Acme Corp", domain.WorkModeOnSite),
		sampleInput("QA Analyst", "Stark Industries", domain.WorkModeRemote),
	}
	ids := make([]int64, len(inputs))
	for i, in := range inputs {
		job, err := repo.Create(ctx, in)
		require.NoError(t, err)
		ids[i] = job.ID
	}

	jobs, total, err := repo.Fetch(ctx, domain.JobFilter{Query: "Acme", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []int64{ids[2], ids[1], ids[0]}, idsOf(jobs))

	jobs, _, err = repo.Fetch(ctx, domain.JobFilter{Query: "Acme", WorkMode: domain.WorkModeRemote, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{ids[0]}, idsOf(jobs))

	jobs, _, err = repo.Fetch(ctx, domain.JobFilter{Query: "Nonexistent", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestFilterTreatsPatternCharactersLiterally(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := postgres.NewJobRepository(pool)

	inputs := []domain.JobInput{
		sampleInput("a_b Specialist", "Initech", domain.WorkModeRemote),
		sampleInput("axb Specialist", "Initech", domain.WorkModeRemote),
		sampleInput("Sales Lead", "50% Off Ltd", domain.WorkModeHybrid),
		sampleInput("Sales Lead", "500 Club", domain.WorkModeHybrid),
		sampleInput(`Ops at C:\50\`, "Hooli", domain.WorkModeOnSite),
	}
	ids := make([]int64, len(inputs))
	for i, in := range inputs {
		job, err := repo.Create(ctx, in)
		require.NoError(t, err)
		ids[i] = job.ID
	}

	cases := []struct {
		filter string
		want   []int64
	}{
		{"a_b", []int64{ids[0]}},
		{"50%", []int64{ids[2]}},
		{`50\`, []int64{ids[4]}},
		{"%", []int64{ids[2]}},
	}
	for _, tc := range cases {
		jobs, total, err := repo.Fetch(ctx, domain.JobFilter{Query: tc.filter, Page: 1, PageSize: 10})
		require.NoError(t, err, tc.filter)
		assert.Equal(t, tc.want, idsOf(jobs), tc.filter)
		assert.Equal(t, int64(len(tc.want)), total, tc.filter)
	}
}

func TestPageBeyondAddressableRowsIsEmpty(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := postgres.NewJobRepository(pool)

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, sampleInput(fmt.Sprintf("Role %d", i), "Acme Corp", domain.WorkModeRemote))
		require.NoError(t, err)
	}

	uc := usecase.NewJobUsecase(repo, validation.New())
	for _, page := range []int{1000, math.MaxInt/100 + 2, math.MaxInt} {
		jobs, total, err := uc.ListJobs(ctx, domain.JobFilter{Page: page, PageSize: 100})
		require.NoError(t, err, page)
		assert.Empty(t, jobs, page)
		assert.Equal(t, int64(3), total, page)
	}
}

func idsOf(jobs []domain.Job) []int64 {
	out := make([]int64, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}
