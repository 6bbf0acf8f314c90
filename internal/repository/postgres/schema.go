package postgres

import (
	"context"
	"fmt"
)

// jobsDDL creates the catalog table when it is missing. It never alters an
// existing table.
const jobsDDL = `
CREATE TABLE IF NOT EXISTS jobs (
	id           BIGSERIAL PRIMARY KEY,
	titulo       TEXT NOT NULL,
	empresa      TEXT NOT NULL,
	ubicacion    TEXT NOT NULL,
	modalidad    TEXT NOT NULL,
	tipo         TEXT NOT NULL,
	salario_min  DOUBLE PRECISION NOT NULL,
	salario_max  DOUBLE PRECISION NOT NULL,
	descripcion  TEXT NOT NULL,
	publicada_en TEXT NOT NULL
)`

func EnsureSchema(ctx context.Context, pool ConnPool) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("schema: acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, jobsDDL); err != nil {
		return fmt.Errorf("schema: create jobs table: %w", err)
	}
	return nil
}
