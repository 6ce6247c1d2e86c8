package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS bonus_run (
		id UUID PRIMARY KEY,
		year INT NOT NULL,
		status VARCHAR(16) NOT NULL,
		error TEXT,
		started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		finished_at TIMESTAMPTZ
	);`,
	`CREATE INDEX IF NOT EXISTS idx_bonus_run_year ON bonus_run (year);`,
	`CREATE TABLE IF NOT EXISTS scored_project (
		id BIGSERIAL PRIMARY KEY,
		run_id UUID NOT NULL REFERENCES bonus_run(id) ON DELETE CASCADE,
		engineer VARCHAR(128) NOT NULL,
		row_index INT NOT NULL,
		country VARCHAR(64),
		object_name TEXT,
		design_code VARCHAR(64),
		object_type TEXT,
		authors TEXT,
		start_date VARCHAR(16),
		end_date VARCHAR(16),
		deadline DATE,
		auto_tier INT,
		override VARCHAR(16),
		score_kind INT NOT NULL,
		points NUMERIC(10,2)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_scored_project_run ON scored_project (run_id, engineer, row_index);`,
	`CREATE TABLE IF NOT EXISTS period_total (
		id BIGSERIAL PRIMARY KEY,
		run_id UUID NOT NULL REFERENCES bonus_run(id) ON DELETE CASCADE,
		engineer VARCHAR(128),
		scope VARCHAR(16) NOT NULL,
		period VARCHAR(16) NOT NULL,
		points NUMERIC(10,2) NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_period_total_run ON period_total (run_id, engineer, scope);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
