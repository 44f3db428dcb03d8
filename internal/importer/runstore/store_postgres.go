package runstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"docket/internal/importer/models"
	patternservice "docket/internal/pattern/service"
	id "docket/pkg/domain"
	dErrors "docket/pkg/domain-errors"
)

// PostgresStore persists import runs in PostgreSQL. Row errors and
// category disagreements are stored as JSONB documents.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, run *models.Run) error {
	if run == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "run is required")
	}

	rowErrors, err := json.Marshal(orEmpty(run.Report.Errors))
	if err != nil {
		return fmt.Errorf("save run: marshal errors: %w", err)
	}
	disagreements, err := json.Marshal(orEmpty(run.Report.Disagreements))
	if err != nil {
		return fmt.Errorf("save run: marshal disagreements: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO import_runs (id, started_at, finished_at, total_rows, imported, duplicates, new_persons, errors, disagreements)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		run.ID.String(),
		run.StartedAt,
		run.FinishedAt,
		run.Report.TotalRows,
		run.Report.Imported,
		run.Report.Duplicates,
		run.Report.NewPersonsCreated,
		rowErrors,
		disagreements,
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]*models.Run, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, total_rows, imported, duplicates, new_persons, errors, disagreements
		FROM import_runs
		ORDER BY started_at DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		var (
			run           models.Run
			rawID         string
			rowErrors     []byte
			disagreements []byte
		)
		err := rows.Scan(&rawID, &run.StartedAt, &run.FinishedAt, &run.Report.TotalRows,
			&run.Report.Imported, &run.Report.Duplicates, &run.Report.NewPersonsCreated,
			&rowErrors, &disagreements)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runID, err := id.ParseRunID(rawID)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		run.ID = runID
		if err := json.Unmarshal(rowErrors, &run.Report.Errors); err != nil {
			return nil, fmt.Errorf("list runs: unmarshal errors: %w", err)
		}
		if err := json.Unmarshal(disagreements, &run.Report.Disagreements); err != nil {
			return nil, fmt.Errorf("list runs: unmarshal disagreements: %w", err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// orEmpty keeps nil slices serializing as [] instead of null.
func orEmpty[T models.RowError | patternservice.Disagreement](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
