package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"docket/internal/pattern/models"
	id "docket/pkg/domain"
	dErrors "docket/pkg/domain-errors"
	"docket/pkg/requestcontext"
)

// PostgresStore persists correction patterns in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Upsert(ctx context.Context, pattern *models.Pattern) error {
	if pattern == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "pattern is required")
	}
	if !pattern.Type.Valid() {
		return dErrors.Newf(dErrors.CodeInvalidInput, "unknown pattern type %q", pattern.Type)
	}
	if pattern.ID.IsNil() {
		pattern.ID = id.NewPatternID()
	}
	now := requestcontext.Now(ctx)

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO extraction_patterns (id, pattern_type, original_value, normalized_value, corrected_value, corrected_category, times_used, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 1, $7, $7)
		ON CONFLICT (pattern_type, normalized_value) DO UPDATE SET
			times_used = extraction_patterns.times_used + 1,
			original_value = EXCLUDED.original_value,
			corrected_value = EXCLUDED.corrected_value,
			corrected_category = EXCLUDED.corrected_category,
			updated_at = EXCLUDED.updated_at
		RETURNING id, times_used, created_at, updated_at`,
		pattern.ID.String(),
		string(pattern.Type),
		pattern.OriginalValue,
		pattern.NormalizedValue,
		pattern.CorrectedValue,
		nullString(string(pattern.CorrectedCategory)),
		now,
	)

	var rawID string
	if err := row.Scan(&rawID, &pattern.TimesUsed, &pattern.CreatedAt, &pattern.UpdatedAt); err != nil {
		return fmt.Errorf("upsert pattern: %w", err)
	}
	patternID, err := id.ParsePatternID(rawID)
	if err != nil {
		return fmt.Errorf("upsert pattern: %w", err)
	}
	pattern.ID = patternID
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, patternType models.PatternType, normalizedValue string) (*models.Pattern, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, pattern_type, original_value, normalized_value, corrected_value, corrected_category, times_used, created_at, updated_at
		FROM extraction_patterns
		WHERE pattern_type = $1 AND normalized_value = $2`,
		string(patternType), normalizedValue,
	)
	pattern, err := scanPattern(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find pattern: %w", err)
	}
	return pattern, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Pattern, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, pattern_type, original_value, normalized_value, corrected_value, corrected_category, times_used, created_at, updated_at
		FROM extraction_patterns
		ORDER BY times_used DESC, normalized_value ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list patterns: %w", err)
	}
	defer rows.Close()

	var patterns []*models.Pattern
	for rows.Next() {
		pattern, err := scanPattern(rows)
		if err != nil {
			return nil, fmt.Errorf("list patterns: %w", err)
		}
		patterns = append(patterns, pattern)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list patterns: %w", err)
	}
	return patterns, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPattern(row rowScanner) (*models.Pattern, error) {
	var (
		pattern     models.Pattern
		rawID       string
		patternType string
		category    sql.NullString
	)
	err := row.Scan(&rawID, &patternType, &pattern.OriginalValue, &pattern.NormalizedValue, &pattern.CorrectedValue, &category, &pattern.TimesUsed, &pattern.CreatedAt, &pattern.UpdatedAt)
	if err != nil {
		return nil, err
	}
	patternID, err := id.ParsePatternID(rawID)
	if err != nil {
		return nil, fmt.Errorf("scan pattern: %w", err)
	}
	pattern.ID = patternID
	pattern.Type = models.PatternType(patternType)
	pattern.CorrectedCategory = id.CaseCategory(category.String)
	return &pattern, nil
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
