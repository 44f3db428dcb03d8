package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"docket/internal/casefile/models"
	id "docket/pkg/domain"
	dErrors "docket/pkg/domain-errors"
	"docket/pkg/requestcontext"
)

// PostgresStore persists cases and hearings in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const uniqueViolation = "23505"

func (s *PostgresStore) CreateCase(ctx context.Context, c *models.Case) error {
	if c == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "case is required")
	}
	now := requestcontext.Now(ctx)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cases (id, case_number, category, case_class, court, person_id, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID.String(),
		c.CaseNumber,
		string(c.Category),
		c.CaseClass,
		c.Court,
		c.PersonID.String(),
		c.Archived,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create case: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindCaseByNumber(ctx context.Context, caseNumber string, personID id.PersonID) (*models.Case, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, case_number, category, case_class, court, person_id, archived, created_at, updated_at
		FROM cases WHERE case_number = $1 AND person_id = $2`,
		caseNumber, personID.String(),
	)
	c, err := scanCase(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find case by number: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) CreateHearing(ctx context.Context, h *models.Hearing) error {
	if h == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "hearing is required")
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = requestcontext.Now(ctx)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hearings (id, case_id, person_id, case_number, scheduled_at, hearing_type, category, title, venue, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		h.ID.String(),
		h.CaseID.String(),
		h.PersonID.String(),
		h.CaseNumber,
		h.ScheduledAt,
		h.HearingType,
		string(h.Category),
		h.Title,
		h.Venue,
		string(h.Status),
		h.Notes,
		h.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return dErrors.Wrap(err, dErrors.CodeConflict, "hearing already imported for this case and time")
		}
		return fmt.Errorf("create hearing: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindHearingByKey(ctx context.Context, caseNumber string, scheduledAt time.Time) (*models.Hearing, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, case_id, person_id, case_number, scheduled_at, hearing_type, category, title, venue, status, notes, created_at
		FROM hearings WHERE case_number = $1 AND scheduled_at = $2`,
		caseNumber, scheduledAt,
	)
	h, err := scanHearing(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find hearing by key: %w", err)
	}
	return h, nil
}

func (s *PostgresStore) ListHearingsByPerson(ctx context.Context, personID id.PersonID) ([]*models.Hearing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, case_id, person_id, case_number, scheduled_at, hearing_type, category, title, venue, status, notes, created_at
		FROM hearings WHERE person_id = $1 ORDER BY scheduled_at ASC`,
		personID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list hearings by person: %w", err)
	}
	defer rows.Close()

	var hearings []*models.Hearing
	for rows.Next() {
		h, err := scanHearing(rows)
		if err != nil {
			return nil, fmt.Errorf("list hearings by person: %w", err)
		}
		hearings = append(hearings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list hearings by person: %w", err)
	}
	return hearings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(row rowScanner) (*models.Case, error) {
	var (
		c           models.Case
		rawID       string
		rawPersonID string
		category    string
	)
	err := row.Scan(&rawID, &c.CaseNumber, &category, &c.CaseClass, &c.Court, &rawPersonID, &c.Archived, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	caseID, err := id.ParseCaseID(rawID)
	if err != nil {
		return nil, fmt.Errorf("scan case: %w", err)
	}
	personID, err := id.ParsePersonID(rawPersonID)
	if err != nil {
		return nil, fmt.Errorf("scan case: %w", err)
	}
	c.ID = caseID
	c.PersonID = personID
	c.Category = id.CaseCategory(category)
	return &c, nil
}

func scanHearing(row rowScanner) (*models.Hearing, error) {
	var (
		h           models.Hearing
		rawID       string
		rawCaseID   string
		rawPersonID string
		category    string
		status      string
	)
	err := row.Scan(&rawID, &rawCaseID, &rawPersonID, &h.CaseNumber, &h.ScheduledAt, &h.HearingType, &category, &h.Title, &h.Venue, &status, &h.Notes, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	hearingID, err := id.ParseHearingID(rawID)
	if err != nil {
		return nil, fmt.Errorf("scan hearing: %w", err)
	}
	caseID, err := id.ParseCaseID(rawCaseID)
	if err != nil {
		return nil, fmt.Errorf("scan hearing: %w", err)
	}
	personID, err := id.ParsePersonID(rawPersonID)
	if err != nil {
		return nil, fmt.Errorf("scan hearing: %w", err)
	}
	h.ID = hearingID
	h.CaseID = caseID
	h.PersonID = personID
	h.Category = id.CaseCategory(category)
	h.Status = models.HearingStatus(status)
	return &h, nil
}
