package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"docket/internal/person/models"
	id "docket/pkg/domain"
	dErrors "docket/pkg/domain-errors"
	"docket/pkg/requestcontext"
)

// PostgresStore persists persons in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const uniqueViolation = "23505"

func (s *PostgresStore) Create(ctx context.Context, person *models.Person) error {
	if person == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "person is required")
	}
	now := requestcontext.Now(ctx)
	if person.CreatedAt.IsZero() {
		person.CreatedAt = now
	}
	person.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO persons (id, display_name, normalized_name, tax_id, primary_category, folder_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		person.ID.String(),
		person.DisplayName,
		person.NormalizedName,
		nullString(person.TaxID),
		string(person.PrimaryCategory),
		person.FolderRef,
		person.CreatedAt,
		person.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return dErrors.Wrap(err, dErrors.CodeConflict, "tax identifier already registered")
		}
		return fmt.Errorf("create person: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, personID id.PersonID) (*models.Person, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, display_name, normalized_name, tax_id, primary_category, folder_ref, created_at, updated_at
		FROM persons WHERE id = $1`,
		personID.String(),
	)
	person, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find person by id: %w", err)
	}
	return person, nil
}

func (s *PostgresStore) FindByTaxID(ctx context.Context, taxID string) (*models.Person, error) {
	if taxID == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, display_name, normalized_name, tax_id, primary_category, folder_ref, created_at, updated_at
		FROM persons WHERE tax_id = $1`,
		taxID,
	)
	person, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find person by tax id: %w", err)
	}
	return person, nil
}

// likeEscaper neutralizes LIKE metacharacters so a prefix containing
// % or _ matches literally instead of widening the filter.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *PostgresStore) FindCandidatesByNamePrefix(ctx context.Context, prefix string, limit int) ([]*models.Person, error) {
	if prefix == "" || limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, display_name, normalized_name, tax_id, primary_category, folder_ref, created_at, updated_at
		FROM persons
		WHERE normalized_name LIKE $1 || '%'
		ORDER BY created_at ASC
		LIMIT $2`,
		likeEscaper.Replace(prefix), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("find candidates by name prefix: %w", err)
	}
	defer rows.Close()

	persons, err := scanPersons(rows)
	if err != nil {
		return nil, fmt.Errorf("find candidates by name prefix: %w", err)
	}
	return persons, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Person, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, display_name, normalized_name, tax_id, primary_category, folder_ref, created_at, updated_at
		FROM persons ORDER BY display_name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()

	persons, err := scanPersons(rows)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	return persons, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (*models.Person, error) {
	var (
		person   models.Person
		rawID    string
		taxID    sql.NullString
		category string
	)
	err := row.Scan(&rawID, &person.DisplayName, &person.NormalizedName, &taxID, &category, &person.FolderRef, &person.CreatedAt, &person.UpdatedAt)
	if err != nil {
		return nil, err
	}
	personID, err := id.ParsePersonID(rawID)
	if err != nil {
		return nil, fmt.Errorf("scan person: %w", err)
	}
	person.ID = personID
	person.TaxID = taxID.String
	person.PrimaryCategory = id.CaseCategory(category)
	return &person, nil
}

func scanPersons(rows *sql.Rows) ([]*models.Person, error) {
	var persons []*models.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		persons = append(persons, person)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return persons, nil
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
