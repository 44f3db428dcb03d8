//go:build integration

package store_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"docket/internal/person/models"
	"docket/internal/person/store"
	id "docket/pkg/domain"
	dErrors "docket/pkg/domain-errors"
	"docket/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "hearings", "cases", "persons")
	s.Require().NoError(err)
}

func newTestPerson(name, normalized, taxID string) *models.Person {
	return &models.Person{
		ID:              id.NewPersonID(),
		DisplayName:     name,
		NormalizedName:  normalized,
		TaxID:           taxID,
		PrimaryCategory: id.CategoryJury,
	}
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	ctx := context.Background()

	created := newTestPerson("Maria da Silva", "maria da silva", "12345678901")
	s.Require().NoError(s.store.Create(ctx, created))

	found, err := s.store.FindByID(ctx, created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal(created.DisplayName, found.DisplayName)
	s.Equal(created.TaxID, found.TaxID)
	s.Equal(id.CategoryJury, found.PrimaryCategory)

	byTax, err := s.store.FindByTaxID(ctx, "12345678901")
	s.Require().NoError(err)
	s.Require().NotNil(byTax)
	s.Equal(created.ID, byTax.ID)
}

func (s *PostgresStoreSuite) TestAbsenceIsNilNil() {
	ctx := context.Background()

	found, err := s.store.FindByID(ctx, id.NewPersonID())
	s.NoError(err)
	s.Nil(found)

	byTax, err := s.store.FindByTaxID(ctx, "00000000000")
	s.NoError(err)
	s.Nil(byTax)
}

func (s *PostgresStoreSuite) TestEmptyTaxIDsDoNotConflict() {
	ctx := context.Background()

	s.Require().NoError(s.store.Create(ctx, newTestPerson("A", "a", "")))
	s.Require().NoError(s.store.Create(ctx, newTestPerson("B", "b", "")))
}

// TestConcurrentTaxIDViolation verifies that concurrent creation attempts
// with the same tax identifier result in exactly one success.
func (s *PostgresStoreSuite) TestConcurrentTaxIDViolation() {
	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	var successCount atomic.Int32
	var conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			person := newTestPerson("João Souza", "joao souza", "98765432100")
			err := s.store.Create(ctx, person)
			if err == nil {
				successCount.Add(1)
			} else if dErrors.HasCode(err, dErrors.CodeConflict) {
				conflictCount.Add(1)
			}
		}()
	}

	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one create should succeed")
	s.Equal(int32(goroutines-1), conflictCount.Load(), "all others should get conflict error")
}

func (s *PostgresStoreSuite) TestFindCandidatesByNamePrefix() {
	ctx := context.Background()

	s.Require().NoError(s.store.Create(ctx, newTestPerson("Maria Silva", "maria silva", "")))
	s.Require().NoError(s.store.Create(ctx, newTestPerson("Maria da Silva", "maria da silva", "")))
	s.Require().NoError(s.store.Create(ctx, newTestPerson("José Santos", "jose santos", "")))

	candidates, err := s.store.FindCandidatesByNamePrefix(ctx, "maria", 10)
	s.Require().NoError(err)
	s.Len(candidates, 2)

	limited, err := s.store.FindCandidatesByNamePrefix(ctx, "maria", 1)
	s.Require().NoError(err)
	s.Len(limited, 1)
}

// TestPrefixWildcardsMatchLiterally verifies that LIKE metacharacters in
// a prefix do not widen the candidate filter.
func (s *PostgresStoreSuite) TestPrefixWildcardsMatchLiterally() {
	ctx := context.Background()

	s.Require().NoError(s.store.Create(ctx, newTestPerson("Jo_o Prado", "jo_o prado", "")))
	s.Require().NoError(s.store.Create(ctx, newTestPerson("João Prado", "joao prado", "")))

	underscore, err := s.store.FindCandidatesByNamePrefix(ctx, "jo_o", 10)
	s.Require().NoError(err)
	s.Require().Len(underscore, 1)
	s.Equal("jo_o prado", underscore[0].NormalizedName)

	percent, err := s.store.FindCandidatesByNamePrefix(ctx, "jo%", 10)
	s.Require().NoError(err)
	s.Empty(percent)
}
