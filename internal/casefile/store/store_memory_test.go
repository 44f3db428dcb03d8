package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"docket/internal/casefile/models"
	id "docket/pkg/domain"
	dErrors "docket/pkg/domain-errors"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewMemory()
}

func (s *InMemoryStoreSuite) newHearing(caseNumber string, scheduledAt time.Time) *models.Hearing {
	return &models.Hearing{
		ID:          id.NewHearingID(),
		CaseID:      id.NewCaseID(),
		PersonID:    id.NewPersonID(),
		CaseNumber:  caseNumber,
		ScheduledAt: scheduledAt,
		Category:    id.CategoryJury,
		Status:      models.HearingStatusScheduled,
	}
}

func (s *InMemoryStoreSuite) TestFindCaseByNumber() {
	ctx := context.Background()
	personID := id.NewPersonID()

	c := &models.Case{
		ID:         id.NewCaseID(),
		CaseNumber: "00012345620258050039",
		Category:   id.CategoryJury,
		PersonID:   personID,
	}
	s.Require().NoError(s.store.CreateCase(ctx, c))

	s.Run("matches number and person", func() {
		found, err := s.store.FindCaseByNumber(ctx, c.CaseNumber, personID)
		s.NoError(err)
		s.NotNil(found)
		s.Equal(c.ID, found.ID)
	})

	s.Run("same number under another person does not match", func() {
		found, err := s.store.FindCaseByNumber(ctx, c.CaseNumber, id.NewPersonID())
		s.NoError(err)
		s.Nil(found)
	})
}

func (s *InMemoryStoreSuite) TestCreateHearing() {
	ctx := context.Background()
	when := time.Date(2025, 4, 2, 14, 0, 0, 0, time.UTC)

	s.Run("duplicate import key conflicts", func() {
		first := s.newHearing("00012345620258050039", when)
		s.Require().NoError(s.store.CreateHearing(ctx, first))

		second := s.newHearing("00012345620258050039", when)
		err := s.store.CreateHearing(ctx, second)
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("same case at a different time is a new hearing", func() {
		other := s.newHearing("00012345620258050039", when.Add(24*time.Hour))
		s.NoError(s.store.CreateHearing(ctx, other))
	})

	s.Run("timezone does not split the key", func() {
		loc := time.FixedZone("BRT", -3*60*60)
		clash := s.newHearing("00012345620258050039", when.In(loc))
		err := s.store.CreateHearing(ctx, clash)
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *InMemoryStoreSuite) TestFindHearingByKey() {
	ctx := context.Background()
	when := time.Date(2025, 4, 2, 14, 0, 0, 0, time.UTC)

	s.Run("absent key returns nil without error", func() {
		found, err := s.store.FindHearingByKey(ctx, "999", when)
		s.NoError(err)
		s.Nil(found)
	})

	s.Run("present key resolves the hearing", func() {
		created := s.newHearing("00099999920258050039", when)
		s.Require().NoError(s.store.CreateHearing(ctx, created))

		found, err := s.store.FindHearingByKey(ctx, created.CaseNumber, when)
		s.NoError(err)
		s.NotNil(found)
		s.Equal(created.ID, found.ID)
	})
}

func (s *InMemoryStoreSuite) TestListHearingsByPerson() {
	ctx := context.Background()
	personID := id.NewPersonID()
	base := time.Date(2025, 4, 2, 14, 0, 0, 0, time.UTC)

	later := s.newHearing("111", base.Add(48*time.Hour))
	later.PersonID = personID
	earlier := s.newHearing("222", base)
	earlier.PersonID = personID
	s.Require().NoError(s.store.CreateHearing(ctx, later))
	s.Require().NoError(s.store.CreateHearing(ctx, earlier))
	s.Require().NoError(s.store.CreateHearing(ctx, s.newHearing("333", base)))

	hearings, err := s.store.ListHearingsByPerson(ctx, personID)
	s.NoError(err)
	s.Len(hearings, 2)
	s.Equal(earlier.ID, hearings[0].ID)
	s.Equal(later.ID, hearings[1].ID)
}
