package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	casestore "docket/internal/casefile/store"
	"docket/internal/classify"
	"docket/internal/importer/lock"
	"docket/internal/importer/runstore"
	"docket/internal/importer/service"
	patternservice "docket/internal/pattern/service"
	patternstore "docket/internal/pattern/store"
	personstore "docket/internal/person/store"
	"docket/internal/platform/config"
	"docket/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	router chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	patterns, err := patternservice.New(patternstore.NewMemory(), slog.Default())
	s.Require().NoError(err)

	svc, err := service.New(
		personstore.NewMemory(),
		casestore.NewMemory(),
		patterns,
		classify.New("Camaçari"),
		lock.NewMemory(),
		runstore.NewMemory(),
		nil,
		nil,
		slog.Default(),
		config.ImportConfig{SimilarityThreshold: 0.6, CandidateLimit: 10},
	)
	s.Require().NoError(err)

	s.router = chi.NewRouter()
	New(svc, slog.Default()).Register(s.router)
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = testutil.NewRequestWithBody(s.T(), method, path, body)
	}
	return testutil.DoRequest(s.router, req)
}

const batchBody = `{
	"rows": [
		{"case_number": "0001234-56.2025.8.05.0039", "person_name": "Maria Silva", "scheduled_at": "2025-05-12T14:00:00Z", "court": "1ª Vara do Júri de Camaçari"},
		{"case_number": "0001234-56.2025.8.05.0039", "person_name": "Maria Silva", "scheduled_at": "2025-05-12T14:00:00Z", "court": "1ª Vara do Júri de Camaçari"}
	]
}`

func (s *HandlerSuite) TestImport() {
	s.Run("returns the run report", func() {
		rec := s.do(http.MethodPost, "/imports/hearings", batchBody)
		s.Equal(http.StatusOK, rec.Code)

		resp := testutil.UnmarshalResponse[RunResponse](s.T(), rec)
		s.Equal(2, resp.TotalRows)
		s.Equal(1, resp.Imported)
		s.Equal(1, resp.Duplicates)
		s.Equal(1, resp.NewPersonsCreated)
		s.Empty(resp.Errors)
		s.NotEmpty(resp.ID)
	})

	s.Run("empty batch is a 400", func() {
		rec := s.do(http.MethodPost, "/imports/hearings", `{"rows": []}`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("malformed body is a 400", func() {
		rec := s.do(http.MethodPost, "/imports/hearings", `{"rows": "nope"}`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("out-of-range threshold is a 400", func() {
		rec := s.do(http.MethodPost, "/imports/hearings", `{"rows": [{"case_number": "1", "person_name": "A", "scheduled_at": "2025-05-12T14:00:00Z"}], "threshold": 2}`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestListRuns() {
	s.do(http.MethodPost, "/imports/hearings", batchBody)

	rec := s.do(http.MethodGet, "/imports/runs?limit=5", "")
	s.Equal(http.StatusOK, rec.Code)

	resp := testutil.UnmarshalResponse[[]RunResponse](s.T(), rec)
	s.Require().Len(*resp, 1)
	s.Equal(1, (*resp)[0].Imported)
}
