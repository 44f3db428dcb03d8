package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"docket/internal/pattern/service"
	"docket/internal/pattern/store"
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
	svc, err := service.New(store.NewMemory(), slog.Default())
	s.Require().NoError(err)

	s.router = chi.NewRouter()
	New(svc, slog.Default()).Register(s.router)
}

func (s *HandlerSuite) post(body string) *httptest.ResponseRecorder {
	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/patterns", body)
	return testutil.DoRequest(s.router, req)
}

func (s *HandlerSuite) TestRecord() {
	s.Run("stores a correction and returns it", func() {
		rec := s.post(`{"pattern_type":"category","original_value":"Vara do Júri de Salvador","corrected_category":"substitution"}`)
		s.Equal(http.StatusOK, rec.Code)

		resp := testutil.UnmarshalResponse[PatternResponse](s.T(), rec)
		s.Equal("category", resp.PatternType)
		s.Equal("Vara do Júri de Salvador", resp.OriginalValue)
		s.Equal("vara do juri de salvador", resp.NormalizedValue)
		s.Equal("substitution", resp.CorrectedCategory)
		s.Equal(1, resp.TimesUsed)
		s.NotEmpty(resp.ID)
	})

	s.Run("repeat correction increments times_used", func() {
		body := `{"pattern_type":"person_name","original_value":"Jose Silva","corrected_value":"José da Silva"}`
		s.post(body)
		rec := s.post(body)
		s.Equal(http.StatusOK, rec.Code)

		resp := testutil.UnmarshalResponse[PatternResponse](s.T(), rec)
		s.Equal(2, resp.TimesUsed)
	})

	s.Run("invalid pattern type is a 400", func() {
		rec := s.post(`{"pattern_type":"bogus","original_value":"x"}`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("unknown fields are rejected", func() {
		rec := s.post(`{"pattern_type":"category","original_value":"x","extra":true}`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestList() {
	s.post(`{"pattern_type":"category","original_value":"rare court","corrected_category":"jury"}`)
	common := `{"pattern_type":"category","original_value":"common court","corrected_category":"jury"}`
	s.post(common)
	s.post(common)

	req := httptest.NewRequest(http.MethodGet, "/patterns", nil)
	rec := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusOK, rec.Code)

	resp := testutil.UnmarshalResponse[[]PatternResponse](s.T(), rec)
	s.Require().Len(*resp, 2)
	s.Equal("common court", (*resp)[0].OriginalValue)
	s.Equal(2, (*resp)[0].TimesUsed)
	s.Equal("rare court", (*resp)[1].OriginalValue)
}
