// Package service runs batch hearing imports: each row resolves its
// person against the registry, classifies its case, and lands as a
// hearing unless it is a duplicate or fails validation.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	casemodels "docket/internal/casefile/models"
	casestore "docket/internal/casefile/store"
	"docket/internal/classify"
	"docket/internal/importer/adapters"
	"docket/internal/importer/metrics"
	"docket/internal/importer/models"
	"docket/internal/importer/ports"
	"docket/internal/match"
	patternservice "docket/internal/pattern/service"
	personmodels "docket/internal/person/models"
	personstore "docket/internal/person/store"
	"docket/internal/platform/config"
	id "docket/pkg/domain"
	dErrors "docket/pkg/domain-errors"
	"docket/pkg/requestcontext"
)

// MaxBatchRows bounds one submission. Larger uploads are split by the
// caller.
const MaxBatchRows = 500

// Service orchestrates batch imports.
type Service struct {
	persons    personstore.Store
	cases      casestore.Store
	patterns   *patternservice.Service
	classifier *classify.Classifier
	retriever  *match.Retriever
	locker     ports.Locker
	runs       ports.RunStore
	events     ports.EventSink
	metrics    *metrics.Metrics
	logger     *slog.Logger
	cfg        config.ImportConfig
	tracer     trace.Tracer
}

// New constructs the import service. events may be nil when run events
// are not published.
func New(
	persons personstore.Store,
	cases casestore.Store,
	patterns *patternservice.Service,
	classifier *classify.Classifier,
	locker ports.Locker,
	runs ports.RunStore,
	events ports.EventSink,
	m *metrics.Metrics,
	logger *slog.Logger,
	cfg config.ImportConfig,
) (*Service, error) {
	if persons == nil {
		return nil, fmt.Errorf("person store is required")
	}
	if cases == nil {
		return nil, fmt.Errorf("case store is required")
	}
	if patterns == nil {
		return nil, fmt.Errorf("pattern service is required")
	}
	if classifier == nil {
		return nil, fmt.Errorf("classifier is required")
	}
	if locker == nil {
		return nil, fmt.Errorf("locker is required")
	}
	if runs == nil {
		return nil, fmt.Errorf("run store is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	retriever, err := match.NewRetriever(adapters.NewPersonRegistry(persons), cfg.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("build retriever: %w", err)
	}

	return &Service{
		persons:    persons,
		cases:      cases,
		patterns:   patterns,
		classifier: classifier,
		retriever:  retriever,
		locker:     locker,
		runs:       runs,
		events:     events,
		metrics:    m,
		logger:     logger,
		cfg:        cfg,
		tracer:     otel.Tracer("docket/importer"),
	}, nil
}

// ImportBatch processes rows sequentially and returns the persisted run.
// threshold <= 0 selects the configured default. Row failures never abort
// the batch; they are collected in the report.
func (s *Service) ImportBatch(ctx context.Context, rows []models.Row, threshold float64) (*models.Run, error) {
	if len(rows) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "batch has no rows")
	}
	if len(rows) > MaxBatchRows {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "batch exceeds %d rows", MaxBatchRows)
	}
	if threshold <= 0 {
		threshold = s.cfg.SimilarityThreshold
	}
	if threshold > 1 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "threshold must be in (0, 1]")
	}

	ctx, span := s.tracer.Start(ctx, "importer.ImportBatch",
		trace.WithAttributes(
			attribute.Int("import.rows", len(rows)),
			attribute.Float64("import.threshold", threshold),
		))
	defer span.End()

	start := time.Now()
	run := &models.Run{
		ID:        id.NewRunID(),
		StartedAt: requestcontext.Now(ctx),
	}
	run.Report.TotalRows = len(rows)
	run.Report.Errors = []models.RowError{}

	for i, row := range rows {
		outcome, err := s.importRow(ctx, &run.Report, row, threshold)
		if err != nil {
			run.Report.Errors = append(run.Report.Errors, models.RowError{Row: i, Message: err.Error()})
			s.metrics.IncrementRowOutcome("error")
			s.logger.WarnContext(ctx, "import row failed",
				"run_id", run.ID,
				"row", i,
				"case_number", row.CaseNumber,
				"error", err,
			)
			continue
		}
		s.metrics.IncrementRowOutcome(outcome)
	}

	run.FinishedAt = run.StartedAt.Add(time.Since(start))
	s.metrics.ObserveBatch(len(rows), time.Since(start))

	if err := s.runs.Save(ctx, run); err != nil {
		return nil, fmt.Errorf("save import run: %w", err)
	}
	if s.events != nil {
		s.events.RunFinished(ctx, run)
	}

	s.logger.InfoContext(ctx, "import batch finished",
		"run_id", run.ID,
		"total_rows", run.Report.TotalRows,
		"imported", run.Report.Imported,
		"duplicates", run.Report.Duplicates,
		"new_persons", run.Report.NewPersonsCreated,
		"errors", len(run.Report.Errors),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return run, nil
}

// importRow lands one row, returning the outcome label for metrics:
// "imported" or "duplicate".
func (s *Service) importRow(ctx context.Context, report *models.Report, row models.Row, threshold float64) (string, error) {
	caseNumber := match.FormatCaseNumber(row.CaseNumber)
	if caseNumber == "" {
		return "", fmt.Errorf("case number is required")
	}
	if row.PersonName == "" {
		return "", fmt.Errorf("person name is required")
	}
	if row.ScheduledAt.IsZero() {
		return "", fmt.Errorf("scheduled time is required")
	}

	// Idempotency: one hearing per (case number, scheduled time). A row
	// seen in a previous batch counts as a duplicate, not an error.
	existing, err := s.cases.FindHearingByKey(ctx, caseNumber, row.ScheduledAt)
	if err != nil {
		return "", fmt.Errorf("duplicate check: %w", err)
	}
	if existing != nil {
		report.Duplicates++
		return "duplicate", nil
	}

	heuristic := s.classifier.Classify(row.Court, row.CaseClass, row.Subjects)
	arb, err := s.patterns.ArbitrateCategory(ctx, row.Court, heuristic)
	if err != nil {
		return "", fmt.Errorf("category arbitration: %w", err)
	}
	if arb.Disagreement != nil {
		report.Disagreements = append(report.Disagreements, *arb.Disagreement)
	}

	personID, err := s.resolvePerson(ctx, report, row, threshold, arb.Category)
	if err != nil {
		return "", err
	}

	courtCase, err := s.cases.FindCaseByNumber(ctx, caseNumber, personID)
	if err != nil {
		return "", fmt.Errorf("find case: %w", err)
	}
	if courtCase == nil {
		courtCase = &casemodels.Case{
			ID:         id.NewCaseID(),
			CaseNumber: caseNumber,
			Category:   arb.Category,
			CaseClass:  row.CaseClass,
			Court:      row.Court,
			PersonID:   personID,
		}
		if err := s.cases.CreateCase(ctx, courtCase); err != nil {
			return "", fmt.Errorf("create case: %w", err)
		}
	}

	hearing := &casemodels.Hearing{
		ID:          id.NewHearingID(),
		CaseID:      courtCase.ID,
		PersonID:    personID,
		CaseNumber:  caseNumber,
		ScheduledAt: row.ScheduledAt,
		HearingType: row.HearingType,
		Category:    arb.Category,
		Title:       row.Title,
		Venue:       row.Venue,
		Status:      casemodels.MapImportedStatus(row.Status),
		Notes:       row.Notes,
	}
	if err := s.cases.CreateHearing(ctx, hearing); err != nil {
		// Lost a race with a concurrent batch importing the same row.
		if dErrors.HasCode(err, dErrors.CodeConflict) {
			report.Duplicates++
			return "duplicate", nil
		}
		return "", fmt.Errorf("create hearing: %w", err)
	}

	report.Imported++
	return "imported", nil
}

// resolvePerson matches the row against the registry, creating a new
// person under a per-identity lock when nothing matches.
func (s *Service) resolvePerson(ctx context.Context, report *models.Report, row models.Row, threshold float64, category id.CaseCategory) (id.PersonID, error) {
	ctx, span := s.tracer.Start(ctx, "importer.resolvePerson")
	defer span.End()

	taxID := match.NormalizeTaxID(row.TaxID)

	resolution, err := s.resolveOnce(ctx, row.PersonName, taxID, threshold)
	if err != nil {
		return id.PersonID{}, err
	}
	if resolution.Matched() {
		s.metrics.IncrementMatchTier(string(resolution.Tier))
		span.SetAttributes(attribute.String("match.tier", string(resolution.Tier)))
		return resolution.PersonID, nil
	}

	// Serialize creation per identity so concurrent batches converge on
	// one person. The lock key prefers the strong identifier.
	lockKey := taxID
	if lockKey == "" {
		lockKey = match.Normalize(row.PersonName)
	}
	release, err := s.locker.Acquire(ctx, "person:"+lockKey)
	if err != nil {
		return id.PersonID{}, fmt.Errorf("acquire person lock: %w", err)
	}
	defer release()

	// Re-check under the lock: the holder before us may have created the
	// person we were about to.
	resolution, err = s.resolveOnce(ctx, row.PersonName, taxID, threshold)
	if err != nil {
		return id.PersonID{}, err
	}
	if resolution.Matched() {
		s.metrics.IncrementMatchTier(string(resolution.Tier))
		return resolution.PersonID, nil
	}

	person := &personmodels.Person{
		ID:              id.NewPersonID(),
		DisplayName:     resolution.CreateName,
		NormalizedName:  match.Normalize(row.PersonName),
		TaxID:           taxID,
		PrimaryCategory: category,
	}
	if err := s.persons.Create(ctx, person); err != nil {
		// A cross-process race slipped past the lock; the winner's row is
		// the person we wanted.
		if dErrors.HasCode(err, dErrors.CodeConflict) && taxID != "" {
			winner, findErr := s.persons.FindByTaxID(ctx, taxID)
			if findErr == nil && winner != nil {
				s.metrics.IncrementMatchTier(string(match.TierIdentifier))
				return winner.ID, nil
			}
		}
		return id.PersonID{}, fmt.Errorf("create person: %w", err)
	}

	report.NewPersonsCreated++
	s.metrics.IncrementMatchTier("created")
	span.SetAttributes(attribute.String("match.tier", "created"))
	s.logger.InfoContext(ctx, "person created from import",
		"person_id", person.ID,
		"has_tax_id", taxID != "",
	)
	return person.ID, nil
}

func (s *Service) resolveOnce(ctx context.Context, rawName, taxID string, threshold float64) (match.Resolution, error) {
	set, err := s.retriever.Retrieve(ctx, rawName, taxID)
	if err != nil {
		return match.Resolution{}, fmt.Errorf("retrieve candidates: %w", err)
	}
	return match.Resolve(set, rawName, threshold), nil
}

// ListRuns returns recent runs, most recent first.
func (s *Service) ListRuns(ctx context.Context, limit int) ([]*models.Run, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.runs.ListRecent(ctx, limit)
}
