package adapters

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"docket/internal/importer/models"
	"docket/internal/platform/kafka"
)

// KafkaEventSink publishes finished run reports to Kafka. A nil producer
// turns every publish into a no-op.
type KafkaEventSink struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

func NewKafkaEventSink(producer *kafka.Producer, logger *slog.Logger) *KafkaEventSink {
	return &KafkaEventSink{producer: producer, logger: logger}
}

// runFinishedEvent is the wire shape of a run report event.
type runFinishedEvent struct {
	RunID             string    `json:"run_id"`
	StartedAt         time.Time `json:"started_at"`
	FinishedAt        time.Time `json:"finished_at"`
	TotalRows         int       `json:"total_rows"`
	Imported          int       `json:"imported"`
	Duplicates        int       `json:"duplicates"`
	NewPersonsCreated int       `json:"new_persons_created"`
	ErrorCount        int       `json:"error_count"`
}

func (s *KafkaEventSink) RunFinished(ctx context.Context, run *models.Run) {
	if s.producer == nil {
		return
	}

	payload, err := json.Marshal(runFinishedEvent{
		RunID:             run.ID.String(),
		StartedAt:         run.StartedAt,
		FinishedAt:        run.FinishedAt,
		TotalRows:         run.Report.TotalRows,
		Imported:          run.Report.Imported,
		Duplicates:        run.Report.Duplicates,
		NewPersonsCreated: run.Report.NewPersonsCreated,
		ErrorCount:        len(run.Report.Errors),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "run event marshal failed", "run_id", run.ID, "error", err)
		return
	}

	s.producer.Publish(ctx, []byte(run.ID.String()), payload)
}
