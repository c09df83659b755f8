package jobs

import (
	"context"
	"log/slog"

	"ordering/internal/core/ports"
	"ordering/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// dispatchBatchSize bounds how many messages one dispatcher run drains.
const dispatchBatchSize = 100

// OutboxDispatcherJob drains the transactional outbox.
// Runs every second: fetches undelivered messages in creation order,
// publishes them to the broker and marks them sent.
//
// Delivery is at-least-once. A message published right before a crash may
// be published again on the next run; consumers dedupe by message id. On
// the first publish failure the run stops so later messages of the same
// aggregate never overtake an undelivered one.
type OutboxDispatcherJob struct {
	uowFactory ports.UnitOfWorkFactory
	publisher  ports.MessagePublisher
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewOutboxDispatcherJob creates a dispatcher over the given unit of work
// factory and publisher.
func NewOutboxDispatcherJob(
	uowFactory ports.UnitOfWorkFactory,
	publisher ports.MessagePublisher,
	logger *slog.Logger,
) *OutboxDispatcherJob {
	return &OutboxDispatcherJob{
		uowFactory: uowFactory,
		publisher:  publisher,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "outbox_dispatcher_job"),
	}
}

// Start begins the dispatcher job to run every second.
func (j *OutboxDispatcherJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		if err := j.DispatchPending(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Outbox dispatch run failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox dispatcher job started (running every second)")
	return nil
}

// Stop stops the dispatcher job.
func (j *OutboxDispatcherJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox dispatcher job stopped")
}

// DispatchPending performs a single dispatcher run.
// Returns the error that stopped the run; remaining messages stay pending
// and are retried on the next run.
func (j *OutboxDispatcherJob) DispatchPending(ctx context.Context) error {
	uow := j.uowFactory.Create()
	outboxRepo := uow.OutboxRepository()

	pending, err := outboxRepo.FetchPending(ctx, dispatchBatchSize)
	if err != nil {
		return err
	}

	metrics.OutboxPendingMessages.Set(float64(len(pending)))

	for _, message := range pending {
		if err := j.publisher.Publish(ctx, message); err != nil {
			metrics.OutboxPublishFailuresTotal.Inc()
			return err
		}

		if err := outboxRepo.MarkSent(ctx, message.ID()); err != nil {
			return err
		}

		metrics.OutboxDispatchedTotal.Inc()
		j.logger.DebugContext(ctx, "Outbox message delivered",
			"messageId", message.ID().String(),
			"eventType", message.EventType())
	}

	return nil
}
