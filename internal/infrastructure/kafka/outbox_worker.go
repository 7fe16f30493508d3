package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/velum-tech/pricing-backend/internal/usecase"
	"github.com/velum-tech/pricing-backend/pkg/e"
	"github.com/velum-tech/pricing-backend/pkg/jitter"
	"github.com/velum-tech/pricing-backend/pkg/logger"
)

const (
	outboxChannel = "outbox_pending"
	batchSize     = 10

	reconnectBase = 2 * time.Second
	reconnectMax  = 30 * time.Second
)

// OutboxWorker публикует события из таблицы outbox_events в Kafka.
// Просыпается по NOTIFY из PostgreSQL, при старте добирает накопившиеся
// события. Потерянные соединения восстанавливает с экспоненциальным
// отступлением и джиттером.
type OutboxWorker struct {
	repo      usecase.OutboxRepository
	producer  usecase.MessageProducer
	logger    logger.Logger
	stop      chan struct{}
	wg        sync.WaitGroup
	dbConnStr string
}

func NewOutboxWorker(
	repo usecase.OutboxRepository,
	producer usecase.MessageProducer,
	logger logger.Logger,
	dbConnStr string,
) *OutboxWorker {
	return &OutboxWorker{
		repo:      repo,
		producer:  producer,
		logger:    logger,
		stop:      make(chan struct{}),
		dbConnStr: dbConnStr,
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
}

func (w *OutboxWorker) Stop() {
	close(w.stop)
	w.wg.Wait()
}

func (w *OutboxWorker) run(ctx context.Context) {
	// Добираем события, накопившиеся пока воркер не работал
	w.logger.Infof("Draining pending outbox events on startup...")
	w.drain(ctx)

	w.listenOutboxNotifications(ctx)
}

// listenOutboxNotifications держит выделенное соединение с LISTEN и сливает
// outbox при каждом уведомлении.
func (w *OutboxWorker) listenOutboxNotifications(ctx context.Context) {
	var conn *pgx.Conn

	connect := func() error {
		var err error
		conn, err = pgx.Connect(ctx, w.dbConnStr)
		if err != nil {
			return e.Wrap("failed to connect for LISTEN", err)
		}

		if _, err = conn.Exec(ctx, "LISTEN "+outboxChannel); err != nil {
			conn.Close(ctx)
			return e.Wrap("failed to LISTEN", err)
		}

		w.logger.Infof("Subscribed to '%s' channel", outboxChannel)
		return nil
	}

	if err := connect(); err != nil {
		w.logger.Warnf("Initial connect failed: %v", err)
		return
	}
	defer conn.Close(ctx)

	attempt := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		default:
			ctxWithTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
			notif, err := conn.WaitForNotification(ctxWithTimeout)
			cancel()

			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
					continue
				}

				w.logger.Warnf("Connection lost: %v. Reconnecting...", err)
				conn.Close(ctx)

				backoff := jitter.ExponentialBackoff(reconnectBase, reconnectMax, attempt, jitter.DefaultJitter)
				attempt++
				select {
				case <-time.After(backoff):
				case <-w.stop:
					return
				case <-ctx.Done():
					return
				}

				if err := connect(); err != nil {
					w.logger.Warnf("Reconnect failed: %v", err)
				} else {
					attempt = 0
					// После простоя могли накопиться события без уведомлений
					w.drain(ctx)
				}
				continue
			}

			if notif != nil && notif.Channel == outboxChannel {
				w.logger.Debugf("Received outbox notification, draining outbox events")
				w.drain(ctx)
			}
		}
	}
}

func (w *OutboxWorker) drain(ctx context.Context) {
	for {
		hasMore, err := w.processBatch(ctx)
		if err != nil {
			w.logger.Warnf("Batch processing failed: %v", err)
			return
		}
		if !hasMore {
			return
		}
	}
}

func (w *OutboxWorker) processBatch(ctx context.Context) (bool, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, batchSize)
	if err != nil {
		return false, err
	}

	if len(events) == 0 {
		return false, nil
	}

	for _, event := range events {
		if err := w.processEvent(ctx, event); err != nil {
			w.logger.Warnf("Publish failed for event %s: %v", event.EventID, err)
			continue
		}
		if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
			w.logger.Warnf("mark processed failed: %v", err)
		}
	}

	return true, nil
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *usecase.OutboxEvent) error {
	err := w.producer.WriteRawMessage(ctx, usecase.NewWriteRawMessageReq(event.ProductID, event.Payload))
	if err != nil {
		if isRetryableError(err) {
			return e.Wrap("Temporary Kafka failure, will retry", err)
		}
		return e.Wrap("Permanent Kafka failure", err)
	}

	return nil
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}

	return false
}
