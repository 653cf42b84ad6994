package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/catalog-editor/internal/usecase"
	"github.com/DRSN-tech/catalog-editor/pkg/e"
	"github.com/DRSN-tech/catalog-editor/pkg/jitter"
	"github.com/DRSN-tech/catalog-editor/pkg/logger"
)

const maxSendAttempts = 5

var sendBackoff = jitter.NewBackoff(200*time.Millisecond, 5*time.Second)

// MessageProducer принимает сериализованные события.
type MessageProducer interface {
	WriteMessage(ctx context.Context, productID int64, payload []byte) error
}

type outboxEvent struct {
	productID int64
	payload   []byte
}

// OutboxWorker держит в памяти очередь событий между сохранением товара и Kafka.
// PublishProductChanged не ждёт брокера: ответ оператору не задерживается,
// а временные сбои Kafka повторяются в фоне с экспоненциальной задержкой.
type OutboxWorker struct {
	producer MessageProducer
	logger   logger.Logger
	events   chan outboxEvent
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	sleep    func(ctx context.Context, d time.Duration) bool

	// mu упорядочивает постановку в очередь и Stop: принятое событие всегда попадает в drain
	mu      sync.RWMutex
	stopped bool
}

func NewOutboxWorker(producer MessageProducer, logger logger.Logger, size int) *OutboxWorker {
	return &OutboxWorker{
		producer: producer,
		logger:   logger,
		events:   make(chan outboxEvent, size),
		stop:     make(chan struct{}),
		sleep:    sleepCtx,
	}
}

// PublishProductChanged сериализует событие и ставит его в очередь.
func (w *OutboxWorker) PublishProductChanged(_ context.Context, event *usecase.ProductChangedEvent) error {
	const op = "OutboxWorker.PublishProductChanged"

	payload, err := json.Marshal(event)
	if err != nil {
		return e.Wrap(op, err)
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		return e.Wrap(op, e.ErrOutboxStopped)
	}

	select {
	case w.events <- outboxEvent{productID: event.ProductID, payload: payload}:
		return nil
	default:
		return e.Wrap(op, e.ErrOutboxFull)
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
}

// Stop прекращает приём событий и дожидается отправки уже поставленных в очередь.
func (w *OutboxWorker) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.stopped = true
		w.mu.Unlock()

		close(w.stop)
	})
	w.wg.Wait()
}

func (w *OutboxWorker) run(ctx context.Context) {
	for {
		select {
		case ev := <-w.events:
			w.processEvent(ctx, ev)
		case <-w.stop:
			w.drain(ctx)
			return
		case <-ctx.Done():
			w.logger.Infof("Outbox worker stopped by context cancellation, %d events dropped", len(w.events))
			return
		}
	}
}

// drain отправляет оставшиеся события при остановке
func (w *OutboxWorker) drain(ctx context.Context) {
	w.logger.Infof("Draining %d pending outbox events...", len(w.events))
	for {
		select {
		case ev := <-w.events:
			w.processEvent(ctx, ev)
		default:
			return
		}
	}
}

func (w *OutboxWorker) processEvent(ctx context.Context, ev outboxEvent) {
	for attempt := 0; attempt < maxSendAttempts; attempt++ {
		err := w.producer.WriteMessage(ctx, ev.productID, ev.payload)
		if err == nil {
			return
		}

		if !isRetryableError(err) {
			w.logger.Errorf(err, "Permanent Kafka failure, product %d event dropped", ev.productID)
			return
		}

		delay := sendBackoff.Delay(attempt)
		w.logger.Warnf("Temporary Kafka failure for product %d, retry in %s: %v", ev.productID, delay, err)

		if !w.sleep(ctx, delay) {
			return
		}
	}

	w.logger.Warnf("Product %d event dropped after %d attempts", ev.productID, maxSendAttempts)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
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
		"leader not available",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
