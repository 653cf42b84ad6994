package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/catalog-editor/internal/domain"
	"github.com/DRSN-tech/catalog-editor/internal/usecase"
	"github.com/DRSN-tech/catalog-editor/pkg/e"
	"github.com/DRSN-tech/catalog-editor/pkg/logger"
)

type fakeProducer struct {
	mu    sync.Mutex
	errs  []error
	calls int
	sent  map[int64][]byte
}

func (f *fakeProducer) WriteMessage(_ context.Context, productID int64, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return err
	}

	if f.sent == nil {
		f.sent = make(map[int64][]byte)
	}
	f.sent[productID] = payload

	return nil
}

func (f *fakeProducer) snapshot() (int, map[int64][]byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls, f.sent
}

func testEvent(id int64) *usecase.ProductChangedEvent {
	draft := domain.NewEditDraft(domain.NewProduct(id, "Pen", decimal.NewFromInt(15000), nil, nil))
	return usecase.NewProductChangedEvent(id, draft, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
}

func newTestWorker(p MessageProducer, size int) *OutboxWorker {
	w := NewOutboxWorker(p, logger.NewNop(), size)
	w.sleep = func(context.Context, time.Duration) bool { return true }
	return w
}

func TestOutboxWorkerDeliversOnStop(t *testing.T) {
	t.Parallel()

	producer := &fakeProducer{}
	w := newTestWorker(producer, 4)

	require.NoError(t, w.PublishProductChanged(context.Background(), testEvent(42)))
	require.NoError(t, w.PublishProductChanged(context.Background(), testEvent(7)))

	w.Start(context.Background())
	w.Stop()

	calls, sent := producer.snapshot()
	require.Equal(t, 2, calls)
	require.Len(t, sent, 2)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(sent[42], &payload))
	require.Equal(t, "Pen", payload["name"])
	require.Equal(t, "15000", payload["price"])
}

func TestOutboxWorkerRetriesTemporaryFailures(t *testing.T) {
	t.Parallel()

	producer := &fakeProducer{errs: []error{
		errors.New("dial tcp: connection refused"),
		errors.New("i/o timeout"),
	}}
	w := newTestWorker(producer, 1)

	require.NoError(t, w.PublishProductChanged(context.Background(), testEvent(42)))
	w.Start(context.Background())
	w.Stop()

	calls, sent := producer.snapshot()
	require.Equal(t, 3, calls)
	require.Contains(t, sent, int64(42))
}

func TestOutboxWorkerDropsPermanentFailures(t *testing.T) {
	t.Parallel()

	producer := &fakeProducer{errs: []error{errors.New("message too large")}}
	w := newTestWorker(producer, 1)

	require.NoError(t, w.PublishProductChanged(context.Background(), testEvent(42)))
	w.Start(context.Background())
	w.Stop()

	calls, sent := producer.snapshot()
	require.Equal(t, 1, calls)
	require.Empty(t, sent)
}

func TestOutboxWorkerFullAndStopped(t *testing.T) {
	t.Parallel()

	w := newTestWorker(&fakeProducer{}, 1)

	require.NoError(t, w.PublishProductChanged(context.Background(), testEvent(1)))
	require.ErrorIs(t, w.PublishProductChanged(context.Background(), testEvent(2)), e.ErrOutboxFull)

	w.Start(context.Background())
	w.Stop()

	require.ErrorIs(t, w.PublishProductChanged(context.Background(), testEvent(3)), e.ErrOutboxStopped)
}

func TestOutboxWorkerDeliversEveryAcceptedEventAcrossStop(t *testing.T) {
	t.Parallel()

	const publishers = 32

	producer := &fakeProducer{}
	w := newTestWorker(producer, publishers)
	w.Start(context.Background())

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted []int64
		start    = make(chan struct{})
	)
	for i := 1; i <= publishers; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			<-start

			err := w.PublishProductChanged(context.Background(), testEvent(id))
			if err == nil {
				mu.Lock()
				accepted = append(accepted, id)
				mu.Unlock()
				return
			}
			if !errors.Is(err, e.ErrOutboxStopped) {
				t.Errorf("unexpected publish error: %v", err)
			}
		}(int64(i))
	}

	close(start)
	w.Stop()
	wg.Wait()

	_, sent := producer.snapshot()
	for _, id := range accepted {
		require.Contains(t, sent, id)
	}
	require.Len(t, sent, len(accepted))
}

func TestIsRetryableError(t *testing.T) {
	t.Parallel()

	require.False(t, isRetryableError(nil))
	require.True(t, isRetryableError(errors.New("Broker Not Available")))
	require.False(t, isRetryableError(errors.New("invalid message")))
}
