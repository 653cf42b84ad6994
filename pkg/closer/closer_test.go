package closer

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/catalog-editor/pkg/logger"
)

func TestCloseRunsInReverseOrder(t *testing.T) {
	t.Parallel()

	var order []string
	c := NewCloser(logger.NewNop(), 0)
	c.Add("redis", func(context.Context) error { order = append(order, "redis"); return nil })
	c.Add("outbox", func(context.Context) error { order = append(order, "outbox"); return nil })
	c.Add("http", func(context.Context) error { order = append(order, "http"); return nil })

	require.NoError(t, c.Close(context.Background()))
	require.Equal(t, []string{"http", "outbox", "redis"}, order)

	// Повторный вызов ничего не делает
	require.NoError(t, c.Close(context.Background()))
	require.Len(t, order, 3)
}

func TestCloseNamesFailedResources(t *testing.T) {
	t.Parallel()

	errProducer := errors.New("producer close failed")

	var buf bytes.Buffer
	c := NewCloser(logger.NewWithWriter(&buf, zerolog.DebugLevel), 0)
	c.Add("kafka producer", func(context.Context) error { return errProducer })
	c.Add("http server", func(context.Context) error { return nil })

	err := c.Close(context.Background())
	require.ErrorIs(t, err, errProducer)
	require.ErrorContains(t, err, "kafka producer: producer close failed")

	require.Contains(t, buf.String(), "http server closed")
	require.Contains(t, buf.String(), "failed to close kafka producer")
}

func TestCloseForcesRemainingOnTimeout(t *testing.T) {
	t.Parallel()

	forced := make(chan struct{}, 1)
	c := NewCloser(logger.NewNop(), 100*time.Millisecond)
	c.Add("redis", func(ctx context.Context) error {
		forced <- struct{}{}
		return nil
	})
	c.Add("http server", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	require.ErrorContains(t, err, "shutdown interrupted after 0/2 resources")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	select {
	case <-forced:
	case <-time.After(time.Second):
		t.Fatal("remaining close func was not forced")
	}
}
