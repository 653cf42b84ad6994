package clients

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/catalog-editor/internal/cfg"
)

func closedAddr(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	return addr
}

func TestRedisClientErrorsNameAddress(t *testing.T) {
	t.Parallel()

	addr := closedAddr(t)
	client := NewRedisClient(&cfg.RedisCfg{
		Addr:        addr,
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
		Timeout:     200 * time.Millisecond,
	})
	t.Cleanup(func() { _ = client.Close() })

	err := client.Ping(context.Background())
	require.ErrorContains(t, err, "redis ping "+addr)

	deleted, err := client.Del(context.Background(), "product:42")
	require.ErrorContains(t, err, "redis del "+addr)
	require.Zero(t, deleted)
}
