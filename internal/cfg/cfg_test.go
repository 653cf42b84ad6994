package cfg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/catalog-editor/pkg/e"
	"github.com/DRSN-tech/catalog-editor/pkg/logger"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"CATALOG_API_URL", "CATALOG_API_TIMEOUT",
		"HTTP_PORT", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "KEEP_ALIVE", "MAX_IMAGE_SIZE", "EDIT_SESSION_TTL",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_USER", "REDIS_DB_ID", "MAX_RETRIES",
		"DIAL_TIMEOUT", "READ_TIMEOUT", "WRITE_TIMEOUT",
		"KAFKA_BROKERS", "KAFKA_TOPIC", "KAFKA_NETWORK_MODE",
		"KAFKA_PARTITIONS", "REPLICATION_FACTOR", "KAFKA_OUTBOX_SIZE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_API_URL", "https://catalog.example.com")

	cfg, err := Load(logger.NewNop())
	require.NoError(t, err)

	require.Equal(t, "https://catalog.example.com", cfg.CatalogAPI.BaseURL)
	require.Zero(t, cfg.CatalogAPI.Timeout)
	require.Equal(t, "8080", cfg.Http.Port)
	require.Equal(t, 5*time.Second, cfg.Http.ReadTimeout)
	require.Equal(t, int64(10<<20), cfg.Http.MaxImageSize)
	require.Equal(t, 30*time.Minute, cfg.Http.SessionTTL)
	require.Nil(t, cfg.Redis)
	require.Nil(t, cfg.Kafka)
}

func TestLoadRequiresCatalogURL(t *testing.T) {
	clearEnv(t)

	_, err := Load(logger.NewNop())
	require.ErrorIs(t, err, e.ErrMissingEnvVariable)
}

func TestLoadOptionalSinks(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_API_URL", "https://catalog.example.com")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("WRITE_TIMEOUT", "4s")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("KAFKA_TOPIC", "product-changes")

	cfg, err := Load(logger.NewNop())
	require.NoError(t, err)

	require.NotNil(t, cfg.Redis)
	require.Equal(t, "redis:6379", cfg.Redis.Addr)
	require.Equal(t, 4*time.Second, cfg.Redis.Timeout)
	require.Equal(t, 3, cfg.Redis.MaxRetries)

	require.NotNil(t, cfg.Kafka)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, "product-changes", cfg.Kafka.Topic)
	require.Equal(t, "tcp", cfg.Kafka.NetworkMode)
	require.Equal(t, 3, cfg.Kafka.Partitions)
	require.Equal(t, 256, cfg.Kafka.OutboxSize)
}

func TestLoadKafkaRequiresTopic(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_API_URL", "https://catalog.example.com")
	t.Setenv("KAFKA_BROKERS", "kafka:9092")

	_, err := Load(logger.NewNop())
	require.ErrorIs(t, err, e.ErrMissingEnvVariable)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "catalog timeout", key: "CATALOG_API_TIMEOUT", value: "soon"},
		{name: "read timeout", key: "HTTP_READ_TIMEOUT", value: "5"},
		{name: "image size", key: "MAX_IMAGE_SIZE", value: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("CATALOG_API_URL", "https://catalog.example.com")
			t.Setenv(tt.key, tt.value)

			_, err := Load(logger.NewNop())
			require.Error(t, err)
		})
	}
}

func TestLoadSessionTTL(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Duration
		wantErr bool
	}{
		{name: "custom", value: "5m", want: 5 * time.Minute},
		{name: "disabled", value: "0s", want: 0},
		{name: "negative", value: "-1m", wantErr: true},
		{name: "garbage", value: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("CATALOG_API_URL", "https://catalog.example.com")
			t.Setenv("EDIT_SESSION_TTL", tt.value)

			cfg, err := Load(logger.NewNop())
			if tt.wantErr {
				require.ErrorIs(t, err, e.ErrIncorrectEnvVariable)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, cfg.Http.SessionTTL)
		})
	}
}
