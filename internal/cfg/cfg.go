package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/catalog-editor/pkg/e"
	"github.com/DRSN-tech/catalog-editor/pkg/logger"
	"github.com/jimlawless/whereami"
)

type Config struct {
	CatalogAPI *CatalogAPICfg
	Http       *HTTPConfig
	Redis      *RedisCfg // nil, если REDIS_ADDR не задан
	Kafka      *KafkaCfg // nil, если KAFKA_BROKERS не задан
}

type CatalogAPICfg struct {
	BaseURL string        // Базовый адрес удалённого каталога
	Timeout time.Duration // 0 означает отсутствие таймаута
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxImageSize int64         // Максимальный размер загружаемого изображения в байтах
	SessionTTL   time.Duration // Время жизни простаивающей сессии редактирования, 0 отключает очистку
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
	OutboxSize        int // Ёмкость очереди событий в памяти
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	catalogAPI, err := LoadCatalogAPICfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		CatalogAPI: catalogAPI,
		Http:       http,
		Redis:      redis,
		Kafka:      kafka,
	}, nil
}

// LoadCatalogAPICfg читает только настройки каталога. Используется CLI.
func LoadCatalogAPICfg(log logger.Logger) (*CatalogAPICfg, error) {
	const defaultTimeout = 0

	baseURL := strings.TrimSpace(getEnv("CATALOG_API_URL"))
	if baseURL == "" {
		err := e.Wrap("CATALOG_API_URL", e.ErrMissingEnvVariable)
		log.Errorf(err, "missing CATALOG_API_URL")
		return nil, err
	}

	timeout, err := parseDurationEnv("CATALOG_API_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid CATALOG_API_TIMEOUT")
		return nil, e.Wrap("CATALOG_API_TIMEOUT", e.ErrIncorrectEnvVariable)
	}

	return &CatalogAPICfg{
		BaseURL: baseURL,
		Timeout: timeout,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
		defaultMaxImageSize = 10 << 20
		defaultSessionTTL   = 30 * time.Minute
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	maxImageSize, err := parseIntEnv("MAX_IMAGE_SIZE", defaultMaxImageSize)
	if err != nil || maxImageSize <= 0 {
		err = e.Wrap("MAX_IMAGE_SIZE", e.ErrIncorrectEnvVariable)
		log.Errorf(err, "invalid MAX_IMAGE_SIZE")
		return nil, err
	}

	sessionTTL, err := parseDurationEnv("EDIT_SESSION_TTL", defaultSessionTTL)
	if err != nil || sessionTTL < 0 {
		err = e.Wrap("EDIT_SESSION_TTL", e.ErrIncorrectEnvVariable)
		log.Errorf(err, "invalid EDIT_SESSION_TTL")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		MaxImageSize: int64(maxImageSize),
		SessionTTL:   sessionTTL,
	}, nil
}

// loadRedisCfg возвращает nil без ошибки, если Redis не настроен.
func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
	)

	addr := getEnv("REDIS_ADDR")
	if addr == "" {
		return nil, nil
	}

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        addr,
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
	}, nil
}

// loadKafkaCfg возвращает nil без ошибки, если брокеры не заданы.
// Если брокеры заданы, топик обязателен.
func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
		defaultOutboxSize        = 256
	)

	brokerStr := getEnv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, nil
	}

	brokers := make([]string, 0)
	for _, b := range strings.Split(brokerStr, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS: %w", e.ErrIncorrectEnvVariable)
	}

	topic := getEnv("KAFKA_TOPIC")
	if topic == "" {
		return nil, fmt.Errorf("KAFKA_TOPIC: %w", e.ErrMissingEnvVariable)
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	outboxSize, err := parseIntEnv("KAFKA_OUTBOX_SIZE", defaultOutboxSize)
	if err != nil || outboxSize <= 0 {
		return nil, e.Wrap("KAFKA_OUTBOX_SIZE", e.ErrIncorrectEnvVariable)
	}

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             topic,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		OutboxSize:        outboxSize,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
