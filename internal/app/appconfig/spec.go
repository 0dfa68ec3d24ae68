package appconfig

import (
	"time"

	"github.com/portyard/yardboard/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving normal service requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9030"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// LogFile is the path of the rotated log file. Leaving this empty disables file logging.
	LogFile string `split_words:"true" default:"logs/app.log"`

	// DevMode to indicate development mode. When true, the program would log verbosely and
	// return a more contextual message when encountered a panic.
	DevMode bool `split_words:"true"`

	// RedisURL is the URL of the Redis server that backs the local key-value state of this
	// yard instance. See https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL
	// for more information on how to construct a Redis URL.
	RedisURL string `required:"true" split_words:"true" default:"redis://127.0.0.1:6379/2"`

	// CloudSyncEnabled to indicate whether yard state is mirrored to the shared cloud store
	// (PostgreSQL for records, NATS for change events).
	CloudSyncEnabled bool `split_words:"true" default:"false"`

	// PostgresDSN is the data source name for the PostgreSQL database. See
	// https://bun.uptrace.dev/postgres/#pgdriver for more details on how to construct a PostgreSQL DSN.
	// Only used when CloudSyncEnabled is true.
	PostgresDSN string `split_words:"true"`

	PostgresMaxOpenConns int `split_words:"true" default:"10"`

	BunDebugVerbose bool `split_words:"true"`

	// NatsURL is the URL of the NATS server. See https://pkg.go.dev/github.com/nats-io/nats.go#Connect
	// for more information on how to construct a NATS URL. Only used when CloudSyncEnabled is true.
	NatsURL string `split_words:"true" default:"nats://127.0.0.1:4222"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// ArchiveBucket is the S3 bucket that uploaded source files are archived to.
	// Leaving this empty disables archiving.
	ArchiveBucket string `split_words:"true"`

	// ArchiveEndpoint points the archive client at an S3 compatible store such as MinIO.
	// Empty uses the AWS endpoint of the configured region.
	ArchiveEndpoint string `split_words:"true"`

	// ArchiveAccessKey and ArchiveSecretKey are static credentials for the archive store.
	// When empty the default AWS credential chain is used.
	ArchiveAccessKey string `split_words:"true"`
	ArchiveSecretKey string `split_words:"true"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`

	// IngestLockTTL bounds how long a single workbook ingestion may hold the ingest lock.
	IngestLockTTL time.Duration `split_words:"true" default:"2m"`

	// SyncBatchSize is the number of containers stored in a single cloud batch record.
	SyncBatchSize int `split_words:"true" default:"500"`

	// SyncFetchLimit is the maximum number of records fetched per table on a full cloud fetch.
	SyncFetchLimit int `split_words:"true" default:"1000"`

	// MaxUploadSize is the maximum accepted request body size in bytes.
	MaxUploadSize int `split_words:"true" default:"33554432"`

	// UploadRateLimit caps uploads per client IP per minute, shared across instances through Redis.
	UploadRateLimit int `split_words:"true" default:"30"`

	// ScheduleMaxPdfPages is the number of leading pages read from an uploaded PDF schedule.
	ScheduleMaxPdfPages int `split_words:"true" default:"5"`

	// RTGBlocks lists the grid blocks worked by rubber-tyred gantries. Grid blocks not
	// listed here are treated as reach stacker blocks.
	RTGBlocks []string `split_words:"true" default:"A1,B1,C1,D1,A2,B2,C2,D2,E1,F1,G1,H1,E2,F2,G2,H2,B0,C0,D0,E0,L0,M0,M1,L1"`

	// HighlightLimit is the maximum number of vessels that may be highlighted at once.
	HighlightLimit int `split_words:"true" default:"3"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
