package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/draftpad/draftpad-go/internal/dependencies/clock"
	"github.com/draftpad/draftpad-go/internal/services/auth"
	"github.com/draftpad/draftpad-go/internal/services/document"
	"github.com/draftpad/draftpad-go/internal/storage"
	filestorage "github.com/draftpad/draftpad-go/internal/storage/file"
	"github.com/draftpad/draftpad-go/internal/storage/memory"
	redisstorage "github.com/draftpad/draftpad-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeFile   = "file"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService     *auth.Service
	DocumentService *document.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "file" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// DataDir is the directory for flat-file storage (required if
	// StorageType is "file")
	DataDir string
	// RedisConfig holds Redis connection settings (required if StorageType
	// is "redis")
	RedisConfig *redisstorage.Config
	// ConverterURL is the external document conversion service endpoint
	// (optional; import is unavailable without it)
	ConverterURL string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeFile:
		if cfg.DataDir == "" {
			return nil, errors.New("DataDir required when StorageType is file")
		}
		fileStore, err := filestorage.New(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		store = fileStore
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'file' or 'redis'")
	}

	var converter document.Converter
	if cfg.ConverterURL != "" {
		converter = document.NewHTTPConverter(cfg.ConverterURL)
	}

	clk := clock.New()

	return &App{
		Storage:         store,
		Clock:           clk,
		AuthService:     auth.New(store, clk, logger),
		DocumentService: document.New(store, converter, clk, logger),
	}, nil
}
