package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/emiliopalmerini/tonal/internal/adapters/colorful"
	"github.com/emiliopalmerini/tonal/internal/adapters/logging"
	"github.com/emiliopalmerini/tonal/internal/adapters/otel"
	"github.com/emiliopalmerini/tonal/internal/adapters/storage"
	"github.com/emiliopalmerini/tonal/internal/adapters/turso"
	"github.com/emiliopalmerini/tonal/internal/infrastructure/config"
	"github.com/emiliopalmerini/tonal/internal/migrate"
	"github.com/emiliopalmerini/tonal/internal/ports"
	"github.com/emiliopalmerini/tonal/internal/tonal"
	"github.com/emiliopalmerini/tonal/internal/util"
)

// testDBOverride, when set, is used instead of the configured database.
var testDBOverride *sql.DB

// storeMode says whether a command can run without the database.
type storeMode int

const (
	storeOptional storeMode = iota
	storeRequired
)

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	Config   *config.Config
	DB       *turso.DB
	Patterns ports.PatternRepository
	Examples ports.ExamplePaletteRepository
	Space    ports.ColorSpace
	Loader   ports.PaletteSource
	Metrics  ports.MetricsExporter
	Logger   *logging.Logger
	Service  *tonal.Service

	ownsDB bool
}

// NewAppContext creates an AppContext with all dependencies initialized. With
// storeOptional a database that cannot be opened is logged and skipped, so
// generation with the built-in pattern still works.
func NewAppContext(ctx context.Context, mode storeMode) (*AppContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	space := colorful.NewSpace()
	a := &AppContext{
		Config: cfg,
		Space:  space,
		Loader: storage.NewPaletteFileLoader(space),
		Logger: logger,
	}

	a.Metrics, err = otel.New(ctx, otel.Config{
		Endpoint: cfg.OTEL.Endpoint,
		Enabled:  cfg.OTEL.Enabled,
		Insecure: cfg.OTEL.Insecure,
	})
	if err != nil {
		logger.Error(fmt.Sprintf("metrics disabled: %v", err))
		a.Metrics = otel.NewNoOpExporter()
	}

	if err := a.openStore(ctx); err != nil {
		if mode == storeRequired {
			_ = a.Close(ctx)
			return nil, err
		}
		logger.Debug(fmt.Sprintf("pattern store unavailable: %v", err))
	}

	opts := []tonal.Option{
		tonal.WithMetrics(a.Metrics),
		tonal.WithLogger(logger.With("component", "service")),
		tonal.WithWorkers(cfg.Workers),
		tonal.WithDefaultPattern(cfg.DefaultPattern),
	}
	if a.Patterns != nil {
		opts = append(opts, tonal.WithPatternRepository(a.Patterns), tonal.WithExampleRepository(a.Examples))
	}
	a.Service = tonal.NewService(space, opts...)

	return a, nil
}

func (a *AppContext) openStore(ctx context.Context) error {
	db, owned, err := openDB(a.Config)
	if err != nil {
		return err
	}
	if err := migrate.RunAll(ctx, db.DB); err != nil {
		if owned {
			_ = db.Close()
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	repos := turso.NewRepositories(db.DB)
	a.DB, a.ownsDB = db, owned
	a.Patterns, a.Examples = repos.Patterns, repos.Examples
	return nil
}

// openDB connects to the configured database without migrating it. owned is
// false for the test override, which the caller must not close.
func openDB(cfg *config.Config) (db *turso.DB, owned bool, err error) {
	if testDBOverride != nil {
		return &turso.DB{DB: testDBOverride}, false, nil
	}

	if path := cfg.LocalPath(); path != "" {
		if err := util.EnsureDir(filepath.Dir(path)); err != nil {
			return nil, false, err
		}
	}

	db, err = turso.NewDB(cfg.DatabaseURL, cfg.AuthToken)
	if err != nil {
		return nil, false, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, true, nil
}

// Close flushes metrics and releases the database.
func (a *AppContext) Close(ctx context.Context) error {
	var firstErr error
	if a.Metrics != nil {
		if err := a.Metrics.Close(ctx); err != nil {
			firstErr = err
		}
	}
	if a.DB != nil && a.ownsDB {
		if err := a.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// withApp builds an AppContext for the duration of fn.
func withApp(ctx context.Context, mode storeMode, fn func(*AppContext) error) error {
	a, err := NewAppContext(ctx, mode)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close(ctx) }()
	return fn(a)
}
