package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/advent/adapter"
	"github.com/pithecene-io/advent/adapter/redis"
	"github.com/pithecene-io/advent/adapter/webhook"
	"github.com/pithecene-io/advent/archive"
	"github.com/pithecene-io/advent/cli/config"
	"github.com/pithecene-io/advent/iox"
	"github.com/pithecene-io/advent/loader"
	"github.com/pithecene-io/advent/log"
	"github.com/pithecene-io/advent/metrics"
	"github.com/pithecene-io/advent/record"
	"github.com/pithecene-io/advent/runtime"
	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/storage"
)

// env holds everything a command builds from flags and config.
// Optional pieces are nil when not configured.
type env struct {
	config    *config.Config
	sessionID string
	logger    *log.Logger
	collector *metrics.Collector

	inputs   solution.Solver
	cache    *loader.Cached
	archive  *archive.Archive
	adapters []adapter.Adapter
	record   *record.Writer
}

// invalidInput wraps err as a cli exit error with the invalid input code.
func invalidInput(err error) error {
	return cli.Exit(err.Error(), runtime.ExitCodeInvalidInput)
}

// rejectTUI fails commands that have no interactive view when --tui is set.
func rejectTUI(c *cli.Context, command string) error {
	if !c.Bool("tui") {
		return nil
	}
	return invalidInput(fmt.Errorf("--tui is not supported for %s command", command))
}

// loadConfig loads the .env file and the config file named by flags.
// An explicit --config must exist; the default path is optional.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if err := config.LoadDotEnv(c.String("env-file")); err != nil {
		return nil, err
	}
	if c.IsSet("config") {
		return config.Load(c.String("config"))
	}
	return config.LoadOptional(c.String("config"))
}

// newLogger builds the session logger. --log-level overrides log.level.
func newLogger(c *cli.Context, cfg *config.Config, sessionID string, testing bool) (*log.Logger, error) {
	levelStr := c.String("log-level")
	if levelStr == "" {
		levelStr = cfg.Log.Level
	}
	level, err := log.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	return log.New(
		log.Context{SessionID: sessionID, Testing: testing},
		log.Options{Level: level, Format: cfg.Log.Format},
	)
}

// setup builds the command environment. Errors are returned as cli exit
// errors carrying runtime.ExitCodeInvalidInput.
func setup(c *cli.Context, testing bool) (*env, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, invalidInput(err)
	}

	sessionID := runtime.NewSessionID()
	logger, err := newLogger(c, cfg, sessionID, testing)
	if err != nil {
		return nil, invalidInput(err)
	}

	backend := cfg.Inputs.Backend
	if backend == "" {
		backend = loader.BackendFS
	}
	e := &env{
		config:    cfg,
		sessionID: sessionID,
		logger:    logger,
		collector: metrics.NewCollector(backend, sessionID),
	}

	if err := e.buildInputs(c.Context); err != nil {
		return nil, invalidInput(err)
	}
	if err := e.buildArchive(c.Context); err != nil {
		return nil, invalidInput(err)
	}
	if err := e.buildAdapters(); err != nil {
		e.Close()
		return nil, invalidInput(err)
	}
	if path := cfg.Record.Path; path != "" {
		e.record = record.NewWriter(path)
	}
	return e, nil
}

func (e *env) buildInputs(ctx context.Context) error {
	in := e.config.Inputs
	base, err := loader.New(ctx, loader.Options{
		Backend:      in.Backend,
		Path:         in.Path,
		TestPath:     in.TestPath,
		Region:       in.Region,
		Endpoint:     in.Endpoint,
		UsePathStyle: in.S3PathStyle,
		AccessKey:    in.AccessKey,
		SecretKey:    in.SecretKey,
		UseSSL:       in.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("inputs: %w", err)
	}
	e.inputs = base

	if in.CacheSize > 0 {
		cached, err := loader.NewCached(base, in.CacheSize, e.collector)
		if err != nil {
			return err
		}
		e.cache = cached
		e.inputs = cached
	}
	return nil
}

func (e *env) buildArchive(ctx context.Context) error {
	ac := e.config.Archive
	cfg := archive.Config{Dataset: ac.Dataset, SessionID: e.sessionID}

	var err error
	switch ac.Backend {
	case "":
		return nil
	case "fs":
		e.archive, err = archive.NewFS(cfg, ac.Path)
	case "s3":
		bucket, prefix := storage.ParseS3Path(ac.Path)
		e.archive, err = archive.NewS3(ctx, cfg, storage.S3Config{
			Bucket:       bucket,
			Prefix:       prefix,
			Region:       ac.Region,
			Endpoint:     ac.Endpoint,
			UsePathStyle: ac.S3PathStyle,
		})
	default:
		err = fmt.Errorf("unknown archive backend: %s (must be fs or s3)", ac.Backend)
	}
	if err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	return nil
}

func (e *env) buildAdapters() error {
	for i, ac := range e.config.Adapters {
		a, err := newAdapter(ac)
		if err != nil {
			return fmt.Errorf("adapters[%d]: %w", i, err)
		}
		e.adapters = append(e.adapters, a)
	}
	return nil
}

func newAdapter(ac config.AdapterConfig) (adapter.Adapter, error) {
	retries := 0
	if ac.Retries != nil {
		retries = *ac.Retries
	}
	switch ac.Type {
	case "webhook":
		return webhook.New(webhook.Config{
			URL:     ac.URL,
			Headers: ac.Headers,
			Timeout: ac.Timeout.Duration,
			Retries: retries,
		})
	case "redis":
		return redis.New(redis.Config{
			URL:     ac.URL,
			Channel: ac.Channel,
			HashKey: ac.HashKey,
			Timeout: ac.Timeout.Duration,
			Retries: retries,
		})
	default:
		return nil, fmt.Errorf("unknown adapter type: %s", ac.Type)
	}
}

// solverConfig wires the env into a runtime.Config. Callers set the
// display fields.
func (e *env) solverConfig() runtime.Config {
	cfg := runtime.Config{
		SessionID: e.sessionID,
		Input:     e.inputs,
		Record:    e.record,
		Adapters:  e.adapters,
		Logger:    e.logger,
		Collector: e.collector,
	}
	// A nil *archive.Archive must not become a non-nil interface.
	if e.archive != nil {
		cfg.Archive = e.archive
	}
	return cfg
}

// Close releases adapters and the archive and flushes the logger.
func (e *env) Close() {
	closers := make([]io.Closer, 0, len(e.adapters)+1)
	for _, a := range e.adapters {
		closers = append(closers, a)
	}
	// A nil *archive.Archive must not become a non-nil io.Closer.
	if e.archive != nil {
		closers = append(closers, e.archive)
	}
	if err := iox.CloseAll(closers...); err != nil {
		e.logger.Warn("failed to release resources", map[string]any{"error": err.Error()})
	}
	e.logger.Sync()
}
