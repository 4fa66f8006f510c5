// Package runtime provides the application runtime context for alarmbook.
package runtime

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/manav03panchal/alarmbook/internal/config"
	"github.com/manav03panchal/alarmbook/internal/errors"
	"github.com/manav03panchal/alarmbook/internal/logging"
	"github.com/manav03panchal/alarmbook/internal/output"
	"github.com/manav03panchal/alarmbook/internal/storage"
)

// Context holds the application runtime context.
type Context struct {
	Config    *config.Config
	DB        *storage.DB
	Formatter *output.Formatter

	// Repositories
	AlarmRepo *storage.AlarmRepo

	// Lock is nil unless Options.Lock was set.
	Lock *storage.FileLock

	// Debug mode
	Debug bool

	state   *storage.StateDB
	logFile *os.File
}

// Options configures the runtime context.
type Options struct {
	// ConfigPath is the config file to load. Missing files are not an error.
	ConfigPath string
	// DBPath overrides the configured database path.
	DBPath string
	// StatePath overrides the configured view-state directory.
	StatePath string
	// LogOutput replaces the configured log file.
	LogOutput io.Writer

	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool

	// Lock takes the single-writer lock next to the database.
	Lock bool
	// SkipSchema leaves the database untouched on startup so that a
	// damaged file can still be inspected.
	SkipSchema bool
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		ConfigPath: config.DefaultPath(),
		Format:     output.FormatCLI,
		ColorMode:  output.ColorAuto,
	}
}

// New creates a new runtime context: it loads configuration, starts the
// logger, opens the database and ensures the schema exists unless
// SkipSchema is set.
func New(ctx context.Context, opts Options) (*Context, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.DBPath != "" {
		cfg.Database.Path = opts.DBPath
	}
	if opts.StatePath != "" {
		cfg.State.Path = opts.StatePath
	}

	c := &Context{
		Config: cfg,
		Debug:  opts.Debug,
	}

	if err := c.initLogging(opts); err != nil {
		return nil, err
	}

	db, err := storage.Open(storage.Options{Path: cfg.Database.Path})
	if err != nil {
		c.Close()
		return nil, errors.NewSystemErrorWithOp("open", "failed to open database", err)
	}
	c.DB = db

	if opts.Lock {
		c.Lock = storage.NewFileLock(filepath.Dir(db.Path()))
		if err := c.Lock.Acquire(); err != nil {
			c.Lock = nil
			c.Close()
			return nil, err
		}
	}

	if !opts.SkipSchema {
		if err := db.EnsureSchema(ctx); err != nil {
			c.Close()
			return nil, err
		}
	}

	c.AlarmRepo = storage.NewAlarmRepo(db)

	c.Formatter = output.NewFormatter()
	c.Formatter.Format = opts.Format
	c.Formatter.ColorMode = opts.ColorMode

	logging.DebugLog("runtime ready", "db", db.Path(), "lock", opts.Lock)
	return c, nil
}

func (c *Context) initLogging(opts Options) error {
	out := opts.LogOutput
	if out == nil {
		f, err := logging.OpenFile(c.Config.Log.File)
		if err != nil {
			return errors.NewSystemErrorWithOp("open_log", "failed to open log file", err)
		}
		c.logFile = f
		out = f
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(c.Config.Log.Level)
	if opts.Debug {
		logCfg = logging.DebugConfig()
	}
	logCfg.Output = out
	logging.Init(logCfg)
	return nil
}

// ViewStates opens the view-state store on first use and returns its
// repository. Only the interactive UI needs it.
func (c *Context) ViewStates() (*storage.ViewStateRepo, error) {
	if c.state == nil {
		state, err := storage.OpenState(storage.StateOptions{Path: c.Config.State.Path})
		if err != nil {
			return nil, errors.NewSystemErrorWithOp("open_state", "failed to open view-state store", err)
		}
		c.state = state
	}
	return storage.NewViewStateRepo(c.state), nil
}

// Close releases the lock and closes every store and the log file.
// It is safe to call more than once.
func (c *Context) Close() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if c.state != nil {
		keep(c.state.Close())
		c.state = nil
	}
	if c.Lock != nil {
		keep(c.Lock.Release())
		c.Lock = nil
	}
	if c.DB != nil {
		keep(c.DB.Close())
		c.DB = nil
	}
	if c.logFile != nil {
		logging.Init(logging.Config{Output: io.Discard})
		keep(c.logFile.Close())
		c.logFile = nil
	}
	return firstErr
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter != nil && c.Formatter.Format == output.FormatJSON
}
