package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tOgg1/streambar/internal/config"
	"github.com/tOgg1/streambar/internal/db"
	"github.com/tOgg1/streambar/internal/logging"
	"github.com/tOgg1/streambar/internal/store"
)

// Runtime is what a subcommand needs: the resolved config and an open store.
type Runtime struct {
	Config *config.Config
	Store  *store.Store

	logFile io.Closer
}

// Close releases the store and the log file.
func (r *Runtime) Close() error {
	if r == nil {
		return nil
	}
	var err error
	if r.Store != nil {
		err = r.Store.Close()
	}
	if r.logFile != nil {
		_ = r.logFile.Close()
	}
	return err
}

// loadConfig resolves the config from file, env and the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader := config.NewLoader()

	if path, _ := cmd.Flags().GetString("config"); strings.TrimSpace(path) != "" {
		loader.SetConfigFile(strings.TrimSpace(path))
	}
	if path, _ := cmd.Flags().GetString("db"); strings.TrimSpace(path) != "" {
		loader.Set("database.path", strings.TrimSpace(path))
	}
	if level, _ := cmd.Flags().GetString("log-level"); strings.TrimSpace(level) != "" {
		loader.Set("logging.level", strings.TrimSpace(level))
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, Exitf(ExitCodeFailure, "load config: %v", err)
	}
	return cfg, nil
}

// EnsureRuntime loads config, sets up logging and opens the store.
// With toFile set, logs go to the configured log file instead of stderr.
func EnsureRuntime(cmd *cobra.Command, toFile bool) (*Runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, Exitf(ExitCodeFailure, "%v", err)
	}

	rt := &Runtime{Config: cfg}
	logCfg := logging.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		Output:       os.Stderr,
		EnableCaller: cfg.Logging.EnableCaller,
	}
	if toFile || cfg.Logging.File != "" {
		f, err := logging.OpenFile(cfg.LogFilePath())
		if err != nil {
			return nil, Exitf(ExitCodeFailure, "%v", err)
		}
		logCfg.Output = f
		rt.logFile = f
	}
	logging.Init(logCfg)

	ctx := commandContext(cmd)
	dbCfg := db.DefaultConfig(cfg.DatabasePath())
	dbCfg.BusyTimeoutMs = cfg.Database.BusyTimeoutMs

	st, err := store.Open(ctx, dbCfg)
	if err != nil {
		_ = rt.Close()
		return nil, Exitf(ExitCodeFailure, "open store: %v", err)
	}
	rt.Store = st

	logging.Debug().
		Str("db", st.Path()).
		Str("config", cfg.Global.ConfigDir).
		Msg("runtime ready")
	return rt, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
