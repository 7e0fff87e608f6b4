package cmd

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/matteflyt/internal/app"
	"github.com/abhisek/matteflyt/internal/catalog"
	"github.com/abhisek/matteflyt/internal/config"
	"github.com/abhisek/matteflyt/internal/diploma"
	"github.com/abhisek/matteflyt/internal/logger"
	"github.com/abhisek/matteflyt/internal/problemgen"
	"github.com/abhisek/matteflyt/internal/progress"
	"github.com/abhisek/matteflyt/internal/screen"
	"github.com/abhisek/matteflyt/internal/store"
)

// logFileName is the default log file, kept next to the database, for
// commands that own the terminal.
const logFileName = "matteflyt.log"

type logTarget int

const (
	logToFile logTarget = iota
	logToStderr
)

// appEnv holds what every command opens: configuration, logger, store,
// level catalog and progress.
type appEnv struct {
	cfg      *config.Config
	log      *logger.Logger
	store    *store.Store
	catalog  *catalog.Catalog
	progress *progress.Store
}

func openEnv(cmd *cobra.Command, target logTarget) (*appEnv, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	logFile := cfg.Log.File
	if logFile == "" && target == logToFile {
		logFile = filepath.Join(filepath.Dir(dbPath), logFileName)
	}
	log, err := logger.New(cfg.Log.Mode, logFile)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	cat := catalog.Default()
	if cfg.Catalog != "" {
		cat, err = catalog.LoadFile(cfg.Catalog)
		if err != nil {
			return nil, err
		}
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", "path", dbPath, "levels", cat.Len())

	return &appEnv{
		cfg:      cfg,
		log:      log,
		store:    st,
		catalog:  cat,
		progress: progress.NewStore(st.SlotRepo(), log),
	}, nil
}

func (e *appEnv) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("close store", "error", err)
	}
	e.log.Sync()
}

// submitter posts to the configured server, or stores locally when no
// server URL is set.
func (e *appEnv) submitter() diploma.Submitter {
	if e.cfg.Server.URL != "" {
		return diploma.NewClient(e.cfg.Server.URL, e.cfg.Server.Timeout)
	}
	return diploma.NewService(e.store.DiplomaRepo(), e.log)
}

func (e *appEnv) deps() screen.Deps {
	return screen.Deps{
		Catalog:  e.catalog,
		Progress: e.progress,
		Events:   e.store.EventRepo(),
		Diplomas: e.submitter(),
		Rand:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		Prompts:  problemgen.PromptsFor(e.cfg.Locale),
		Log:      e.log,
	}
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured db (including MATTEFLYT_DB), then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// runApp opens the environment and launches the TUI, optionally straight
// into start.
func runApp(cmd *cobra.Command, start func(screen.Deps) (screen.Screen, error)) error {
	env, err := openEnv(cmd, logToFile)
	if err != nil {
		return err
	}
	defer env.Close()

	deps := env.deps()
	var first screen.Screen
	if start != nil {
		if first, err = start(deps); err != nil {
			return err
		}
	}
	return app.Run(deps, first)
}
