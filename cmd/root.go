package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rheo/rheo/internal/config"
	"github.com/rheo/rheo/internal/content"
	"github.com/rheo/rheo/internal/journey"
	"github.com/rheo/rheo/internal/logging"
	"github.com/rheo/rheo/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "rheo",
	Short:        "Gamified coding lessons in your terminal",
	Long:         "Rheo walks you along a journey of short coding lessons: trace code, hunt bugs, build programs and earn stars.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides RHEO_DB env var)")
	rootCmd.PersistentFlags().String("lang", "", "Lesson language (overrides RHEO_LANGUAGE env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(journeyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(versionCmd)
}

// env holds the dependencies shared by the commands that touch learner
// data.
type env struct {
	cfg      *config.Config
	logger   *zap.Logger
	closeLog func() error
	store    *store.Store
	catalog  *content.Catalog
	service  *journey.Service
}

// openEnv resolves configuration, opens the store and loads the
// learner's journey. Callers must Close the result.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		if err := store.EnsureDir(p); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		cfg.UseDBPath(p)
	}
	if l, _ := cmd.Flags().GetString("lang"); l != "" {
		cfg.Language = l
	}

	catalog, err := loadCatalog(cfg.ContentPath)
	if err != nil {
		return nil, err
	}
	if _, ok := catalog.Language(cfg.Language); !ok {
		return nil, fmt.Errorf("unknown language %q", cfg.Language)
	}

	logger, closeLog, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("open store failed", zap.String("path", cfg.DBPath), zap.Error(err))
		_ = closeLog()
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Info("store opened", zap.String("path", cfg.DBPath))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	service := journey.NewService(st.KVRepo(), journey.DefaultPath(), logger)
	service.Load(ctx)

	return &env{
		cfg:      cfg,
		logger:   logger,
		closeLog: closeLog,
		store:    st,
		catalog:  catalog,
		service:  service,
	}, nil
}

func (e *env) Close() {
	e.store.Close()
	_ = e.closeLog()
}

// loadCatalog returns the pack at path, or the embedded pack when path
// is empty.
func loadCatalog(path string) (*content.Catalog, error) {
	if path == "" {
		return content.Default()
	}
	c, err := content.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load content %s: %w", path, err)
	}
	return c, nil
}
