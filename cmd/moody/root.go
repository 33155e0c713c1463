package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tgienger/moody/internal/config"
	"github.com/tgienger/moody/internal/db"
	"github.com/tgienger/moody/internal/logging"
	"github.com/tgienger/moody/internal/store"
)

// cli carries flags and the resources opened for one command run
type cli struct {
	// Global flags
	configPath string
	dbPath     string
	logLevel   string
	memory     bool

	now func() time.Time

	cfg   *config.Config
	loc   *time.Location
	log   *zap.Logger
	db    *db.DB
	store *store.Store
}

func newRootCmd() *cobra.Command {
	c := &cli{now: time.Now}

	rootCmd := &cobra.Command{
		Use:   "moody",
		Short: "Get Moody - track and visualize your daily emotions",
		Long: `moody keeps one mood entry per calendar day.

Run without arguments to start the interactive timeline and calendar.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			c.close()
		},
		RunE: c.runTUI,
	}
	rootCmd.SetVersionTemplate(versionLine() + "\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/moody/config.yaml)")
	flags.StringVar(&c.dbPath, "db", "", "database path (overrides config)")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&c.memory, "memory", false, "keep entries in memory only")

	rootCmd.AddCommand(
		newLogCmd(c),
		newShowCmd(c),
		newListCmd(c),
		newRmCmd(c),
		newVersionCmd(),
	)
	return rootCmd
}

// setup resolves config and logging; storage is opened by the commands that need it
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.dbPath != "" {
		cfg.DatabasePath = c.dbPath
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	c.loc, err = cfg.Location()
	if err != nil {
		return err
	}

	c.log, err = logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	return nil
}

// open connects the mood store to sqlite, or to memory with --memory
func (c *cli) open() error {
	if c.store != nil {
		return nil
	}

	var storage store.Storage
	if c.memory {
		storage = store.NewMemoryStorage()
	} else {
		database, err := db.New(c.cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		c.db = database
		storage = database
	}

	c.store = store.New(storage, store.WithLocation(c.loc), store.WithLogger(c.log))
	c.log.Debug("store opened",
		zap.String("database", c.cfg.DatabasePath),
		zap.Bool("memory", c.memory),
		zap.String("location", c.loc.String()))
	return nil
}

func (c *cli) close() {
	if c.db != nil {
		_ = c.db.Close()
		c.db = nil
	}
	c.store = nil
	if c.log != nil {
		_ = c.log.Sync()
	}
}

func versionLine() string {
	return fmt.Sprintf("moody %s (commit: %s, built: %s)", version, commit, date)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// No config or storage needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionLine())
		},
	}
}
