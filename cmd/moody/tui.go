package main

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tgienger/moody/internal/timeline"
	"github.com/tgienger/moody/internal/ui"
	"github.com/tgienger/moody/internal/watch"
)

// runTUI starts the interactive timeline and calendar
func (c *cli) runTUI(cmd *cobra.Command, args []string) error {
	if err := c.open(); err != nil {
		return err
	}

	weekStart, err := c.cfg.WeekStartDay()
	if err != nil {
		return err
	}
	defaultView, err := timeline.ParseView(c.cfg.DefaultView)
	if err != nil {
		return err
	}

	opts := ui.Options{
		Store:       c.store,
		Location:    c.loc,
		WeekStart:   weekStart,
		DefaultView: defaultView,
		Logger:      c.log,
	}

	// Settings and change notifications only exist for the database
	if c.db != nil {
		opts.Settings = c.db

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		if w := c.startWatcher(ctx); w != nil {
			defer w.Stop()
			opts.Changes = w.Changes()
		}
	}

	c.log.Info("starting tui", zap.String("database", c.cfg.DatabasePath))
	p := tea.NewProgram(ui.NewApp(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}

// startWatcher watches the database directory. Failure only costs live refresh.
func (c *cli) startWatcher(ctx context.Context) *watch.Watcher {
	w, err := watch.New(filepath.Dir(c.db.Path()), c.db.IsDBFile, c.log)
	if err != nil {
		c.log.Warn("file watcher unavailable", zap.Error(err))
		return nil
	}
	if err := w.Start(ctx); err != nil {
		c.log.Warn("file watcher unavailable", zap.Error(err))
		w.Stop()
		return nil
	}
	return w
}
