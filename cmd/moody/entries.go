package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tgienger/moody/internal/models"
	"github.com/tgienger/moody/internal/timeline"
)

func newLogCmd(c *cli) *cobra.Command {
	var day, note string

	cmd := &cobra.Command{
		Use:   "log <mood>",
		Short: "Record the mood of a day, replacing any earlier entry",
		Long: `Records a mood for today, or for --date. A day holds a single entry,
so logging again replaces the mood and note.

Moods: ` + moodNames(),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mood, err := models.ParseMood(args[0])
			if err != nil {
				return err
			}
			date, err := c.resolveDate(day)
			if err != nil {
				return err
			}
			if err := c.open(); err != nil {
				return err
			}
			if err := c.store.Save(date, mood, note); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s %s for %s\n", mood.Emoji(), mood.Label(), models.DayKey(date))
			return nil
		},
	}
	cmd.Flags().StringVar(&day, "date", "", "day to log, "+models.DayLayout+" (default today)")
	cmd.Flags().StringVar(&note, "note", "", "optional note")
	return cmd
}

func newShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show [date]",
		Short: "Show the entry of a day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := c.resolveDate(firstArg(args))
			if err != nil {
				return err
			}
			if err := c.open(); err != nil {
				return err
			}
			entry, ok := c.store.GetForDate(date)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "No entry for %s\n", models.DayKey(date))
				return nil
			}
			printEntry(cmd.OutOrStdout(), entry)
			return nil
		},
	}
}

func newListCmd(c *cli) *cobra.Command {
	var view, day string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the entries of a day, week or month, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if view == "" {
				view = c.cfg.DefaultView
			}
			mode, err := timeline.ParseView(view)
			if err != nil {
				return err
			}
			cursor, err := c.resolveDate(day)
			if err != nil {
				return err
			}
			weekStart, err := c.cfg.WeekStartDay()
			if err != nil {
				return err
			}
			if err := c.open(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, timeline.Label(mode, cursor, weekStart))
			entries := timeline.Filter(c.store.GetAll(), timeline.WindowFor(mode, cursor, weekStart))
			if len(entries) == 0 {
				fmt.Fprintln(out, "No mood entries for this period")
				return nil
			}
			for _, e := range entries {
				printEntry(out, e)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&view, "view", "", "window: day, week or month (default from config)")
	cmd.Flags().StringVar(&day, "date", "", "any day inside the window, "+models.DayLayout+" (default today)")
	return cmd
}

func newRmCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <date>",
		Aliases: []string{"delete"},
		Short:   "Delete the entry of a day",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := c.resolveDate(args[0])
			if err != nil {
				return err
			}
			if err := c.open(); err != nil {
				return err
			}
			_, existed := c.store.GetForDate(date)
			if err := c.store.Delete(date); err != nil {
				return err
			}
			if existed {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry for %s\n", models.DayKey(date))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No entry for %s\n", models.DayKey(date))
			}
			return nil
		},
	}
}

// resolveDate parses a day key in the configured zone. Empty means now; other
// days resolve to their midnight.
func (c *cli) resolveDate(s string) (time.Time, error) {
	if s == "" || strings.EqualFold(s, "today") {
		return c.now().In(c.loc), nil
	}
	if strings.EqualFold(s, "yesterday") {
		return models.StartOfDay(c.now().In(c.loc).AddDate(0, 0, -1)), nil
	}
	return models.ParseDay(s, c.loc)
}

func printEntry(w io.Writer, e models.MoodEntry) {
	fmt.Fprintf(w, "%s  %s %s\n", models.DayKey(e.Date), e.Mood.Emoji(), e.Mood.Label())
	if e.Note != "" {
		for _, line := range strings.Split(e.Note, "\n") {
			fmt.Fprintf(w, "            %s\n", line)
		}
	}
}

func moodNames() string {
	names := make([]string, 0, len(models.Moods()))
	for _, m := range models.Moods() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
