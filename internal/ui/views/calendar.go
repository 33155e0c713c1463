package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/moody/internal/calendar"
	"github.com/tgienger/moody/internal/models"
	"github.com/tgienger/moody/internal/timeline"
	"github.com/tgienger/moody/internal/ui/keys"
	"github.com/tgienger/moody/internal/ui/styles"
)

// CalendarView shows one month with the logged mood marked on each day
type CalendarView struct {
	styles    *styles.Styles
	keys      keys.KeyMap
	now       func() time.Time
	weekStart time.Weekday

	byDay    map[string]models.MoodEntry
	selected time.Time

	width  int
	height int
}

// NewCalendarView creates a calendar with today selected
func NewCalendarView(weekStart time.Weekday, now func() time.Time) *CalendarView {
	return &CalendarView{
		styles:    styles.NewStyles(),
		keys:      keys.DefaultKeyMap(),
		now:       now,
		weekStart: weekStart,
		byDay:     map[string]models.MoodEntry{},
		selected:  models.StartOfDay(now()),
	}
}

func (v *CalendarView) Init() tea.Cmd {
	return nil
}

// SetEntries rebuilds the day index from the full entry list
func (v *CalendarView) SetEntries(entries []models.MoodEntry) {
	v.byDay = calendar.IndexByDay(entries)
}

// Selected returns the highlighted day
func (v *CalendarView) Selected() time.Time {
	return v.selected
}

// EntryFor returns the entry marked on day, if any
func (v *CalendarView) EntryFor(day time.Time) (models.MoodEntry, bool) {
	e, ok := v.byDay[models.DayKey(day)]
	return e, ok
}

func (v *CalendarView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Left):
			v.selected = v.selected.AddDate(0, 0, -1)
		case key.Matches(msg, v.keys.Right):
			v.selected = v.selected.AddDate(0, 0, 1)
		case key.Matches(msg, v.keys.Up):
			v.selected = v.selected.AddDate(0, 0, -7)
		case key.Matches(msg, v.keys.Down):
			v.selected = v.selected.AddDate(0, 0, 7)
		case key.Matches(msg, v.keys.PrevMonth):
			v.selected = timeline.AddMonths(v.selected, -1)
		case key.Matches(msg, v.keys.NextMonth):
			v.selected = timeline.AddMonths(v.selected, 1)
		case key.Matches(msg, v.keys.Today):
			v.selected = models.StartOfDay(v.now())
		case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Edit):
			day := v.selected
			return v, func() tea.Msg { return OpenForm{Date: day} }
		}
		return v, nil
	}
	return v, nil
}

// View renders the view
func (v *CalendarView) View() string {
	s := v.styles
	grid := calendar.MonthGrid(v.selected, v.weekStart)
	today := v.now()

	header := make([]string, 0, 7)
	for _, wd := range calendar.Weekdays(v.weekStart) {
		header = append(header, s.Weekday.Render(wd.String()[:2]))
	}

	rows := []string{
		s.Title.Render(v.selected.Format("January 2006")),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, header...),
	}
	for _, week := range grid {
		cells := make([]string, 0, 7)
		for _, day := range week {
			cells = append(cells, v.renderCell(day, today))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	rows = append(rows, "", v.renderSelection())
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *CalendarView) renderCell(day, today time.Time) string {
	s := v.styles
	entry, marked := v.EntryFor(day)

	mark := "  "
	if marked {
		mark = entry.Mood.Emoji()
	}
	text := fmt.Sprintf("%2d%s", day.Day(), mark)

	switch {
	case sameDay(day, v.selected):
		return s.CellSelected.Render(text)
	case !calendar.SameMonth(day, v.selected):
		return s.CellOutside.Render(text)
	case marked:
		return s.CellMarked.Render(text)
	case sameDay(day, today):
		return s.CellToday.Render(text)
	}
	return s.Cell.Render(text)
}

func (v *CalendarView) renderSelection() string {
	s := v.styles
	label := v.selected.Format("Monday, January 2")
	entry, ok := v.EntryFor(v.selected)
	if !ok {
		return s.TitleMuted.Render(label + ": nothing logged")
	}

	line := fmt.Sprintf("%s: %s %s", label, entry.Mood.Emoji(),
		s.CardLabel.Foreground(styles.MoodColor(entry.Mood)).Render(entry.Mood.Label()))
	if entry.Note != "" {
		width := max(styles.ContentWidth(v.width)-4, 30)
		note := s.CardNote.Width(width).Render(strings.TrimSpace(entry.Note))
		return lipgloss.JoinVertical(lipgloss.Left, line, note)
	}
	return line
}

// HelpView renders the key hints for the calendar
func (v *CalendarView) HelpView() string {
	return helpLine(v.styles,
		"←↑↓→", "day",
		"[/]", "month",
		"t", "today",
		"↵", "log",
		"tab", "timeline",
		"q", "quit",
	)
}
