package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tgienger/moody/internal/models"
	"github.com/tgienger/moody/internal/timeline"
	"github.com/tgienger/moody/internal/ui/keys"
	"github.com/tgienger/moody/internal/ui/styles"
	"github.com/tgienger/moody/internal/ui/views"
)

// Tab is the currently active main view
type Tab int

const (
	TabTimeline Tab = iota
	TabCalendar
)

func (t Tab) String() string {
	if t == TabCalendar {
		return "calendar"
	}
	return "timeline"
}

// Setting names persisted between runs
const (
	settingActiveTab    = "active_tab"
	settingTimelineView = "timeline_view"
)

// Settings persists small UI preferences
type Settings interface {
	GetSetting(name string) (string, error)
	SetSetting(name, value string) error
}

// Options configures the application
type Options struct {
	Store    views.MoodStore
	Settings Settings        // optional
	Changes  <-chan struct{} // optional data-changed signal from other processes

	Location    *time.Location
	WeekStart   time.Weekday
	DefaultView timeline.View
	Now         func() time.Time
	Logger      *zap.Logger
}

type App struct {
	store    views.MoodStore
	settings Settings
	changes  <-chan struct{}
	log      *zap.Logger
	now      func() time.Time
	styles   *styles.Styles
	keys     keys.KeyMap

	activeTab Tab
	timeline  *views.TimelineView
	calendar  *views.CalendarView
	form      *views.FormView
	entries   []models.MoodEntry

	showForm bool
	showHelp bool
	status   string
	isError  bool

	width  int
	height int
}

type entriesLoadedMsg struct {
	entries []models.MoodEntry
}

type storageChangedMsg struct{}

// NewApp creates a new application
func NewApp(opts Options) *App {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	loc := opts.Location
	clock := opts.Now
	if clock == nil {
		clock = time.Now
	}
	now := func() time.Time { return clock().In(loc) }
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.DefaultView == "" {
		opts.DefaultView = timeline.Day
	}

	return &App{
		store:    opts.Store,
		settings: opts.Settings,
		changes:  opts.Changes,
		log:      opts.Logger,
		now:      now,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		timeline: views.NewTimelineView(opts.Store, opts.DefaultView, opts.WeekStart, now),
		calendar: views.NewCalendarView(opts.WeekStart, now),
		form:     views.NewFormView(opts.Store, loc, now),
	}
}

func (a *App) Init() tea.Cmd {
	a.restoreSettings()
	return tea.Batch(a.loadEntries, a.waitForChange())
}

// restoreSettings reopens the tab and timeline view used last time
func (a *App) restoreSettings() {
	if a.settings == nil {
		return
	}
	if tab, err := a.settings.GetSetting(settingActiveTab); err == nil && tab == TabCalendar.String() {
		a.activeTab = TabCalendar
	}
	if name, err := a.settings.GetSetting(settingTimelineView); err == nil && name != "" {
		if mode, err := timeline.ParseView(name); err == nil {
			a.timeline.SetMode(mode)
		}
	}
}

func (a *App) saveSetting(name, value string) {
	if a.settings == nil {
		return
	}
	if err := a.settings.SetSetting(name, value); err != nil {
		a.log.Warn("saving setting failed", zap.String("name", name), zap.Error(err))
	}
}

// loadEntries re-reads the full collection; views only ever see fresh copies
func (a *App) loadEntries() tea.Msg {
	return entriesLoadedMsg{entries: a.store.GetAll()}
}

// waitForChange blocks until the watcher reports a change
func (a *App) waitForChange() tea.Cmd {
	if a.changes == nil {
		return nil
	}
	ch := a.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storageChangedMsg{}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.timeline.Update(msg)
		a.calendar.Update(msg)
		a.form.Update(msg)
		return a, nil

	case entriesLoadedMsg:
		a.entries = msg.entries
		a.timeline.SetEntries(msg.entries)
		a.calendar.SetEntries(msg.entries)
		return a, nil

	case storageChangedMsg:
		a.log.Debug("mood data changed on disk, reloading")
		return a, tea.Batch(a.loadEntries, a.waitForChange())

	case views.OpenForm:
		a.showForm = true
		a.setStatus("", false)
		return a, a.form.Open(msg.Date)

	case views.FormClosed:
		a.showForm = false
		return a, nil

	case views.EntrySaved:
		a.showForm = false
		a.setStatus("Saved "+msg.Mood.Emoji()+" "+msg.Mood.Label()+" for "+msg.Date.Format("Jan 2, 2006"), false)
		a.log.Info("mood saved", zap.String("day", models.DayKey(msg.Date)), zap.String("mood", string(msg.Mood)))
		return a, a.loadEntries

	case views.EntryDeleted:
		a.setStatus("Deleted entry for "+msg.Date.Format("Jan 2, 2006"), false)
		a.log.Info("mood deleted", zap.String("day", models.DayKey(msg.Date)))
		return a, a.loadEntries

	case views.ModeChanged:
		a.saveSetting(settingTimelineView, string(msg.Mode))
		return a, nil

	case views.ErrMsg:
		a.setStatus(msg.Error(), true)
		a.log.Error("store operation failed", zap.Error(msg.Err))
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	if a.showForm {
		_, cmd := a.form.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle help popup first - any key closes it
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if a.showForm {
		_, cmd := a.form.Update(msg)
		return a, cmd
	}

	if a.activeTab == TabTimeline && a.timeline.Confirming() {
		_, cmd := a.timeline.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Tab), key.Matches(msg, a.keys.ShiftTab):
		a.switchTab()
		return a, nil

	case key.Matches(msg, a.keys.New):
		today := a.now()
		return a, func() tea.Msg { return views.OpenForm{Date: today} }

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return a, nil
	}

	var cmd tea.Cmd
	switch a.activeTab {
	case TabTimeline:
		_, cmd = a.timeline.Update(msg)
	case TabCalendar:
		_, cmd = a.calendar.Update(msg)
	}
	return a, cmd
}

func (a *App) switchTab() {
	if a.activeTab == TabTimeline {
		a.activeTab = TabCalendar
	} else {
		a.activeTab = TabTimeline
	}
	a.saveSetting(settingActiveTab, a.activeTab.String())
}

func (a *App) setStatus(text string, isError bool) {
	a.status = text
	a.isError = isError
}

// ActiveTab returns the visible main view
func (a *App) ActiveTab() Tab { return a.activeTab }

// FormOpen reports whether the mood form is shown
func (a *App) FormOpen() bool { return a.showForm }

// Entries returns the last loaded collection
func (a *App) Entries() []models.MoodEntry { return a.entries }

// Status returns the status bar text
func (a *App) Status() string { return a.status }

func (a *App) View() string {
	if a.showHelp {
		return a.renderHelpPopup()
	}

	var body, help string
	switch {
	case a.showForm:
		body = a.form.View()
	case a.activeTab == TabCalendar:
		body = a.calendar.View()
		help = a.calendar.HelpView()
	default:
		body = a.timeline.View()
		help = a.timeline.HelpView()
	}

	parts := []string{a.renderHeader(), "", body}
	if a.status != "" {
		style := a.styles.StatusBar
		if a.isError {
			style = a.styles.StatusError
		}
		parts = append(parts, "", style.Render(a.status))
	}
	if help != "" {
		parts = append(parts, help)
	}

	content := lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	return styles.CenterView(content, a.width, a.height)
}

func (a *App) renderHeader() string {
	s := a.styles

	title := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Get Moody"),
		s.TitleMuted.Render("Track and visualize your daily emotions"),
	)
	if a.showForm {
		return title
	}

	tab := func(label string, active bool) string {
		if active {
			return s.TabActive.Render(label)
		}
		return s.Tab.Render(label)
	}

	row := []string{
		tab("Timeline", a.activeTab == TabTimeline),
		tab("Calendar", a.activeTab == TabCalendar),
	}
	if a.activeTab == TabTimeline {
		row = append(row, "   ")
		for _, v := range timeline.Views() {
			row = append(row, tab(v.Label(), a.timeline.Mode() == v))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, "", lipgloss.JoinHorizontal(lipgloss.Top, row...))
}

func (a *App) renderHelpPopup() string {
	s := a.styles
	contentWidth := styles.ContentWidth(a.width)

	helpItems := []string{
		s.HelpKey.Render("tab") + "      switch timeline / calendar",
		s.HelpKey.Render("n") + "        log today's mood",
		s.HelpKey.Render("←/→") + "      previous / next period or day",
		s.HelpKey.Render("1/2/3") + "    day / week / month timeline",
		s.HelpKey.Render("[/]") + "      previous / next month (calendar)",
		s.HelpKey.Render("t") + "        jump to today",
		s.HelpKey.Render("↵") + "        edit selected day",
		s.HelpKey.Render("d") + "        delete selected entry",
		s.HelpKey.Render("q") + "        quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, a.height,
		lipgloss.Center, lipgloss.Center,
		s.Popup.Render(content),
	)
	return styles.CenterView(centered, a.width, a.height)
}
