package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/moody/internal/models"
	"github.com/tgienger/moody/internal/timeline"
	"github.com/tgienger/moody/internal/ui/keys"
	"github.com/tgienger/moody/internal/ui/styles"
)

// cardHeight is the rendered height of one entry card without a note
const cardHeight = 4

// TimelineView lists entries of the day, week or month around a cursor date
type TimelineView struct {
	store     MoodStore
	styles    *styles.Styles
	keys      keys.KeyMap
	now       func() time.Time
	weekStart time.Weekday

	entries []models.MoodEntry
	mode    timeline.View
	cursor  time.Time

	width    int
	height   int
	selected int
	offset   int

	// Delete confirmation
	confirmingDelete bool
	deleteTarget     models.MoodEntry
}

// NewTimelineView creates a timeline positioned on today
func NewTimelineView(store MoodStore, mode timeline.View, weekStart time.Weekday, now func() time.Time) *TimelineView {
	return &TimelineView{
		store:     store,
		styles:    styles.NewStyles(),
		keys:      keys.DefaultKeyMap(),
		now:       now,
		weekStart: weekStart,
		mode:      mode,
		cursor:    now(),
	}
}

func (v *TimelineView) Init() tea.Cmd {
	return nil
}

// SetEntries replaces the full entry list the windows are derived from
func (v *TimelineView) SetEntries(entries []models.MoodEntry) {
	v.entries = entries
	v.clampSelection()
}

// SetMode switches between day, week and month windows
func (v *TimelineView) SetMode(mode timeline.View) {
	v.mode = mode
	v.selected = 0
	v.offset = 0
}

func (v *TimelineView) Mode() timeline.View { return v.mode }
func (v *TimelineView) Cursor() time.Time   { return v.cursor }
func (v *TimelineView) Confirming() bool    { return v.confirmingDelete }

// SetCursor moves the window to the period containing t
func (v *TimelineView) SetCursor(t time.Time) {
	v.cursor = t
	v.clampSelection()
}

// Visible returns the entries inside the current window, newest first
func (v *TimelineView) Visible() []models.MoodEntry {
	return timeline.Filter(v.entries, timeline.WindowFor(v.mode, v.cursor, v.weekStart))
}

// Selected returns the highlighted entry, if any
func (v *TimelineView) Selected() (models.MoodEntry, bool) {
	visible := v.Visible()
	if len(visible) == 0 {
		return models.MoodEntry{}, false
	}
	return visible[clamp(v.selected, 0, len(visible)-1)], true
}

func (v *TimelineView) clampSelection() {
	n := len(v.Visible())
	if v.selected >= n {
		v.selected = max(0, n-1)
	}
	if v.offset > v.selected {
		v.offset = v.selected
	}
}

func (v *TimelineView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *TimelineView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Left):
		v.cursor = timeline.Previous(v.mode, v.cursor)
		v.selected, v.offset = 0, 0
		return v, nil

	case key.Matches(msg, v.keys.Right):
		if next, ok := timeline.Next(v.mode, v.cursor, v.now()); ok {
			v.cursor = next
			v.selected, v.offset = 0, 0
		}
		return v, nil

	case key.Matches(msg, v.keys.Today):
		v.cursor = v.now()
		v.selected, v.offset = 0, 0
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.selected > 0 {
			v.selected--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.selected < len(v.Visible())-1 {
			v.selected++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.DayView):
		return v, v.switchMode(timeline.Day)
	case key.Matches(msg, v.keys.WeekView):
		return v, v.switchMode(timeline.Week)
	case key.Matches(msg, v.keys.MonthView):
		return v, v.switchMode(timeline.Month)

	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Edit):
		if e, ok := v.Selected(); ok {
			return v, func() tea.Msg { return OpenForm{Date: e.Date} }
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if e, ok := v.Selected(); ok {
			v.confirmingDelete = true
			v.deleteTarget = e
		}
		return v, nil
	}
	return v, nil
}

func (v *TimelineView) switchMode(mode timeline.View) tea.Cmd {
	if v.mode == mode {
		return nil
	}
	v.SetMode(mode)
	return func() tea.Msg { return ModeChanged{Mode: mode} }
}

func (v *TimelineView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		target := v.deleteTarget.Date
		if err := v.store.Delete(target); err != nil {
			return v, func() tea.Msg { return ErrMsg{Err: err} }
		}
		return v, func() tea.Msg { return EntryDeleted{Date: target} }
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

// visibleCards is how many cards fit in the body
func (v *TimelineView) visibleCards() int {
	if v.height <= 0 {
		return 5
	}
	return max(1, (v.height-12)/(cardHeight+1))
}

func (v *TimelineView) ensureVisible() {
	n := v.visibleCards()
	if v.selected < v.offset {
		v.offset = v.selected
	}
	if v.selected >= v.offset+n {
		v.offset = v.selected - n + 1
	}
}

// View renders the view
func (v *TimelineView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	header := v.renderHeader()
	visible := v.Visible()
	if len(visible) == 0 {
		width := max(styles.ContentWidth(v.width)-4, 30)
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			v.styles.Empty.Width(width).Render("No mood entries for this period"),
		)
	}

	end := min(len(visible), v.offset+v.visibleCards())
	cards := make([]string, 0, end-v.offset)
	for i := v.offset; i < end; i++ {
		cards = append(cards, v.renderCard(visible[i], i == v.selected))
	}

	parts := []string{header, ""}
	parts = append(parts, cards...)
	if end < len(visible) || v.offset > 0 {
		parts = append(parts, v.styles.TitleMuted.Render(
			fmt.Sprintf("  %d-%d of %d", v.offset+1, end, len(visible))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (v *TimelineView) renderHeader() string {
	s := v.styles
	width := max(styles.ContentWidth(v.width)-4, 30)

	prev := s.HelpKey.Render("← Previous")
	next := s.HelpKey.Render("Next →")
	if _, ok := timeline.Next(v.mode, v.cursor, v.now()); !ok {
		next = s.TitleMuted.Render("Next →")
	}
	label := s.Title.Render(timeline.Label(v.mode, v.cursor, v.weekStart))

	gap := width - lipgloss.Width(prev) - lipgloss.Width(label) - lipgloss.Width(next)
	left := max(1, gap/2)
	right := max(1, gap-left)
	return prev + strings.Repeat(" ", left) + label + strings.Repeat(" ", right) + next
}

func (v *TimelineView) renderCard(e models.MoodEntry, selected bool) string {
	s := v.styles
	width := max(styles.ContentWidth(v.width)-6, 28)

	style := s.Card
	if selected {
		style = s.CardSelected
	}
	inner := width - style.GetHorizontalFrameSize()

	date := s.CardDate.Render(e.Date.Format("Monday, January 2, 2006"))
	emoji := e.Mood.Emoji()
	gap := max(1, inner-lipgloss.Width(date)-lipgloss.Width(emoji))
	top := date + strings.Repeat(" ", gap) + emoji

	lines := []string{
		top,
		s.CardLabel.Foreground(styles.MoodColor(e.Mood)).Render(e.Mood.Label()),
	}
	if e.Note != "" {
		lines = append(lines, s.CardNote.Width(inner).Render(e.Note))
	}
	return style.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (v *TimelineView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Entry?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%s %s on %s",
			v.deleteTarget.Mood.Emoji(),
			v.deleteTarget.Mood.Label(),
			v.deleteTarget.Date.Format("January 2, 2006"))),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	return lipgloss.Place(contentWidth, max(v.height-8, 8),
		lipgloss.Center, lipgloss.Center,
		content,
	)
}

// HelpView renders the key hints for the timeline
func (v *TimelineView) HelpView() string {
	if v.confirmingDelete {
		return helpLine(v.styles, "y", "confirm", "n", "cancel")
	}
	return helpLine(v.styles,
		"←/→", "period",
		"1/2/3", "day/week/month",
		"↵", "edit",
		"d", "del",
		"n", "log",
		"tab", "calendar",
		"q", "quit",
	)
}
