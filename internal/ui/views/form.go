package views

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/moody/internal/models"
	"github.com/tgienger/moody/internal/ui/keys"
	"github.com/tgienger/moody/internal/ui/styles"
)

// Form fields in focus order
const (
	fieldDate = iota
	fieldMood
	fieldNote
	fieldSave
	fieldCount
)

var errNoMood = errors.New("choose a mood first")

// FormView edits the entry of a single day
type FormView struct {
	store  MoodStore
	styles *styles.Styles
	keys   keys.KeyMap
	loc    *time.Location
	now    func() time.Time

	date       time.Time
	dateInput  textinput.Model
	moods      []models.Mood
	moodCursor int
	mood       models.Mood // "" until chosen
	note       textarea.Model
	existing   bool

	focusIdx int
	err      string

	width  int
	height int
}

// NewFormView creates an empty form for today
func NewFormView(store MoodStore, loc *time.Location, now func() time.Time) *FormView {
	dateInput := textinput.New()
	dateInput.Placeholder = models.DayLayout
	dateInput.CharLimit = len(models.DayLayout)

	note := textarea.New()
	note.Placeholder = "Add any thoughts about your day..."
	note.CharLimit = 0
	note.SetWidth(50)
	note.SetHeight(4)
	note.ShowLineNumbers = false

	f := &FormView{
		store:     store,
		styles:    styles.NewStyles(),
		keys:      keys.DefaultKeyMap(),
		loc:       loc,
		now:       now,
		dateInput: dateInput,
		moods:     models.Moods(),
		note:      note,
	}
	f.setDate(now())
	return f
}

func (f *FormView) Init() tea.Cmd {
	return nil
}

// Open resets the form to date and pre-fills it from the stored entry
func (f *FormView) Open(date time.Time) tea.Cmd {
	f.err = ""
	f.setDate(date)
	f.focusIdx = fieldMood
	return f.updateFocus()
}

func (f *FormView) Date() time.Time      { return f.date }
func (f *FormView) Mood() models.Mood    { return f.mood }
func (f *FormView) Note() string         { return f.note.Value() }
func (f *FormView) Existing() bool       { return f.existing }
func (f *FormView) CanSave() bool        { return f.mood != "" }
func (f *FormView) FocusedField() int    { return f.focusIdx }
func (f *FormView) ErrorMessage() string { return f.err }

// setDate moves the form to date. Today keeps the current time of day, other
// days are stored at midnight.
func (f *FormView) setDate(date time.Time) {
	date = date.In(f.loc)
	if !sameDay(date, f.now()) {
		date = models.StartOfDay(date)
	}
	f.date = date
	f.dateInput.SetValue(models.DayKey(date))

	f.mood = ""
	f.existing = false
	f.note.Reset()
	f.moodCursor = 0
	if e, ok := f.store.GetForDate(date); ok {
		f.existing = true
		f.mood = e.Mood
		f.note.SetValue(e.Note)
		for i, m := range f.moods {
			if m == e.Mood {
				f.moodCursor = i
			}
		}
	}
}

// commitDateInput applies the typed date, reverting invalid input
func (f *FormView) commitDateInput() {
	value := strings.TrimSpace(f.dateInput.Value())
	if value == models.DayKey(f.date) {
		return
	}
	day, err := models.ParseDay(value, f.loc)
	if err != nil {
		f.err = "invalid date, use " + models.DayLayout
		f.dateInput.SetValue(models.DayKey(f.date))
		return
	}
	f.err = ""
	f.setDate(day)
}

func (f *FormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
		f.height = msg.Height
		contentWidth := styles.ContentWidth(f.width)
		f.note.SetWidth(clamp(contentWidth-10, 20, 60))
		return f, nil

	case tea.KeyMsg:
		return f.updateKeys(msg)
	}

	return f.updateFocused(msg)
}

func (f *FormView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, f.keys.Back):
		return f, func() tea.Msg { return FormClosed{} }

	case key.Matches(msg, f.keys.Save):
		return f, f.save()

	case key.Matches(msg, f.keys.Tab):
		return f, f.moveFocus(1)

	case key.Matches(msg, f.keys.ShiftTab):
		return f, f.moveFocus(-1)
	}

	switch f.focusIdx {
	case fieldDate:
		switch msg.String() {
		case "up":
			f.err = ""
			f.setDate(f.date.AddDate(0, 0, 1))
			return f, nil
		case "down":
			f.err = ""
			f.setDate(f.date.AddDate(0, 0, -1))
			return f, nil
		case "enter":
			return f, f.moveFocus(1)
		}

	case fieldMood:
		switch s := msg.String(); {
		case s == "left" || s == "h":
			f.moodCursor = (f.moodCursor + len(f.moods) - 1) % len(f.moods)
			return f, nil
		case s == "right" || s == "l":
			f.moodCursor = (f.moodCursor + 1) % len(f.moods)
			return f, nil
		case s == " ":
			f.chooseMood(f.moodCursor)
			return f, nil
		case s == "enter":
			f.chooseMood(f.moodCursor)
			return f, f.moveFocus(1)
		case len(s) == 1 && s[0] >= '1' && s[0] <= '9':
			if i := int(s[0] - '1'); i < len(f.moods) {
				f.moodCursor = i
				f.chooseMood(i)
			}
			return f, nil
		}
		return f, nil

	case fieldSave:
		if key.Matches(msg, f.keys.Enter) {
			return f, f.save()
		}
		return f, nil
	}

	return f.updateFocused(msg)
}

func (f *FormView) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focusIdx {
	case fieldDate:
		f.dateInput, cmd = f.dateInput.Update(msg)
	case fieldNote:
		f.note, cmd = f.note.Update(msg)
	}
	return f, cmd
}

func (f *FormView) chooseMood(i int) {
	f.mood = f.moods[i]
	if f.err == errNoMood.Error() {
		f.err = ""
	}
}

func (f *FormView) moveFocus(delta int) tea.Cmd {
	if f.focusIdx == fieldDate {
		f.commitDateInput()
	}
	f.focusIdx = (f.focusIdx + delta + fieldCount) % fieldCount
	return f.updateFocus()
}

func (f *FormView) updateFocus() tea.Cmd {
	f.dateInput.Blur()
	f.note.Blur()
	switch f.focusIdx {
	case fieldDate:
		return f.dateInput.Focus()
	case fieldNote:
		return f.note.Focus()
	}
	return nil
}

// save commits the form. Without a chosen mood nothing is written.
func (f *FormView) save() tea.Cmd {
	if f.focusIdx == fieldDate {
		f.commitDateInput()
	}
	if !f.CanSave() {
		f.err = errNoMood.Error()
		return nil
	}

	date, mood := f.date, f.mood
	if err := f.store.Save(date, mood, f.note.Value()); err != nil {
		f.err = err.Error()
		return func() tea.Msg { return ErrMsg{Err: err} }
	}
	f.err = ""

	// Saving a past day leaves the form on today for the next entry
	if !sameDay(date, f.now()) {
		f.setDate(f.now())
	}
	return func() tea.Msg { return EntrySaved{Date: date, Mood: mood} }
}

// View renders the view
func (f *FormView) View() string {
	s := f.styles
	contentWidth := styles.ContentWidth(f.width)
	inputWidth := clamp(contentWidth-6, 20, 60)

	dateStyle := s.Input
	noteStyle := s.Input
	if f.focusIdx == fieldDate {
		dateStyle = s.InputFocused
	}
	if f.focusIdx == fieldNote {
		noteStyle = s.InputFocused
	}

	btn := s.ButtonDisabled
	switch {
	case f.CanSave() && f.focusIdx == fieldSave:
		btn = s.ButtonFocused
	case f.CanSave():
		btn = s.Button
	}

	title := "Log Your Mood"
	if f.existing {
		title = "Edit Your Mood"
	}

	parts := []string{
		s.Title.Render(title),
		"",
		s.Label.Render("Date"),
		dateStyle.Width(16).Render(f.dateInput.View()) + "  " + s.TitleMuted.Render(f.date.Format("Monday, January 2, 2006")),
		"",
		s.Label.Render("How are you feeling?"),
		f.renderMoodPicker(),
		"",
		s.Label.Render("Notes (optional)"),
		noteStyle.Width(inputWidth).Render(f.note.View()),
		"",
		btn.Render(" Save Mood "),
	}
	if f.err != "" {
		parts = append(parts, "", s.StatusError.Render(f.err))
	}
	parts = append(parts, "", s.TitleMuted.Render("Tab: next • ↑/↓: next/previous day • 1-7: mood • Ctrl+S: save • Esc: cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (f *FormView) renderMoodPicker() string {
	s := f.styles
	options := make([]string, 0, len(f.moods))
	for i, m := range f.moods {
		text := m.Emoji() + " " + m.Label()
		switch {
		case m == f.mood:
			options = append(options, s.MoodOptionSelected.Render(text))
		case f.focusIdx == fieldMood && i == f.moodCursor:
			options = append(options, s.MoodOptionCursor.Render(text))
		default:
			options = append(options, s.MoodOption.Render(text))
		}
	}

	// Two rows keep the picker inside 80 columns
	first := lipgloss.JoinHorizontal(lipgloss.Top, options[:4]...)
	second := lipgloss.JoinHorizontal(lipgloss.Top, options[4:]...)
	return lipgloss.JoinVertical(lipgloss.Left, first, second)
}
