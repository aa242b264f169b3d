// Package tui is a terminal surface for the directory. It turns key presses into
// controller intents and draws the controller's list and form views.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/locvowork/employee_directory/internal/controller"
	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/logger"
	"github.com/locvowork/employee_directory/internal/query"
	"github.com/locvowork/employee_directory/internal/validation"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeConfirm
	modeForm
)

// fieldLabels are shown next to the form inputs, in validation.Fields order.
var fieldLabels = map[string]string{
	validation.FieldFirstName:  "First Name",
	validation.FieldLastName:   "Last Name",
	validation.FieldEmail:      "Email",
	validation.FieldDepartment: "Department",
	validation.FieldRole:       "Role",
}

// saveDoneMsg carries the outcome of a confirmed save.
type saveDoneMsg struct {
	err error
}

// confirmBox hands the y/n answer of the delete prompt to the controller's Confirmer.
// It is shared by every copy of the Model.
type confirmBox struct {
	answer bool
}

func (b *confirmBox) Confirm(_ context.Context, _ string) bool {
	return b.answer
}

// Model is the bubbletea model of the directory.
type Model struct {
	ctx    context.Context
	ctrl   *controller.Controller
	keys   KeyMap
	styles styles
	help   help.Model
	box    *confirmBox

	mode          mode
	cursor        int
	search        textinput.Model
	inputs        []textinput.Model
	focus         int
	pendingDelete int
	status        string
	width         int
}

type Option func(*settings)

type settings struct {
	keys      KeyMap
	theme     Theme
	ctrlOpts  []controller.Option
	saveDelay *time.Duration
}

func WithKeyMap(keys KeyMap) Option {
	return func(s *settings) { s.keys = keys }
}

func WithTheme(theme Theme) Option {
	return func(s *settings) { s.theme = theme }
}

// WithSaveDelay overrides controller.DefaultSaveDelay.
func WithSaveDelay(d time.Duration) Option {
	return func(s *settings) { s.saveDelay = &d }
}

// WithPageSize starts the list with n rows per page.
func WithPageSize(n int) Option {
	return func(s *settings) {
		if st, err := query.NewStateWithPageSize(n); err == nil {
			s.ctrlOpts = append(s.ctrlOpts, controller.WithState(st))
		}
	}
}

// New builds a model driving a fresh controller over dir.
func New(ctx context.Context, dir controller.Directory, opts ...Option) Model {
	s := settings{keys: DefaultKeyMap, theme: DefaultTheme}
	for _, opt := range opts {
		opt(&s)
	}

	box := &confirmBox{}
	ctrlOpts := append([]controller.Option{controller.WithConfirmer(box)}, s.ctrlOpts...)
	if s.saveDelay != nil {
		ctrlOpts = append(ctrlOpts, controller.WithSaveDelay(*s.saveDelay))
	}

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "name or email"

	return Model{
		ctx:    ctx,
		ctrl:   controller.New(dir, ctrlOpts...),
		keys:   s.keys,
		styles: newStyles(s.theme),
		help:   help.New(),
		box:    box,
		search: search,
	}
}

// Controller exposes the session the model drives.
func (m Model) Controller() *controller.Controller {
	return m.ctrl
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case saveDoneMsg:
		return m.handleSaveDone(msg)

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.handleSearchKeys(msg)
		case modeConfirm:
			return m.handleConfirmKeys(msg)
		case modeForm:
			return m.handleFormKeys(msg)
		default:
			return m.handleListKeys(msg)
		}
	}
	return m, nil
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.ctrl.View(m.ctx)
	items := view.Result.Items
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.PrevPage):
		if view.Result.HasPrevious() {
			m.ctrl.ChangePage(view.Result.Page - 1)
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.NextPage):
		if view.Result.HasNext() {
			m.ctrl.ChangePage(view.Result.Page + 1)
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.CycleDept):
		f := view.Params.Filters
		f.Department = nextOption(f.Department, departmentOptions())
		m.ctrl.Filter(f)
		m.cursor = 0

	case key.Matches(msg, m.keys.CycleRole):
		f := view.Params.Filters
		f.Role = nextOption(f.Role, roleOptions())
		m.ctrl.Filter(f)
		m.cursor = 0

	case key.Matches(msg, m.keys.ClearFilters):
		m.ctrl.ClearFilters()
		m.cursor = 0

	case key.Matches(msg, m.keys.SortName):
		m.ctrl.ToggleSort(query.SortFirstName)

	case key.Matches(msg, m.keys.SortDept):
		m.ctrl.ToggleSort(query.SortDepartment)

	case key.Matches(msg, m.keys.PageSize):
		if err := m.ctrl.ChangePageSize(nextPageSize(view.Params.PageSize)); err != nil {
			m.status = err.Error()
		}
		m.cursor = 0

	case key.Matches(msg, m.keys.Add):
		if err := m.ctrl.AddRequested(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		cmd := m.openForm()
		return m, cmd

	case key.Matches(msg, m.keys.Edit):
		if len(items) == 0 {
			return m, nil
		}
		if err := m.ctrl.EditRequested(m.ctx, items[m.cursor].ID); err != nil {
			m.status = err.Error()
			return m, nil
		}
		cmd := m.openForm()
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		if len(items) == 0 {
			return m, nil
		}
		m.pendingDelete = items[m.cursor].ID
		m.mode = modeConfirm
	}

	m.clampCursor()
	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc {
		m.mode = modeList
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.ctrl.Search(m.search.Value())
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	var answer bool
	switch {
	case key.Matches(msg, m.keys.Yes):
		answer = true
	case key.Matches(msg, m.keys.No):
	default:
		return m, nil
	}

	m.box.answer = answer
	err := m.ctrl.DeleteRequested(m.ctx, m.pendingDelete)
	m.box.answer = false

	switch {
	case err != nil:
		m.status = err.Error()
	case answer:
		m.status = fmt.Sprintf("Employee %d deleted", m.pendingDelete)
	}
	m.mode = modeList
	m.pendingDelete = 0
	m.clampCursor()
	return m, nil
}

func (m *Model) openForm() tea.Cmd {
	fv, _ := m.ctrl.Form()
	values := map[string]string{
		validation.FieldFirstName:  fv.Values.FirstName,
		validation.FieldLastName:   fv.Values.LastName,
		validation.FieldEmail:      fv.Values.Email,
		validation.FieldDepartment: fv.Values.Department,
		validation.FieldRole:       fv.Values.Role,
	}

	placeholders := map[string]string{
		validation.FieldDepartment: strings.Join(departmentOptions()[1:], ", "),
		validation.FieldRole:       strings.Join(roleOptions()[1:], ", "),
	}

	m.inputs = make([]textinput.Model, len(validation.Fields))
	for i, field := range validation.Fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 64
		in.Placeholder = placeholders[field]
		in.SetValue(values[field])
		m.inputs[i] = in
	}

	m.focus = 0
	m.mode = modeForm
	m.status = ""
	return m.inputs[0].Focus()
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if fv, ok := m.ctrl.Form(); ok && fv.Submitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		if err := m.ctrl.Cancelled(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.mode = modeList
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		ctrl, ctx := m.ctrl, m.ctx
		return m, func() tea.Msg {
			return saveDoneMsg{err: ctrl.SaveConfirmed(ctx)}
		}

	case key.Matches(msg, m.keys.NextField):
		cmd := m.setFocus((m.focus + 1) % len(m.inputs))
		return m, cmd

	case key.Matches(msg, m.keys.PrevField):
		cmd := m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
		return m, cmd
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if value := m.inputs[m.focus].Value(); value != before {
		if err := m.ctrl.SetField(validation.Fields[m.focus], value); err != nil {
			m.status = err.Error()
		}
	}
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m Model) handleSaveDone(msg saveDoneMsg) (tea.Model, tea.Cmd) {
	var verrs validation.Errors
	switch {
	case msg.err == nil:
		m.mode = modeList
		m.inputs = nil
		m.status = "Employee saved"
	case errors.Is(msg.err, controller.ErrSaveInProgress):
	case errors.As(msg.err, &verrs):
		m.status = "Please fix the highlighted fields"
	default:
		logger.ErrorLog(m.ctx, "save failed", msg.err)
		m.status = msg.err.Error()
	}
	m.clampCursor()
	return m, nil
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.View(m.ctx).Result.Items)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func departmentOptions() []string {
	out := []string{""}
	for _, d := range domain.Departments {
		out = append(out, string(d))
	}
	return out
}

func roleOptions() []string {
	out := []string{""}
	for _, r := range domain.Roles {
		out = append(out, string(r))
	}
	return out
}

// nextOption cycles through options; an unknown current value restarts at the first.
func nextOption(current string, options []string) string {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func nextPageSize(current int) int {
	for i, size := range query.PageSizes {
		if size == current {
			return query.PageSizes[(i+1)%len(query.PageSizes)]
		}
	}
	return query.DefaultPageSize
}

// Run shows the TUI until the user quits or ctx ends.
func Run(ctx context.Context, dir controller.Directory, opts ...Option) error {
	p := tea.NewProgram(New(ctx, dir, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
