package ui

import (
	"context"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/idlab-discover/fraudboard-cli/internal/dashboard"
)

// Loader runs load cycles. *dashboard.Machine satisfies it.
type Loader interface {
	Load(ctx context.Context) dashboard.ViewModel
	Current() dashboard.ViewModel
}

type keyMap struct {
	Refresh key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Refresh, k.Quit} }
func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var defaultKeys = keyMap{
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

// cycleDoneMsg carries the view model returned by a finished cycle.
type cycleDoneMsg struct {
	vm dashboard.ViewModel
}

type refreshTickMsg struct{}

// DashboardModel is the Bubble Tea model for the interactive dashboard.
// The last terminal state stays on screen while a refresh is running.
type DashboardModel struct {
	ctx      context.Context
	loader   Loader
	interval time.Duration

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	vm       dashboard.ViewModel
	loading  bool
	width    int
	height   int
	quitting bool
}

// NewDashboardModel creates the model. interval <= 0 disables auto refresh.
func NewDashboardModel(ctx context.Context, loader Loader, interval time.Duration) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorSecondary)

	return DashboardModel{
		ctx:      ctx,
		loader:   loader,
		interval: interval,
		spinner:  s,
		help:     help.New(),
		keys:     defaultKeys,
		vm:       loader.Current(),
		loading:  true,
		width:    100,
		height:   30,
	}
}

// Init starts the first cycle.
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load(), m.tick())
}

func (m DashboardModel) load() tea.Cmd {
	return func() tea.Msg {
		return cycleDoneMsg{vm: m.loader.Load(m.ctx)}
	}
}

func (m DashboardModel) tick() tea.Cmd {
	if m.interval <= 0 {
		return nil
	}
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

// startRefresh begins a cycle unless one is already running.
func (m DashboardModel) startRefresh() (DashboardModel, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	m.loading = true
	m.vm.Refreshing = m.vm.Terminal()
	return m, m.load()
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m.startRefresh()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case refreshTickMsg:
		next, cmd := m.startRefresh()
		return next, tea.Batch(cmd, next.tick())

	case cycleDoneMsg:
		m.loading = false
		// Current is authoritative: a superseded cycle's result is never shown.
		m.vm = m.loader.Current()
		if !m.vm.Terminal() {
			m.vm = msg.vm
		}
		return m, nil
	}

	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() tea.View {
	return tea.NewView(m.render())
}

func (m DashboardModel) render() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	if !m.vm.Terminal() {
		b.WriteString(Title.Render(DashboardTitle))
		b.WriteString("\n")
		b.WriteString(Subtitle.Render(DashboardSubtitle))
		b.WriteString("\n\n")
		b.WriteString(m.spinner.View() + " " + Dim.Render(LoadingText))
	} else {
		plotW := max(m.width-12, 20)
		plotH := max(m.height-20, 6)
		b.WriteString(renderDashboard(m.vm, m.width, plotW, plotH))
		if m.loading {
			b.WriteString("\n")
			b.WriteString(m.spinner.View() + " " + Dim.Render("refreshing..."))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// RunDashboard runs the interactive dashboard until the user quits or ctx ends.
func RunDashboard(ctx context.Context, loader Loader, interval time.Duration) error {
	p := tea.NewProgram(NewDashboardModel(ctx, loader, interval))

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			p.Quit()
		case <-done:
		}
	}()

	_, err := p.Run()
	return err
}
