// internal/tui/app.go
//
// This is the terminal dashboard for Conclave. It uses bubbletea, which
// follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ostraca/conclave/internal/config"
	"github.com/ostraca/conclave/internal/governance"
	"github.com/ostraca/conclave/internal/logbook"
	"github.com/ostraca/conclave/internal/orchestrator"
)

// appState represents which "screen" we're on
type appState int

const (
	stateMainMenu    appState = iota // Main menu with "Run Review", etc.
	stateScopeSelect                 // Scope picker before launching a review
	stateRunning                     // A review is in flight
	stateResult                      // Showing the synthesized verdict
)

const boardRefreshInterval = 3 * time.Second

type statusRefreshMsg struct {
	swarm orchestrator.SwarmStatus
}

type reviewDoneMsg struct {
	resp governance.Response
	err  error
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state   appState
	config  *config.Config
	brain   *orchestrator.Brain
	logbook *logbook.Logbook

	// UI components
	mainMenu  list.Model
	scopeMenu list.Model
	statusMsg string

	// Window size (we get this from bubbletea)
	width  int
	height int

	// Status board data
	swarm        orchestrator.SwarmStatus
	hasSwarm     bool
	runningScope governance.Scope
	reviewStart  time.Time
	lastResult   *governance.Response
	lastErr      error
}

// menuItem implements list.Item interface for our menu items
type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

type scopeOption struct {
	scope governance.Scope
	desc  string
}

func (o scopeOption) Title() string       { return humanizeScope(o.scope) }
func (o scopeOption) Description() string { return o.desc }
func (o scopeOption) FilterValue() string { return string(o.scope) }

// NewApp creates the dashboard around an already-initialized swarm.
func NewApp(cfg *config.Config, brain *orchestrator.Brain, lb *logbook.Logbook) *App {
	mainMenu := list.New(buildMainMenu(), list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "⬡ CONCLAVE"
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)

	scopeMenu := list.New(buildScopeMenu(), list.NewDefaultDelegate(), 0, 0)
	scopeMenu.Title = "Select Review Scope"
	scopeMenu.SetShowStatusBar(false)
	scopeMenu.SetFilteringEnabled(false)

	return &App{
		state:     stateMainMenu,
		config:    cfg,
		brain:     brain,
		logbook:   lb,
		mainMenu:  mainMenu,
		scopeMenu: scopeMenu,
	}
}

func buildMainMenu() []list.Item {
	return []list.Item{
		menuItem{title: "Run Review", desc: "Dispatch a governance review to the swarm"},
		menuItem{title: "Exit", desc: "Quit Conclave"},
	}
}

func buildScopeMenu() []list.Item {
	items := make([]list.Item, 0, len(governance.Scopes()))
	for _, scope := range governance.Scopes() {
		desc := "Single-domain review"
		if scope == governance.ScopeComprehensive {
			desc = "Every architecture domain in parallel"
		}
		items = append(items, scopeOption{scope: scope, desc: desc})
	}
	return items
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return a.fetchStatusSnapshot()
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.mainMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-10))
		a.scopeMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-10))
		return a, nil

	case statusRefreshMsg:
		a.swarm = msg.swarm
		a.hasSwarm = true
		return a, a.scheduleStatusRefresh()

	case reviewDoneMsg:
		a.state = stateResult
		a.lastErr = msg.err
		if msg.err != nil {
			a.lastResult = nil
			a.statusMsg = fmt.Sprintf("Review failed: %v", msg.err)
		} else {
			resp := msg.resp
			a.lastResult = &resp
			a.statusMsg = fmt.Sprintf("Review %s finished in %s",
				resp.RequestID, resp.ProcessingTime.Round(time.Millisecond))
		}
		return a, a.fetchStatusSnapshot()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.state == stateMainMenu {
				return a, tea.Quit
			}
		case "esc":
			if a.state == stateScopeSelect || a.state == stateResult {
				a.state = stateMainMenu
				a.statusMsg = ""
				return a, nil
			}
		case "enter":
			switch a.state {
			case stateMainMenu:
				return a.handleMainMenuSelection()
			case stateScopeSelect:
				return a.launchReview()
			case stateResult:
				a.state = stateMainMenu
				return a, nil
			}
		}
	}

	var cmds []tea.Cmd
	switch a.state {
	case stateMainMenu:
		var cmd tea.Cmd
		a.mainMenu, cmd = a.mainMenu.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	case stateScopeSelect:
		var cmd tea.Cmd
		a.scopeMenu, cmd = a.scopeMenu.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return a, tea.Batch(cmds...)
}

// handleMainMenuSelection processes menu item selection
func (a *App) handleMainMenuSelection() (tea.Model, tea.Cmd) {
	item, ok := a.mainMenu.SelectedItem().(menuItem)
	if !ok {
		return a, nil
	}
	switch item.title {
	case "Run Review":
		a.state = stateScopeSelect
		a.statusMsg = "Select a scope to dispatch"
		if a.width > 0 && a.height > 0 {
			a.scopeMenu.SetSize(max(0, a.width-6), max(0, a.height-10))
		}
		return a, nil
	case "Exit":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) launchReview() (tea.Model, tea.Cmd) {
	item, ok := a.scopeMenu.SelectedItem().(scopeOption)
	if !ok {
		a.statusMsg = "Scope selection unavailable"
		return a, nil
	}
	a.state = stateRunning
	a.runningScope = item.scope
	a.reviewStart = time.Now()
	a.statusMsg = fmt.Sprintf("Reviewing %s...", item.scope)
	a.logbook.Info("tui: dispatching %s review", item.scope)
	brain := a.brain
	scope := item.scope
	return a, func() tea.Msg {
		resp, err := brain.Review(context.Background(), governance.NewRequest(scope))
		return reviewDoneMsg{resp: resp, err: err}
	}
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	rightWidth := max(36, width/3)
	leftWidth := width - rightWidth - 4
	if leftWidth < 40 {
		leftWidth = width - 4
		rightWidth = 0
	}

	var content string
	switch a.state {
	case stateMainMenu:
		content = a.mainMenu.View()
	case stateScopeSelect:
		content = a.renderScopeSelection()
	case stateRunning:
		content = fmt.Sprintf("Reviewing %s · %s elapsed",
			a.runningScope, time.Since(a.reviewStart).Round(time.Second))
	case stateResult:
		content = a.renderResult()
	}
	return a.renderBoard(content, leftWidth, rightWidth)
}

func (a *App) renderBoard(mainContent string, leftWidth, rightWidth int) string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1).
		Render("⬡ CONCLAVE")
	leftBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(20, leftWidth)).
		Render(mainContent)
	var body string
	if rightWidth > 0 {
		rightBox := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1).
			Width(max(20, rightWidth)).
			Render(a.renderSwarmPanel(rightWidth - 4))
		body = lipgloss.JoinHorizontal(lipgloss.Top, leftBox, rightBox)
	} else {
		body = leftBox
	}
	sections := []string{header, body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.statusMsg)
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

func (a *App) renderSwarmPanel(width int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render("Swarm")
	if !a.hasSwarm {
		note := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("Polling evaluators...")
		return lipgloss.JoinVertical(lipgloss.Left, title, note)
	}
	summary := fmt.Sprintf("Health %.1f · %d agents · %d active task(s)",
		a.swarm.OverallHealth, a.swarm.TotalAgents, a.swarm.ActiveTasks)
	lines := []string{summary, ""}
	for _, e := range a.swarm.Evaluators {
		lines = append(lines, renderEvaluatorLine(e))
	}
	body := lipgloss.NewStyle().Width(max(20, width)).Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}

func renderEvaluatorLine(e orchestrator.EvaluatorStatus) string {
	name := humanizeDomain(e.Domain)
	if e.Err != "" {
		return fmt.Sprintf("✗ %s · unreachable", name)
	}
	marker := "●"
	if e.Status.CurrentTaskID != "" {
		marker = "◐"
	}
	return fmt.Sprintf("%s %s · %s · %.0f", marker, name, e.Status.State, e.Status.HealthScore)
}

func (a *App) renderScopeSelection() string {
	view := a.scopeMenu.View()
	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		MarginTop(1).
		Render("Enter → run review    Esc → cancel")
	return lipgloss.JoinVertical(lipgloss.Left, view, hint)
}

func (a *App) renderResult() string {
	if a.lastErr != nil {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Render(fmt.Sprintf("Review failed:\n%v", a.lastErr))
	}
	if a.lastResult == nil {
		return "No review results yet."
	}
	resp := a.lastResult
	statusStyle := lipgloss.NewStyle().Bold(true)
	switch resp.Status {
	case "passed":
		statusStyle = statusStyle.Foreground(lipgloss.Color("#6BCB77"))
	case "failed":
		statusStyle = statusStyle.Foreground(lipgloss.Color("#FF6B6B"))
	default:
		statusStyle = statusStyle.Foreground(lipgloss.Color("#FFD93D"))
	}
	sections := []string{
		statusStyle.Render(strings.ToUpper(resp.Status)),
		"",
		resp.Summary,
	}
	if len(resp.NextSteps) > 0 {
		sections = append(sections, "", "Next Steps:")
		for i, step := range resp.NextSteps {
			sections = append(sections, fmt.Sprintf("%d. %s", i+1, step))
		}
	}
	sections = append(sections, "", "Enter/Esc → back to menu")
	return strings.Join(sections, "\n")
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines := a.logbook.Tail(8)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s", fileName))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}

func (a *App) fetchStatusSnapshot() tea.Cmd {
	brain := a.brain
	return func() tea.Msg {
		return statusRefreshMsg{swarm: brain.SwarmStatus()}
	}
}

func (a *App) scheduleStatusRefresh() tea.Cmd {
	brain := a.brain
	return tea.Tick(boardRefreshInterval, func(time.Time) tea.Msg {
		return statusRefreshMsg{swarm: brain.SwarmStatus()}
	})
}

func humanizeScope(scope governance.Scope) string {
	return humanizeWords(string(scope))
}

func humanizeDomain(domain governance.Domain) string {
	return humanizeWords(strings.TrimSuffix(string(domain), "_architecture"))
}

func humanizeWords(value string) string {
	replacer := strings.NewReplacer("-", " ", "_", " ")
	parts := strings.Fields(replacer.Replace(strings.TrimSpace(value)))
	if len(parts) == 0 {
		return value
	}
	for i, part := range parts {
		lower := strings.ToLower(part)
		parts[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(parts, " ")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
