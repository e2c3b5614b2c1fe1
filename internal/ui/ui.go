package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunelink/internal/services"
	"github.com/desertthunder/tunelink/internal/shared"
	"github.com/desertthunder/tunelink/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ConvertView ViewState = iota
	TargetListView
	MatchListView
)

type progressUpdateMsg tasks.ProgressUpdate

type conversionCompleteMsg struct {
	result *tasks.ConversionResult
	err    error
}

// Model represents the TUI application state.
type Model struct {
	ctx            context.Context
	view           ViewState
	engine         *tasks.ConvertEngine
	rawURL         string
	width          int
	height         int
	targetList     list.Model
	matchList      list.Model
	result         *tasks.ConversionResult
	selectedTarget *targetItem
	progressChan   chan tasks.ProgressUpdate
	progress       tasks.ProgressUpdate
	err            error
	help           help.Model
	keys           keyMap
}

// NewModel creates a new TUI model for converting the given link.
func NewModel(ctx context.Context, engine *tasks.ConvertEngine, rawURL string) *Model {
	return &Model{
		ctx:    ctx,
		view:   ConvertView,
		engine: engine,
		rawURL: rawURL,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init starts the conversion.
func (m *Model) Init() tea.Cmd {
	return m.startConversion()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.targetList.Width() == 0 {
			m.targetList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.matchList.Width() == 0 {
			m.matchList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ConvertView:
			return m.handleConvertKeys(msg)
		case TargetListView:
			return m.handleTargetListKeys(msg)
		case MatchListView:
			return m.handleMatchListKeys(msg)
		}

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case conversionCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.progressChan = nil
		if m.err == nil {
			m.buildTargetList()
			m.view = TargetListView
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.err))
	}

	switch m.view {
	case ConvertView:
		return m.renderConvert()
	case TargetListView:
		return m.renderTargetList()
	case MatchListView:
		return m.renderMatchList()
	default:
		return ""
	}
}

func (m *Model) handleConvertKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		if m.err != nil {
			m.err = nil
			return m, m.startConversion()
		}
	}
	return m, nil
}

func (m *Model) handleTargetListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.result = nil
		m.selectedTarget = nil
		m.view = ConvertView
		return m, m.startConversion()
	case "enter":
		selected := m.targetList.SelectedItem()
		if selected != nil {
			if target, ok := selected.(targetItem); ok {
				m.selectedTarget = &target
				m.buildMatchList(target)
				m.view = MatchListView
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.targetList, cmd = m.targetList.Update(msg)
	return m, cmd
}

func (m *Model) handleMatchListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = TargetListView
		return m, nil
	case "enter":
		selected := m.matchList.SelectedItem()
		if selected != nil {
			if match, ok := selected.(matchItem); ok && match.url != "" {
				if err := shared.OpenBrowser(match.url); err != nil {
					m.err = err
				}
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.matchList, cmd = m.matchList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case TargetListView:
		m.targetList, cmd = m.targetList.Update(msg)
	case MatchListView:
		m.matchList, cmd = m.matchList.Update(msg)
	}
	return m, cmd
}

func (m *Model) buildTargetList() {
	items := make([]list.Item, len(m.result.Targets))
	for i, target := range m.result.Targets {
		items[i] = targetItem{outcome: target, kind: m.result.Kind}
	}
	m.targetList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.targetList.Title = fmt.Sprintf("Matches for %s", m.sourceTitle())
	m.targetList.SetSize(m.width-4, m.height-8)
}

func (m *Model) buildMatchList(target targetItem) {
	m.matchList = list.New(target.matchItems(), list.NewDefaultDelegate(), 0, 0)
	m.matchList.Title = fmt.Sprintf("%s results", target.outcome.ServiceName)
	m.matchList.SetSize(m.width-4, m.height-8)
}

func (m *Model) sourceTitle() string {
	if m.result == nil {
		return ""
	}
	if m.result.Kind == services.KindAlbum && m.result.SourceAlbum != nil {
		return m.result.SourceAlbum.Title
	}
	if m.result.Source != nil {
		return m.result.Source.Title
	}
	return ""
}

func (m *Model) startConversion() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progressChan := m.progressChan

	go func() {
		result, err := m.engine.Convert(m.ctx, progressChan, m.rawURL)
		m.result = result
		m.err = err
		close(progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return conversionCompleteMsg{result: m.result, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return conversionCompleteMsg{result: m.result, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderConvert() string {
	title := styles.title.Render("Converting Link")

	var phase string
	switch m.progress.Phase {
	case tasks.ParseLink:
		phase = "Parsing link..."
	case tasks.ResolveSource:
		phase = "Resolving source metadata..."
	case tasks.MatchTargets:
		phase = fmt.Sprintf("Matching on target platforms (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderTargetList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.targetList.View(), helpView)
}

func (m *Model) renderMatchList() string {
	helpKeys := []key.Binding{m.keys.open, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.matchList.View(), helpView)
}
