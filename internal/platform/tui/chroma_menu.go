package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmelnik/chromamerge/internal/core"
	"github.com/dmelnik/chromamerge/internal/games/chroma"
)

// ChromaMode represents the selected game mode.
type ChromaMode int

const (
	ChromaModeCampaign ChromaMode = iota
	ChromaModeEndless
)

// ChromaSelection holds the user's selection from the mode menu.
type ChromaSelection struct {
	Mode  ChromaMode
	Level int // 0 = start from beginning, 1-10 = specific level
}

// ChromaModeModel lets users choose game mode and starting level.
type ChromaModeModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     ChromaSelection
	choosing      bool
	quitting      bool
	back          bool
}

// NewChromaModeModel creates a new mode selection model.
func NewChromaModeModel(width, height int) ChromaModeModel {
	return ChromaModeModel{
		cursor:    0,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m ChromaModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ChromaModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m ChromaModeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleModeSelectKey(action)
}

func (m ChromaModeModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < 2 { // 3 options: Campaign, Endless, Select Level
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0: // Campaign
			m.choosing = false
			m.selection = ChromaSelection{Mode: ChromaModeCampaign, Level: 0}
			return m, tea.Quit
		case 1: // Endless
			m.choosing = false
			m.selection = ChromaSelection{Mode: ChromaModeEndless, Level: 0}
			return m, tea.Quit
		case 2: // Select Level
			m.inLevelSelect = true
			m.levelCursor = 0
		}
	case MenuActionBack:
		m.back = true
		return m, nil
	}

	return m, nil
}

func (m ChromaModeModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	levelCount := chroma.LevelCount()

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < levelCount-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = ChromaSelection{
			Mode:  ChromaModeCampaign,
			Level: m.levelCursor + 1, // 1-indexed
		}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the mode/level selection.
func (m ChromaModeModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewModeSelect()
}

func (m ChromaModeModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("C H R O M A M E R G E", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	modes := []string{
		"Campaign (10 levels)",
		"Endless Mode",
		"Select Level...",
	}

	for i, mode := range modes {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%s", cursor, mode), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m ChromaModeModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for i, lvl := range chroma.Levels {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%2d. %s (Target: %d)", cursor, i+1, lvl.Name, lvl.Target)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m ChromaModeModel) Selected() *ChromaSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsChoosing returns true if still in selection mode.
func (m ChromaModeModel) IsChoosing() bool {
	return m.choosing
}

// IsQuitting returns true if user wants to quit.
func (m ChromaModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m ChromaModeModel) WantsBack() bool {
	return m.back
}

// RunChromaModeSelector runs the mode selection and returns the selection.
func RunChromaModeSelector(cfg core.RuntimeConfig) (*ChromaSelection, core.RuntimeConfig, error) {
	model := NewChromaModeModel(cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(ChromaModeModel)
	if !ok {
		return nil, cfg, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}
