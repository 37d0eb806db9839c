// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive TUI console to the instrument",
	Long: `Control the instrument via an interactive terminal UI.

A full-screen console with command input and a scrolling exchange log.
Commands are sent on Enter; the response (or the instrument's rejection)
appears in the log together with the observed round-trip time, which makes
the simulated latency visible.

Supports simulated, serial and WebSocket connections.`,
	RunE: runTui,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

//////////////////////////////////////////////////////////////
// Types
//////////////////////////////////////////////////////////////

const maxTuiHistory = 200

// tuiExchange is one logged command/response round trip
type tuiExchange struct {
	query    string
	response string
	err      error
	elapsed  time.Duration
}

// consoleModel is the Bubble Tea model for the console TUI
type consoleModel struct {
	conn     LineConn
	connInfo string

	input   textinput.Model
	history []tuiExchange
	pending bool

	width    int
	height   int
	quitting bool
}

//////////////////////////////////////////////////////////////
// Messages
//////////////////////////////////////////////////////////////

type exchangeDoneMsg struct {
	exchange tuiExchange
}

//////////////////////////////////////////////////////////////
// Styles
//////////////////////////////////////////////////////////////

var (
	tuiTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("166")).
			Padding(0, 1)

	tuiInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	tuiQueryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75"))

	tuiResponseStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("114"))

	tuiErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	tuiHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

//////////////////////////////////////////////////////////////
// Model Initialization
//////////////////////////////////////////////////////////////

func initialConsoleModel(conn LineConn, connInfo string) consoleModel {
	ti := textinput.New()
	ti.Placeholder = "CAL ?"
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	return consoleModel{
		conn:     conn,
		connInfo: connInfo,
		input:    ti,
		history:  make([]tuiExchange, 0),
	}
}

func (m consoleModel) Init() tea.Cmd {
	return textinput.Blink
}

//////////////////////////////////////////////////////////////
// Update
//////////////////////////////////////////////////////////////

// sendCommand performs the blocking write/read round trip off the UI
// loop, so the simulated latency never freezes the interface.
func sendCommand(conn LineConn, query string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		ex := tuiExchange{query: query}

		if err := conn.WriteLine(query); err != nil {
			ex.err = err
		} else {
			resp, err := conn.ReadLine()
			if err != nil {
				ex.err = err
			} else {
				ex.response = resp
			}
		}

		ex.elapsed = time.Since(start)
		return exchangeDoneMsg{exchange: ex}
	}
}

func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			query := strings.TrimSpace(m.input.Value())
			if query == "" || m.pending {
				return m, nil
			}
			m.pending = true
			m.input.Reset()
			return m, sendCommand(m.conn, query)
		}

	case exchangeDoneMsg:
		m.pending = false
		m.history = append(m.history, msg.exchange)
		if len(m.history) > maxTuiHistory {
			m.history = m.history[len(m.history)-maxTuiHistory:]
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

//////////////////////////////////////////////////////////////
// View
//////////////////////////////////////////////////////////////

func (m consoleModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(tuiTitleStyle.Render("Pyrostat Console"))
	b.WriteString("  ")
	b.WriteString(tuiInfoStyle.Render(m.connInfo))
	b.WriteString("\n\n")

	// Fit the log into whatever height remains above the input line.
	logLines := m.height - 6
	if logLines < 4 {
		logLines = 4
	}
	start := 0
	if len(m.history) > logLines/2 {
		start = len(m.history) - logLines/2
	}

	for _, ex := range m.history[start:] {
		b.WriteString(tuiQueryStyle.Render("> " + ex.query))
		b.WriteString(tuiInfoStyle.Render(fmt.Sprintf("  (%d ms)", ex.elapsed.Milliseconds())))
		b.WriteString("\n")
		switch {
		case ex.err != nil:
			b.WriteString(tuiErrorStyle.Render("  " + ex.err.Error()))
		case ex.response == "":
			b.WriteString(tuiInfoStyle.Render("  (no response)"))
		default:
			b.WriteString(tuiResponseStyle.Render("  " + ex.response))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.pending {
		b.WriteString(tuiInfoStyle.Render("waiting for instrument..."))
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	b.WriteString(tuiHelpStyle.Render("enter: send • esc/ctrl+c: quit"))

	return b.String()
}

//////////////////////////////////////////////////////////////
// Command
//////////////////////////////////////////////////////////////

func runTui(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	m := initialConsoleModel(conn, connInfo)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}
	return nil
}
