// Package tui implements the interactive chat session as a bubbletea
// program. One document is loaded per session; questions are answered
// by the chat service in the background while a spinner runs.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
	"github.com/scholia-labs/scholia-cli/internal/core/ports/driving"
)

// answerReceived is emitted when the chat service finishes an answer.
type answerReceived struct {
	answer string
	err    error
}

// ChatModel is the bubbletea model for a chat session.
type ChatModel struct {
	chat    driving.ChatService
	doc     *domain.Document
	styles  *Styles
	input   textinput.Model
	view    viewport.Model
	spin    spinner.Model
	turns   []domain.ChatTurn
	pending string
	waiting bool
	err     error
	ready   bool
	width   int
	height  int
}

// NewChat creates a chat session model. The document must already be
// loaded into the chat service.
func NewChat(chat driving.ChatService, doc *domain.Document) *ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask a question..."
	ti.Focus()
	ti.CharLimit = 512

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &ChatModel{
		chat:   chat,
		doc:    doc,
		styles: DefaultStyles(),
		input:  ti,
		spin:   sp,
	}
}

// Init starts the input cursor blink.
func (m *ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m *ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		inputHeight := 3
		headerHeight := 2
		if !m.ready {
			m.view = viewport.New(msg.Width, msg.Height-inputHeight-headerHeight)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = msg.Height - inputHeight - headerHeight
		}
		m.input.Width = msg.Width - 6
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m.submit()
		}

	case answerReceived:
		m.waiting = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.turns = append(m.turns, domain.ChatTurn{
				Question: m.pending,
				Answer:   msg.answer,
			})
		}
		m.pending = ""
		m.refreshTranscript()
		m.view.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.view, cmd = m.view.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit sends the current input to the chat service.
func (m *ChatModel) submit() (tea.Model, tea.Cmd) {
	question := strings.TrimSpace(m.input.Value())
	if question == "" || m.waiting {
		return m, nil
	}

	m.pending = question
	m.waiting = true
	m.input.SetValue("")
	m.refreshTranscript()
	m.view.GotoBottom()

	ask := func() tea.Msg {
		answer, err := m.chat.Ask(context.Background(), question)
		return answerReceived{answer: answer, err: err}
	}
	return m, tea.Batch(ask, m.spin.Tick)
}

// refreshTranscript re-renders the conversation into the viewport.
func (m *ChatModel) refreshTranscript() {
	if !m.ready {
		return
	}

	var b strings.Builder
	for _, turn := range m.turns {
		b.WriteString(m.styles.Question.Render("You: "+turn.Question) + "\n")
		b.WriteString(m.styles.Answer.Render(turn.Answer) + "\n\n")
	}
	if m.waiting {
		b.WriteString(m.styles.Question.Render("You: "+m.pending) + "\n")
		b.WriteString(m.styles.Muted.Render(m.spin.View()+" thinking...") + "\n")
	}
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("error: %v", m.err)) + "\n")
	}
	if b.Len() == 0 {
		b.WriteString(m.styles.Muted.Render("Ask anything about this document."))
	}

	m.view.SetContent(b.String())
}

// View renders the chat session.
func (m *ChatModel) View() string {
	if !m.ready {
		return "loading..."
	}

	header := m.styles.Title.Render("Chat: "+m.doc.Name) + "  " +
		m.styles.Help.Render("enter to ask, esc to quit")

	return header + "\n" + m.view.View() + "\n" + m.styles.Input.Render(m.input.View())
}

// Run starts the chat session and blocks until it exits.
func Run(chat driving.ChatService, doc *domain.Document) error {
	p := tea.NewProgram(NewChat(chat, doc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
