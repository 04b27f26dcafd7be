package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
)

// --- Mock implementations ---

type mockChat struct {
	answer string
	err    error
	asked  []string
}

func (m *mockChat) LoadDocument(ctx context.Context, docID string) error { return nil }

func (m *mockChat) Ask(ctx context.Context, question string) (string, error) {
	m.asked = append(m.asked, question)
	return m.answer, m.err
}

func (m *mockChat) AskStream(ctx context.Context, question string, onChunk func(string)) (string, error) {
	return m.Ask(ctx, question)
}

func (m *mockChat) Summary(ctx context.Context) (string, error) { return "summary", nil }

func (m *mockChat) History(ctx context.Context) ([]domain.ChatTurn, error) { return nil, nil }

// --- Test helpers ---

func sizedModel(t *testing.T, chat *mockChat) *ChatModel {
	t.Helper()

	m := NewChat(chat, &domain.Document{ID: "doc-1", Name: "curie.txt"})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	model, ok := updated.(*ChatModel)
	require.True(t, ok)
	return model
}

// --- Tests ---

func TestChatModel_ViewBeforeSizing(t *testing.T) {
	m := NewChat(&mockChat{}, &domain.Document{Name: "curie.txt"})

	assert.Equal(t, "loading...", m.View())
}

func TestChatModel_ViewShowsDocumentName(t *testing.T) {
	m := sizedModel(t, &mockChat{})

	assert.Contains(t, m.View(), "curie.txt")
}

func TestChatModel_SubmitEmptyInputIsNoop(t *testing.T) {
	m := sizedModel(t, &mockChat{})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	model := updated.(*ChatModel)
	assert.False(t, model.waiting)
	assert.Nil(t, cmd)
}

func TestChatModel_SubmitAsksService(t *testing.T) {
	chat := &mockChat{answer: "radium and polonium"}
	m := sizedModel(t, chat)
	m.input.SetValue("What did she discover?")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	model := updated.(*ChatModel)
	assert.True(t, model.waiting)
	assert.Equal(t, "What did she discover?", model.pending)
	assert.Empty(t, model.input.Value())
	require.NotNil(t, cmd)
}

func TestChatModel_AnswerReceivedAppendsTurn(t *testing.T) {
	m := sizedModel(t, &mockChat{})
	m.pending = "What did she discover?"
	m.waiting = true

	updated, _ := m.Update(answerReceived{answer: "radium and polonium"})

	model := updated.(*ChatModel)
	assert.False(t, model.waiting)
	require.Len(t, model.turns, 1)
	assert.Equal(t, "What did she discover?", model.turns[0].Question)
	assert.Equal(t, "radium and polonium", model.turns[0].Answer)
	assert.Contains(t, model.view.View(), "radium and polonium")
}

func TestChatModel_AnswerErrorIsShown(t *testing.T) {
	m := sizedModel(t, &mockChat{})
	m.pending = "anything?"
	m.waiting = true

	updated, _ := m.Update(answerReceived{err: errors.New("backend unreachable")})

	model := updated.(*ChatModel)
	assert.False(t, model.waiting)
	assert.Empty(t, model.turns)
	assert.Contains(t, model.view.View(), "backend unreachable")
}

func TestChatModel_EscQuits(t *testing.T) {
	m := sizedModel(t, &mockChat{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	assert.NotNil(t, s)
	assert.Equal(t, DefaultStyles().Title.GetForeground(), s.Title.GetForeground())
}
