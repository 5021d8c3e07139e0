package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fableworks/storyteller/internal/story"
)

// fixedPort returns a fixed story or error without a real pipeline.
type fixedPort struct {
	text string
	err  error
}

func (f fixedPort) Run(ctx context.Context, query string) (*story.Story, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &story.Story{Query: query, Text: f.text}, nil
}

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func TestModel_EmptySubmitDoesNotGenerate(t *testing.T) {
	m := sized(New(fixedPort{text: "a story"}))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if cmd != nil {
		t.Error("expected no command for empty input")
	}
	if m.generating {
		t.Error("model is generating with no input")
	}
	if !strings.Contains(m.status, "Please enter a story idea") {
		t.Errorf("unexpected status: %s", m.status)
	}
}

func TestModel_SubmitProducesStory(t *testing.T) {
	m := sized(New(fixedPort{text: "Once upon a time, a fox grew a second tail."}))
	m.input.SetValue("a story about a mythical fox")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if cmd == nil {
		t.Fatal("expected a generate command")
	}
	if !m.generating {
		t.Fatal("model not in generating state")
	}

	// Drive the async result back through Update the way the runtime would
	msg := m.generateCmd("a story about a mythical fox")()
	st, ok := msg.(storyMsg)
	if !ok {
		t.Fatalf("expected storyMsg, got %T", msg)
	}

	updated, _ = m.Update(st)
	m = updated.(Model)

	if m.generating {
		t.Error("model still generating after story arrived")
	}
	if !strings.Contains(m.story, "second tail") {
		t.Errorf("story not stored: %q", m.story)
	}
	if !strings.Contains(m.View(), "second tail") {
		t.Error("story not rendered in view")
	}
}

func TestModel_ErrorIsDisplayedAndRecoverable(t *testing.T) {
	m := sized(New(fixedPort{err: errors.New("quota exceeded")}))
	m.input.SetValue("a tale of a hidden city of gold")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	msg := m.generateCmd("a tale of a hidden city of gold")()
	errMsg, ok := msg.(storyErrMsg)
	if !ok {
		t.Fatalf("expected storyErrMsg, got %T", msg)
	}

	updated, _ = m.Update(errMsg)
	m = updated.(Model)

	if m.generating {
		t.Error("model stuck in generating state after error")
	}
	if !strings.Contains(m.status, "quota exceeded") {
		t.Errorf("error not surfaced in status: %s", m.status)
	}
	if !strings.Contains(m.status, "resubmit") {
		t.Errorf("status does not invite resubmission: %s", m.status)
	}
}

func TestModel_FeedbackCountsSessionLocal(t *testing.T) {
	m := sized(New(fixedPort{text: "a story"}))
	m.story = "a story"

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	m = updated.(Model)

	if m.upvotes != 2 || m.downvotes != 1 {
		t.Errorf("expected 2 up / 1 down, got %d / %d", m.upvotes, m.downvotes)
	}
	if !strings.Contains(m.status, "Thank you for your feedback!") {
		t.Errorf("unexpected status: %s", m.status)
	}
}

func TestModel_FeedbackIgnoredBeforeFirstStory(t *testing.T) {
	m := sized(New(fixedPort{text: "a story"}))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	m = updated.(Model)

	if m.upvotes != 0 {
		t.Errorf("feedback counted with no story shown: %d", m.upvotes)
	}
}

func TestModel_TabCyclesExamplePrompts(t *testing.T) {
	m := sized(New(fixedPort{text: "a story"}))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)

	if m.input.Value() != examplePrompts[0] {
		t.Errorf("expected first example prompt, got %q", m.input.Value())
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)

	if m.input.Value() != examplePrompts[1] {
		t.Errorf("expected second example prompt, got %q", m.input.Value())
	}
}
