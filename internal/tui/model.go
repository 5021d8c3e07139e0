// Package tui implements the interactive storytelling session: a text
// input for story ideas, a viewport for the generated story, and a
// thumbs-up/down feedback control. Feedback is session-local and never
// persisted.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fableworks/storyteller/internal/story"
)

// StoryPort is the TUI-facing subset of the pipeline.
type StoryPort interface {
	Run(ctx context.Context, query string) (*story.Story, error)
}

// examplePrompts are cycled into the input with tab, mirroring the
// suggestion buttons of the original demo.
var examplePrompts = []string{
	"A story about a trickster spider from Africa",
	"A tale of a hidden city of gold",
	"A myth about the Norse world tree",
}

type storyMsg struct {
	story *story.Story
}

type storyErrMsg struct {
	err error
}

// Model is the Bubble Tea model for the storytelling session.
type Model struct {
	pipe       StoryPort
	input      textinput.Model
	viewport   viewport.Model
	spin       spinner.Model
	story      string
	status     string
	lastQuery  string
	exampleIdx int
	generating bool
	ready      bool
	upvotes    int
	downvotes  int
}

// New creates a new TUI model around an already-constructed pipeline.
// The pipeline is built once before the session starts and reused for
// every submission.
func New(pipe StoryPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "e.g., Tell me a story about a mythical fox from Japan"
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	vp := viewport.New(0, 0)

	return Model{
		pipe:     pipe,
		input:    ti,
		viewport: vp,
		spin:     sp,
		status:   "Type a story idea and press Enter. Tab cycles example prompts.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, sh := storyBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 2 + qh + 1 // header + status/footer + input frame + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, vh-sh)
		m.viewport.SetContent(m.renderStory())
		return m, nil

	case spinner.TickMsg:
		if !m.generating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case storyMsg:
		m.generating = false
		m.story = strings.TrimSpace(msg.story.Text)
		m.status = fmt.Sprintf("Story for %q — helpful? ctrl+y 👍 / ctrl+n 👎", m.lastQuery)
		m.viewport.SetContent(m.renderStory())
		m.viewport.GotoTop()
		return m, nil

	case storyErrMsg:
		m.generating = false
		m.status = "Error: " + msg.err.Error() + " (edit your idea and resubmit)"
		return m, nil

	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			if m.generating {
				return m, nil
			}
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				m.status = "Please enter a story idea."
				return m, nil
			}
			m.lastQuery = q
			m.generating = true
			m.status = "The storyteller is writing..."
			return m, tea.Batch(m.spin.Tick, m.generateCmd(q))
		case "tab":
			prompt := examplePrompts[m.exampleIdx%len(examplePrompts)]
			m.exampleIdx++
			m.input.SetValue(prompt)
			m.input.CursorEnd()
			return m, nil
		case "ctrl+y":
			if m.story != "" {
				m.upvotes++
				m.status = "Thank you for your feedback!"
				return m, nil
			}
		case "ctrl+n":
			if m.story != "" {
				m.downvotes++
				m.status = "Thank you for your feedback!"
				return m, nil
			}
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// generateCmd runs the pipeline for one request off the update loop.
func (m Model) generateCmd(query string) tea.Cmd {
	pipe := m.pipe
	return func() tea.Msg {
		st, err := pipe.Run(context.Background(), query)
		if err != nil {
			return storyErrMsg{err: err}
		}
		return storyMsg{story: st}
	}
}

// View renders the session layout and current story.
func (m Model) View() string {
	if !m.ready {
		return "Warming up the storyteller..."
	}

	header := headerStyle.Render("📚 Storyteller — cultural narratives")
	body := m.viewport.View()
	if m.generating {
		body = m.spin.View() + " The storyteller is writing your story..."
	}
	storyBox := storyBoxStyle.Render(body)
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	footer := footerStyle.Render(m.feedbackLine())

	return header + "\n" + storyBox + "\n" + input + "\n" + status + "\n" + footer
}

func (m Model) renderStory() string {
	if m.story == "" {
		return "No story yet. Share an idea below."
	}
	return m.story
}

func (m Model) feedbackLine() string {
	return fmt.Sprintf("👍 %d · 👎 %d · tab examples · ctrl+c quit", m.upvotes, m.downvotes)
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F780FF"))
	storyBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
