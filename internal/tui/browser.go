// Package tui implements the interactive result browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tradewise-kr/buyerscout/internal/model"
	"github.com/tradewise-kr/buyerscout/internal/session"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	detailBox     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	filterBox     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	contactBadge  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	noContactTint = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Model is the Bubble Tea model for browsing matched buyer candidates.
type Model struct {
	sess     *session.Session
	input    textinput.Model
	viewport viewport.Model
	filtered []model.DisplayBuyer
	status   string
	cursor   int
	ready    bool
}

// New creates a browser over the given session.
func New(sess *session.Session) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Filter by company or country"
	ti.Focus()
	vp := viewport.New(0, 0)

	m := Model{
		sess:     sess,
		input:    ti,
		viewport: vp,
		status:   fmt.Sprintf("%d candidates. ↑/↓ browse, ctrl+r reset, esc quit.", sess.Len()),
	}
	m.filtered = sess.Buyers()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, dh := detailBox.GetFrameSize()
		_, fh := filterBox.GetFrameSize()
		reserved := 2 + 1 + fh + 1 // header, status, filter frame, spacer
		vh := msg.Height - reserved - dh
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width-2)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderCurrent())
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlR:
			m.sess.Reset()
			m.filtered = nil
			m.cursor = 0
			m.status = "Session cleared."
			m.viewport.SetContent(m.renderCurrent())
			return m, nil
		case tea.KeyUp:
			if len(m.filtered) > 0 {
				m.cursor = (m.cursor - 1 + len(m.filtered)) % len(m.filtered)
				m.viewport.SetContent(m.renderCurrent())
			}
			return m, nil
		case tea.KeyDown:
			if len(m.filtered) > 0 {
				m.cursor = (m.cursor + 1) % len(m.filtered)
				m.viewport.SetContent(m.renderCurrent())
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyFilter()
	m.viewport.SetContent(m.renderCurrent())
	return m, cmd
}

// View renders the browser layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	q := m.sess.Query()
	header := headerStyle.Render("Buyer Candidates") + " " +
		subtleStyle.Render(fmt.Sprintf("%s · %s", q.Industry, strings.Join(q.Countries, ", ")))
	detail := detailBox.Render(m.viewport.View())
	filter := filterBox.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + detail + "\n" + filter + "\n" + status
}

func (m *Model) applyFilter() {
	needle := strings.ToLower(strings.TrimSpace(m.input.Value()))
	buyers := m.sess.Buyers()
	if needle == "" {
		m.filtered = buyers
	} else {
		var filtered []model.DisplayBuyer
		for _, b := range buyers {
			if strings.Contains(strings.ToLower(b.CompanyName), needle) ||
				strings.Contains(strings.ToLower(b.RawCountry), needle) {
				filtered = append(filtered, b)
			}
		}
		m.filtered = filtered
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
	m.status = fmt.Sprintf("%d/%d candidates shown.", len(m.filtered), len(buyers))
}

func (m Model) renderCurrent() string {
	if len(m.filtered) == 0 {
		return "No candidates."
	}
	b := m.filtered[m.cursor]

	badge := noContactTint.Render("unverified")
	if b.HasContact() {
		badge = contactBadge.Render("contact available")
	}

	domain := b.Domain
	if domain == "" {
		domain = "no-domain"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d/%d  %s (%s)  %s\n\n",
		m.cursor+1, len(m.filtered), headerStyle.Render(b.CompanyName), domain, badge)
	fmt.Fprintf(&sb, "Website:         %s\n", orNA(b.Website))
	fmt.Fprintf(&sb, "Industry:        %s\n", orNA(b.Industry))
	fmt.Fprintf(&sb, "Target markets:  %s\n", orNA(strings.Join(b.CountryTargets, ", ")))
	fmt.Fprintf(&sb, "Origin:          %s\n", orNA(strings.TrimSpace(b.RawCountry+" "+b.RawCity)))
	fmt.Fprintf(&sb, "Products/offer:  %s\n", orNA(b.RawProductText))
	fmt.Fprintf(&sb, "HS code:         %s\n", orNA(b.RawHSCode))
	fmt.Fprintf(&sb, "Contact:         %s\n", orNA(b.ContactPerson))
	fmt.Fprintf(&sb, "Email:           %s\n", orNA(b.Email))
	fmt.Fprintf(&sb, "Phone:           %s\n", orNA(b.RawPhone))
	return sb.String()
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
