package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradewise-kr/buyerscout/internal/model"
	"github.com/tradewise-kr/buyerscout/internal/session"
)

func newTestModel() Model {
	sess := session.New(
		model.MatchQuery{Industry: "화장품/뷰티", Countries: []string{"United States"}},
		[]model.DisplayBuyer{
			{CompanyName: "Acme Corp", RawCountry: "United States", Email: "buyer@acme.com"},
			{CompanyName: "Bolt GmbH", RawCountry: "Germany"},
			{CompanyName: "Chunhyang Trading", RawCountry: "South Korea"},
		},
	)
	return New(sess)
}

func TestNewShowsAllCandidates(t *testing.T) {
	m := newTestModel()

	assert.Len(t, m.filtered, 3)
	assert.Equal(t, 0, m.cursor)
}

func TestFilterByCompanyAndCountry(t *testing.T) {
	m := newTestModel()

	m.input.SetValue("germ")
	m.applyFilter()

	require.Len(t, m.filtered, 1)
	assert.Equal(t, "Bolt GmbH", m.filtered[0].CompanyName)
	assert.Equal(t, "1/3 candidates shown.", m.status)
}

func TestFilterResetsCursorOutOfRange(t *testing.T) {
	m := newTestModel()
	m.cursor = 2

	m.input.SetValue("acme")
	m.applyFilter()

	require.Len(t, m.filtered, 1)
	assert.Equal(t, 0, m.cursor)
}

func TestCursorWrapsAround(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	assert.Equal(t, 2, m.cursor)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Equal(t, 0, m.cursor)
}

func TestCtrlRClearsSession(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = updated.(Model)

	assert.Empty(t, m.filtered)
	assert.Equal(t, 0, m.sess.Len())
	assert.Equal(t, "Session cleared.", m.status)
}

func TestEscQuits(t *testing.T) {
	m := newTestModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRenderCurrentEmpty(t *testing.T) {
	sess := session.New(model.MatchQuery{}, nil)
	m := New(sess)

	assert.Equal(t, "No candidates.", m.renderCurrent())
}
