package dashboard

import (
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/bugboard/internal/keys"
	"github.com/nhle/bugboard/internal/model"
)

func ticketFixtures(n int) []model.Ticket {
	tickets := make([]model.Ticket, n)
	for i := range tickets {
		tickets[i] = model.Ticket{
			ID:       strconv.Itoa(i + 1),
			Title:    "ticket " + strconv.Itoa(i+1),
			Severity: model.SeverityMedium,
			Status:   model.StatusOpen,
		}
	}
	return tickets
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDashboardSelectsTicketOnCurrentPage(t *testing.T) {
	m := New(nil, keys.DefaultKeyMap(), 80, 24)
	m, _ = m.Update(TicketsLoadedMsg{Tickets: ticketFixtures(10)})

	// Move to page 2, second row: global index 7, ID "8".
	m, _ = m.Update(keyMsg("l"))
	m, _ = m.Update(keyMsg("j"))

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(SelectedTicketMsg)
	require.True(t, ok)
	assert.Equal(t, "8", msg.TicketID)
}

func TestDashboardCursorStaysOnShortPage(t *testing.T) {
	m := New(nil, keys.DefaultKeyMap(), 80, 24)
	m, _ = m.Update(TicketsLoadedMsg{Tickets: ticketFixtures(8)})

	// Page 2 holds only two tickets; the cursor must not move past them.
	m, _ = m.Update(keyMsg("l"))
	m, _ = m.Update(keyMsg("j"))
	m, _ = m.Update(keyMsg("j"))
	m, _ = m.Update(keyMsg("j"))

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(SelectedTicketMsg)
	require.True(t, ok)
	assert.Equal(t, "8", msg.TicketID)
}

func TestDashboardReloadClampsCursorAndPage(t *testing.T) {
	m := New(nil, keys.DefaultKeyMap(), 80, 24)
	m, _ = m.Update(TicketsLoadedMsg{Tickets: ticketFixtures(20)})

	m, _ = m.Update(keyMsg("l"))
	m, _ = m.Update(keyMsg("l"))
	m, _ = m.Update(keyMsg("l")) // page 4

	m, _ = m.Update(TicketsLoadedMsg{Tickets: ticketFixtures(3)})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(SelectedTicketMsg)
	require.True(t, ok)
	assert.Equal(t, "1", msg.TicketID, "cursor should be back on page 1 after shrink")
}

func TestDashboardConnectSubmitsInput(t *testing.T) {
	m := New(nil, keys.DefaultKeyMap(), 80, 24)

	m, _ = m.Update(keyMsg("c"))
	assert.True(t, m.Connecting())

	for _, r := range "golang/go" {
		m, _ = m.Update(keyMsg(string(r)))
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(ConnectRequestMsg)
	require.True(t, ok)
	assert.Equal(t, "golang/go", msg.Input)
	assert.False(t, m.Connecting())
}

func TestDashboardIgnoresActionsOnEmptyBoard(t *testing.T) {
	m := New(nil, keys.DefaultKeyMap(), 80, 24)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)

	_, cmd = m.Update(keyMsg("d"))
	assert.Nil(t, cmd)

	_, cmd = m.Update(keyMsg("D"))
	assert.Nil(t, cmd)
}
