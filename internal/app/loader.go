package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/nhle/bugboard/internal/model"
	"github.com/nhle/bugboard/internal/source/github"
	"github.com/nhle/bugboard/internal/store"
)

// repoLoadedMsg carries the outcome of a repository load pipeline run.
type repoLoadedMsg struct {
	ref   github.RepoRef
	count int
	err   error
}

// ticketsChangedMsg is sent after a store mutation (delete, resolve, clear).
type ticketsChangedMsg struct {
	err error
}

// activitiesClearedMsg is sent after the activity log is emptied.
type activitiesClearedMsg struct {
	err error
}

// ticketDetailMsg carries a ticket loaded for the detail view.
type ticketDetailMsg struct {
	ticket *model.Ticket
}

// newActivity builds an activity record stamped with a fresh ID and the
// current time.
func newActivity(t model.ActivityType, ticketID, action, details string) model.ActivityRecord {
	return model.ActivityRecord{
		ID:        uuid.New().String(),
		TicketID:  ticketID,
		Timestamp: time.Now(),
		Action:    action,
		Details:   details,
		Type:      t,
	}
}

// recordActivity appends a record, logging rather than surfacing failures:
// the audit trail must never block a user action.
func recordActivity(ctx context.Context, s store.Store, rec model.ActivityRecord) {
	if err := s.AppendActivity(ctx, rec); err != nil {
		slog.Error("recording activity", "action", rec.Action, "error", err)
	}
}

// loadRepo returns a command running the full ingestion pipeline: parse the
// reference, fetch open items, normalize them, and replace the collection.
func (m Model) loadRepo(input string) tea.Cmd {
	s := m.store
	token := m.githubToken
	return func() tea.Msg {
		ctx := context.Background()

		ref, err := github.ParseRepoRef(input)
		if err != nil {
			return repoLoadedMsg{err: err}
		}

		recordActivity(ctx, s, newActivity(
			model.ActivitySystem, "",
			"load started", "fetching open items from "+ref.String(),
		))

		client := github.NewClient(ctx, token)
		issues, err := client.FetchOpenItems(ctx, ref.Owner, ref.Repo)
		if err != nil {
			recordActivity(ctx, s, newActivity(
				model.ActivitySystem, "",
				"load failed", ref.String()+": "+err.Error(),
			))
			return repoLoadedMsg{ref: ref, err: err}
		}

		tickets := make([]model.Ticket, len(issues))
		for i, issue := range issues {
			tickets[i] = github.Normalize(issue, ref.Owner, ref.Repo)
		}

		if err := s.ReplaceTickets(ctx, tickets); err != nil {
			return repoLoadedMsg{ref: ref, err: err}
		}

		recordActivity(ctx, s, newActivity(
			model.ActivitySystem, "",
			"load finished", fmt.Sprintf("%d tickets from %s", len(tickets), ref),
		))
		slog.Info("repository loaded", "repo", ref.String(), "tickets", len(tickets))

		return repoLoadedMsg{ref: ref, count: len(tickets)}
	}
}

// loadTicketDetail returns a command that loads one ticket for the detail
// view.
func (m Model) loadTicketDetail(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		t, err := s.GetTicketByID(context.Background(), id)
		if err != nil {
			return ticketDetailMsg{}
		}
		return ticketDetailMsg{ticket: t}
	}
}

// deleteTicket returns a command that removes a ticket and records the
// action.
func (m Model) deleteTicket(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx := context.Background()
		if err := s.DeleteTicket(ctx, id); err != nil {
			return ticketsChangedMsg{err: err}
		}
		recordActivity(ctx, s, newActivity(
			model.ActivitySystem, id, "ticket removed", "#"+id+" removed from the board",
		))
		return ticketsChangedMsg{}
	}
}

// resolveTicket returns a command that marks a ticket resolved and records
// the action with the given activity type.
func (m Model) resolveTicket(id string, actType model.ActivityType, details string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx := context.Background()
		if err := s.ResolveTicket(ctx, id); err != nil {
			return ticketsChangedMsg{err: err}
		}
		recordActivity(ctx, s, newActivity(actType, id, "ticket resolved", details))
		return ticketsChangedMsg{}
	}
}

// clearTickets returns a command that empties the board and records the
// action.
func (m Model) clearTickets() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx := context.Background()
		if err := s.ClearTickets(ctx); err != nil {
			return ticketsChangedMsg{err: err}
		}
		recordActivity(ctx, s, newActivity(
			model.ActivitySystem, "", "board cleared", "all tickets removed",
		))
		return ticketsChangedMsg{}
	}
}

// clearActivities returns a command that empties the activity log.
func (m Model) clearActivities() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return activitiesClearedMsg{err: s.ClearActivities(context.Background())}
	}
}

// recordAnalysis returns a command that records the outcome of an AI
// analysis run in the activity log.
func (m Model) recordAnalysis(ticketID, provider string, analysisErr error) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx := context.Background()
		if analysisErr != nil {
			recordActivity(ctx, s, newActivity(
				model.ActivityAnalysis, ticketID,
				"analysis failed", provider+": "+analysisErr.Error(),
			))
		} else {
			recordActivity(ctx, s, newActivity(
				model.ActivityAnalysis, ticketID,
				"analysis finished", "#"+ticketID+" analyzed with "+provider,
			))
		}
		return nil
	}
}
