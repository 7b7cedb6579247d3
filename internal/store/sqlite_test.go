package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/bugboard/internal/model"
	"github.com/nhle/bugboard/tests/testutil"
)

func ticketFixture(id string, mutate func(*model.Ticket)) model.Ticket {
	t := model.Ticket{
		ID:                  id,
		Title:               "ticket " + id,
		Description:         "body",
		Repository:          "o/r",
		Severity:            model.SeverityMedium,
		Status:              model.StatusOpen,
		Labels:              []string{"bug"},
		AssignedAt:          time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		EstimatedCompletion: model.EstimatePlaceholderMinutes,
		Author:              "octocat",
		Comments:            1,
		URL:                 "https://github.com/o/r/issues/" + id,
	}
	if mutate != nil {
		mutate(&t)
	}
	return t
}

func ticketFixtures(n int) []model.Ticket {
	tickets := make([]model.Ticket, n)
	for i := range tickets {
		tickets[i] = ticketFixture(fmt.Sprint(i+1), nil)
	}
	return tickets
}

func TestReplaceAndGetTicketsPreservesOrder(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	in := []model.Ticket{
		ticketFixture("30", nil),
		ticketFixture("4", nil),
		ticketFixture("17", nil),
	}
	require.NoError(t, s.ReplaceTickets(ctx, in))

	got, err := s.GetTickets(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Source order, not lexical/numeric ID order.
	assert.Equal(t, "30", got[0].ID)
	assert.Equal(t, "4", got[1].ID)
	assert.Equal(t, "17", got[2].ID)

	assert.Equal(t, in[0].Title, got[0].Title)
	assert.Equal(t, in[0].Labels, got[0].Labels)
	assert.Equal(t, in[0].Severity, got[0].Severity)
	assert.True(t, got[0].AssignedAt.Equal(in[0].AssignedAt))
}

func TestReplaceTicketsSwapsWholeCollection(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceTickets(ctx, ticketFixtures(5)))
	require.NoError(t, s.ReplaceTickets(ctx, []model.Ticket{ticketFixture("99", nil)}))

	got, err := s.GetTickets(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "99", got[0].ID)
}

func TestGetTicketByID(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceTickets(ctx, ticketFixtures(2)))

	got, err := s.GetTicketByID(ctx, "2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ticket 2", got.Title)

	missing, err := s.GetTicketByID(ctx, "404")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteTicket(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceTickets(ctx, ticketFixtures(3)))
	require.NoError(t, s.DeleteTicket(ctx, "2"))

	got, err := s.GetTickets(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestResolveTicketIsSticky(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceTickets(ctx, ticketFixtures(2)))
	require.NoError(t, s.ResolveTicket(ctx, "1"))

	got, err := s.GetTicketByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusResolved, got.Status)

	// Deleting and resolving other tickets does not touch the annotation.
	require.NoError(t, s.DeleteTicket(ctx, "2"))
	got, err = s.GetTicketByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusResolved, got.Status)
}

func TestTicketCounts(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	tickets := []model.Ticket{
		ticketFixture("1", nil), // open issue
		ticketFixture("2", nil), // open issue
		ticketFixture("3", func(t *model.Ticket) {
			t.Status = model.StatusInProgress
		}),
		ticketFixture("4", func(t *model.Ticket) {
			t.Status = model.StatusAwaitingReview
			t.IsPullRequest = true
			t.EstimatedCompletion = 0
		}),
		ticketFixture("5", func(t *model.Ticket) {
			t.Status = model.StatusResolved
		}),
	}
	require.NoError(t, s.ReplaceTickets(ctx, tickets))

	counts, err := s.TicketCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Counts{
		Open:         2,
		PullRequests: 1,
		Resolved:     1,
		InProgress:   1,
	}, counts)
}

func TestTicketCountsEmpty(t *testing.T) {
	s := testutil.NewTestStore(t)

	counts, err := s.TicketCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Counts{}, counts)
}

func TestActivityLogNewestFirst(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := model.ActivityRecord{
			ID:        uuid.NewString(),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Action:    fmt.Sprintf("action %d", i),
			Details:   "details",
			Type:      model.ActivitySystem,
		}
		require.NoError(t, s.AppendActivity(ctx, rec))
	}

	got, err := s.GetActivities(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "action 2", got[0].Action)
	assert.Equal(t, "action 0", got[2].Action)
}

func TestClearActivitiesLeavesTicketsAlone(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceTickets(ctx, ticketFixtures(2)))
	require.NoError(t, s.AppendActivity(ctx, model.ActivityRecord{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Action:    "Repository Loaded",
		Type:      model.ActivitySystem,
	}))

	require.NoError(t, s.ClearActivities(ctx))

	activities, err := s.GetActivities(ctx)
	require.NoError(t, err)
	assert.Empty(t, activities)

	tickets, err := s.GetTickets(ctx)
	require.NoError(t, err)
	assert.Len(t, tickets, 2)
}

func TestClearTickets(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceTickets(ctx, ticketFixtures(4)))
	require.NoError(t, s.ClearTickets(ctx))

	got, err := s.GetTickets(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}
