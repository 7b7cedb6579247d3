package model

import "time"

// Severity is the derived urgency of a ticket, computed from its labels.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Normalized ticket status constants.
//
// StatusOpen, StatusInProgress, and StatusAwaitingReview are derived from the
// source payload during normalization. StatusResolved is a terminal, local-only
// annotation: it is set by an explicit user action and is never re-derived,
// so it survives until the ticket itself is removed.
const (
	StatusOpen           = "open"
	StatusInProgress     = "in_progress"
	StatusAwaitingReview = "awaiting_review"
	StatusResolved       = "resolved"
)

// EstimatePlaceholderMinutes is the fixed completion estimate assigned to
// issues. It is a display placeholder, not a real estimate; pull requests
// get 0 instead.
const EstimatePlaceholderMinutes = 45

// Ticket is the local representation of one GitHub issue or pull request.
type Ticket struct {
	// ID is the item's GitHub number as text, unique within one loaded
	// repository. Loading a new repository replaces the whole collection.
	ID string `json:"id"`

	// Title is the item's summary line.
	Title string `json:"title"`

	// Description is the item body, or a placeholder when the body is empty.
	Description string `json:"description"`

	// Repository is the "owner/repo" pair the ticket was loaded from.
	Repository string `json:"repository"`

	// Severity is derived from label text; it is not authoritative.
	Severity Severity `json:"severity"`

	// Status is the normalized status (use the Status* constants).
	Status string `json:"status"`

	// Labels holds the source label names in source order.
	Labels []string `json:"labels"`

	// AssignedAt is the item's creation time in the source system.
	AssignedAt time.Time `json:"assigned_at"`

	// EstimatedCompletion is minutes to completion: 0 for pull requests,
	// EstimatePlaceholderMinutes for issues.
	EstimatedCompletion int `json:"estimated_completion"`

	// Author is the login of the item's creator.
	Author string `json:"author"`

	// Comments is the item's comment count.
	Comments int `json:"comments"`

	// URL is the deep link back to the item, when available.
	URL string `json:"url,omitempty"`

	// IsPullRequest reports whether the item is a pull request rather
	// than an issue.
	IsPullRequest bool `json:"is_pull_request"`
}

// Counts holds the derived dashboard statistics for one loaded collection.
type Counts struct {
	// Open counts tickets with status open that are not pull requests.
	Open int

	// PullRequests counts all pull requests regardless of status.
	PullRequests int

	// Resolved counts tickets marked resolved locally.
	Resolved int

	// InProgress counts tickets with status in_progress.
	InProgress int
}
