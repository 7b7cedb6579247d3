package github

import (
	"strconv"
	"strings"

	"github.com/google/go-github/v41/github"

	"github.com/nhle/bugboard/internal/model"
)

// noDescription substitutes for an empty issue body.
const noDescription = "No description provided."

// severityRules maps label keywords to severities in precedence order.
// The first rule whose keywords match any label wins, regardless of the
// order the labels appear on the issue.
var severityRules = []struct {
	severity model.Severity
	keywords []string
}{
	{model.SeverityCritical, []string{"critical", "urgent", "security"}},
	{model.SeverityHigh, []string{"high", "major"}},
	{model.SeverityLow, []string{"low", "minor"}},
}

// Normalize maps one raw GitHub issue or pull request onto the local ticket
// shape. Severity is derived from label text and status from assignment and
// pull-request-ness; neither is authoritative.
func Normalize(issue *github.Issue, owner, repo string) model.Ticket {
	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		labels = append(labels, l.GetName())
	}

	// The pull-request check runs last and unconditionally, so it
	// overrides the assignee-derived status.
	status := model.StatusOpen
	if issue.Assignee != nil {
		status = model.StatusInProgress
	}
	isPR := issue.PullRequestLinks != nil
	if isPR {
		status = model.StatusAwaitingReview
	}

	description := issue.GetBody()
	if description == "" {
		description = noDescription
	}

	estimate := model.EstimatePlaceholderMinutes
	if isPR {
		estimate = 0
	}

	return model.Ticket{
		ID:                  strconv.Itoa(issue.GetNumber()),
		Title:               issue.GetTitle(),
		Description:         description,
		Repository:          owner + "/" + repo,
		Severity:            deriveSeverity(labels),
		Status:              status,
		Labels:              labels,
		AssignedAt:          issue.GetCreatedAt(),
		EstimatedCompletion: estimate,
		Author:              issue.GetUser().GetLogin(),
		Comments:            issue.GetComments(),
		URL:                 issue.GetHTMLURL(),
		IsPullRequest:       isPR,
	}
}

// deriveSeverity inspects label names case-insensitively and returns the
// first matching severity in rule precedence order, defaulting to medium.
func deriveSeverity(labels []string) model.Severity {
	lowered := make([]string, len(labels))
	for i, l := range labels {
		lowered[i] = strings.ToLower(l)
	}

	for _, rule := range severityRules {
		for _, label := range lowered {
			for _, kw := range rule.keywords {
				if strings.Contains(label, kw) {
					return rule.severity
				}
			}
		}
	}
	return model.SeverityMedium
}
