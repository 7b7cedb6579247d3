package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"
)

const (
	// defaultPageSize is the number of items requested per listing page.
	defaultPageSize = 100

	// defaultMaxPages caps how many listing pages one load will fetch.
	// 10 pages of 100 items is a deliberate ceiling, not a guarantee
	// that every open item was retrieved.
	defaultMaxPages = 10
)

// Client retrieves open issues and pull requests from a GitHub repository.
type Client struct {
	gh       *github.Client
	pageSize int
	maxPages int
}

// NewClient creates an issue ingestion client. When token is non-empty it is
// attached to every request via an oauth2 bearer transport, which raises the
// rate limit; otherwise requests are sent unauthenticated.
func NewClient(ctx context.Context, token string) *Client {
	var httpClient *http.Client
	if strings.TrimSpace(token) != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	return &Client{
		gh:       github.NewClient(httpClient),
		pageSize: defaultPageSize,
		maxPages: defaultMaxPages,
	}
}

// SetBaseURL points the client at a different API root. Used for GitHub
// Enterprise installs and by tests.
func (c *Client) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid github api url: %w", err)
	}
	c.gh.BaseURL = parsed
	c.gh.UploadURL = parsed
	return nil
}

// FetchOpenItems retrieves open issues and pull requests from owner/repo,
// paging sequentially until one of the stop conditions is reached:
//
//  1. the first page fails: a typed FetchError is returned, no results;
//  2. a later page fails: the items accumulated so far are returned;
//  3. a page comes back empty: stop;
//  4. a page comes back short: accept it, then stop (last-page heuristic);
//  5. the page cap is reached.
//
// Each page is attempted exactly once; there is no retry or backoff.
func (c *Client) FetchOpenItems(ctx context.Context, owner, repo string) ([]*github.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State: "open",
		ListOptions: github.ListOptions{
			PerPage: c.pageSize,
		},
	}

	var all []*github.Issue
	for page := 1; page <= c.maxPages; page++ {
		opts.Page = page

		issues, resp, err := c.gh.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			if page == 1 {
				return nil, classifyFetchError(resp, err)
			}
			// Best-effort degrade: keep what we already have.
			slog.Warn("issue listing stopped early",
				"repo", owner+"/"+repo,
				"page", page,
				"accumulated", len(all),
				"error", err)
			break
		}

		if len(issues) == 0 {
			break
		}

		all = append(all, issues...)

		if len(issues) < c.pageSize {
			break
		}
	}

	return all, nil
}

// classifyFetchError maps a first-page listing failure onto a FetchError.
func classifyFetchError(resp *github.Response, err error) *FetchError {
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	switch status {
	case http.StatusNotFound:
		return &FetchError{
			Kind:       FetchNotFound,
			StatusCode: status,
			Message:    "repository not found",
		}
	case http.StatusForbidden:
		return &FetchError{
			Kind:       FetchRateLimited,
			StatusCode: status,
			Message:    "API rate limit exceeded or access denied",
		}
	default:
		return &FetchError{
			Kind:       FetchAPI,
			StatusCode: status,
			Message:    fmt.Sprintf("GitHub API error: %v", err),
		}
	}
}
