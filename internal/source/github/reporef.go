package github

import (
	"fmt"
	"net/url"
	"strings"
)

// RepoRef identifies one GitHub repository.
type RepoRef struct {
	Owner string
	Repo  string
}

// String returns the "owner/repo" form of the reference.
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Repo
}

// ParseRefError indicates that user input could not be parsed into a
// repository reference. It is user-correctable and shown inline.
type ParseRefError struct {
	Input string
}

func (e *ParseRefError) Error() string {
	return fmt.Sprintf("invalid repository reference %q: use 'owner/repo' or a full URL", e.Input)
}

// ParseRepoRef turns free-form user input into a repository reference.
// Two shapes are accepted: a full URL (https://github.com/owner/repo,
// optionally with a trailing .git) whose first two path segments become
// owner and repo, and a bare "owner/repo" token (also optionally with a
// trailing .git) that must split into exactly two non-empty segments.
func ParseRepoRef(input string) (RepoRef, error) {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "http://") || strings.HasPrefix(clean, "https://") {
		u, err := url.Parse(clean)
		if err != nil {
			return RepoRef{}, &ParseRefError{Input: input}
		}

		path := strings.TrimSuffix(u.Path, ".git")
		var parts []string
		for _, seg := range strings.Split(path, "/") {
			if seg != "" {
				parts = append(parts, seg)
			}
		}
		if len(parts) >= 2 {
			return RepoRef{Owner: parts[0], Repo: parts[1]}, nil
		}
		return RepoRef{}, &ParseRefError{Input: input}
	}

	path := strings.TrimSuffix(clean, ".git")
	parts := strings.Split(path, "/")
	if len(parts) != 2 {
		return RepoRef{}, &ParseRefError{Input: input}
	}

	owner := strings.TrimSpace(parts[0])
	repo := strings.TrimSpace(parts[1])
	if owner == "" || repo == "" {
		return RepoRef{}, &ParseRefError{Input: input}
	}

	return RepoRef{Owner: owner, Repo: repo}, nil
}
