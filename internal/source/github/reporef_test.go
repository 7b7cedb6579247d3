package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepoRef(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    RepoRef
		wantErr bool
	}{
		{
			name:  "bare owner/repo",
			input: "owner/repo",
			want:  RepoRef{Owner: "owner", Repo: "repo"},
		},
		{
			name:  "bare form with .git suffix",
			input: "owner/repo.git",
			want:  RepoRef{Owner: "owner", Repo: "repo"},
		},
		{
			name:  "bare form with surrounding whitespace",
			input: "  facebook/react  ",
			want:  RepoRef{Owner: "facebook", Repo: "react"},
		},
		{
			name:  "full https URL",
			input: "https://github.com/owner/repo",
			want:  RepoRef{Owner: "owner", Repo: "repo"},
		},
		{
			name:  "full URL with .git suffix",
			input: "https://github.com/owner/repo.git",
			want:  RepoRef{Owner: "owner", Repo: "repo"},
		},
		{
			name:  "URL with extra path segments keeps first two",
			input: "https://github.com/owner/repo/issues/42",
			want:  RepoRef{Owner: "owner", Repo: "repo"},
		},
		{
			name:    "single word",
			input:   "justoneword",
			wantErr: true,
		},
		{
			name:    "three bare segments",
			input:   "a/b/c",
			wantErr: true,
		},
		{
			name:    "empty owner",
			input:   "/repo",
			wantErr: true,
		},
		{
			name:    "empty repo after trim",
			input:   "owner/ ",
			wantErr: true,
		},
		{
			name:    "URL with a single segment",
			input:   "https://github.com/owner",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRepoRef(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				var parseErr *ParseRefError
				assert.ErrorAs(t, err, &parseErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRepoRefString(t *testing.T) {
	ref := RepoRef{Owner: "cli", Repo: "cli"}
	assert.Equal(t, "cli/cli", ref.String())
}
