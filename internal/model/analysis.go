package model

// AnalysisResult is the structured output of one AI analysis request.
// It is ephemeral: owned by the view that requested it and discarded on
// navigation away, never persisted.
type AnalysisResult struct {
	// RootCause is a concise technical explanation of the defect.
	RootCause string `json:"rootCause"`

	// ProposedSolution is a high-level fix strategy.
	ProposedSolution string `json:"proposedSolution"`

	// FilesToModify lists likely file paths needing changes, in the
	// order the model produced them.
	FilesToModify []string `json:"filesToModify"`

	// Confidence is the model's self-reported confidence, 0-100.
	Confidence int `json:"confidence"`

	// SuggestedGitComment is Markdown ready to be pasted into a GitHub
	// issue comment or PR description.
	SuggestedGitComment string `json:"suggestedGitComment"`
}
