package ai

import (
	"fmt"
	"strings"
)

// buildPrompt renders the single-turn analysis prompt shared by every
// backend. The model is instructed to reply with a JSON object carrying
// exactly the five AnalysisResult fields.
func buildPrompt(title, description, repoContext string) string {
	var sb strings.Builder

	sb.WriteString("You are a Senior Bug-Fixing Developer AI. Analyze the following bug report.\n\n")
	sb.WriteString(fmt.Sprintf("Repository: %s\n", repoContext))
	sb.WriteString(fmt.Sprintf("Bug Title: %s\n", title))
	sb.WriteString(fmt.Sprintf("Description: %s\n\n", description))
	sb.WriteString("Provide a structured analysis in JSON format containing:\n")
	sb.WriteString("1. rootCause: A concise technical explanation of why the bug is happening.\n")
	sb.WriteString("2. proposedSolution: A high-level strategy to fix it.\n")
	sb.WriteString("3. filesToModify: A list of likely file paths that need changes.\n")
	sb.WriteString("4. confidence: A number between 0 and 100 representing your confidence level.\n")
	sb.WriteString("5. suggestedGitComment: A comprehensive Markdown-formatted response ready to be ")
	sb.WriteString("pasted directly into a GitHub issue comment or PR description. It should ")
	sb.WriteString("summarize the root cause, detail the proposed solution step-by-step, and ")
	sb.WriteString("list the files to be changed.\n")

	return sb.String()
}
