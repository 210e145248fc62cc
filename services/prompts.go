package services

import "vibecode/models"

const basePrompt = "You are an AI coding assistant for VibeCode, an interactive coding platform. " +
	"Help users with coding challenges, refactoring, testing, documentation, and debugging."

// systemPromptForChallenge maps the request's challenge-type tag to an
// instructional preamble. Unrecognized or absent tags fall back to the base
// prompt.
func systemPromptForChallenge(challengeType string) string {
	switch challengeType {
	case "refactor":
		return basePrompt + " Focus on code refactoring: improving readability, performance, and maintainability while preserving functionality."
	case "test":
		return basePrompt + " Focus on test generation: create comprehensive unit tests, edge cases, and testing strategies."
	case "documentation":
		return basePrompt + " Focus on documentation: generate clear, comprehensive documentation including JSDoc comments and README files."
	case "translate":
		return basePrompt + " Focus on code translation: convert code between languages or frameworks while maintaining functionality and best practices."
	case "debug":
		return basePrompt + " Focus on debugging: help identify bugs, trace logic, and suggest fixes with clear explanations."
	default:
		return basePrompt
	}
}

// challengeTypeOf extracts the optional challenge-type tag from a request
func challengeTypeOf(req *models.ChatRequest) string {
	if req.Context == nil {
		return ""
	}
	return req.Context.ChallengeType
}
