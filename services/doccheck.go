package services

import (
	"fmt"
	"strings"

	"vibecode/models"
)

// evaluateDocumentation structurally inspects the user's submission: per
// required function, the declaration must exist and its doc block must carry
// every required tag; the readme part must contain every required section
// heading. All checks are independent and every failure is reported in one
// pass.
func evaluateDocumentation(spec *models.DocumentationSpec, userCode string) *models.EvaluationResult {
	var feedback strings.Builder
	passed := true

	parts := strings.SplitN(userCode, spec.FileDelimiter, 2)
	codeContent := parts[0]
	readmeContent := ""
	if len(parts) > 1 {
		readmeContent = parts[1]
	}

	for _, rule := range spec.Functions {
		if !checkDocBlock(rule, codeContent, &feedback) {
			passed = false
		}
	}

	for _, section := range spec.ReadmeSections {
		if !strings.Contains(readmeContent, section) {
			fmt.Fprintf(&feedback, "README.md is missing '%s' section. ", section)
			passed = false
		}
	}

	if passed {
		return &models.EvaluationResult{
			Passed:   true,
			Feedback: "Documentation looks good! All required doc comments and README sections are present.",
		}
	}
	return &models.EvaluationResult{Passed: false, Feedback: strings.TrimSpace(feedback.String())}
}

// checkDocBlock verifies that the named function exists and that the comment
// block immediately preceding its declaration contains every required tag
func checkDocBlock(rule models.DocFunctionRule, content string, feedback *strings.Builder) bool {
	declIdx := strings.Index(content, "function "+rule.Name+"(")
	if declIdx == -1 {
		fmt.Fprintf(feedback, "Function '%s' not found in utils.js. ", rule.Name)
		return false
	}

	prefix := content[:declIdx]
	openIdx := strings.LastIndex(prefix, "/**")
	closeIdx := strings.LastIndex(prefix, "*/")
	// The doc block must directly precede the declaration; a block further up
	// belongs to an earlier function.
	if openIdx == -1 || closeIdx < openIdx || strings.TrimSpace(prefix[closeIdx+2:]) != "" {
		fmt.Fprintf(feedback, "Function '%s' is missing JSDoc block. ", rule.Name)
		return false
	}

	docBlock := prefix[openIdx : closeIdx+2]
	ok := true
	for _, tag := range rule.RequiredTags {
		if !strings.Contains(docBlock, tag) {
			fmt.Fprintf(feedback, "Function '%s' is missing JSDoc tag '%s'. ", rule.Name, tag)
			ok = false
		}
	}
	return ok
}
