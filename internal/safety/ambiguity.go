package safety

import (
	"regexp"
	"strings"
)

// ambiguousTerms maps a normalized word to its known technical meaning.
// These are words that are plausibly either ordinary prose or a proper
// technical term, so a correction touching them deserves less trust.
var ambiguousTerms = map[string]AmbiguityInfo{
	"go": {
		Term:       "go",
		ProperForm: "Go",
		Reason:     "common verb or the Go programming language",
		Kind:       AmbiguityProgrammingLanguage,
	},
	"rust": {
		Term:       "rust",
		ProperForm: "Rust",
		Reason:     "iron oxide or the Rust programming language",
		Kind:       AmbiguityProgrammingLanguage,
	},
	"swift": {
		Term:       "swift",
		ProperForm: "Swift",
		Reason:     "adjective or the Swift programming language",
		Kind:       AmbiguityProgrammingLanguage,
	},
	"python": {
		Term:       "python",
		ProperForm: "Python",
		Reason:     "snake or the Python programming language",
		Kind:       AmbiguityProgrammingLanguage,
	},
	"ruby": {
		Term:       "ruby",
		ProperForm: "Ruby",
		Reason:     "gemstone or the Ruby programming language",
		Kind:       AmbiguityProgrammingLanguage,
	},
	"java": {
		Term:       "java",
		ProperForm: "Java",
		Reason:     "coffee, the island, or the Java programming language",
		Kind:       AmbiguityProgrammingLanguage,
	},
	"dart": {
		Term:       "dart",
		ProperForm: "Dart",
		Reason:     "projectile or the Dart programming language",
		Kind:       AmbiguityProgrammingLanguage,
	},
	"shell": {
		Term:       "shell",
		ProperForm: "shell",
		Reason:     "seashell or a command-line shell",
		Kind:       AmbiguityProperNounOrCommon,
	},
	"docker": {
		Term:       "docker",
		ProperForm: "Docker",
		Reason:     "dock worker or the Docker container platform",
		Kind:       AmbiguityProductName,
	},
	"windows": {
		Term:       "windows",
		ProperForm: "Windows",
		Reason:     "glass panes or the Windows operating system",
		Kind:       AmbiguityProductName,
	},
	"atom": {
		Term:       "atom",
		ProperForm: "Atom",
		Reason:     "particle, the editor, or the feed format",
		Kind:       AmbiguityProductName,
	},
	"notion": {
		Term:       "notion",
		ProperForm: "Notion",
		Reason:     "idea or the Notion product",
		Kind:       AmbiguityProductName,
	},
	"slack": {
		Term:       "slack",
		ProperForm: "Slack",
		Reason:     "looseness or the Slack product",
		Kind:       AmbiguityProductName,
	},
	"major": {
		Term:       "major",
		ProperForm: "major",
		Reason:     "adjective or a semver major version",
		Kind:       AmbiguitySemverTerm,
	},
	"minor": {
		Term:       "minor",
		ProperForm: "minor",
		Reason:     "adjective or a semver minor version",
		Kind:       AmbiguitySemverTerm,
	},
	"patch": {
		Term:       "patch",
		ProperForm: "patch",
		Reason:     "noun or a semver patch version",
		Kind:       AmbiguitySemverTerm,
	},
	"make": {
		Term:       "make",
		ProperForm: "make",
		Reason:     "common verb or the make build tool",
		Kind:       AmbiguityProperNounOrCommon,
	},
	"brew": {
		Term:       "brew",
		ProperForm: "brew",
		Reason:     "verb or the Homebrew package manager",
		Kind:       AmbiguityProperNounOrCommon,
	},
}

var nonAlphabeticRe = regexp.MustCompile(`[^a-z]+`)

// lookupAmbiguity scans the lowercased alphabetic tokens of text in order
// and returns the first known ambiguous term, or nil. Total: no match is a
// normal outcome.
func lookupAmbiguity(text string) *AmbiguityInfo {
	normalized := strings.ToLower(text)
	for _, token := range nonAlphabeticRe.Split(normalized, -1) {
		if token == "" {
			continue
		}
		if info, ok := ambiguousTerms[token]; ok {
			return &info
		}
	}
	return nil
}
