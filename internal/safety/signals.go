package safety

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Static lookup tables for the shape signals. Built once, never mutated.
var (
	knownExtensions = map[string]struct{}{
		".go":    {},
		".ts":    {},
		".tsx":   {},
		".js":    {},
		".jsx":   {},
		".py":    {},
		".rs":    {},
		".java":  {},
		".kt":    {},
		".rb":    {},
		".php":   {},
		".cs":    {},
		".cpp":   {},
		".c":     {},
		".h":     {},
		".swift": {},
		".sql":   {},
		".sh":    {},
		".yaml":  {},
		".yml":   {},
		".json":  {},
		".toml":  {},
		".md":    {},
		".txt":   {},
		".css":   {},
		".html":  {},
	}

	knownTools = map[string]struct{}{
		"npm":     {},
		"npx":     {},
		"yarn":    {},
		"pnpm":    {},
		"go":      {},
		"cargo":   {},
		"pip":     {},
		"poetry":  {},
		"maven":   {},
		"gradle":  {},
		"make":    {},
		"docker":  {},
		"git":     {},
		"kubectl": {},
		"curl":    {},
		"grep":    {},
		"sed":     {},
		"awk":     {},
	}

	knownPathRoots = map[string]struct{}{
		"src":      {},
		"lib":      {},
		"test":     {},
		"tests":    {},
		"docs":     {},
		"cmd":      {},
		"internal": {},
		"pkg":      {},
		"dist":     {},
		"build":    {},
		"scripts":  {},
		"config":   {},
	}

	importPrefixes = []string{
		"import ",
		"from ",
		"require(",
		"include ",
		"use ",
	}

	// Words that read as ordinary prose far more often than as code.
	commonWords = map[string]struct{}{
		"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
		"if": {}, "then": {}, "else": {}, "for": {}, "while": {},
		"do": {}, "done": {}, "this": {}, "that": {}, "it": {},
		"is": {}, "are": {}, "was": {}, "be": {}, "to": {}, "of": {},
		"in": {}, "on": {}, "at": {}, "by": {}, "with": {}, "from": {},
		"not": {}, "no": {}, "yes": {}, "all": {}, "any": {}, "can": {},
		"will": {}, "may": {}, "must": {}, "should": {}, "use": {},
		"get": {}, "set": {}, "run": {}, "new": {}, "old": {},
		"time": {}, "name": {}, "value": {}, "type": {}, "key": {},
		"file": {}, "line": {}, "list": {}, "map": {}, "string": {},
		"data": {}, "test": {}, "check": {}, "open": {}, "close": {},
		"read": {}, "write": {}, "start": {}, "end": {}, "here": {},
		"there": {}, "now": {}, "only": {}, "also": {}, "more": {},
		"some": {}, "each": {}, "same": {}, "other": {}, "first": {},
		"last": {}, "next": {}, "one": {}, "two": {}, "way": {},
		"work": {}, "part": {}, "case": {}, "code": {}, "note": {},
	}

	// Natural-language paired phrases that look like code but are prose.
	pairedPhrases = map[string]struct{}{
		"pass/fail":     {},
		"on/off":        {},
		"yes/no":        {},
		"true/false":    {},
		"and/or":        {},
		"input/output":  {},
		"read/write":    {},
		"client/server": {},
		"either/or":     {},
		"before/after":  {},
	}

	ambiguousShortWords = map[string]struct{}{
		"app": {}, "api": {}, "bot": {}, "dev": {}, "doc": {},
		"env": {}, "lib": {}, "log": {}, "net": {}, "ref": {},
		"tag": {}, "tmp": {}, "var": {}, "bin": {}, "arg": {},
	}

	proseIndicators = []string{
		"for example",
		"for instance",
		"i think",
		"i believe",
		"in other words",
		"such as",
		"as well as",
		"in general",
		"note that",
		"keep in mind",
	}

	technicalActions = []string{
		"install",
		"configure",
		"execute",
		"compile",
		"deploy",
		"import",
		"invoke",
		"initialize",
		"instantiate",
		"override",
	}

	// Tokens that mark a heading as technical for case normalization.
	technicalTerms = map[string]struct{}{
		"api": {}, "cli": {}, "sdk": {}, "http": {}, "https": {},
		"url": {}, "json": {}, "yaml": {}, "xml": {}, "sql": {},
		"html": {}, "css": {}, "oauth": {}, "jwt": {}, "grpc": {},
		"ssh": {}, "tls": {}, "dns": {}, "cpu": {}, "gpu": {},
		"ci": {}, "cd": {}, "ide": {}, "orm": {}, "regex": {},
		"github": {}, "gitlab": {}, "javascript": {}, "typescript": {},
		"golang": {}, "nodejs": {}, "kubernetes": {}, "postgresql": {},
	}

	snakeCaseRe    = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)+$`)
	camelCaseRe    = regexp.MustCompile(`^[a-z][a-z0-9]*([A-Z][a-z0-9]*)+$`)
	constantCaseRe = regexp.MustCompile(`^[A-Z][A-Z0-9]*(_[A-Z0-9]+)+$`)
	pascalCaseRe   = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	alphabeticRe   = regexp.MustCompile(`^[a-zA-Z]+$`)
)

// filePathSignal scores how much text looks like a file path. Strings
// without a path separator never score.
func filePathSignal(w Weights, text string) float64 {
	if !strings.Contains(text, "/") {
		return 0
	}

	segments := strings.Split(text, "/")
	if hasKnownExtension(text) {
		return w.PathWithExtension
	}

	if len(segments) >= 2 {
		root := strings.ToLower(strings.TrimSpace(segments[0]))
		if _, ok := knownPathRoots[root]; ok {
			return w.PathKnownRoot
		}
	}

	if len(segments) == 2 && segments[0] != "" && segments[1] != "" {
		return w.PathBare
	}

	return 0
}

// commandSignal scores command and identifier shapes, capped at CommandCap.
func commandSignal(w Weights, text string) float64 {
	var score float64

	if hasKnownExtension(text) {
		score += w.ExtensionSuffix
	}

	lower := strings.ToLower(text)
	for _, prefix := range importPrefixes {
		if strings.HasPrefix(lower, prefix) {
			score += w.ImportPrefix
			break
		}
	}

	if fields := strings.Fields(text); len(fields) > 0 {
		if _, ok := knownTools[strings.ToLower(fields[0])]; ok {
			score += w.KnownTool
		}
	}

	trimmed := strings.TrimSpace(text)
	switch {
	case len(trimmed) > 2 && constantCaseRe.MatchString(trimmed):
		score += w.ConstantCase
	case snakeCaseRe.MatchString(trimmed):
		score += w.SnakeCase
	case camelCaseRe.MatchString(trimmed):
		score += w.CamelCase
	case isPascalCase(trimmed):
		score += w.PascalCase
	}

	if score > w.CommandCap {
		score = w.CommandCap
	}
	return score
}

// naturalLanguageSignal returns a negative contribution for text that reads
// as prose. The exact-match cases are terminal; the length heuristics
// accumulate.
func naturalLanguageSignal(w Weights, text string) float64 {
	normalized := strings.ToLower(strings.TrimSpace(text))

	if _, ok := commonWords[normalized]; ok {
		return w.CommonWord
	}
	if _, ok := pairedPhrases[normalized]; ok {
		return w.PairedPhrase
	}
	if _, ok := ambiguousShortWords[normalized]; ok {
		return w.AmbiguousShort
	}

	var score float64
	if len(normalized) <= 2 {
		score += w.VeryShort
	}
	if len(normalized) < 5 && alphabeticRe.MatchString(normalized) {
		score += w.ShortAlphabetic
	}
	return score
}

// contextSignal adjusts for the surrounding line. The three adjustments
// are independent and additive.
func contextSignal(w Weights, term, line string) float64 {
	if line == "" {
		return 0
	}

	var score float64
	lowerLine := strings.ToLower(line)

	for _, phrase := range proseIndicators {
		if strings.Contains(lowerLine, phrase) {
			score += w.ProseIndicator
			break
		}
	}

	if term != "" && strings.Count(lowerLine, strings.ToLower(term)) > 1 {
		score += w.RepeatedTerm
	}

	for _, action := range technicalActions {
		if strings.Contains(lowerLine, action) {
			score += w.TechnicalAction
			break
		}
	}

	return score
}

func hasKnownExtension(text string) bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(text)))
	if ext == "" {
		return false
	}
	_, ok := knownExtensions[ext]
	return ok
}

func isPascalCase(s string) bool {
	if !pascalCaseRe.MatchString(s) {
		return false
	}
	var upper, lower int
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper++
		case r >= 'a' && r <= 'z':
			lower++
		}
	}
	return upper >= 2 && lower >= 1
}
