package safety

import "strings"

// calculateConfidence dispatches to the calculator for the candidate's
// category. Unknown categories score zero, so a malformed candidate
// degrades to skip instead of an error.
func calculateConfidence(w Weights, cand Candidate) (float64, Breakdown) {
	switch cand.Category {
	case CategoryCaseNormalize:
		return caseNormalizeConfidence(w, cand.Original, cand.Proposed)
	case CategoryTokenWrap:
		return tokenWrapConfidence(w, cand.Original, cand.Context)
	case CategorySymbolReplace, CategoryLinkAutolink:
		return fixedRuleConfidence(w)
	default:
		return 0, Breakdown{}
	}
}

// caseNormalizeConfidence scores a capitalization correction by comparing
// the original and proposed word sequences.
func caseNormalizeConfidence(w Weights, original, proposed string) (float64, Breakdown) {
	if original == "" || proposed == "" || original == proposed {
		return 0, Breakdown{}
	}

	breakdown := Breakdown{"baseConfidence": w.Base}
	score := w.Base

	origWords := strings.Fields(original)
	propWords := strings.Fields(proposed)

	if onlyFirstWordRecased(origWords, propWords) {
		breakdown["firstWordCapitalization"] = w.FirstWordCapitalization
		score += w.FirstWordCapitalization
	}

	if strings.EqualFold(original, proposed) && len(origWords) == len(propWords) {
		breakdown["caseOnlyChange"] = w.CaseOnlyChange
		score += w.CaseOnlyChange
	}

	if len(origWords) != len(propWords) {
		breakdown["wordCountMismatch"] = w.WordCountMismatch
		score += w.WordCountMismatch
	}

	if caseDivergenceTooHigh(origWords, propWords) {
		breakdown["caseDivergence"] = w.CaseDivergence
		score += w.CaseDivergence
	}

	if bonus := technicalTermBonus(w, origWords); bonus > 0 {
		breakdown["technicalTerms"] = bonus
		score += bonus
	}

	return clamp01(score), breakdown
}

// tokenWrapConfidence scores wrapping a token in backticks by combining
// the shape signals with the natural-language and context adjustments.
func tokenWrapConfidence(w Weights, original string, ctx *Context) (float64, Breakdown) {
	if strings.TrimSpace(original) == "" {
		return 0, Breakdown{}
	}

	breakdown := Breakdown{"baseConfidence": w.Base}
	score := w.Base

	if v := filePathSignal(w, original); v != 0 {
		breakdown["filePathShape"] = v
		score += v
	}
	if v := commandSignal(w, original); v != 0 {
		breakdown["commandShape"] = v
		score += v
	}
	if v := naturalLanguageSignal(w, original); v != 0 {
		breakdown["naturalLanguagePenalty"] = v
		score += v
	}
	if ctx != nil {
		if v := contextSignal(w, original, ctx.SourceLine); v != 0 {
			breakdown["contextAdjustment"] = v
			score += v
		}
	}

	return clamp01(score), breakdown
}

// fixedRuleConfidence covers the categories whose detection rules only fire
// on unambiguous syntactic matches. No text analysis, constant confidence.
func fixedRuleConfidence(w Weights) (float64, Breakdown) {
	return w.FixedRule, Breakdown{"baseConfidence": w.FixedRule}
}

// onlyFirstWordRecased reports whether the first word changed case in the
// capitalizing direction while every other word stayed byte-identical.
func onlyFirstWordRecased(orig, prop []string) bool {
	if len(orig) == 0 || len(orig) != len(prop) {
		return false
	}
	for i := 1; i < len(orig); i++ {
		if orig[i] != prop[i] {
			return false
		}
	}
	if orig[0] == prop[0] || !strings.EqualFold(orig[0], prop[0]) {
		return false
	}
	return prop[0] == capitalizeFirst(orig[0])
}

// caseDivergenceTooHigh reports whether more than half of the aligned
// words differ in case.
func caseDivergenceTooHigh(orig, prop []string) bool {
	n := len(orig)
	if len(prop) < n {
		n = len(prop)
	}
	if n == 0 {
		return false
	}
	var diff int
	for i := 0; i < n; i++ {
		if orig[i] != prop[i] && strings.EqualFold(orig[i], prop[i]) {
			diff++
		}
	}
	return diff*2 > n
}

func technicalTermBonus(w Weights, words []string) float64 {
	var bonus float64
	for _, word := range words {
		token := strings.ToLower(strings.Trim(word, ".,:;!?()[]{}\"'"))
		if _, ok := technicalTerms[token]; ok {
			bonus += w.TechnicalTerm
		}
	}
	if bonus > w.TechnicalTermCap {
		bonus = w.TechnicalTermCap
	}
	return bonus
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
