package safety

import (
	"fmt"
	"strings"
)

// Evaluate scores a candidate correction and classifies it into a decision
// tier. It is pure and total: malformed candidates degrade to a skip
// decision, they never produce an error.
func Evaluate(cand Candidate, cfg Config) Decision {
	if !cfg.Enabled {
		return Decision{
			Confidence: 1.0,
			Tier:       TierApply,
			Breakdown:  Breakdown{},
			Reason:     "autofix safety disabled",
		}
	}

	w := cfg.weights()
	normalized := strings.ToLower(cand.Original)

	if term := matchTerm(normalized, cfg.NeverFlag); term != "" {
		return Decision{
			Confidence: 0,
			Tier:       TierSkip,
			Breakdown:  Breakdown{},
			Reason:     fmt.Sprintf("term %q is in neverFlag", term),
		}
	}

	forceTerm := matchTerm(normalized, cfg.AlwaysReview)

	confidence, breakdown := calculateConfidence(w, cand)

	ambiguity := lookupAmbiguity(cand.Original)
	if ambiguity != nil {
		breakdown["ambiguityPenalty"] = -w.AmbiguityPenalty
		confidence -= w.AmbiguityPenalty
		if confidence < 0 {
			confidence = 0
		}
	}

	var tier Tier
	var reason string
	if forceTerm != "" {
		tier = TierReview
		// Report the computed confidence, but keep it under the auto-fix
		// threshold so the number never contradicts the forced tier. The
		// clamp keeps a zero threshold from pushing it negative.
		if confidence >= cfg.AutoFixThreshold {
			confidence = clamp01(cfg.AutoFixThreshold - 0.01)
		}
		reason = fmt.Sprintf("term %q is in alwaysReview", forceTerm)
	} else {
		tier = classifyTier(confidence, cfg.AutoFixThreshold, cfg.ReviewThreshold)
		reason = tierReason(tier, confidence)
	}

	if ambiguity != nil {
		reason += fmt.Sprintf("; ambiguous term %q (%s)", ambiguity.Term, ambiguity.Reason)
	}

	decision := Decision{
		Confidence: confidence,
		Tier:       tier,
		Breakdown:  breakdown,
		Ambiguity:  ambiguity,
		Reason:     reason,
	}
	if tier == TierReview {
		decision.SuggestedFix = cand.Proposed
	}
	return decision
}

func matchTerm(normalized string, terms []string) string {
	for _, term := range terms {
		t := strings.ToLower(strings.TrimSpace(term))
		if t == "" {
			continue
		}
		if strings.Contains(normalized, t) {
			return term
		}
	}
	return ""
}

func tierReason(tier Tier, confidence float64) string {
	switch tier {
	case TierApply:
		return fmt.Sprintf("confidence %.2f meets auto-fix threshold", confidence)
	case TierReview:
		return fmt.Sprintf("confidence %.2f needs review", confidence)
	default:
		return fmt.Sprintf("confidence %.2f below review threshold", confidence)
	}
}
