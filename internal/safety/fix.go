package safety

// TelemetryEntry is the record forwarded to the telemetry sink for every
// decision, applied or not.
type TelemetryEntry struct {
	Category   Category       `json:"category"`
	Original   string         `json:"original"`
	Proposed   string         `json:"proposed"`
	Confidence float64        `json:"confidence"`
	Applied    bool           `json:"applied"`
	Tier       Tier           `json:"tier"`
	Reason     string         `json:"reason,omitempty"`
	Breakdown  Breakdown      `json:"breakdown,omitempty"`
	Ambiguity  *AmbiguityInfo `json:"ambiguity,omitempty"`
	FilePath   string         `json:"file_path,omitempty"`
	LineNumber int            `json:"line_number,omitempty"`
}

// ReviewItem is the record queued for human or AI follow-up when a
// decision lands in the review tier.
type ReviewItem struct {
	FilePath   string         `json:"file_path"`
	LineNumber int            `json:"line_number"`
	Category   Category       `json:"category"`
	Original   string         `json:"original"`
	Suggested  string         `json:"suggested"`
	Confidence float64        `json:"confidence"`
	Ambiguity  *AmbiguityInfo `json:"ambiguity,omitempty"`
	SourceLine string         `json:"source_line,omitempty"`
	Breakdown  Breakdown      `json:"breakdown,omitempty"`
}

// TelemetrySink receives every decision. Append-only; implementations must
// not block the caller in a way that matters.
type TelemetrySink interface {
	Record(entry TelemetryEntry)
}

// ReviewSink receives decisions flagged for follow-up. Append-only.
type ReviewSink interface {
	AddItem(item ReviewItem)
}

// Meta is the safety annotation attached to an applied fix.
type Meta struct {
	Confidence float64        `json:"confidence"`
	Reason     string         `json:"reason"`
	Tier       Tier           `json:"tier"`
	Ambiguity  *AmbiguityInfo `json:"ambiguity,omitempty"`
}

// Fix is the caller's fix payload wrapped with the safety decision that
// approved it.
type Fix struct {
	Payload any  `json:"fix"`
	Safety  Meta `json:"_safety"`
}

// BuildFix evaluates a candidate and returns the caller's payload wrapped
// with safety metadata when the decision tier is apply, nil otherwise.
// Every decision is forwarded to the telemetry sink, and review-tier
// decisions are additionally queued on the review sink. Either sink may be
// nil.
func BuildFix(cand Candidate, cfg Config, payload any, telemetry TelemetrySink, reviews ReviewSink) *Fix {
	if payload == nil {
		return nil
	}

	decision := Evaluate(cand, cfg)

	if telemetry != nil {
		telemetry.Record(telemetryEntry(cand, decision))
	}
	if decision.Tier == TierReview && reviews != nil {
		reviews.AddItem(reviewItem(cand, decision))
	}

	if decision.Tier != TierApply {
		return nil
	}

	return &Fix{
		Payload: payload,
		Safety: Meta{
			Confidence: decision.Confidence,
			Reason:     decision.Reason,
			Tier:       decision.Tier,
			Ambiguity:  decision.Ambiguity,
		},
	}
}

func telemetryEntry(cand Candidate, decision Decision) TelemetryEntry {
	entry := TelemetryEntry{
		Category:   cand.Category,
		Original:   cand.Original,
		Proposed:   cand.Proposed,
		Confidence: decision.Confidence,
		Applied:    decision.Tier == TierApply,
		Tier:       decision.Tier,
		Reason:     decision.Reason,
		Breakdown:  decision.Breakdown,
		Ambiguity:  decision.Ambiguity,
	}
	if cand.Context != nil {
		entry.FilePath = cand.Context.FilePath
		entry.LineNumber = cand.Context.LineNumber
	}
	return entry
}

func reviewItem(cand Candidate, decision Decision) ReviewItem {
	item := ReviewItem{
		Category:   cand.Category,
		Original:   cand.Original,
		Suggested:  decision.SuggestedFix,
		Confidence: decision.Confidence,
		Ambiguity:  decision.Ambiguity,
		Breakdown:  decision.Breakdown,
	}
	if cand.Context != nil {
		item.FilePath = cand.Context.FilePath
		item.LineNumber = cand.Context.LineNumber
		item.SourceLine = cand.Context.SourceLine
	}
	return item
}
