package safety

type Category string

const (
	CategoryCaseNormalize Category = "case-normalize"
	CategoryTokenWrap     Category = "token-wrap"
	CategorySymbolReplace Category = "symbol-replace"
	CategoryLinkAutolink  Category = "link-autolink"
)

var ValidCategories = map[Category]string{
	CategoryCaseNormalize: "Heading and sentence case normalization",
	CategoryTokenWrap:     "Wrapping code-like tokens in backticks",
	CategorySymbolReplace: "Replacing a literal symbol with its word form",
	CategoryLinkAutolink:  "Converting a bare URL into a markdown link",
}

func (c Category) IsValid() bool {
	_, ok := ValidCategories[c]
	return ok
}

type Tier string

const (
	TierApply  Tier = "apply"
	TierReview Tier = "review"
	TierSkip   Tier = "skip"
)

// Context carries the surrounding line of a candidate. It is advisory:
// extractors use it when present and ignore it otherwise.
type Context struct {
	SourceLine string `json:"source_line"`
	FilePath   string `json:"file_path"`
	LineNumber int    `json:"line_number"`
}

// Candidate is one proposed correction, as constructed by a detection rule.
type Candidate struct {
	Category Category `json:"category"`
	Original string   `json:"original"`
	Proposed string   `json:"proposed"`
	Context  *Context `json:"context,omitempty"`
}

// Breakdown maps a signal name to its signed contribution to the final
// confidence. Produced fresh per evaluation, read-only afterwards.
type Breakdown map[string]float64

type AmbiguityKind string

const (
	AmbiguityProgrammingLanguage AmbiguityKind = "programming-language"
	AmbiguityProductName         AmbiguityKind = "product-name"
	AmbiguitySemverTerm          AmbiguityKind = "semver-term"
	AmbiguityProperNounOrCommon  AmbiguityKind = "proper-noun-or-common"
)

// AmbiguityInfo describes a term that is plausibly either ordinary prose
// or a specific technical term.
type AmbiguityInfo struct {
	Term       string        `json:"term"`
	ProperForm string        `json:"proper_form"`
	Reason     string        `json:"reason"`
	Kind       AmbiguityKind `json:"kind"`
}

// Decision is the outcome of evaluating one candidate.
type Decision struct {
	Confidence   float64        `json:"confidence"`
	Tier         Tier           `json:"tier"`
	Breakdown    Breakdown      `json:"breakdown"`
	Ambiguity    *AmbiguityInfo `json:"ambiguity,omitempty"`
	Reason       string         `json:"reason"`
	SuggestedFix string         `json:"suggested_fix,omitempty"`
}

// Weights holds the numeric constants of the confidence heuristics. The
// values are empirically chosen; callers that want different behavior
// override individual fields of DefaultWeights.
type Weights struct {
	Base             float64
	AmbiguityPenalty float64
	FixedRule        float64

	PathWithExtension float64
	PathKnownRoot     float64
	PathBare          float64

	CommandCap      float64
	ExtensionSuffix float64
	ImportPrefix    float64
	KnownTool       float64
	ConstantCase    float64
	SnakeCase       float64
	CamelCase       float64
	PascalCase      float64

	CommonWord      float64
	PairedPhrase    float64
	AmbiguousShort  float64
	VeryShort       float64
	ShortAlphabetic float64

	ProseIndicator  float64
	RepeatedTerm    float64
	TechnicalAction float64

	FirstWordCapitalization float64
	CaseOnlyChange          float64
	WordCountMismatch       float64
	CaseDivergence          float64
	TechnicalTerm           float64
	TechnicalTermCap        float64
}

func DefaultWeights() Weights {
	return Weights{
		Base:             0.5,
		AmbiguityPenalty: 0.25,
		FixedRule:        0.9,

		PathWithExtension: 0.4,
		PathKnownRoot:     0.3,
		PathBare:          0.15,

		CommandCap:      0.4,
		ExtensionSuffix: 0.3,
		ImportPrefix:    0.2,
		KnownTool:       0.3,
		ConstantCase:    0.2,
		SnakeCase:       0.25,
		CamelCase:       0.25,
		PascalCase:      0.2,

		CommonWord:      -0.7,
		PairedPhrase:    -0.9,
		AmbiguousShort:  -0.5,
		VeryShort:       -0.3,
		ShortAlphabetic: -0.2,

		ProseIndicator:  -0.3,
		RepeatedTerm:    -0.2,
		TechnicalAction: 0.2,

		FirstWordCapitalization: 0.3,
		CaseOnlyChange:          0.2,
		WordCountMismatch:       -0.2,
		CaseDivergence:          -0.3,
		TechnicalTerm:           0.1,
		TechnicalTermCap:        0.3,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
