package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureTelemetry struct {
	entries []TelemetryEntry
}

func (c *captureTelemetry) Record(entry TelemetryEntry) {
	c.entries = append(c.entries, entry)
}

type captureReviews struct {
	items []ReviewItem
}

func (c *captureReviews) AddItem(item ReviewItem) {
	c.items = append(c.items, item)
}

func TestBuildFixNilPayload(t *testing.T) {
	telemetry := &captureTelemetry{}

	fix := BuildFix(Candidate{Category: CategoryTokenWrap, Original: "src/a.go"}, DefaultConfig(), nil, telemetry, nil)

	assert.Nil(t, fix)
	assert.Empty(t, telemetry.entries, "no evaluation without a payload")
}

func TestBuildFixApplied(t *testing.T) {
	telemetry := &captureTelemetry{}
	reviews := &captureReviews{}

	cand := Candidate{
		Category: CategoryTokenWrap,
		Original: "src/utils/helper.js",
		Proposed: "`src/utils/helper.js`",
		Context:  &Context{FilePath: "README.md", LineNumber: 12},
	}

	fix := BuildFix(cand, DefaultConfig(), "payload", telemetry, reviews)

	require.NotNil(t, fix)
	assert.Equal(t, "payload", fix.Payload)
	assert.Equal(t, TierApply, fix.Safety.Tier)
	assert.GreaterOrEqual(t, fix.Safety.Confidence, 0.7)

	require.Len(t, telemetry.entries, 1)
	entry := telemetry.entries[0]
	assert.True(t, entry.Applied)
	assert.Equal(t, "README.md", entry.FilePath)
	assert.Equal(t, 12, entry.LineNumber)
	assert.Empty(t, reviews.items)
}

func TestBuildFixReviewTierQueuesItem(t *testing.T) {
	telemetry := &captureTelemetry{}
	reviews := &captureReviews{}

	cand := Candidate{
		Category: CategoryTokenWrap,
		Original: "dust",
		Proposed: "`dust`",
		Context:  &Context{SourceLine: "wipe off the dust", FilePath: "guide.md", LineNumber: 3},
	}

	fix := BuildFix(cand, DefaultConfig(), "payload", telemetry, reviews)

	assert.Nil(t, fix, "review tier corrections are not applied")

	require.Len(t, telemetry.entries, 1)
	assert.False(t, telemetry.entries[0].Applied)
	assert.Equal(t, TierReview, telemetry.entries[0].Tier)

	require.Len(t, reviews.items, 1)
	item := reviews.items[0]
	assert.Equal(t, "`dust`", item.Suggested)
	assert.Equal(t, "wipe off the dust", item.SourceLine)
	assert.Equal(t, "guide.md", item.FilePath)
}

func TestBuildFixSkipTierOnlyRecordsTelemetry(t *testing.T) {
	telemetry := &captureTelemetry{}
	reviews := &captureReviews{}

	fix := BuildFix(Candidate{Category: CategoryTokenWrap, Original: "the"}, DefaultConfig(), "payload", telemetry, reviews)

	assert.Nil(t, fix)
	require.Len(t, telemetry.entries, 1)
	assert.Equal(t, TierSkip, telemetry.entries[0].Tier)
	assert.Empty(t, reviews.items)
}

func TestBuildFixNilSinksAreSafe(t *testing.T) {
	fix := BuildFix(Candidate{Category: CategoryTokenWrap, Original: "dust"}, DefaultConfig(), "payload", nil, nil)

	assert.Nil(t, fix)
}
