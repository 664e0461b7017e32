package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prosegate/prosegate/internal/db"
	"github.com/prosegate/prosegate/internal/safety"
)

func newTestQueue(t *testing.T) *Queue {
	t.Helper()

	database, err := db.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	queue, err := NewQueue(database)
	require.NoError(t, err)
	return queue
}

func TestQueueAddAndPending(t *testing.T) {
	queue := newTestQueue(t)

	queue.AddItem(safety.ReviewItem{
		Category:   safety.CategoryTokenWrap,
		Original:   "dust",
		Suggested:  "`dust`",
		Confidence: 0.3,
		SourceLine: "wipe off the dust",
		FilePath:   "guide.md",
		LineNumber: 3,
		Breakdown:  safety.Breakdown{"baseConfidence": 0.5},
		Ambiguity:  nil,
	})
	require.Equal(t, 0, queue.Dropped())

	pending, err := queue.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)

	item := pending[0]
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, StatusPending, item.Status)
	assert.Equal(t, safety.CategoryTokenWrap, item.Category)
	assert.Equal(t, "dust", item.Original)
	assert.Equal(t, "`dust`", item.Suggested)
	assert.Equal(t, "guide.md", item.FilePath)
	assert.Equal(t, 3, item.LineNumber)
	assert.InDelta(t, 0.5, item.Breakdown["baseConfidence"], 1e-9)
}

func TestQueuePreservesAmbiguity(t *testing.T) {
	queue := newTestQueue(t)

	queue.AddItem(safety.ReviewItem{
		Category: safety.CategoryTokenWrap,
		Original: "rust",
		Ambiguity: &safety.AmbiguityInfo{
			Term:       "rust",
			ProperForm: "Rust",
			Kind:       safety.AmbiguityProgrammingLanguage,
		},
	})

	pending, err := queue.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.NotNil(t, pending[0].Ambiguity)
	assert.Equal(t, "Rust", pending[0].Ambiguity.ProperForm)
}

func TestQueueResolveRemovesFromPending(t *testing.T) {
	queue := newTestQueue(t)

	queue.AddItem(safety.ReviewItem{Category: safety.CategoryTokenWrap, Original: "dust"})

	pending, err := queue.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, queue.Resolve(pending[0].ID, StatusRejected, "ordinary prose"))

	pending, err = queue.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestQueueResolveValidatesStatus(t *testing.T) {
	queue := newTestQueue(t)

	err := queue.Resolve("some-id", "bogus", "")
	assert.Error(t, err)
}

func TestQueueResolveUnknownID(t *testing.T) {
	queue := newTestQueue(t)

	err := queue.Resolve("missing", StatusApplied, "")
	assert.Error(t, err)
}
