// Package review stores decisions flagged for follow-up. The queue is
// append-only from the engine's side; items are resolved later by a human
// or by the AI adjudication pipeline.
package review

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prosegate/prosegate/internal/safety"
)

const (
	StatusPending  = "pending"
	StatusApplied  = "applied"
	StatusRejected = "rejected"
	StatusUnsure   = "unsure"
)

// Item is one queued review entry.
type Item struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`

	safety.ReviewItem
}

const createReviewTable = `
CREATE TABLE IF NOT EXISTS review_items (
	id          VARCHAR PRIMARY KEY,
	created_at  TIMESTAMP,
	status      VARCHAR,
	note        VARCHAR,
	category    VARCHAR,
	original    VARCHAR,
	suggested   VARCHAR,
	confidence  DOUBLE,
	ambiguity   VARCHAR,
	source_line VARCHAR,
	breakdown   VARCHAR,
	file_path   VARCHAR,
	line_number INTEGER
)`

// Queue is a DuckDB-backed review queue. It implements safety.ReviewSink.
type Queue struct {
	mu      sync.Mutex
	db      *sql.DB
	dropped int
}

func NewQueue(database *sql.DB) (*Queue, error) {
	if _, err := database.Exec(createReviewTable); err != nil {
		return nil, fmt.Errorf("failed to create review table: %w", err)
	}
	return &Queue{db: database}, nil
}

// AddItem appends one pending item. Insert failures are counted, never
// surfaced to the evaluation path.
func (q *Queue) AddItem(item safety.ReviewItem) {
	breakdown, _ := json.Marshal(item.Breakdown)
	var ambiguity []byte
	if item.Ambiguity != nil {
		ambiguity, _ = json.Marshal(item.Ambiguity)
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	_, err := q.db.Exec(`
		INSERT INTO review_items
			(id, created_at, status, note, category, original, suggested,
			 confidence, ambiguity, source_line, breakdown, file_path, line_number)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		time.Now().UTC(),
		StatusPending,
		"",
		string(item.Category),
		item.Original,
		item.Suggested,
		item.Confidence,
		string(ambiguity),
		item.SourceLine,
		string(breakdown),
		item.FilePath,
		item.LineNumber,
	)
	if err != nil {
		q.dropped++
	}
}

// Dropped reports how many items could not be inserted.
func (q *Queue) Dropped() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Pending lists unresolved items, oldest first.
func (q *Queue) Pending() ([]Item, error) {
	rows, err := q.db.Query(`
		SELECT id, created_at, status, note, category, original, suggested,
		       confidence, ambiguity, source_line, breakdown, file_path, line_number
		FROM review_items
		WHERE status = ?
		ORDER BY created_at ASC`, StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to query review items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		var category, ambiguity, breakdown string
		if err := rows.Scan(&item.ID, &item.CreatedAt, &item.Status, &item.Note,
			&category, &item.Original, &item.Suggested, &item.Confidence,
			&ambiguity, &item.SourceLine, &breakdown,
			&item.FilePath, &item.LineNumber); err != nil {
			return nil, fmt.Errorf("failed to scan review item: %w", err)
		}

		item.Category = safety.Category(category)
		if breakdown != "" {
			_ = json.Unmarshal([]byte(breakdown), &item.Breakdown)
		}
		if ambiguity != "" {
			var info safety.AmbiguityInfo
			if err := json.Unmarshal([]byte(ambiguity), &info); err == nil {
				item.Ambiguity = &info
			}
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// Resolve marks an item with a final status and an optional note.
func (q *Queue) Resolve(id, status, note string) error {
	switch status {
	case StatusApplied, StatusRejected, StatusUnsure:
	default:
		return fmt.Errorf("invalid review status: %s", status)
	}

	result, err := q.db.Exec(`UPDATE review_items SET status = ?, note = ? WHERE id = ?`,
		status, note, id)
	if err != nil {
		return fmt.Errorf("failed to resolve review item: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("review item not found: %s", id)
	}
	return nil
}
