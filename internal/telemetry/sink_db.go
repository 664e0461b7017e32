package telemetry

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/prosegate/prosegate/internal/safety"
)

const createDecisionsTable = `
CREATE TABLE IF NOT EXISTS decisions (
	recorded_at TIMESTAMP,
	category    VARCHAR,
	original    VARCHAR,
	proposed    VARCHAR,
	confidence  DOUBLE,
	applied     BOOLEAN,
	tier        VARCHAR,
	reason      VARCHAR,
	breakdown   VARCHAR,
	ambiguity   VARCHAR,
	file_path   VARCHAR,
	line_number INTEGER
)`

// DBSink appends decisions to a DuckDB decisions table.
type DBSink struct {
	mu      sync.Mutex
	db      *sql.DB
	dropped int
}

func NewDBSink(database *sql.DB) (*DBSink, error) {
	if _, err := database.Exec(createDecisionsTable); err != nil {
		return nil, fmt.Errorf("failed to create decisions table: %w", err)
	}
	return &DBSink{db: database}, nil
}

// Record appends one decision. Insert failures are counted, never
// surfaced to the evaluation path.
func (s *DBSink) Record(entry safety.TelemetryEntry) {
	breakdown, _ := json.Marshal(entry.Breakdown)
	var ambiguity []byte
	if entry.Ambiguity != nil {
		ambiguity, _ = json.Marshal(entry.Ambiguity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`
		INSERT INTO decisions
			(recorded_at, category, original, proposed, confidence, applied,
			 tier, reason, breakdown, ambiguity, file_path, line_number)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(),
		string(entry.Category),
		entry.Original,
		entry.Proposed,
		entry.Confidence,
		entry.Applied,
		string(entry.Tier),
		entry.Reason,
		string(breakdown),
		string(ambiguity),
		entry.FilePath,
		entry.LineNumber,
	)
	if err != nil {
		s.dropped++
	}
}

// Dropped reports how many entries could not be inserted.
func (s *DBSink) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// ReadEntries loads every recorded decision from the decisions table, in
// insertion order, for offline aggregation.
func ReadEntries(database *sql.DB) ([]safety.TelemetryEntry, error) {
	rows, err := database.Query(`
		SELECT category, original, proposed, confidence, applied, tier,
		       reason, breakdown, ambiguity, file_path, line_number
		FROM decisions
		ORDER BY recorded_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query decisions: %w", err)
	}
	defer rows.Close()

	var entries []safety.TelemetryEntry
	for rows.Next() {
		var entry safety.TelemetryEntry
		var category, tier, breakdown, ambiguity string
		if err := rows.Scan(&category, &entry.Original, &entry.Proposed,
			&entry.Confidence, &entry.Applied, &tier, &entry.Reason,
			&breakdown, &ambiguity, &entry.FilePath, &entry.LineNumber); err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}

		entry.Category = safety.Category(category)
		entry.Tier = safety.Tier(tier)
		if breakdown != "" {
			_ = json.Unmarshal([]byte(breakdown), &entry.Breakdown)
		}
		if ambiguity != "" {
			var info safety.AmbiguityInfo
			if err := json.Unmarshal([]byte(ambiguity), &info); err == nil {
				entry.Ambiguity = &info
			}
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
