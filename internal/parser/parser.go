// Package parser reads correction candidates emitted by detection rules.
// Rules write one JSON record per line; the parser loads them through
// DuckDB's read_json so malformed lines are skipped instead of failing the
// run.
package parser

import (
	"database/sql"
	"fmt"

	"github.com/prosegate/prosegate/internal/safety"
)

type Parser struct {
	db *sql.DB
}

func NewParser(database *sql.DB) *Parser {
	return &Parser{db: database}
}

// Stats reports how many candidate records a glob covers and how many
// distinct documents they touch.
func (p *Parser) Stats(glob string) (count int, documents int, err error) {
	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(DISTINCT COALESCE(file_path, ''))
		FROM read_json('%s',
			format = 'newline_delimited',
			union_by_name = true,
			ignore_errors = true
		)
		WHERE category IS NOT NULL`, glob)

	if err := p.db.QueryRow(query).Scan(&count, &documents); err != nil {
		return 0, 0, fmt.Errorf("failed to query candidate stats: %w", err)
	}
	return count, documents, nil
}

// FetchCandidates loads every candidate record matching the glob. Records
// missing fields are coerced to empty values, never rejected.
func (p *Parser) FetchCandidates(glob string) ([]safety.Candidate, error) {
	query := fmt.Sprintf(`
		SELECT
			COALESCE(CAST(category AS VARCHAR), '') AS category,
			COALESCE(CAST(original AS VARCHAR), '') AS original,
			COALESCE(CAST(proposed AS VARCHAR), '') AS proposed,
			COALESCE(CAST(source_line AS VARCHAR), '') AS source_line,
			COALESCE(CAST(file_path AS VARCHAR), '') AS file_path,
			COALESCE(CAST(line_number AS BIGINT), 0) AS line_number
		FROM read_json('%s',
			format = 'newline_delimited',
			union_by_name = true,
			ignore_errors = true
		)
		WHERE category IS NOT NULL
		ORDER BY file_path, line_number`, glob)

	rows, err := p.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	defer rows.Close()

	var candidates []safety.Candidate
	for rows.Next() {
		var category, original, proposed, sourceLine, filePath string
		var lineNumber int64
		if err := rows.Scan(&category, &original, &proposed, &sourceLine, &filePath, &lineNumber); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}

		cand := safety.Candidate{
			Category: safety.Category(category),
			Original: original,
			Proposed: proposed,
		}
		if sourceLine != "" || filePath != "" || lineNumber != 0 {
			cand.Context = &safety.Context{
				SourceLine: sourceLine,
				FilePath:   filePath,
				LineNumber: int(lineNumber),
			}
		}
		candidates = append(candidates, cand)
	}

	return candidates, rows.Err()
}
