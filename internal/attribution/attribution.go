// Package attribution reads model usage out of Cursor's AI tracking
// database. Cursor logs one row per AI code edit keyed by
// conversation id; grouping that table attributes a model name and
// an edit count to each session.
package attribution

import (
	"database/sql"
	"net/url"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// Info is the attribution for one session.
type Info struct {
	Model string
	Edits int
}

const query = `
SELECT conversationId, model, COUNT(*) AS edits
FROM ai_code_hashes
WHERE conversationId IS NOT NULL
GROUP BY conversationId, model
ORDER BY edits DESC
`

// makeDSN builds a read-only SQLite connection string. The tracking
// database belongs to Cursor, so no write lock is ever taken on it.
func makeDSN(path string) string {
	params := url.Values{}
	params.Set("mode", "ro")
	params.Set("_busy_timeout", "2000")
	return path + "?" + params.Encode()
}

// LoadModelMap returns model name and code-edit count per
// conversation id. Sessions that used several models resolve to the
// most-edited model, with edit counts summed across all of them. A
// missing or unreadable database yields an empty map, never an
// error.
func LoadModelMap(dbPath string) map[string]Info {
	result := make(map[string]Info)
	if _, err := os.Stat(dbPath); err != nil {
		return result
	}

	db, err := sql.Open("sqlite3", makeDSN(dbPath))
	if err != nil {
		return result
	}
	defer db.Close()

	rows, err := db.Query(query)
	if err != nil {
		return result
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid   string
			model sql.NullString
			edits int
		)
		if err := rows.Scan(&cid, &model, &edits); err != nil {
			continue
		}
		// Rows arrive most-edited first, so the first row per
		// conversation fixes the model and later rows only add edits.
		if info, ok := result[cid]; ok {
			info.Edits += edits
			result[cid] = info
		} else {
			result[cid] = Info{Model: model.String, Edits: edits}
		}
	}
	return result
}
