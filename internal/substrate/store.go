package substrate

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const SchemaSQL = `
CREATE TABLE IF NOT EXISTS facts (
    id TEXT PRIMARY KEY,
    subject TEXT,
    predicate TEXT,
    object TEXT,
    created_at REAL,
    source_agent TEXT
);

CREATE TABLE IF NOT EXISTS event_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    event_type TEXT,
    description TEXT,
    agent_id TEXT,
    created_at REAL
);

CREATE TABLE IF NOT EXISTS prescriptions (
    id TEXT PRIMARY KEY,
    entity_id TEXT,
    verdict TEXT,
    pathology TEXT,
    treatment TEXT,
    sigma_penalty REAL,
    quarantine_level INTEGER,
    confidence REAL,
    reversible INTEGER,
    created_at REAL
);

CREATE TABLE IF NOT EXISTS drafts (
    id TEXT PRIMARY KEY,
    content TEXT,
    tags TEXT,
    created_at REAL
);
`

// Store is the shared fact library and event log: the persistence substrate
// the scoring core treats as an opaque collaborator.
type Store struct {
	conn *sql.DB
}

type Fact struct {
	ID          string
	Subject     string
	Predicate   string
	Object      string
	CreatedAt   float64
	SourceAgent string
}

type Event struct {
	ID          int64
	EventType   string
	Description string
	AgentID     string
	CreatedAt   float64
}

// Open opens (or creates) the sqlite substrate at path and applies the
// schema. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := conn.Exec(SchemaSQL); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// StoreFact records one subject-predicate-object triple and returns its id.
func (s *Store) StoreFact(subject, predicate, object, sourceAgent string) (string, error) {
	id := uuid.NewString()
	_, err := s.conn.Exec(
		`INSERT INTO facts(id, subject, predicate, object, created_at, source_agent) VALUES(?,?,?,?,?,?)`,
		id, subject, predicate, object, nowSeconds(), sourceAgent,
	)
	if err != nil {
		return "", fmt.Errorf("insert fact: %w", err)
	}
	return id, nil
}

// SearchFacts returns facts whose subject contains the query substring.
func (s *Store) SearchFacts(subject string) ([]Fact, error) {
	rows, err := s.conn.Query(
		`SELECT id, subject, predicate, object, created_at, source_agent FROM facts WHERE subject LIKE ? ORDER BY created_at`,
		"%"+subject+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("query facts: %w", err)
	}
	defer rows.Close()

	var out []Fact
	for rows.Next() {
		var f Fact
		if err := rows.Scan(&f.ID, &f.Subject, &f.Predicate, &f.Object, &f.CreatedAt, &f.SourceAgent); err != nil {
			return nil, fmt.Errorf("scan fact: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate facts: %w", err)
	}
	return out, nil
}

// LogEvent appends one line to the shared event log.
func (s *Store) LogEvent(eventType, description, agentID string) error {
	_, err := s.conn.Exec(
		`INSERT INTO event_log(event_type, description, agent_id, created_at) VALUES(?,?,?,?)`,
		eventType, description, agentID, nowSeconds(),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// RecentEvents returns up to limit events, newest first.
func (s *Store) RecentEvents(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.conn.Query(
		`SELECT id, event_type, description, agent_id, created_at FROM event_log ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.EventType, &e.Description, &e.AgentID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

// CountRows reports the row count of one table; test and CLI helper.
func (s *Store) CountRows(table string) (int, error) {
	row := s.conn.QueryRow(`SELECT COUNT(*) FROM ` + table)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return count, nil
}

func nowSeconds() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
