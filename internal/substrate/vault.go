package substrate

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Vault is the private draft store. Rejected ideas land here instead of
// being deleted: a signal the system cannot read today may decode tomorrow.
type Vault struct {
	store *Store
}

type Draft struct {
	ID        string
	Content   string
	Tags      []string
	CreatedAt float64
}

// Tags attached to drafts shelved after a rejection.
const (
	TagPotential = "POTENTIAL"
	TagRejected  = "REJECTED"
)

// OpenVault opens a vault backed by its own sqlite file. The vault is meant
// to live on the user's device, separate from the shared substrate.
func OpenVault(path string) (*Vault, error) {
	store, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	return &Vault{store: store}, nil
}

func (v *Vault) Close() error {
	return v.store.Close()
}

// SaveDraft stores a raw thought with no validation and returns its id.
func (v *Vault) SaveDraft(content string, tags []string) (string, error) {
	id := uuid.NewString()
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("marshal tags: %w", err)
	}
	if _, err := v.store.conn.Exec(
		`INSERT INTO drafts(id, content, tags, created_at) VALUES(?,?,?,?)`,
		id, content, string(raw), nowSeconds(),
	); err != nil {
		return "", fmt.Errorf("insert draft: %w", err)
	}
	return id, nil
}

// ArchiveRejected shelves content the evaluator rejected, tagging it with
// the rejection reason so a later pass can reconsider it.
func (v *Vault) ArchiveRejected(content, reason string) (string, error) {
	return v.SaveDraft(content, []string{TagPotential, TagRejected, reason})
}

// Retrieve returns the draft with the given id, or nil when absent.
func (v *Vault) Retrieve(id string) (*Draft, error) {
	row := v.store.conn.QueryRow(
		`SELECT id, content, tags, created_at FROM drafts WHERE id = ?`, id,
	)
	var d Draft
	var raw string
	if err := row.Scan(&d.ID, &d.Content, &raw, &d.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan draft: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &d.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	return &d, nil
}
