package substrate

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Anton-art/Syntropy/internal/clinic"
	"github.com/Anton-art/Syntropy/internal/engine"
)

// PrescriptionRecord is a persisted decision record. The scoring core never
// stores prescriptions itself; callers do, through this table.
type PrescriptionRecord struct {
	ID        string
	EntityID  string
	CreatedAt float64
	clinic.Prescription
}

// SavePrescription persists one emitted prescription against the entity it
// was issued for and returns the record id.
func (s *Store) SavePrescription(entityID string, p clinic.Prescription) (string, error) {
	id := uuid.NewString()
	reversible := 0
	if p.Reversible {
		reversible = 1
	}
	_, err := s.conn.Exec(
		`INSERT INTO prescriptions(id, entity_id, verdict, pathology, treatment, sigma_penalty, quarantine_level, confidence, reversible, created_at)
		 VALUES(?,?,?,?,?,?,?,?,?,?)`,
		id, entityID, string(p.Verdict), p.Pathology, p.Treatment,
		p.SigmaPenalty, p.QuarantineLevel, p.Confidence, reversible, nowSeconds(),
	)
	if err != nil {
		return "", fmt.Errorf("insert prescription: %w", err)
	}
	return id, nil
}

// PrescriptionsFor returns all stored prescriptions for an entity, oldest
// first.
func (s *Store) PrescriptionsFor(entityID string) ([]PrescriptionRecord, error) {
	rows, err := s.conn.Query(
		`SELECT id, entity_id, verdict, pathology, treatment, sigma_penalty, quarantine_level, confidence, reversible, created_at
		 FROM prescriptions WHERE entity_id = ? ORDER BY created_at`,
		entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("query prescriptions: %w", err)
	}
	defer rows.Close()

	var out []PrescriptionRecord
	for rows.Next() {
		var r PrescriptionRecord
		var verdict string
		var reversible int
		if err := rows.Scan(&r.ID, &r.EntityID, &verdict, &r.Pathology, &r.Treatment,
			&r.SigmaPenalty, &r.QuarantineLevel, &r.Confidence, &reversible, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan prescription: %w", err)
		}
		r.Verdict = engine.Verdict(verdict)
		r.Reversible = reversible != 0
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prescriptions: %w", err)
	}
	return out, nil
}
