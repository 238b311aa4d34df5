package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies and routing.
type EventCategory string

const (
	// CategoryCompliance covers rejected operations. An auditor needs to see
	// every rejection together with its reasons.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers accepted operations and batch bookkeeping.
	// These can be sampled or aggregated with shorter retention.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted after an operation has been evaluated. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID            uuid.UUID     `json:"id"`
	Category      EventCategory `json:"category"`
	Timestamp     time.Time     `json:"timestamp"`
	Action        string        `json:"action"`
	OperationKind string        `json:"operation_kind"`
	Valid         bool          `json:"valid"`
	Errors        []string      `json:"errors,omitempty"`
	Failed        []string      `json:"failed,omitempty"`
	Skipped       []string      `json:"skipped,omitempty"`
	// BatchID links every event of one ValidateBatch call.
	BatchID string `json:"batch_id,omitempty"`
	// SubjectIDHash is a SHA-256 hash of the identifier (RFC, CURP or CLABE)
	// being checked, so the trail never stores the raw value.
	SubjectIDHash string `json:"subject_id_hash,omitempty"`
}

type AuditEvent string

const (
	EventOperationValidated AuditEvent = "operation_validated"
	EventOperationRejected  AuditEvent = "operation_rejected"
	EventBatchValidated     AuditEvent = "batch_validated"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventOperationRejected:  CategoryCompliance,
	EventOperationValidated: CategoryOperations,
	EventBatchValidated:     CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByKind(ctx context.Context, kind string) ([]Event, error)
	ListAll(ctx context.Context) ([]Event, error)
}

// HashSubject returns the hex SHA-256 of an identifier after trimming and
// upper-casing it. An empty identifier hashes to the empty string.
func HashSubject(value string) string {
	v := strings.ToUpper(strings.TrimSpace(value))
	if v == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(v))
	return hex.EncodeToString(sum[:])
}
