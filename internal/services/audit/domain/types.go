// Package domain defines the audit trail types and ports
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Kind names the operation an event describes
type Kind string

const (
	KindOpen     Kind = "open"
	KindClose    Kind = "close"
	KindEnroll   Kind = "enroll"
	KindVerify   Kind = "verify"
	KindIdentify Kind = "identify"
	KindSelfTest Kind = "selftest"
)

// Outcome is the coarse result of an operation
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeNoMatch Outcome = "no_match"
	OutcomeError   Outcome = "error"
)

// Event is one audited device or biometric operation.
// It never carries template bytes
type Event struct {
	ID      uuid.UUID
	At      time.Time
	Kind    Kind
	Outcome Outcome

	Matched bool
	Score   int
	// CandidateID is set by identify when a candidate was returned
	CandidateID    *int64
	CandidateCount int

	// DriverStatus is the last vendor status seen, 0 when none
	DriverStatus int
	ErrorCode    string
	Duration     time.Duration
	RequestID    string
}

// Candidate returns a pointer suitable for Event.CandidateID
func Candidate(id uint32) *int64 {
	v := int64(id)
	return &v
}
