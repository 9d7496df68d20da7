package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator produces opaque transaction identifiers.
type Generator interface {
	NewID() string
}

// Scheme names a Generator implementation in config.
type Scheme string

const (
	SchemeUUID     Scheme = "uuid"
	SchemeSequence Scheme = "sequence"
)

// New returns the generator for scheme.
func New(scheme Scheme) (Generator, error) {
	switch scheme {
	case "", SchemeUUID:
		return UUID{}, nil
	case SchemeSequence:
		return &Sequence{}, nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q", scheme)
	}
}

// UUID generates random version 4 UUIDs.
type UUID struct{}

// NewID returns a fresh random UUID string.
func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequence generates short monotonic IDs like "t001". Numbers are never reused,
// even after the record holding one is removed.
type Sequence struct {
	next int
}

// NewID returns the next ID in the sequence.
func (s *Sequence) NewID() string {
	s.next++
	return FormatSeq(s.next)
}

// FormatSeq returns a sequence ID like "t001".
func FormatSeq(seq int) string {
	return fmt.Sprintf("t%03d", seq)
}
