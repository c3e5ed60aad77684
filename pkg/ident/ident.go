package ident

import (
	"strconv"

	"github.com/google/uuid"
)

// Generator produces opaque unique identifiers for users, appointments and
// notifications.
type Generator interface {
	NewID() string
}

type uuidGenerator struct{}

// NewUUIDGenerator returns the production generator.
func NewUUIDGenerator() Generator {
	return uuidGenerator{}
}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

// Sequence is a deterministic generator for tests: prefix-1, prefix-2, ...
type Sequence struct {
	Prefix string
	next   int
}

func (s *Sequence) NewID() string {
	s.next++
	return s.Prefix + "-" + strconv.Itoa(s.next)
}
