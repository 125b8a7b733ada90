package idgen

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator builds list keys for schedule entries and time slots.
// Ids only need to be unique inside one editing session.
type Generator struct {
	FieldID string

	// random defaults to uuid.NewString; tests replace it.
	random func() string
}

func New(fieldID string) *Generator {
	return &Generator{FieldID: fieldID}
}

// NewID returns "<fieldID>-<scope>-<random>".
func (g *Generator) NewID(scope string) string {
	rnd := uuid.NewString
	if g.random != nil {
		rnd = g.random
	}

	if g.FieldID == "" {
		return fmt.Sprintf("%s-%s", scope, rnd())
	}
	return fmt.Sprintf("%s-%s-%s", g.FieldID, scope, rnd())
}
