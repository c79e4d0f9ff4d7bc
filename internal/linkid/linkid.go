// Package linkid issues the opaque identifiers embedded in shareable links.
package linkid

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Store is the subset of the file store needed for collision checks.
type Store interface {
	Exists(uniqueID string) (bool, error)
}

// Generator produces collision-checked random identifiers.
type Generator struct {
	store Store
}

// New creates a Generator backed by the given store.
func New(store Store) *Generator {
	return &Generator{store: store}
}

// Generate returns an identifier not currently present in the store. It
// regenerates on collision without an upper bound; a store error during the
// check is logged and the candidate treated as free.
func (g *Generator) Generate() string {
	for {
		id := uuid.NewString()

		taken, err := g.store.Exists(id)
		if err != nil {
			log.Warn().Err(err).Msg("failed to check id for collision")
			return id
		}
		if !taken {
			return id
		}
	}
}
