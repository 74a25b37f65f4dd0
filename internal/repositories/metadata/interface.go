package metadata

import (
	"context"

	"github.com/dmitrijs2005/useray/internal/models"
)

// Repository holds the authoritative set of client records keyed by id.
// Get and List hand out copies; callers change state only through Put and
// Delete followed by Save.
type Repository interface {
	// Load reads the backing file, bootstrapping an empty one on first run.
	Load(ctx context.Context) error

	// Save rewrites the whole mapping.
	Save(ctx context.Context) error

	Get(id string) (*models.Client, bool)
	Put(c *models.Client)

	// Delete removes id; deleting an unknown id is not an error.
	Delete(id string)

	// List returns every record ordered by id.
	List() []*models.Client
	Len() int
}
