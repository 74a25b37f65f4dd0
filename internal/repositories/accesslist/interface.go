package accesslist

import "context"

// Entry is what the proxy server needs to admit a credential.
type Entry struct {
	ID    string
	Level int
}

// Repository is the proxy's access-control list, kept in file order.
// Mutating calls write through to the proxy document before returning.
type Repository interface {
	Load(ctx context.Context) error

	// Add appends e unless its id is already present.
	Add(ctx context.Context, e Entry) error

	// Remove drops every entry with id; unknown ids are ignored.
	Remove(ctx context.Context, id string) error

	// SetLevel rewrites the level of an existing entry.
	SetLevel(ctx context.Context, id string, level int) error

	Contains(id string) bool
	Get(id string) (Entry, bool)
	Entries() []Entry
}
