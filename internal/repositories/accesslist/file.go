package accesslist

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/useray/internal/common"
	"github.com/dmitrijs2005/useray/internal/filex"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DefaultPath locates the client list of the first inbound in a V2Ray config.
const DefaultPath = "inbounds.0.settings.clients"

// entryJSON is the element appended to the proxy's access array.
type entryJSON struct {
	ID      string `json:"id"`
	Level   int    `json:"level"`
	AlterID int    `json:"alterId"`
}

// FileRepository implements Repository over a proxy config file.
type FileRepository struct {
	fs        filex.FS
	path      string
	arrayPath string

	doc     []byte
	entries []Entry
}

var _ Repository = (*FileRepository)(nil)

// NewFileRepository binds the repository to the proxy document at path.
// arrayPath is a gjson path to the access array; empty means DefaultPath.
func NewFileRepository(fsys filex.FS, path, arrayPath string) *FileRepository {
	if arrayPath == "" {
		arrayPath = DefaultPath
	}
	return &FileRepository{fs: fsys, path: path, arrayPath: arrayPath}
}

// Path returns the proxy document location.
func (r *FileRepository) Path() string {
	return r.path
}

func (r *FileRepository) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, entries, err := r.read()
	if err != nil {
		return err
	}
	r.doc, r.entries = doc, entries
	return nil
}

func (r *FileRepository) Add(ctx context.Context, e Entry) error {
	return r.mutate(ctx, func(doc []byte, entries []Entry) ([]byte, error) {
		if indexOf(entries, e.ID) >= 0 {
			return nil, nil
		}
		return sjson.SetBytes(doc, r.arrayPath+".-1", entryJSON{ID: e.ID, Level: e.Level})
	})
}

func (r *FileRepository) Remove(ctx context.Context, id string) error {
	return r.mutate(ctx, func(doc []byte, entries []Entry) ([]byte, error) {
		if indexOf(entries, id) < 0 {
			return nil, nil
		}
		var err error
		// back to front so earlier indexes stay valid
		for i := len(entries) - 1; i >= 0; i-- {
			if entries[i].ID != id {
				continue
			}
			doc, err = sjson.DeleteBytes(doc, r.elementPath(i))
			if err != nil {
				return nil, err
			}
		}
		return doc, nil
	})
}

func (r *FileRepository) SetLevel(ctx context.Context, id string, level int) error {
	return r.mutate(ctx, func(doc []byte, entries []Entry) ([]byte, error) {
		i := indexOf(entries, id)
		if i < 0 || entries[i].Level == level {
			return nil, nil
		}
		return sjson.SetBytes(doc, r.elementPath(i)+".level", level)
	})
}

func (r *FileRepository) Contains(id string) bool {
	return indexOf(r.entries, id) >= 0
}

func (r *FileRepository) Get(id string) (Entry, bool) {
	i := indexOf(r.entries, id)
	if i < 0 {
		return Entry{}, false
	}
	return r.entries[i], true
}

func (r *FileRepository) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// mutate runs one read-modify-write cycle. edit returns nil bytes when there
// is nothing to change.
func (r *FileRepository) mutate(ctx context.Context, edit func(doc []byte, entries []Entry) ([]byte, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, entries, err := r.read()
	if err != nil {
		return err
	}

	updated, err := edit(doc, entries)
	if err != nil {
		return fmt.Errorf("failed to edit %s: %w", r.path, err)
	}
	if updated == nil {
		r.doc, r.entries = doc, entries
		return nil
	}

	newEntries, err := parseEntries(updated, r.arrayPath)
	if err != nil {
		return err
	}

	fi, err := r.fs.Stat(r.path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", r.path, err)
	}
	if err := r.fs.WriteFile(r.path, updated, fi.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.path, err)
	}

	r.doc, r.entries = updated, newEntries
	return nil
}

func (r *FileRepository) read() ([]byte, []Entry, error) {
	ok, err := filex.Exists(r.fs, r.path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat %s: %w", r.path, err)
	}
	if !ok {
		return nil, nil, fmt.Errorf("%w: proxy config %s", common.ErrorNotFound, r.path)
	}

	doc, err := r.fs.ReadFile(r.path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", r.path, err)
	}

	entries, err := parseEntries(doc, r.arrayPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", r.path, err)
	}
	return doc, entries, nil
}

func (r *FileRepository) elementPath(i int) string {
	return r.arrayPath + "." + strconv.Itoa(i)
}

func parseEntries(doc []byte, arrayPath string) ([]Entry, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("%w: not a valid JSON document", common.ErrorDecode)
	}

	list := gjson.GetBytes(doc, arrayPath)
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: %q is not an array", common.ErrorDecode, arrayPath)
	}

	items := list.Array()
	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		if !item.IsObject() {
			return nil, fmt.Errorf("%w: %s.%d is not an object", common.ErrorDecode, arrayPath, i)
		}

		id := item.Get("id")
		if id.Type != gjson.String || id.String() == "" {
			return nil, fmt.Errorf("%w: %s.%d has no string id", common.ErrorDecode, arrayPath, i)
		}

		level := item.Get("level")
		if level.Exists() && level.Type != gjson.Number {
			return nil, fmt.Errorf("%w: %s.%d level is not a number", common.ErrorDecode, arrayPath, i)
		}

		entries = append(entries, Entry{ID: id.String(), Level: int(level.Int())})
	}
	return entries, nil
}

func indexOf(entries []Entry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
