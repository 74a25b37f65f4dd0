package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"time"

	"github.com/dmitrijs2005/useray/internal/common"
	"github.com/dmitrijs2005/useray/internal/filex"
	"github.com/dmitrijs2005/useray/internal/models"
)

// FileName is the name of the metadata document inside the data directory.
const FileName = "clients.json"

// clientJSON is the on-disk shape of one record. Times are epoch seconds so
// files written by earlier releases (fractional seconds) still decode.
type clientJSON struct {
	Name      string  `json:"name"`
	ID        string  `json:"id"`
	Level     int     `json:"level"`
	StartDate float64 `json:"start_date"`
	Duration  float64 `json:"duration"`
	RevokedAt float64 `json:"revoked_at,omitempty"`
}

// FileRepository implements Repository on top of a JSON file.
type FileRepository struct {
	fs      filex.FS
	dir     string
	clients map[string]*models.Client
}

var _ Repository = (*FileRepository)(nil)

// NewFileRepository returns a repository storing FileName inside dir. Nothing
// is read until Load.
func NewFileRepository(fsys filex.FS, dir string) *FileRepository {
	return &FileRepository{fs: fsys, dir: dir, clients: make(map[string]*models.Client)}
}

// Path returns the location of the backing file.
func (r *FileRepository) Path() string {
	return filepath.Join(r.dir, FileName)
}

func (r *FileRepository) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ok, err := filex.Exists(r.fs, r.Path())
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", r.Path(), err)
	}
	if !ok {
		r.clients = make(map[string]*models.Client)
		return r.Save(ctx)
	}

	data, err := r.fs.ReadFile(r.Path())
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", r.Path(), err)
	}

	var raw map[string]clientJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrorDecode, r.Path(), err)
	}

	clients := make(map[string]*models.Client, len(raw))
	for key, item := range raw {
		if item.ID == "" {
			item.ID = key
		}
		if item.ID != key {
			return fmt.Errorf("%w: %s: record %q stored under key %q", common.ErrorDecode, r.Path(), item.ID, key)
		}
		if err := item.check(); err != nil {
			return fmt.Errorf("%w: %s: record %q: %v", common.ErrorDecode, r.Path(), key, err)
		}
		clients[key] = item.toModel()
	}
	r.clients = clients
	return nil
}

func (r *FileRepository) Save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := filex.EnsureDir(r.fs, r.dir); err != nil {
		return err
	}

	raw := make(map[string]clientJSON, len(r.clients))
	for id, c := range r.clients {
		raw[id] = fromModel(c)
	}

	// encoding/json sorts map keys, which keeps diffs of the file stable.
	data, err := json.MarshalIndent(raw, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode clients: %w", err)
	}
	if err := r.fs.WriteFile(r.Path(), data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.Path(), err)
	}
	return nil
}

func (r *FileRepository) Get(id string) (*models.Client, bool) {
	c, ok := r.clients[id]
	if !ok {
		return nil, false
	}
	return c.Clone().RecomputeExpiry(), true
}

func (r *FileRepository) Put(c *models.Client) {
	r.clients[c.ID] = c.Clone()
}

func (r *FileRepository) Delete(id string) {
	delete(r.clients, id)
}

func (r *FileRepository) List() []*models.Client {
	out := make([]*models.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c.Clone().RecomputeExpiry())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *FileRepository) Len() int {
	return len(r.clients)
}

// maxDurationSeconds is the longest window time.Duration can hold.
var maxDurationSeconds = float64(math.MaxInt64) / float64(time.Second)

func (c clientJSON) check() error {
	switch {
	case c.Level < 0:
		return fmt.Errorf("level %d is negative", c.Level)
	case c.Duration < 0:
		return fmt.Errorf("duration %v is negative", c.Duration)
	case c.Duration >= maxDurationSeconds:
		return fmt.Errorf("duration %v is out of range", c.Duration)
	}
	return nil
}

func (c clientJSON) toModel() *models.Client {
	m := models.NewClient(c.Name, c.ID, fromEpoch(c.StartDate), time.Duration(c.Duration*float64(time.Second)), c.Level)
	if c.RevokedAt != 0 {
		m.RevokedAt = fromEpoch(c.RevokedAt)
		m.RecomputeExpiry()
	}
	return m
}

func fromModel(c *models.Client) clientJSON {
	out := clientJSON{
		Name:      c.Name,
		ID:        c.ID,
		Level:     c.Level,
		StartDate: toEpoch(c.StartDate),
		Duration:  c.Duration.Seconds(),
	}
	if c.IsRevoked() {
		out.RevokedAt = toEpoch(c.RevokedAt)
	}
	return out
}

func fromEpoch(sec float64) time.Time {
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*1e9))
}

func toEpoch(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}
