// Package services holds the sync engine: the single entry point for every
// client lifecycle transition in useray.
//
// The engine keeps two stores in agreement. The access list inside the proxy
// configuration is the enforcement surface; the metadata store is the record
// of truth. Writes are ordered so that an interrupted grant leaves a
// credential enforced but untracked, and an interrupted revoke leaves it
// tracked as revoked but still enforced. Reconcile detects and repairs both on
// the next start.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/useray/internal/common"
	"github.com/dmitrijs2005/useray/internal/logging"
	"github.com/dmitrijs2005/useray/internal/models"
	"github.com/dmitrijs2005/useray/internal/repositories/accesslist"
	"github.com/dmitrijs2005/useray/internal/repositories/metadata"
)

// SyncEngine composes the metadata store and the proxy access list.
// It is not safe for concurrent use.
type SyncEngine struct {
	meta   metadata.Repository
	access accesslist.Repository
	log    logging.Logger
}

// timeNow stamps the start date of adopted placeholder records. It can be
// overridden in tests.
var timeNow = time.Now

// NewSyncEngine wires the engine. Both stores must already be loaded.
func NewSyncEngine(meta metadata.Repository, access accesslist.Repository, log logging.Logger) *SyncEngine {
	return &SyncEngine{meta: meta, access: access, log: log.With("component", "sync")}
}

// ReconcileReport lists the ids touched by a reconciliation pass.
type ReconcileReport struct {
	Adopted   []string // in the access list but unknown to metadata
	Withdrawn []string // expired yet still enforced
	Granted   []string // live but missing from the access list
	Releveled []string // enforced with a stale level
}

// Changed reports whether the pass repaired anything.
func (r ReconcileReport) Changed() bool {
	return len(r.Adopted)+len(r.Withdrawn)+len(r.Granted)+len(r.Releveled) > 0
}

// Reconcile repairs divergence between the stores. It runs at startup,
// before any lifecycle operation, and is idempotent.
func (s *SyncEngine) Reconcile(ctx context.Context) (ReconcileReport, error) {
	var report ReconcileReport

	for _, e := range s.access.Entries() {
		if _, ok := s.meta.Get(e.ID); ok {
			continue
		}
		level := e.Level
		if level < 0 {
			s.log.Warn(ctx, "negative access level clamped to 0", "id", e.ID, "level", e.Level)
			level = 0
		}
		s.meta.Put(models.NewClient(models.DefaultName, e.ID, timeNow(), models.OneMonth, level))
		report.Adopted = append(report.Adopted, e.ID)
		s.log.Warn(ctx, "adopted access entry granted outside useray", "id", e.ID, "level", level)
	}
	if len(report.Adopted) > 0 {
		if err := s.meta.Save(ctx); err != nil {
			return report, fmt.Errorf("failed to save adopted clients: %w", err)
		}
	}

	for _, c := range s.meta.List() {
		if c.IsExpired {
			if !s.access.Contains(c.ID) {
				continue
			}
			if err := s.access.Remove(ctx, c.ID); err != nil {
				return report, fmt.Errorf("failed to withdraw %s: %w", c.ID, err)
			}
			report.Withdrawn = append(report.Withdrawn, c.ID)
			s.log.Warn(ctx, "withdrew expired client", "id", c.ID, "end_date", c.EndDate)
			continue
		}

		e, ok := s.access.Get(c.ID)
		switch {
		case !ok:
			report.Granted = append(report.Granted, c.ID)
			s.log.Warn(ctx, "granted live client missing from access list", "id", c.ID)
		case e.Level != c.Level:
			report.Releveled = append(report.Releveled, c.ID)
			s.log.Warn(ctx, "corrected access level", "id", c.ID, "from", e.Level, "to", c.Level)
		default:
			continue
		}
		if err := s.grant(ctx, c); err != nil {
			return report, err
		}
	}

	if err := s.meta.Save(ctx); err != nil {
		return report, fmt.Errorf("failed to save clients: %w", err)
	}

	s.log.Info(ctx, "reconciled stores",
		"clients", s.meta.Len(),
		"adopted", len(report.Adopted),
		"withdrawn", len(report.Withdrawn),
		"granted", len(report.Granted),
		"releveled", len(report.Releveled))
	return report, nil
}

// AddClient registers a new client and grants it access.
func (s *SyncEngine) AddClient(ctx context.Context, c *models.Client) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if _, ok := s.meta.Get(c.ID); ok {
		return fmt.Errorf("%w: client %s", common.ErrorDuplicate, c.ID)
	}

	rec := c.Clone().RecomputeExpiry()
	if !rec.IsExpired {
		if err := s.grant(ctx, rec); err != nil {
			return err
		}
	}

	s.meta.Put(rec)
	if err := s.save(ctx, func() { s.meta.Delete(rec.ID) }); err != nil {
		return err
	}

	s.log.Info(ctx, "client added", "id", rec.ID, "name", rec.Name, "level", rec.Level, "end_date", rec.EndDate)
	return nil
}

// ExtendClient lengthens a client's window by delta. A client whose window
// had already lapsed, and was therefore withdrawn, is granted again.
func (s *SyncEngine) ExtendClient(ctx context.Context, id string, delta time.Duration) error {
	if delta <= 0 {
		return fmt.Errorf("%w: extension %s must be positive", common.ErrorValidation, delta)
	}
	c, err := s.mustGet(id)
	if err != nil {
		return err
	}
	if c.IsRevoked() {
		return fmt.Errorf("%w: client %s is revoked, reinstate it first", common.ErrorValidation, id)
	}

	prev := c.Clone()
	c.Extend(delta)
	if !c.IsExpired {
		if err := s.grant(ctx, c); err != nil {
			return err
		}
	}

	s.meta.Put(c)
	if err := s.save(ctx, func() { s.meta.Put(prev) }); err != nil {
		return err
	}

	s.log.Info(ctx, "client extended", "id", id, "delta", delta, "end_date", c.EndDate)
	return nil
}

// RevokeClient expires a client immediately and withdraws its access. The
// record is kept as history.
func (s *SyncEngine) RevokeClient(ctx context.Context, id string) error {
	c, err := s.mustGet(id)
	if err != nil {
		return err
	}
	if c.IsRevoked() {
		return fmt.Errorf("%w: client %s is already revoked", common.ErrorValidation, id)
	}

	prev := c.Clone()
	s.meta.Put(c.Revoke())
	if err := s.save(ctx, func() { s.meta.Put(prev) }); err != nil {
		return err
	}
	if err := s.withdraw(ctx, id); err != nil {
		return err
	}

	s.log.Info(ctx, "client revoked", "id", id)
	return nil
}

// ReinstateClient undoes a revoke. Access is granted again if the original
// window is still open.
func (s *SyncEngine) ReinstateClient(ctx context.Context, id string) error {
	c, err := s.mustGet(id)
	if err != nil {
		return err
	}
	if !c.IsRevoked() {
		return fmt.Errorf("%w: client %s is not revoked", common.ErrorValidation, id)
	}

	prev := c.Clone()
	c.Reinstate()
	if !c.IsExpired {
		if err := s.grant(ctx, c); err != nil {
			return err
		}
	}

	s.meta.Put(c)
	if err := s.save(ctx, func() { s.meta.Put(prev) }); err != nil {
		return err
	}

	s.log.Info(ctx, "client reinstated", "id", id, "expired", c.IsExpired)
	return nil
}

// UpdateClient replaces the stored record for id. Level and expiry changes
// are carried over to the access list.
func (s *SyncEngine) UpdateClient(ctx context.Context, id string, c *models.Client) error {
	if c.ID != id {
		return fmt.Errorf("%w: record id %s does not match %s", common.ErrorValidation, c.ID, id)
	}
	if err := c.ValidateFields(); err != nil {
		return err
	}
	prev, err := s.mustGet(id)
	if err != nil {
		return err
	}

	rec := c.Clone().RecomputeExpiry()
	if !rec.IsExpired {
		if err := s.grant(ctx, rec); err != nil {
			return err
		}
	}

	s.meta.Put(rec)
	if err := s.save(ctx, func() { s.meta.Put(prev) }); err != nil {
		return err
	}

	if rec.IsExpired {
		if err := s.withdraw(ctx, id); err != nil {
			return err
		}
	}

	s.log.Info(ctx, "client updated", "id", id, "name", rec.Name, "level", rec.Level, "end_date", rec.EndDate)
	return nil
}

// ListExpired returns every record whose window has closed. It writes nothing.
func (s *SyncEngine) ListExpired(ctx context.Context) []*models.Client {
	var out []*models.Client
	for _, c := range s.meta.List() {
		if c.IsExpired {
			out = append(out, c)
		}
	}
	s.log.Debug(ctx, "listed expired clients", "count", len(out))
	return out
}

// ClearExpired permanently deletes expired records and returns how many
// were removed. Access is withdrawn before the record is forgotten, so an
// interruption never leaves an untracked entry that Reconcile would adopt.
func (s *SyncEngine) ClearExpired(ctx context.Context) (int, error) {
	expired := s.ListExpired(ctx)
	if len(expired) == 0 {
		return 0, nil
	}

	for _, c := range expired {
		if err := s.withdraw(ctx, c.ID); err != nil {
			return 0, err
		}
	}
	for _, c := range expired {
		s.meta.Delete(c.ID)
	}
	if err := s.save(ctx, func() {
		for _, c := range expired {
			s.meta.Put(c)
		}
	}); err != nil {
		return 0, err
	}

	s.log.Info(ctx, "cleared expired clients", "count", len(expired))
	return len(expired), nil
}

// Get returns a copy of the record for id.
func (s *SyncEngine) Get(id string) (*models.Client, bool) {
	return s.meta.Get(id)
}

// List returns copies of all records ordered by id.
func (s *SyncEngine) List() []*models.Client {
	return s.meta.List()
}

// Enforced reports whether id currently has an access entry.
func (s *SyncEngine) Enforced(id string) bool {
	return s.access.Contains(id)
}

func (s *SyncEngine) mustGet(id string) (*models.Client, error) {
	c, ok := s.meta.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: client %s", common.ErrorNotFound, id)
	}
	return c, nil
}

// grant makes sure c has an access entry carrying its level.
func (s *SyncEngine) grant(ctx context.Context, c *models.Client) error {
	if !s.access.Contains(c.ID) {
		if err := s.access.Add(ctx, accesslist.Entry{ID: c.ID, Level: c.Level}); err != nil {
			return fmt.Errorf("failed to grant %s: %w", c.ID, err)
		}
		return nil
	}
	if err := s.access.SetLevel(ctx, c.ID, c.Level); err != nil {
		return fmt.Errorf("failed to set level of %s: %w", c.ID, err)
	}
	return nil
}

func (s *SyncEngine) withdraw(ctx context.Context, id string) error {
	if err := s.access.Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to withdraw %s: %w", id, err)
	}
	return nil
}

// save persists metadata, running undo to restore the in-memory state when
// the write fails.
func (s *SyncEngine) save(ctx context.Context, undo func()) error {
	if err := s.meta.Save(ctx); err != nil {
		undo()
		s.log.Error(ctx, "failed to save clients", "error", err)
		return fmt.Errorf("failed to save clients: %w", err)
	}
	return nil
}
