// Package models defines the credentialed client record tracked by useray and
// the helpers used to create one.
package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/useray/internal/common"
)

// Validity window presets.
const (
	OneDay      = 24 * time.Hour
	OneWeek     = 7 * OneDay
	OneMonth    = 30 * OneDay
	ThreeMonths = 90 * OneDay
)

// DefaultName labels placeholder records synthesized for access entries that
// were granted outside of useray.
const DefaultName = "No name"

const dateLayout = "2006-01-02 15:04:05"

// timeNow returns the current time. It can be overridden in tests.
var timeNow = time.Now

// Client is one credentialed proxy user and its validity window.
type Client struct {
	// ID is a version-1 UUID shared with the proxy access entry.
	ID string

	// Name is a free-form display label.
	Name string

	// Level is copied verbatim into the proxy access entry.
	Level int

	StartDate time.Time
	Duration  time.Duration

	// RevokedAt is the moment of the last revoke, zero while not revoked.
	RevokedAt time.Time

	// EndDate and IsExpired are derived; see RecomputeExpiry.
	EndDate   time.Time
	IsExpired bool
}

// NewClient builds a record with its derived fields already computed.
func NewClient(name, id string, start time.Time, duration time.Duration, level int) *Client {
	c := &Client{
		ID:        id,
		Name:      name,
		Level:     level,
		StartDate: start,
		Duration:  duration,
	}
	return c.RecomputeExpiry()
}

// RecomputeExpiry refreshes EndDate and IsExpired against the current time.
func (c *Client) RecomputeExpiry() *Client {
	if c.IsRevoked() {
		c.EndDate = c.RevokedAt.Add(-time.Second)
	} else {
		c.EndDate = c.StartDate.Add(c.Duration)
	}
	c.IsExpired = timeNow().After(c.EndDate)
	return c
}

// Extend lengthens the window by delta. StartDate is left untouched.
func (c *Client) Extend(delta time.Duration) *Client {
	c.Duration += delta
	return c.RecomputeExpiry()
}

// Revoke expires the record immediately: EndDate becomes one second before now.
func (c *Client) Revoke() *Client {
	c.RevokedAt = timeNow()
	return c.RecomputeExpiry()
}

// Reinstate undoes Revoke and restores EndDate to StartDate + Duration.
func (c *Client) Reinstate() *Client {
	c.RevokedAt = time.Time{}
	return c.RecomputeExpiry()
}

func (c *Client) IsRevoked() bool {
	return !c.RevokedAt.IsZero()
}

// DaysLeft returns whole days until EndDate, rounded down, so any end date in
// the past gives a negative count.
func (c *Client) DaysLeft() int {
	left := c.EndDate.Sub(timeNow())
	days := left / OneDay
	if left%OneDay < 0 {
		days--
	}
	return int(days)
}

// Validate checks a record about to be granted: a well-formed id plus the
// fields checked by ValidateFields.
func (c *Client) Validate() error {
	if err := ValidateID(c.ID); err != nil {
		return err
	}
	return c.ValidateFields()
}

// ValidateFields checks level and duration only. Records adopted from the
// access list may carry ids that are not UUIDs and must stay editable.
func (c *Client) ValidateFields() error {
	if c.Level < 0 {
		return fmt.Errorf("%w: level %d is negative", common.ErrorValidation, c.Level)
	}
	if c.Duration < 0 {
		return fmt.Errorf("%w: duration %s is negative", common.ErrorValidation, c.Duration)
	}
	return nil
}

// Clone returns an independent copy.
func (c *Client) Clone() *Client {
	cp := *c
	return &cp
}

// Preview is the short "id (name)" form used in pickers.
func (c *Client) Preview() string {
	return fmt.Sprintf("%s (%s)", c.ID, c.Name)
}

func (c *Client) String() string {
	return fmt.Sprintf("Client(name=%s, id=%s, level=%d, start_date=%s, end_date=%s, expired=%t)",
		c.Name, c.ID, c.Level,
		c.StartDate.Local().Format(dateLayout), c.EndDate.Local().Format(dateLayout), c.IsExpired)
}

// ParseDate parses a YYYY-MM-DD date in the local time zone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return t, nil
}
