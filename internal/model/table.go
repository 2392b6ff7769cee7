package model

import "time"

// TableID identifies one browser or API client and everything it owns
type TableID string

// PlayerSession lasts from name entry until New Game returns to name entry
type PlayerSession struct {
	PlayerName string
	Started    bool
	StartedAt  time.Time
}

// Banner is a transient message that disappears at ExpiresAt
type Banner struct {
	Message   string
	ExpiresAt time.Time
}

// Table holds the player session, current round and view flags for one client.
// The ranking list is stored separately under the same ID.
type Table struct {
	ID          TableID
	Player      *PlayerSession // nil while the name entry screen is shown
	Round       *RoundState    // nil until a session starts
	ShowRanking bool
	Banner      *Banner
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Version is the number of times the table has been saved. A save only
	// succeeds if the stored table still has the same version.
	Version int64
}

// HasSession returns true if a player has entered a name and started
func (t *Table) HasSession() bool {
	return t.Player != nil && t.Player.Started
}

// ActiveBanner returns the banner if it has not yet expired at now
func (t *Table) ActiveBanner(now time.Time) *Banner {
	if t.Banner == nil || !now.Before(t.Banner.ExpiresAt) {
		return nil
	}
	return t.Banner
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	c := *t
	if t.Player != nil {
		p := *t.Player
		c.Player = &p
	}
	if t.Round != nil {
		r := t.Round.Clone()
		c.Round = &r
	}
	if t.Banner != nil {
		b := *t.Banner
		c.Banner = &b
	}
	return &c
}

// ScoreRecord is one completed round in the ranking list
type ScoreRecord struct {
	PlayerName  string
	MoveCount   int
	CompletedAt time.Time
}
