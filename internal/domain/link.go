package domain

import "time"

type Link struct {
	ID     string
	UserID string
	Title  string
	URL    string

	Visible bool

	// Position is a caller-assigned sort key. It is not kept contiguous or
	// unique; ordering is a soft sort, not a strict sequence.
	Position int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LinkPosition is one entry of a bulk reorder request.
type LinkPosition struct {
	ID       string
	Position int
}
