// Package entity defines a user's north star.
package entity

import "time"

// Direction is one emoji-and-phrase entry under a compass point.
type Direction struct {
	Emoji  string `json:"emoji" validate:"required"`
	Phrase string `json:"phrase" validate:"required"`
}

// NorthStar is the single vision record a user keeps. MetaVersion starts at 1
// and grows by one on every save.
type NorthStar struct {
	ID          string      `json:"id"`
	OwnerEmail  string      `json:"ownerEmail"`
	Haiku       string      `json:"haiku"`
	North       []Direction `json:"north"`
	East        []Direction `json:"east"`
	South       []Direction `json:"south"`
	West        []Direction `json:"west"`
	MetaVersion int         `json:"metaVersion"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
