// Package dto holds the wire shapes of the north star API.
package dto

import "tend_backend/internal/feature/northstar/domain/entity"

// SaveNorthStarReq is the body of POST /api/northStar.
type SaveNorthStarReq struct {
	OwnerEmail string             `json:"ownerEmail"`
	Haiku      string             `json:"haiku"`
	North      []entity.Direction `json:"north"`
	East       []entity.Direction `json:"east"`
	South      []entity.Direction `json:"south"`
	West       []entity.Direction `json:"west"`
}
