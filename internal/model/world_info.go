package model

import (
	"time"

	"github.com/google/uuid"
)

// WorldInfo describes a persisted world: the seed and dimensions that fully
// determine its terrain.
type WorldInfo struct {
	ID        uuid.UUID
	Seed      int64
	Width     int
	Height    int
	ChunkSize int
	CreatedAt time.Time
}
