package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grebnov/neoncity/internal/model"
)

// WorldRepository persists generated worlds and their chunks. Chunks are
// stored as JSONB so a saved world can be served without regenerating.
type WorldRepository struct {
	pool *pgxpool.Pool
}

// NewWorldRepository creates a repository on the shared pool.
func NewWorldRepository(pool *pgxpool.Pool) *WorldRepository {
	return &WorldRepository{pool: pool}
}

// Create inserts a new world row and returns its info.
func (r *WorldRepository) Create(ctx context.Context, seed int64, width, height, chunkSize int) (*model.WorldInfo, error) {
	info := &model.WorldInfo{
		ID:        uuid.New(),
		Seed:      seed,
		Width:     width,
		Height:    height,
		ChunkSize: chunkSize,
		CreatedAt: time.Now(),
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO worlds (id, seed, width, height, chunk_size, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		info.ID, info.Seed, info.Width, info.Height, info.ChunkSize, info.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating world seed=%d: %w", seed, err)
	}
	return info, nil
}

// Get returns a world by id.
// Returns nil, nil if the world does not exist.
func (r *WorldRepository) Get(ctx context.Context, id uuid.UUID) (*model.WorldInfo, error) {
	var info model.WorldInfo
	err := r.pool.QueryRow(ctx,
		`SELECT id, seed, width, height, chunk_size, created_at
		 FROM worlds WHERE id = $1`, id,
	).Scan(&info.ID, &info.Seed, &info.Width, &info.Height, &info.ChunkSize, &info.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying world %s: %w", id, err)
	}
	return &info, nil
}

// Find returns the newest world matching seed and dimensions.
// Returns nil, nil if no such world has been persisted.
func (r *WorldRepository) Find(ctx context.Context, seed int64, width, height, chunkSize int) (*model.WorldInfo, error) {
	var info model.WorldInfo
	err := r.pool.QueryRow(ctx,
		`SELECT id, seed, width, height, chunk_size, created_at
		 FROM worlds
		 WHERE seed = $1 AND width = $2 AND height = $3 AND chunk_size = $4
		 ORDER BY created_at DESC
		 LIMIT 1`,
		seed, width, height, chunkSize,
	).Scan(&info.ID, &info.Seed, &info.Width, &info.Height, &info.ChunkSize, &info.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying world seed=%d: %w", seed, err)
	}
	return &info, nil
}

// SaveChunk upserts one chunk of tiles and structures.
func (r *WorldRepository) SaveChunk(ctx context.Context, worldID uuid.UUID, cx, cy int, tiles []*model.Tile, structures []*model.Structure) error {
	tileData, err := json.Marshal(tiles)
	if err != nil {
		return fmt.Errorf("encoding tiles for chunk (%d,%d): %w", cx, cy, err)
	}
	if structures == nil {
		structures = []*model.Structure{}
	}
	structData, err := json.Marshal(structures)
	if err != nil {
		return fmt.Errorf("encoding structures for chunk (%d,%d): %w", cx, cy, err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO world_chunks (world_id, cx, cy, tiles, structures, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (world_id, cx, cy) DO UPDATE
		 SET tiles = EXCLUDED.tiles, structures = EXCLUDED.structures, updated_at = EXCLUDED.updated_at`,
		worldID, cx, cy, tileData, structData, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("saving chunk (%d,%d) of world %s: %w", cx, cy, worldID, err)
	}
	return nil
}

// LoadChunk reads one chunk back.
// Returns nil slices and no error when the chunk is absent.
func (r *WorldRepository) LoadChunk(ctx context.Context, worldID uuid.UUID, cx, cy int) ([]*model.Tile, []*model.Structure, error) {
	var tileData, structData []byte
	err := r.pool.QueryRow(ctx,
		`SELECT tiles, structures FROM world_chunks
		 WHERE world_id = $1 AND cx = $2 AND cy = $3`,
		worldID, cx, cy,
	).Scan(&tileData, &structData)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("querying chunk (%d,%d) of world %s: %w", cx, cy, worldID, err)
	}

	var tiles []*model.Tile
	if err := json.Unmarshal(tileData, &tiles); err != nil {
		return nil, nil, fmt.Errorf("decoding tiles for chunk (%d,%d): %w", cx, cy, err)
	}
	var structures []*model.Structure
	if err := json.Unmarshal(structData, &structures); err != nil {
		return nil, nil, fmt.Errorf("decoding structures for chunk (%d,%d): %w", cx, cy, err)
	}
	return tiles, structures, nil
}

// CountChunks returns how many chunks are stored for the world.
func (r *WorldRepository) CountChunks(ctx context.Context, worldID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM world_chunks WHERE world_id = $1`, worldID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting chunks of world %s: %w", worldID, err)
	}
	return n, nil
}
