package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"workspace-service/internal/domain"
)

// CacheRepository keeps the file-with-version projection in redis so hot read
// paths skip the join. Entries are dropped whenever the latest version moves.
type CacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheRepository(client *redis.Client, ttl time.Duration) *CacheRepository {
	return &CacheRepository{client: client, ttl: ttl}
}

func (r *CacheRepository) GetFile(ctx context.Context, fileID uuid.UUID) (*domain.FileWithVersion, error) {
	val, err := r.client.Get(ctx, r.key(fileID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file from cache: %w", err)
	}

	var file domain.FileWithVersion
	if err := json.Unmarshal([]byte(val), &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached file: %w", err)
	}

	return &file, nil
}

func (r *CacheRepository) SetFile(ctx context.Context, file *domain.FileWithVersion) error {
	data, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal file for cache: %w", err)
	}

	if err := r.client.Set(ctx, r.key(file.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache file: %w", err)
	}

	return nil
}

func (r *CacheRepository) DeleteFile(ctx context.Context, fileID uuid.UUID) error {
	if err := r.client.Del(ctx, r.key(fileID)).Err(); err != nil {
		return fmt.Errorf("failed to drop file from cache: %w", err)
	}

	return nil
}

func (r *CacheRepository) key(fileID uuid.UUID) string {
	return fmt.Sprintf("file:%s", fileID)
}
