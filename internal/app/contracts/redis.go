package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	Delete(ctx context.Context, key string) error
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
	AddToSet(ctx context.Context, key string, values ...interface{}) error
	GetSetMembers(ctx context.Context, key string) ([]string, error)
	RemoveFromSet(ctx context.Context, key string, values ...interface{}) error
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
	// DeleteIfEquals and ExpireIfEquals compare and act in one atomic step.
	DeleteIfEquals(ctx context.Context, key string, value interface{}) (bool, error)
	ExpireIfEquals(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
}
