package characters

import (
	"context"
	"errors"
	"sort"

	"github.com/KirkDiggler/dnd-sheet/internal/domain/character"
	dnderr "github.com/KirkDiggler/dnd-sheet/internal/errors"
	"github.com/KirkDiggler/dnd-sheet/internal/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultKeyPrefix namespaces record keys as "character:<id>"
	DefaultKeyPrefix = "character"

	defaultListConcurrency = 8
)

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client          redis.UniversalClient
	uuidGenerator   uuid.Generator
	prefix          string
	listConcurrency int
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client          redis.UniversalClient
	UUIDGenerator   uuid.Generator // Optional, defaults to google uuid
	KeyPrefix       string         // Optional, defaults to DefaultKeyPrefix
	ListConcurrency int            // Optional, parallel reads in List
}

// NewRedisRepository creates a new Redis-backed character repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	repo := &redisRepo{
		client:          cfg.Client,
		uuidGenerator:   cfg.UUIDGenerator,
		prefix:          cfg.KeyPrefix,
		listConcurrency: cfg.ListConcurrency,
	}
	if repo.uuidGenerator == nil {
		repo.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if repo.prefix == "" {
		repo.prefix = DefaultKeyPrefix
	}
	if repo.listConcurrency <= 0 {
		repo.listConcurrency = defaultListConcurrency
	}
	return repo
}

// key generates the Redis key for a record
func (r *redisRepo) key(id string) string {
	return r.prefix + ":" + id
}

// indexKey is the set of every stored id
func (r *redisRepo) indexKey() string {
	return r.prefix + "s"
}

func (r *redisRepo) Get(ctx context.Context, id string) (*character.Record, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, dnderr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to get character").
			WithMeta("character_id", id)
	}

	rec, err := character.Unmarshal(data)
	if err != nil {
		return nil, dnderr.Wrapf(err, "character '%s' is corrupt", id).
			WithMeta("character_id", id)
	}
	return rec, nil
}

func (r *redisRepo) Save(ctx context.Context, rec *character.Record) error {
	if rec == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}
	if rec.Meta.ID == "" {
		rec.Meta.ID = r.uuidGenerator.New()
	}

	data, err := character.Marshal(rec)
	if err != nil {
		return err
	}

	id := rec.Meta.ID
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(id), string(data), 0)
		pipe.SAdd(ctx, r.indexKey(), id)
		return nil
	})
	if err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to save character").
			WithMeta("character_id", id)
	}
	return nil
}

func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("character ID is required")
	}

	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, r.key(id))
		pipe.SRem(ctx, r.indexKey(), id)
		return nil
	})
	if err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to delete character").
			WithMeta("character_id", id)
	}
	if del.Val() == 0 {
		return dnderr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	return nil
}

func (r *redisRepo) List(ctx context.Context) ([]*character.Record, error) {
	ids, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to list character IDs")
	}
	sort.Strings(ids)

	records := make([]*character.Record, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.listConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			rec, err := r.Get(gctx, id)
			if dnderr.IsNotFound(err) {
				// removed between SMEMBERS and GET
				return nil
			}
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := records[:0]
	for _, rec := range records {
		if rec != nil {
			out = append(out, rec)
		}
	}
	return out, nil
}
