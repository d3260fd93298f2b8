package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/emrgen/bookbrainz/internal/compress"
	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "bookbrainz:"

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

var _ Cache = (*Redis)(nil)

// Redis stores values as compressed JSON.
type Redis struct {
	client  *redis.Client
	encoder compress.Compress
}

func NewRedis(opts RedisOptions, encoder compress.Compress) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
		Protocol: 2,
	})

	return NewRedisFromClient(client, encoder)
}

func NewRedisFromClient(client *redis.Client, encoder compress.Compress) *Redis {
	if encoder == nil {
		encoder = compress.NewNop()
	}
	return &Redis{client: client, encoder: encoder}
}

// Ping checks that the server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Get(ctx context.Context, key string, dst any) (bool, error) {
	res := r.client.Get(ctx, keyPrefix+key)
	if err := res.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	buf, err := res.Bytes()
	if err != nil {
		return false, err
	}

	if err := decode(r.encoder, buf, dst); err != nil {
		// a value written with another codec is treated as a miss and overwritten later
		logrus.Warnf("cache: dropping undecodable value for %s: %v", key, err)
		return false, nil
	}

	return true, nil
}

func (r *Redis) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	buf, err := encode(r.encoder, v)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, keyPrefix+key, buf, ttl).Err()
}

func encode(encoder compress.Compress, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return encoder.Encode(data)
}

func decode(encoder compress.Compress, buf []byte, dst any) error {
	data, err := encoder.Decode(buf)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
