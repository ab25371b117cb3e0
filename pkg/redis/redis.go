package redis

import (
	"context"
	"sync"

	goredis "github.com/redis/go-redis/v9"
)

type Options = goredis.UniversalOptions

// StreamMessage represents a single entry in a Redis stream.
type StreamMessage struct {
	ID     string
	Values map[string]interface{}
}

// RedisAdapter is the subset of Redis the lead pipeline needs: streams
// for event publishing and the dead-letter record.
type RedisAdapter interface {
	XAdd(key string, values map[string]interface{}) (string, error)
	XLen(key string) (int64, error)
	XRange(key string, start, stop string, count int64) ([]StreamMessage, error)
	XTrimApprox(key string, maxLen int64) error

	Client() goredis.UniversalClient
}

type redisAdapter struct {
	prefix   string
	Conn     goredis.UniversalClient
	ConnName string
}

var redisLock = &sync.RWMutex{}
var redisInstance map[string]RedisAdapter

// NewRedisAdapter returns the adapter registered under connName,
// creating and caching it on first use.
func NewRedisAdapter(connName string, keysPrefix string, opts *goredis.UniversalOptions) (RedisAdapter, error) {
	redisLock.RLock()
	if redisInstance != nil {
		if adapter, ok := redisInstance[connName]; ok {
			redisLock.RUnlock()
			return adapter, nil
		}
	}
	redisLock.RUnlock()

	c := goredis.NewUniversalClient(opts)
	if cmd := c.Ping(context.Background()); cmd.Err() != nil {
		return nil, cmd.Err()
	}

	adapter := &redisAdapter{
		Conn:     c,
		prefix:   keysPrefix,
		ConnName: connName,
	}

	redisLock.Lock()
	if redisInstance == nil {
		redisInstance = make(map[string]RedisAdapter)
	}
	redisInstance[connName] = adapter
	redisLock.Unlock()

	return adapter, nil
}

func GetRedis(connName ...string) RedisAdapter {
	redisLock.RLock()
	defer redisLock.RUnlock()

	name := "default"
	if len(connName) > 0 && connName[0] != "" {
		name = connName[0]
	}

	if adapter, ok := redisInstance[name]; ok {
		return adapter
	}
	return redisInstance["default"]
}

func (r *redisAdapter) XAdd(key string, values map[string]interface{}) (string, error) {
	cmd := r.Conn.XAdd(context.Background(), &goredis.XAddArgs{
		Stream: r.prefix + key,
		Values: values,
	})
	if err := cmd.Err(); err != nil {
		return "", err
	}
	return cmd.Val(), nil
}

func (r *redisAdapter) XLen(key string) (int64, error) {
	cmd := r.Conn.XLen(context.Background(), r.prefix+key)
	if err := cmd.Err(); err != nil {
		return 0, err
	}
	return cmd.Val(), nil
}

func (r *redisAdapter) XRange(key string, start, stop string, count int64) ([]StreamMessage, error) {
	var cmd *goredis.XMessageSliceCmd
	if count > 0 {
		cmd = r.Conn.XRangeN(context.Background(), r.prefix+key, start, stop, count)
	} else {
		cmd = r.Conn.XRange(context.Background(), r.prefix+key, start, stop)
	}
	if err := cmd.Err(); err != nil {
		return nil, err
	}

	msgs := make([]StreamMessage, 0, len(cmd.Val()))
	for _, m := range cmd.Val() {
		msgs = append(msgs, StreamMessage{ID: m.ID, Values: m.Values})
	}
	return msgs, nil
}

func (r *redisAdapter) XTrimApprox(key string, maxLen int64) error {
	return r.Conn.XTrimMaxLenApprox(context.Background(), r.prefix+key, maxLen, 0).Err()
}

func (r *redisAdapter) Client() goredis.UniversalClient {
	return r.Conn
}
