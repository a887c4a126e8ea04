package errx

import (
	"errors"

	"github.com/redis/go-redis/v9"
)

// WrapRedis maps Redis errors to the unified AppError type. A redis.Nil is
// not an error for the session store (missing key means a fresh session),
// so callers should check for it before wrapping.
func WrapRedis(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return Wrap(err, StoreFailed, RedisErrorMessage)
}
