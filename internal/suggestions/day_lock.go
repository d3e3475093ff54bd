package suggestions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrSuggestionInProgress = errors.New("suggestion for this day already in progress")

// releaseScript deletes the lock only when it still holds our token, so a
// lock that expired and was taken over by another request is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// DayLock serializes workout suggestions per day across all service instances.
type DayLock struct {
	rdb      *redis.Client
	ttl      time.Duration
	newToken func() string
}

func NewDayLock(rdb *redis.Client, ttl time.Duration) *DayLock {
	return &DayLock{
		rdb:      rdb,
		ttl:      ttl,
		newToken: uuid.NewString,
	}
}

func dayLockKey(day string) string {
	return "suggest-lock::" + day
}

// Acquire returns the lock token, or ErrSuggestionInProgress if someone else holds it.
func (l *DayLock) Acquire(ctx context.Context, day string) (string, error) {
	token := l.newToken()
	ok, err := l.rdb.SetNX(ctx, dayLockKey(day), token, l.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("acquire day lock [%s]: %w", day, err)
	}
	if !ok {
		return "", ErrSuggestionInProgress
	}
	return token, nil
}

func (l *DayLock) Release(ctx context.Context, day, token string) error {
	if err := releaseScript.Run(ctx, l.rdb, []string{dayLockKey(day)}, token).Err(); err != nil {
		return fmt.Errorf("release day lock [%s]: %w", day, err)
	}
	return nil
}
