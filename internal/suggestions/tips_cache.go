package suggestions

import (
	"fmt"

	"github.com/2beens/workoutlog/internal/telemetry/metrics"
	"github.com/2beens/workoutlog/internal/workouts"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const defaultTipsCacheSize = 8 * 1024 * 1024

// TipsCache keeps generated exercise tips in memory. The key covers the
// exercise name, so replacing an exercise never serves stale tips.
type TipsCache struct {
	cache          *freecache.Cache
	ttlSeconds     int
	metricsManager *metrics.Manager
}

// NewTipsCache returns a disabled cache when ttlSeconds is 0.
func NewTipsCache(ttlSeconds int, metricsManager *metrics.Manager) *TipsCache {
	tc := &TipsCache{
		ttlSeconds:     ttlSeconds,
		metricsManager: metricsManager,
	}
	if ttlSeconds > 0 {
		tc.cache = freecache.NewCache(defaultTipsCacheSize)
	}
	return tc
}

func (c *TipsCache) Enabled() bool {
	return c != nil && c.cache != nil
}

func tipsCacheKey(exercise workouts.Exercise, additionalInput string) []byte {
	return []byte(fmt.Sprintf("tips::%d::%s::%s", exercise.ID, exercise.Name, additionalInput))
}

func (c *TipsCache) Get(exercise workouts.Exercise, additionalInput string) (string, bool) {
	if !c.Enabled() {
		return "", false
	}

	val, err := c.cache.Get(tipsCacheKey(exercise, additionalInput))
	if err != nil {
		c.count("miss")
		return "", false
	}
	c.count("hit")
	return string(val), true
}

func (c *TipsCache) Set(exercise workouts.Exercise, additionalInput, tips string) {
	if !c.Enabled() {
		return
	}
	if err := c.cache.Set(tipsCacheKey(exercise, additionalInput), []byte(tips), c.ttlSeconds); err != nil {
		log.Warnf("cache tips for exercise %d: %s", exercise.ID, err)
	}
}

func (c *TipsCache) count(result string) {
	if c.metricsManager != nil {
		c.metricsManager.CounterTipsCache.WithLabelValues(result).Inc()
	}
}
