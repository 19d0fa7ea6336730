package db

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/assert/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		Redis.Close()
		Redis = nil
	})
	return mr
}

func TestQueue_PushPopFIFO(t *testing.T) {
	setupTestRedis(t)

	assert.Equal(t, nil, PushToQueue(ScoreQueueKey, "first"))
	assert.Equal(t, nil, PushToQueue(ScoreQueueKey, "second"))

	got, err := PopFromQueue(ScoreQueueKey, time.Second)
	assert.Equal(t, nil, err)
	assert.Equal(t, "first", got)

	got, err = PopFromQueue(ScoreQueueKey, time.Second)
	assert.Equal(t, nil, err)
	assert.Equal(t, "second", got)
}

func TestQueue_Length(t *testing.T) {
	setupTestRedis(t)

	n, err := QueueLength(ScoreQueueKey)
	assert.Equal(t, nil, err)
	assert.Equal(t, int64(0), n)

	PushToQueue(ScoreQueueKey, "a")
	PushToQueue(ScoreQueueKey, "b")

	n, err = QueueLength(ScoreQueueKey)
	assert.Equal(t, nil, err)
	assert.Equal(t, int64(2), n)
}

func TestQueue_DeadLetterSeparate(t *testing.T) {
	setupTestRedis(t)

	PushToQueue(ScoreQueueKey, "live")
	PushToQueue(DeadLetterKey, "dead")

	n, _ := QueueLength(ScoreQueueKey)
	assert.Equal(t, int64(1), n)

	got, err := PopFromQueue(DeadLetterKey, time.Second)
	assert.Equal(t, nil, err)
	assert.Equal(t, "dead", got)
}
