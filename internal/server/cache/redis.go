// Package cache keeps immutable daily quizzes in Redis so hot reads skip
// the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/dmitrijs2005/vocabday/internal/common"
	"github.com/dmitrijs2005/vocabday/internal/server/models"
	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

const quizKeyPrefix = "quiz:"

// QuizCache implements services.QuizCache over any redis.Cmdable.
type QuizCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewQuizCache(client redis.Cmdable, ttl time.Duration) *QuizCache {
	return &QuizCache{client: client, ttl: ttl}
}

func quizKey(id int64) string {
	return quizKeyPrefix + strconv.FormatInt(id, 10)
}

// Get returns the cached quiz or common.ErrorNotFound on a miss.
func (c *QuizCache) Get(ctx context.Context, id int64) (*models.Quiz, error) {
	data, err := c.client.Get(ctx, quizKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, err
	}

	var q models.Quiz
	if err := json.Unmarshal([]byte(data), &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *QuizCache) Set(ctx context.Context, quiz *models.Quiz) error {
	data, err := json.Marshal(quiz)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, quizKey(quiz.ID), data, c.ttl).Err()
}

// pingBackoff paces connection attempts at start-up.
var pingBackoff = func() retry.Backoff {
	return retry.WithMaxRetries(5, retry.NewConstant(2*time.Second))
}

// Connect opens a Redis client and waits until it answers PING.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	err := retry.Do(ctx, pingBackoff(), func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
