package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/connect4-vs-ai/internal/domain"
)

const tallyKeyPrefix = "tally:"

// Connect opens a client and pings it. It returns nil when Redis is
// unreachable so callers can fall back to memory.
func Connect(ctx context.Context, addr, password string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("[REDIS] could not connect, keeping tallies in memory")
		client.Close()
		return nil
	}

	log.Info().Str("addr", addr).Msg("[REDIS] connected successfully")
	return client
}

// TallyCache stores per-client win tallies as Redis hashes with a TTL.
type TallyCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTallyCache(client *redis.Client, ttl time.Duration) *TallyCache {
	return &TallyCache{client: client, ttl: ttl}
}

func (r *TallyCache) GetTally(ctx context.Context, key string) (domain.Tally, error) {
	fields, err := r.client.HGetAll(ctx, tallyKeyPrefix+key).Result()
	if err != nil {
		return domain.Tally{}, fmt.Errorf("failed to read tally: %w", err)
	}
	return parseTally(fields)
}

// RecordOutcome bumps the counter for one finished game and returns the
// merged tally, so concurrent sessions of one client never overwrite each other.
func (r *TallyCache) RecordOutcome(ctx context.Context, key string, outcome domain.Outcome) (domain.Tally, error) {
	field, ok := tallyField(outcome)
	if !ok {
		return r.GetTally(ctx, key)
	}
	redisKey := tallyKeyPrefix + key

	pipe := r.client.TxPipeline()
	pipe.HIncrBy(ctx, redisKey, field, 1)
	pipe.Expire(ctx, redisKey, r.ttl)
	all := pipe.HGetAll(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.Tally{}, fmt.Errorf("failed to record outcome: %w", err)
	}
	return parseTally(all.Val())
}

// tallyField maps a finished outcome to its hash field.
func tallyField(outcome domain.Outcome) (string, bool) {
	switch {
	case outcome.Kind == domain.Win && outcome.Winner == domain.Human:
		return "human_wins", true
	case outcome.Kind == domain.Win && outcome.Winner == domain.Computer:
		return "computer_wins", true
	case outcome.Kind == domain.Draw:
		return "draws", true
	}
	return "", false
}

func parseTally(fields map[string]string) (domain.Tally, error) {
	var tally domain.Tally
	for name, dst := range map[string]*int{
		"human_wins":    &tally.HumanWins,
		"computer_wins": &tally.ComputerWins,
		"draws":         &tally.Draws,
	} {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Tally{}, fmt.Errorf("corrupt tally field %s=%q: %w", name, raw, err)
		}
		*dst = n
	}
	return tally, nil
}
