package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"edu-counsel-go/internal/model"

	"github.com/go-redis/redis/v8"
)

// 缓存中每个学生最多保留的对话轮数与过期时间。
const (
	cacheMaxTurns = 20
	cacheTTL      = 7 * 24 * time.Hour
)

// ConversationCache 是按学生维度缓存最近对话轮次的显式抽象。
// 缓存尽力而为：进程重启即丢失，权威记录始终在数据库中；
// 同一学生的并发写入可能交错，这是接受的限制而非保证。
type ConversationCache interface {
	GetRecent(ctx context.Context, studentID string, n int) ([]model.ConversationTurn, error)
	Append(ctx context.Context, studentID string, turns ...model.ConversationTurn) error
}

type redisConversationCache struct {
	redisClient *redis.Client
}

// NewConversationCache 创建一个基于 Redis 的 ConversationCache 实例。
func NewConversationCache(redisClient *redis.Client) ConversationCache {
	return &redisConversationCache{redisClient: redisClient}
}

func cacheKey(studentID string) string {
	return fmt.Sprintf("student:%s:recent_turns", studentID)
}

// GetRecent 返回缓存中最近的 n 条对话轮次；n <= 0 时返回全部缓存内容。
func (c *redisConversationCache) GetRecent(ctx context.Context, studentID string, n int) ([]model.ConversationTurn, error) {
	jsonData, err := c.redisClient.Get(ctx, cacheKey(studentID)).Result()
	if err == redis.Nil {
		return []model.ConversationTurn{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recent turns: %w", err)
	}

	var turns []model.ConversationTurn
	if err := json.Unmarshal([]byte(jsonData), &turns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recent turns: %w", err)
	}
	if n > 0 && len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	return turns, nil
}

// Append 将若干对话轮次写入缓存，只保留最近 cacheMaxTurns 条。
func (c *redisConversationCache) Append(ctx context.Context, studentID string, turns ...model.ConversationTurn) error {
	existing, err := c.GetRecent(ctx, studentID, 0)
	if err != nil {
		// 缓存内容损坏或不可读时直接重建
		existing = []model.ConversationTurn{}
	}
	existing = append(existing, turns...)
	if len(existing) > cacheMaxTurns {
		existing = existing[len(existing)-cacheMaxTurns:]
	}

	jsonData, err := json.Marshal(existing)
	if err != nil {
		return fmt.Errorf("failed to marshal recent turns: %w", err)
	}
	if err := c.redisClient.Set(ctx, cacheKey(studentID), jsonData, cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set recent turns: %w", err)
	}
	return nil
}
