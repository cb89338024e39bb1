package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ambalavanan01/self-study-hub/config"
	"github.com/ambalavanan01/self-study-hub/internal/localtask"
)

// Client Redis 客户端封装
// 当前用于 Token 黑名单、接口限流、AI 每日简报缓存，
// 以及本地任务存储的可选 KV 后端
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Token 黑名单 ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken 将 JWT ID 加入黑名单，TTL 与 Token 剩余有效期一致
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Token 已过期，无需加入黑名单
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted 检查 JWT ID 是否在黑名单中
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── 接口限流 ──

// CheckRateLimit 固定窗口计数限流。
// 返回 true 表示放行；key 建议携带调用方 IP 与路由
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// ── AI 每日简报缓存 ──

const briefingPrefix = "ai:briefing:"

// CacheDailyBriefing 缓存某用户当日的趋势简报，当日有效
func (c *Client) CacheDailyBriefing(ctx context.Context, userID, day, content string) error {
	return c.rdb.Set(ctx, briefingPrefix+userID+":"+day, content, 36*time.Hour).Err()
}

// GetDailyBriefing 读取当日简报缓存；未命中返回空串
func (c *Client) GetDailyBriefing(ctx context.Context, userID, day string) (string, error) {
	v, err := c.rdb.Get(ctx, briefingPrefix+userID+":"+day).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", nil
		}
		return "", err
	}
	return v, nil
}

// ── 本地存储 KV 后端 ──

const kvPrefix = "kv:"

type kvAdapter struct {
	rdb *goredis.Client
}

// KV 返回满足 localtask.KV 的适配器，
// 使本地任务集合可选落在 Redis 而非文件
func (c *Client) KV() localtask.KV {
	return &kvAdapter{rdb: c.rdb}
}

func (a *kvAdapter) Get(key string) ([]byte, error) {
	v, err := a.rdb.Get(context.Background(), kvPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, localtask.ErrKeyNotFound
		}
		return nil, err
	}
	return v, nil
}

func (a *kvAdapter) Set(key string, value []byte) error {
	return a.rdb.Set(context.Background(), kvPrefix+key, value, 0).Err()
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
