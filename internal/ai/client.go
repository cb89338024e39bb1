// Package ai 封装 OpenRouter 兼容的聊天补全客户端。
// 学习指南、成绩分析等模块通过它调用大模型，失败时由调用方降级处理。
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ambalavanan01/self-study-hub/config"
)

// ErrNoAPIKey 未配置 API Key
var ErrNoAPIKey = errors.New("未配置 AI API Key")

// Message 聊天消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client OpenRouter 聊天补全客户端
type Client struct {
	baseURL  string
	apiKey   string
	model    string
	siteName string
	baseSite string
	http     *http.Client
	logger   *zap.Logger
}

// NewClient 创建聊天补全客户端
func NewClient(cfg *config.AIConfig, baseSite string, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		siteName: cfg.SiteName,
		baseSite: baseSite,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Complete 发起一次聊天补全，返回首个回复的文本内容。
// 不做重试与流式传输，超时由 http.Client 控制
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	body, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("序列化请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	// OpenRouter 归因头
	req.Header.Set("HTTP-Referer", c.baseSite)
	req.Header.Set("X-Title", c.siteName)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("请求 AI 服务失败: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取响应失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("AI 服务返回非 200 状态",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw),
		)
		return "", fmt.Errorf("AI 服务返回状态 %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("解析响应失败: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("AI 服务错误: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("AI 服务未返回任何回复")
	}

	return parsed.Choices[0].Message.Content, nil
}

// Model 返回当前使用的模型名
func (c *Client) Model() string {
	return c.model
}
