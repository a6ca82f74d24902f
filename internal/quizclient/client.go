package quizclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"quiz_backend/internal/model"
)

// APIError 服务端返回的错误，保留原始消息供界面展示
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client 题库 API 客户端。题目列表作为显式失效的读穿缓存持有：
// 首次读取回源填充，之后每次成功的创建/删除都使缓存失效并重新拉取。
type Client struct {
	BaseURL string
	HTTP    *http.Client

	mu     sync.Mutex
	cache  []model.Question
	cached bool
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Questions 读穿缓存：命中直接返回，否则回源
func (c *Client) Questions(ctx context.Context) ([]model.Question, error) {
	c.mu.Lock()
	if c.cached {
		cached := c.cache
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Refresh 强制从服务端重新拉取题目列表并填充缓存
func (c *Client) Refresh(ctx context.Context) ([]model.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/questions", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var questions []model.Question
	if err := json.NewDecoder(resp.Body).Decode(&questions); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache = questions
	c.cached = true
	c.mu.Unlock()

	return questions, nil
}

// Create 提交草稿。校验失败时不发起任何请求；
// 成功后草稿重置、缓存失效并重新拉取列表。
func (c *Client) Create(ctx context.Context, draft *Draft) (*model.Question, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"question": draft.Prompt,
		"answers":  draft.Answers,
		"correct":  draft.Correct,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/questions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp)
	}

	var created model.Question
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, err
	}

	draft.Reset()
	c.invalidate()
	if _, err := c.Refresh(ctx); err != nil {
		return &created, err
	}
	return &created, nil
}

// Delete 删除题目，成功后缓存失效并重新拉取列表
func (c *Client) Delete(ctx context.Context, id uint) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/api/questions/%d", c.BaseURL, id), nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	io.Copy(io.Discard, resp.Body)

	c.invalidate()
	if _, err := c.Refresh(ctx); err != nil {
		return err
	}
	return nil
}

func (c *Client) invalidate() {
	c.mu.Lock()
	c.cache = nil
	c.cached = false
	c.mu.Unlock()
}

// apiError 解析服务端错误消息；响应体不可读时退回通用消息
func apiError(resp *http.Response) error {
	msg := "request failed"
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		msg = payload.Error
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
