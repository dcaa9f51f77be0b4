package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
)

var ErrMissingAPIKey = errors.New("groq: api key is not set")

type Config struct {
	APIURL  string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// OpenAI互換のchat completions APIを呼ぶクライアント
type Client struct {
	config Config
	client *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Complete はmessagesを送って最初の返答を返す（無ければ空文字）
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	if c.config.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(completionRequest{Model: c.config.Model, Messages: messages})
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(c.config.APIURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// 自分でbrを付けるとnet/httpは自動で展開しない
	req.Header.Set("Accept-Encoding", "br")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}

	if resp.Header.Get("Content-Encoding") == "br" {
		resp.Body = &readCloserWrapper{Reader: brotli.NewReader(resp.Body), Closer: resp.Body}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &ErrorResponse{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err == nil && apiErr.Err.Message != "" {
			return "", apiErr
		}
		return "", fmt.Errorf("groq: unexpected status code: %d", resp.StatusCode)
	}

	var out CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("groq: decode response: %w", err)
	}

	if len(out.Choices) == 0 {
		return "", nil
	}
	return out.Choices[0].Message.Content, nil
}

type readCloserWrapper struct {
	io.Reader
	io.Closer
}

func (r *readCloserWrapper) Read(p []byte) (n int, err error) {
	return r.Reader.Read(p)
}

func (r *readCloserWrapper) Close() error {
	return r.Closer.Close()
}

// Ask はsystem + userの2通で問い合わせる
func (c *Client) Ask(ctx context.Context, system string, message string) (string, error) {
	return c.Complete(ctx, []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: message},
	})
}
