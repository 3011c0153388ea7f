package jsonplaceholder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

const (
	// DefaultURL はデモ用の公開ユーザー API です。
	DefaultURL = "https://jsonplaceholder.typicode.com/users"

	acceptJSON     = "application/json"
	maxBodySnippet = 512
)

// HTTPError は 2xx 以外の応答を表します。
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: %s %s status=%d body=%s", e.Method, e.URL, e.StatusCode, snippet(e.Body, maxBodySnippet))
}

// Client はリモート名簿 API のクライアントです。再試行は行いません。
type Client struct {
	URL  string
	HTTP *http.Client
}

// New は Client を生成します。timeout が 0 の場合はタイムアウトを設けません。
func New(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		URL:  url,
		HTTP: &http.Client{Timeout: timeout},
	}
}

type user struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FetchEmployees は GET を 1 回だけ送り、id・name・email をそのまま取り出します。
func (c *Client) FetchEmployees(ctx context.Context) ([]employee.RemoteEmployee, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("jsonplaceholder: build request: %w", err)
	}
	req.Header.Set("Accept", acceptJSON)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jsonplaceholder: get %s: %w", c.URL, err)
	}
	body, err := readAndClose(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("jsonplaceholder: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	var users []user
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("jsonplaceholder: json parse error: %w body=%s", err, snippet(body, maxBodySnippet))
	}

	employees := make([]employee.RemoteEmployee, 0, len(users))
	for _, u := range users {
		employees = append(employees, employee.RemoteEmployee{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return employees, nil
}

func readAndClose(rc io.ReadCloser) ([]byte, error) {
	defer rc.Close()
	return io.ReadAll(rc)
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
