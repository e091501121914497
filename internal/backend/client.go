package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"escrowmart-web/config"
	"escrowmart-web/internal/session"
)

// ErrUnauthorized is returned when the backend rejects the session's bearer
// token. The stored credentials have already been cleared when this is
// returned; the web layer redirects to the login screen.
var ErrUnauthorized = errors.New("backend: unauthorized")

// APIError carries a server-supplied error message to be shown verbatim
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %d: %s", e.StatusCode, e.Message)
}

// Notifier surfaces user-visible notifications for failures handled
// centrally by the gateway, the way the original storefront raised toasts.
type Notifier interface {
	Error(title, message string)
}

type logNotifier struct{}

func (logNotifier) Error(title, message string) {
	log.Printf("notify: %s: %s", title, message)
}

// File is an uploaded file forwarded to the backend as a multipart part.
// If Content implements io.Closer it is closed once the part has been
// written; disk-backed uploads hold a descriptor until then.
type File struct {
	Name    string
	Content io.Reader
}

// Client is the gateway to the remote escrow backend. It attaches the
// session's bearer token to every request, clears the session and reports
// ErrUnauthorized on 401, and surfaces server error messages through the
// notifier. Requests are fire-once: no retries, no backoff.
type Client struct {
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
	sessions session.Store
	notifier Notifier
}

// NewClient creates a gateway client for the configured backend
func NewClient(cfg *config.Config, sessions session.Store, notifier Notifier) *Client {
	if notifier == nil {
		notifier = logNotifier{}
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BackendAPIURL, "/"),
		http:     &http.Client{Timeout: cfg.RequestTimeout},
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		sessions: sessions,
		notifier: notifier,
	}
}

// apiError mirrors the error body shapes the backend responds with
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e *apiError) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

func (c *Client) do(ctx context.Context, sessionID, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("backend: rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	// Attach the session's bearer token when present
	if sessionID != "" {
		sess, err := c.sessions.Get(sessionID)
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}
		if sess.IsAuthenticated() {
			token := &oauth2.Token{AccessToken: sess.Token, TokenType: "Bearer"}
			token.SetAuthHeader(req)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.notifier.Error("Network Error",
			"Unable to connect to the server. Please check your internet connection.")
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Token expired or invalid: drop the stored credentials once and
		// let the caller redirect. The original request is not retried.
		if sessionID != "" {
			if err := c.sessions.Clear(sessionID); err != nil {
				log.Printf("failed to clear session %s: %v", sessionID, err)
			}
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		var serverErr apiError
		_ = json.Unmarshal(data, &serverErr)

		msg := serverErr.text()
		if msg != "" {
			c.notifier.Error("Error", msg)
			return &APIError{StatusCode: resp.StatusCode, Message: msg}
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("request failed with status %d", resp.StatusCode),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) get(ctx context.Context, sessionID, path string, query url.Values, out any) error {
	return c.do(ctx, sessionID, http.MethodGet, path, query, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, sessionID, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.do(ctx, sessionID, http.MethodPost, path, nil, bytes.NewReader(body), "application/json", out)
}

func (c *Client) patchJSON(ctx context.Context, sessionID, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.do(ctx, sessionID, http.MethodPatch, path, nil, bytes.NewReader(body), "application/json", out)
}

func (c *Client) delete(ctx context.Context, sessionID, path string) error {
	return c.do(ctx, sessionID, http.MethodDelete, path, nil, nil, "", nil)
}

// multipartBody builds a multipart payload from form fields and file parts.
// Each entry in files contributes one part per file under its field name;
// an empty file list for a field is valid and produces no parts.
func multipartBody(fields map[string]string, files map[string][]File) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}

	for field, parts := range files {
		for _, f := range parts {
			part, err := writer.CreateFormFile(field, f.Name)
			if err != nil {
				return nil, "", fmt.Errorf("failed to create file part %s: %w", f.Name, err)
			}
			_, err = io.Copy(part, f.Content)
			if closer, ok := f.Content.(io.Closer); ok {
				closer.Close()
			}
			if err != nil {
				return nil, "", fmt.Errorf("failed to copy file %s: %w", f.Name, err)
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return buf, writer.FormDataContentType(), nil
}

func (c *Client) submitMultipart(ctx context.Context, sessionID, method, path string, fields map[string]string, files map[string][]File, out any) error {
	body, contentType, err := multipartBody(fields, files)
	if err != nil {
		return err
	}
	return c.do(ctx, sessionID, method, path, nil, body, contentType, out)
}
