// Package store is the HTTP client for the VocabDeck API.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/atinyakov/VocabDeck/internal/models"
	"github.com/atinyakov/VocabDeck/internal/prompt"
	"go.uber.org/zap"
)

// providerKeyHeader must match the server's completion handler.
const providerKeyHeader = "X-Provider-Key"

// StatusError is returned for every non-2xx response. Quota rejections are
// only distinguishable by Message.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error: %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("server error: %s", e.Message)
}

// IsStatus reports whether err is a *StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// Credentials supplies the bearer token and optional provider key per request.
type Credentials interface {
	AccessToken() string
	ProviderKey() string
}

// Client talks to the VocabDeck server.
type Client struct {
	baseURL string
	http    *http.Client
	creds   Credentials
	log     *zap.Logger
}

// New returns a Client for baseURL. A nil httpClient gets a 30 second timeout.
func New(baseURL string, httpClient *http.Client, creds Credentials, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		creds:   creds,
		log:     log,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		if tok := c.creds.AccessToken(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return req, nil
}

// send performs req and returns the body of a 2xx response.
func (c *Client) send(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	c.log.Debug("response",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}
	return data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	data, err := c.send(req)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid response: %w", err)
	}
	return nil
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

// ListCollections returns the caller's collections.
func (c *Client) ListCollections(ctx context.Context) ([]models.Collection, error) {
	var out []models.Collection
	err := c.do(ctx, http.MethodGet, "/collections", nil, &out)
	return out, err
}

// CreateCollection adds a collection.
func (c *Client) CreateCollection(ctx context.Context, title string, description *string) (*models.Collection, error) {
	body := map[string]any{"title": title, "description": description}
	var out models.Collection
	if err := c.do(ctx, http.MethodPost, "/collections", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCollection removes a collection and its cards and returns the deleted rows.
func (c *Client) DeleteCollection(ctx context.Context, id int64) ([]models.Collection, error) {
	var out []models.Collection
	err := c.do(ctx, http.MethodDelete, idPath("/collections", id), nil, &out)
	return out, err
}

// ListCards returns the cards of one collection.
func (c *Client) ListCards(ctx context.Context, collectionID int64) ([]models.Card, error) {
	var out []models.Card
	err := c.do(ctx, http.MethodGet, idPath("/collections", collectionID)+"/cards", nil, &out)
	return out, err
}

// CreateCard adds a card to a collection.
func (c *Client) CreateCard(ctx context.Context, collectionID int64, content, explanation string) (*models.Card, error) {
	body := map[string]any{"content": content, "explanation": explanation, "collection_id": collectionID}
	var out models.Card
	if err := c.do(ctx, http.MethodPost, "/cards", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCard replaces both fields of a card and returns the updated rows.
func (c *Client) UpdateCard(ctx context.Context, id int64, content, explanation string) ([]models.Card, error) {
	body := map[string]string{"content": content, "explanation": explanation}
	var out []models.Card
	err := c.do(ctx, http.MethodPatch, idPath("/cards", id), body, &out)
	return out, err
}

// DeleteCard removes a card and returns the deleted rows.
func (c *Client) DeleteCard(ctx context.Context, id int64) ([]models.Card, error) {
	var out []models.Card
	err := c.do(ctx, http.MethodDelete, idPath("/cards", id), nil, &out)
	return out, err
}

// SubmitFeedback stores a feedback entry.
func (c *Client) SubmitFeedback(ctx context.Context, rating *int, text string) (*models.Feedback, error) {
	body := map[string]any{"rating": rating, "feedback": text}
	var out models.Feedback
	if err := c.do(ctx, http.MethodPost, "/feedback", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Complete sends p to the completion gateway and returns the generated text.
func (c *Client) Complete(ctx context.Context, p prompt.Payload) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/completion", p)
	if err != nil {
		return "", err
	}
	if c.creds != nil {
		if key := c.creds.ProviderKey(); key != "" {
			req.Header.Set(providerKeyHeader, key)
		}
	}
	data, err := c.send(req)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetProfile returns the caller's profile.
func (c *Client) GetProfile(ctx context.Context) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, http.MethodGet, "/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile applies patch to the caller's profile.
func (c *Client) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, http.MethodPatch, "/profile", patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
