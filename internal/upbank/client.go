package upbank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/banksia-labs/up-mcp/internal/common"
)

// DefaultBaseURL is the production Up API endpoint.
const DefaultBaseURL = "https://api.up.com.au/api/v1"

// Config holds client settings. Zero values fall back to sane defaults.
type Config struct {
	BaseURL  string
	Token    string
	Timeout  time.Duration
	PageSize int // page[size] on list endpoints (default 100)
	MaxPages int // cap on pages followed per list call (default 10)
}

// Client communicates with the Up Banking REST API. It holds only the
// immutable token and transport, so it is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	pageSize   int
	maxPages   int
	httpClient *http.Client
	logger     *common.Logger
}

// NewClient creates a client authorized with the given bearer token.
func NewClient(cfg Config, logger *common.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 10
	}
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	return &Client{
		baseURL:    baseURL,
		token:      cfg.Token,
		pageSize:   pageSize,
		maxPages:   maxPages,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// WithCorrelationId returns a shallow copy of the client whose logger carries
// the given correlation ID. Handlers use this to trace one tool invocation
// through every upstream request it makes.
func (c *Client) WithCorrelationId(id string) *Client {
	cc := *c
	cc.logger = c.logger.WithCorrelationId(id)
	return &cc
}

// do performs an HTTP request against the given absolute URL and returns the
// response body. Status codes >= 400 are mapped via statusError.
func (c *Client) do(ctx context.Context, method, rawURL string, payload any) ([]byte, error) {
	c.logger.Debug().
		Str("method", method).
		Str("url", rawURL).
		Msg("Up API Request")

	var bodyReader io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error().Err(err).Str("url", rawURL).Dur("duration", duration).Msg("Up API Request Failed")
		return nil, fmt.Errorf("up api request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug().
		Str("status", resp.Status).
		Int("status_code", resp.StatusCode).
		Dur("duration", duration).
		Int("body_bytes", len(body)).
		Msg("Up API Response")

	if resp.StatusCode >= 400 {
		return nil, statusError(resp.StatusCode, body)
	}

	return body, nil
}

// endpoint builds an absolute URL from a path and query values.
func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// pageLinks is the links block on paginated list responses. Next is an
// absolute URL, or nil on the last page.
type pageLinks struct {
	Prev *string `json:"prev"`
	Next *string `json:"next"`
}

// getPaged fetches a list endpoint and follows links.next, invoking each with
// the raw data array of every page. Pages are capped at maxPages so a single
// tool call cannot walk an unbounded history.
func (c *Client) getPaged(ctx context.Context, path string, query url.Values, each func(data json.RawMessage) error) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("page[size]", fmt.Sprintf("%d", c.pageSize))

	next := c.endpoint(path, query)
	for page := 0; page < c.maxPages; page++ {
		body, err := c.do(ctx, http.MethodGet, next, nil)
		if err != nil {
			return err
		}

		var doc struct {
			Data  json.RawMessage `json:"data"`
			Links pageLinks       `json:"links"`
		}
		if err := json.Unmarshal(body, &doc); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		if err := each(doc.Data); err != nil {
			return err
		}

		if doc.Links.Next == nil || *doc.Links.Next == "" {
			return nil
		}
		next = *doc.Links.Next
	}

	c.logger.Warn().Str("path", path).Int("max_pages", c.maxPages).Msg("Pagination cap reached, result truncated")
	return nil
}

// Ping verifies the token against /util/ping and returns the user ID.
func (c *Client) Ping(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodGet, c.endpoint("/util/ping", nil), nil)
	if err != nil {
		return "", err
	}

	var doc struct {
		Meta struct {
			ID string `json:"id"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	return doc.Meta.ID, nil
}

// Accounts lists all accounts for the user.
func (c *Client) Accounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	err := c.getPaged(ctx, "/accounts", nil, func(data json.RawMessage) error {
		var page []Account
		if err := json.Unmarshal(data, &page); err != nil {
			return fmt.Errorf("failed to parse accounts: %w", err)
		}
		accounts = append(accounts, page...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// Account fetches a single account by ID.
func (c *Client) Account(ctx context.Context, id string) (*Account, error) {
	body, err := c.do(ctx, http.MethodGet, c.endpoint("/accounts/"+url.PathEscape(id), nil), nil)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Data Account `json:"data"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse account: %w", err)
	}
	return &doc.Data, nil
}

// TransactionFilter narrows a transaction listing. Zero fields are omitted.
// Since is inclusive and Until is exclusive, matching the upstream contract
// for filter[since] / filter[until].
type TransactionFilter struct {
	AccountID  string
	Status     string // HELD or SETTLED
	Since      time.Time
	Until      time.Time
	CategoryID string
	TagID      string
}

// Transactions lists transactions, optionally scoped to an account and
// filtered by status, date range, category, or tag.
func (c *Client) Transactions(ctx context.Context, filter TransactionFilter) ([]Transaction, error) {
	path := "/transactions"
	if filter.AccountID != "" {
		path = "/accounts/" + url.PathEscape(filter.AccountID) + "/transactions"
	}

	query := url.Values{}
	if filter.Status != "" {
		query.Set("filter[status]", filter.Status)
	}
	if !filter.Since.IsZero() {
		query.Set("filter[since]", filter.Since.Format(time.RFC3339))
	}
	if !filter.Until.IsZero() {
		query.Set("filter[until]", filter.Until.Format(time.RFC3339))
	}
	if filter.CategoryID != "" {
		query.Set("filter[category]", filter.CategoryID)
	}
	if filter.TagID != "" {
		query.Set("filter[tag]", filter.TagID)
	}

	var transactions []Transaction
	err := c.getPaged(ctx, path, query, func(data json.RawMessage) error {
		var page []Transaction
		if err := json.Unmarshal(data, &page); err != nil {
			return fmt.Errorf("failed to parse transactions: %w", err)
		}
		transactions = append(transactions, page...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// Transaction fetches a single transaction by ID.
func (c *Client) Transaction(ctx context.Context, id string) (*Transaction, error) {
	body, err := c.do(ctx, http.MethodGet, c.endpoint("/transactions/"+url.PathEscape(id), nil), nil)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Data Transaction `json:"data"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse transaction: %w", err)
	}
	return &doc.Data, nil
}

// Categories lists categories, optionally restricted to children of a parent.
// The category list is small and returned in full; no pagination applies.
func (c *Client) Categories(ctx context.Context, parentID string) ([]Category, error) {
	query := url.Values{}
	if parentID != "" {
		query.Set("filter[parent]", parentID)
	}

	body, err := c.do(ctx, http.MethodGet, c.endpoint("/categories", query), nil)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Data []Category `json:"data"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse categories: %w", err)
	}
	return doc.Data, nil
}

// Category fetches a single category by ID.
func (c *Client) Category(ctx context.Context, id string) (*Category, error) {
	body, err := c.do(ctx, http.MethodGet, c.endpoint("/categories/"+url.PathEscape(id), nil), nil)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Data Category `json:"data"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse category: %w", err)
	}
	return &doc.Data, nil
}

// Categorize assigns a category to a transaction, or clears the category when
// categoryID is empty. Only settled transactions can be categorized.
func (c *Client) Categorize(ctx context.Context, transactionID, categoryID string) error {
	var payload struct {
		Data *ResourceRef `json:"data"`
	}
	if categoryID != "" {
		payload.Data = &ResourceRef{Type: "categories", ID: categoryID}
	}

	path := "/transactions/" + url.PathEscape(transactionID) + "/relationships/category"
	_, err := c.do(ctx, http.MethodPatch, c.endpoint(path, nil), &payload)
	return err
}

// Tags lists all tags the user has created.
func (c *Client) Tags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	err := c.getPaged(ctx, "/tags", nil, func(data json.RawMessage) error {
		var page []Tag
		if err := json.Unmarshal(data, &page); err != nil {
			return fmt.Errorf("failed to parse tags: %w", err)
		}
		tags = append(tags, page...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// tagRefs builds the relationship payload for tag mutations.
func tagRefs(tags []string) struct {
	Data []ResourceRef `json:"data"`
} {
	refs := struct {
		Data []ResourceRef `json:"data"`
	}{Data: make([]ResourceRef, 0, len(tags))}
	for _, t := range tags {
		refs.Data = append(refs.Data, ResourceRef{Type: "tags", ID: t})
	}
	return refs
}

// AddTags attaches tags to a transaction. Adding a tag that is already
// attached is a no-op upstream.
func (c *Client) AddTags(ctx context.Context, transactionID string, tags []string) error {
	path := "/transactions/" + url.PathEscape(transactionID) + "/relationships/tags"
	payload := tagRefs(tags)
	_, err := c.do(ctx, http.MethodPost, c.endpoint(path, nil), &payload)
	return err
}

// RemoveTags detaches tags from a transaction. Removing a tag that is not
// attached is a no-op upstream.
func (c *Client) RemoveTags(ctx context.Context, transactionID string, tags []string) error {
	path := "/transactions/" + url.PathEscape(transactionID) + "/relationships/tags"
	payload := tagRefs(tags)
	_, err := c.do(ctx, http.MethodDelete, c.endpoint(path, nil), &payload)
	return err
}

// Webhooks lists all registered webhooks.
func (c *Client) Webhooks(ctx context.Context) ([]Webhook, error) {
	var webhooks []Webhook
	err := c.getPaged(ctx, "/webhooks", nil, func(data json.RawMessage) error {
		var page []Webhook
		if err := json.Unmarshal(data, &page); err != nil {
			return fmt.Errorf("failed to parse webhooks: %w", err)
		}
		webhooks = append(webhooks, page...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return webhooks, nil
}

// CreateWebhook registers a new webhook. The response includes the shared
// SecretKey, which the API returns only at creation time.
func (c *Client) CreateWebhook(ctx context.Context, webhookURL, description string) (*Webhook, error) {
	attrs := map[string]string{"url": webhookURL}
	if description != "" {
		attrs["description"] = description
	}
	payload := map[string]any{
		"data": map[string]any{"attributes": attrs},
	}

	body, err := c.do(ctx, http.MethodPost, c.endpoint("/webhooks", nil), payload)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Data Webhook `json:"data"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse webhook: %w", err)
	}
	return &doc.Data, nil
}

// DeleteWebhook removes a webhook by ID.
func (c *Client) DeleteWebhook(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, c.endpoint("/webhooks/"+url.PathEscape(id), nil), nil)
	return err
}

// PingWebhook asks the API to deliver a PING event to the webhook's URL and
// returns the resulting delivery event.
func (c *Client) PingWebhook(ctx context.Context, id string) (*WebhookEvent, error) {
	path := "/webhooks/" + url.PathEscape(id) + "/ping"
	body, err := c.do(ctx, http.MethodPost, c.endpoint(path, nil), nil)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Data WebhookEvent `json:"data"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse webhook event: %w", err)
	}
	return &doc.Data, nil
}
