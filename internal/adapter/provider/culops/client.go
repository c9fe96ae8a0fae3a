package culops

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/culops-pantry/internal/config"
	"github.com/heartmarshall/culops-pantry/internal/domain"
)

const (
	mediaType       = "application/vnd.api+json"
	maxPages        = 1000
	maxResponseSize = 32 << 20
)

// Client reads recipes and culinary ingredient specifications from the
// culops JSON:API.
type Client struct {
	baseURL    string
	token      string
	pageSize   int
	httpClient *http.Client
	retryDelay time.Duration
	userAgent  string
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithRetryDelay overrides the pause before the single retry.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// NewClient creates a Client from CulopsConfig.
func NewClient(cfg config.CulopsConfig, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.APIToken,
		pageSize:   cfg.PageSize,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		retryDelay: 500 * time.Millisecond,
		log:        logger.With("adapter", "culops"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ping checks that the culops API answers. Any response below 500 counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("culops: create request: %w", err)
	}
	c.setHeaders(req)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: culops ping: %w", domain.ErrUpstream, err)
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: culops ping: status %d", domain.ErrUpstream, resp.StatusCode)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", mediaType)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}

// ListRecipes fetches every recipe of a cycle with its ingredients and
// their culinary ingredient specifications included.
func (c *Client) ListRecipes(ctx context.Context, cycleDate time.Time) (*Document, error) {
	q := url.Values{}
	q.Set("filter[cycle-date]", cycleDate.Format(time.DateOnly))
	q.Set("include", relIngredients+"."+relCulinaryIngredientSpecification)
	return c.list(ctx, "/"+TypeRecipe, q)
}

// ListCulinaryIngredientSpecifications fetches every culinary ingredient specification.
func (c *Client) ListCulinaryIngredientSpecifications(ctx context.Context) (*Document, error) {
	return c.list(ctx, "/"+TypeCulinaryIngredientSpecification, url.Values{})
}

// list follows links.next from the first page and merges every page into
// one document.
func (c *Client) list(ctx context.Context, path string, q url.Values) (*Document, error) {
	if c.pageSize > 0 {
		q.Set("page[size]", strconv.Itoa(c.pageSize))
	}
	base, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("culops: build url: %w", err)
	}
	base.RawQuery = q.Encode()
	next := base

	var doc *Document
	seen := make(map[string]struct{})
	for pages := 0; next != nil; pages++ {
		if pages == maxPages {
			return nil, fmt.Errorf("%w: culops %s: more than %d pages", domain.ErrUpstream, path, maxPages)
		}
		u := next.String()
		if _, ok := seen[u]; ok {
			return nil, fmt.Errorf("%w: culops %s: pagination loop at %s", domain.ErrUpstream, path, u)
		}
		seen[u] = struct{}{}

		page, err := c.fetch(ctx, u)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			doc = page
		} else {
			doc.merge(page)
		}

		next = nil
		if page.Links != nil && page.Links.Next != "" {
			ref, err := url.Parse(page.Links.Next)
			if err != nil {
				return nil, fmt.Errorf("%w: culops %s: bad next link %q", domain.ErrUpstream, path, page.Links.Next)
			}
			cur, _ := url.Parse(u)
			next = cur.ResolveReference(ref)
			if next.Scheme != base.Scheme || next.Host != base.Host {
				return nil, fmt.Errorf("%w: culops %s: next link %q leaves %s", domain.ErrUpstream, path, page.Links.Next, base.Host)
			}
		}
	}
	doc.Links = nil

	c.log.DebugContext(ctx, "culops response",
		slog.String("path", path),
		slog.Int("data", len(doc.Data)),
		slog.Int("included", len(doc.Included)),
	)
	return doc, nil
}

func (c *Client) fetch(ctx context.Context, u string) (*Document, error) {
	c.log.DebugContext(ctx, "culops request", slog.String("url", u))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("culops: create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		c.log.ErrorContext(ctx, "culops request failed", slog.String("url", u), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: culops request: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: culops %s: unexpected status %d", domain.ErrUpstream, req.URL.Path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: culops: read body: %w", domain.ErrUpstream, err)
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: culops: decode json: %w", domain.ErrUpstream, err)
	}
	return &doc, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "culops retry", slog.String("url", req.URL.String()), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(c.retryDelay):
	}

	return c.httpClient.Do(req)
}
