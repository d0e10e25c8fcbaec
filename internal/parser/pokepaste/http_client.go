package pokepaste

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"

	"github.com/Vodeneev/pokepaste/internal/pkg/config"
	"github.com/Vodeneev/pokepaste/internal/pkg/models"
)

const (
	defaultBaseURL   = "https://pokepast.es"
	defaultUserAgent = "pokepaste-parser/1.0 (https://github.com/Vodeneev/pokepaste)"
	jsonSuffix       = "/json"
	maxBodySize      = 1 << 20
)

// Cache stores fetched paste documents by their JSON URL
type Cache interface {
	Get(ctx context.Context, key string) (*models.PasteDocument, bool, error)
	Set(ctx context.Context, key string, doc *models.PasteDocument) error
}

// Fetcher retrieves a paste document by locator
type Fetcher interface {
	FetchDocument(ctx context.Context, locator string) (*models.PasteDocument, error)
}

// Client fetches pastes from their JSON view
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	cache     Cache
}

func NewClient(cfg config.FetcherConfig) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// WithCache makes the client consult cache before the network
func (c *Client) WithCache(cache Cache) *Client {
	c.cache = cache
	return c
}

// JSONURL resolves a locator to the paste's JSON address. Bare paste ids are
// resolved against the base URL; "/json" is appended when missing.
func (c *Client) JSONURL(locator string) string {
	u := strings.TrimSpace(locator)
	if !strings.Contains(u, "://") {
		u = c.baseURL + "/" + strings.TrimPrefix(u, "/")
	}
	if strings.HasSuffix(u, jsonSuffix) {
		return u
	}
	return strings.TrimSuffix(u, "/") + jsonSuffix
}

// FetchDocument GETs the paste JSON. A non-200 response returns *TransportError.
func (c *Client) FetchDocument(ctx context.Context, locator string) (*models.PasteDocument, error) {
	u := c.JSONURL(locator)

	if c.cache != nil {
		doc, ok, err := c.cache.Get(ctx, u)
		if err != nil {
			slog.Warn("Paste cache read failed", "url", u, "error", err)
		} else if ok {
			slog.Debug("Paste cache hit", "url", u)
			return doc, nil
		}
	}

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var doc models.PasteDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode paste: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, u, &doc); err != nil {
			slog.Warn("Paste cache write failed", "url", u, "error", err)
		}
	}
	return &doc, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, br, zstd")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, &TransportError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
	}
	return readBodyDecode(resp)
}

// readBodyDecode reads the body and decompresses it based on Content-Encoding.
// Setting Accept-Encoding ourselves disables the transport's transparent gzip.
func readBodyDecode(resp *http.Response) ([]byte, error) {
	enc := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	switch {
	case strings.Contains(enc, "br"):
		return io.ReadAll(io.LimitReader(brotli.NewReader(resp.Body), maxBodySize))
	case strings.Contains(enc, "zstd"):
		r, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer r.Close()
		return io.ReadAll(io.LimitReader(r, maxBodySize))
	case strings.Contains(enc, "gzip"):
		r, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer r.Close()
		b, err := io.ReadAll(io.LimitReader(r, maxBodySize))
		if err != nil {
			return nil, fmt.Errorf("read gzip body: %w", err)
		}
		return b, nil
	default:
		return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	}
}
