// Package api is a small PokéAPI client with response caching and
// request rate limiting.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/apimgr/pokedex/src/cache"
)

// ProjectName is set at build time - used for User-Agent
var ProjectName = "pokedex"

// Version is set at build time
var Version = "dev"

const (
	DefaultBaseURL   = "https://pokeapi.co/api/v2"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 20 // requests per second
	DefaultParallel  = 8
)

// ErrNotFound is returned for HTTP 404 responses
var ErrNotFound = errors.New("resource not found")

// StatusError is returned for any other HTTP error response
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Code, e.Body)
}

// Options configures a Client
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Cache     cache.Cache
	TTL       time.Duration
	RateLimit float64 // requests per second, 0 disables limiting
	Parallel  int     // concurrent fetches for catalog listings
	Language  string
	Logger    *slog.Logger
}

// Client is the API client for PokéAPI
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Cache      cache.Cache
	TTL        time.Duration
	Language   string
	Parallel   int

	limiter  *rate.Limiter
	logger   *slog.Logger
	requests atomic.Int64
}

// NewClient creates a new API client
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Cache == nil {
		opts.Cache = cache.Nop{}
	}
	if opts.TTL <= 0 {
		opts.TTL = cache.DefaultTTL
	}
	if opts.Parallel <= 0 {
		opts.Parallel = DefaultParallel
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	c := &Client{
		BaseURL: strings.TrimRight(opts.BaseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: opts.Timeout,
		},
		Cache:    opts.Cache,
		TTL:      opts.TTL,
		Language: opts.Language,
		Parallel: opts.Parallel,
		logger:   opts.Logger,
	}
	if opts.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}
	return c
}

// Requests returns how many requests went over the network
func (c *Client) Requests() int64 {
	return c.requests.Load()
}

// Pokemon fetches a pokemon by API name
func (c *Client) Pokemon(ctx context.Context, name string) (*Pokemon, error) {
	var p Pokemon
	if err := c.getJSON(ctx, "pokemon/"+url.PathEscape(name), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Type fetches an elemental type by API name
func (c *Client) Type(ctx context.Context, name string) (*Type, error) {
	var t Type
	if err := c.getJSON(ctx, "type/"+url.PathEscape(name), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// TypeList returns links to every elemental type, following pagination
func (c *Client) TypeList(ctx context.Context) ([]NamedAPIResource, error) {
	return c.list(ctx, "type?limit=100")
}

// Ability fetches an ability by API name
func (c *Client) Ability(ctx context.Context, name string) (*Ability, error) {
	var a Ability
	if err := c.getJSON(ctx, "ability/"+url.PathEscape(name), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Move fetches a move by API name
func (c *Client) Move(ctx context.Context, name string) (*Move, error) {
	var m Move
	if err := c.getJSON(ctx, "move/"+url.PathEscape(name), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Item fetches an item by API name
func (c *Client) Item(ctx context.Context, name string) (*Item, error) {
	var i Item
	if err := c.getJSON(ctx, "item/"+url.PathEscape(name), &i); err != nil {
		return nil, err
	}
	return &i, nil
}

// Follow dereferences a resource link into a new T
func Follow[T any](ctx context.Context, c *Client, ref NamedAPIResource) (*T, error) {
	if ref.URL == "" {
		return nil, fmt.Errorf("follow %q: resource has no url", ref.Name)
	}
	var v T
	if err := c.getJSON(ctx, ref.URL, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) list(ctx context.Context, path string) ([]NamedAPIResource, error) {
	var all []NamedAPIResource
	next := path
	for next != "" {
		var page NamedAPIResourceList
		if err := c.getJSON(ctx, next, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Results...)

		next = ""
		if page.Next != nil {
			next = *page.Next
		}
	}
	return all, nil
}

// resolve turns a relative endpoint into an absolute URL; absolute URLs pass through
func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.BaseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	data, err := c.get(ctx, c.resolve(path))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// get returns the response body for u, from cache when possible
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	data, err := c.Cache.Get(ctx, u)
	if err == nil {
		c.logger.Debug("cache hit", "url", u)
		return data, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		c.logger.Warn("cache read failed", "url", u, "error", err)
	}

	data, err = c.fetch(ctx, u)
	if err != nil {
		return nil, err
	}

	if err := c.Cache.Set(ctx, u, data, c.TTL); err != nil {
		c.logger.Warn("cache write failed", "url", u, "error", err)
	}
	return data, nil
}

func (c *Client) fetch(ctx context.Context, u string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", fmt.Sprintf("%s-cli/%s", ProjectName, Version))
	req.Header.Set("Accept", "application/json")

	c.requests.Add(1)
	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("fetched", "url", u, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, u)
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}
