package gql

import (
	"time"

	"github.com/gookit/goutil/envutil"
	libpack_cache "github.com/lukaszraczylo/go-graphql-fetch/cache"
	libpack_logging "github.com/lukaszraczylo/go-graphql-fetch/logging"
)

// NewClient validates the configuration and builds a client. All
// validation happens here; the request path assumes a valid client.
func NewClient(config Config) (*Client, error) {
	if config.Endpoint == "" {
		return nil, newConfigError("url is required")
	}
	if config.SSRMode && config.Cache == nil {
		return nil, newConfigError("cache is required when in ssrMode")
	}

	logger := config.Logger
	if logger == nil {
		logger = libpack_logging.New()
	}

	fetch := config.Fetch
	if fetch == nil {
		httpClient := config.HTTPClient
		if httpClient == nil {
			httpClient = createHTTPClient(config.Endpoint, logger)
		}
		if httpClient == nil {
			return nil, newConfigError("fetch must be polyfilled or passed explicitly")
		}
		fetch = newHTTPFetch(httpClient)
	}

	headers := config.Headers
	if headers == nil {
		headers = make(map[string]string)
	}

	c := &Client{
		endpoint:     config.Endpoint,
		fetch:        fetch,
		cache:        config.Cache,
		ssrMode:      config.SSRMode,
		logErrors:    config.LogErrors,
		onError:      config.OnError,
		headers:      headers,
		fetchOptions: config.FetchOptions,
		Logger:       logger,
	}
	logger.Debug("GraphQL client initialized", map[string]interface{}{
		"endpoint": config.Endpoint,
		"ssrMode":  config.SSRMode,
		"cache":    config.Cache != nil,
	})
	return c, nil
}

// NewClientFromEnv builds a client from GRAPHQL_* environment
// variables, the way deployments usually configure it.
func NewClientFromEnv() (*Client, error) {
	logger := libpack_logging.New()
	logger.SetMinLogLevel(libpack_logging.GetLogLevel(envutil.Getenv("LOG_LEVEL", "info")))

	var store Cache
	if envutil.GetBool("GRAPHQL_CACHE_ENABLED", false) {
		ttl := time.Duration(envutil.GetInt("GRAPHQL_CACHE_TTL", 5)) * time.Second
		store = libpack_cache.New(ttl)
	}

	return NewClient(Config{
		Endpoint:  envutil.Getenv("GRAPHQL_ENDPOINT", "https://api.github.com/graphql"),
		Cache:     store,
		SSRMode:   envutil.GetBool("GRAPHQL_SSR_MODE", false),
		LogErrors: envutil.GetBool("GRAPHQL_LOG_ERRORS", true),
		Logger:    logger,
	})
}

// SetHeader adds or overwrites a single default header.
func (c *Client) SetHeader(key, value string) {
	c.headersMu.Lock()
	c.headers[key] = value
	c.headersMu.Unlock()
}

// SetHeaders replaces the default headers wholesale.
func (c *Client) SetHeaders(headers map[string]string) {
	if headers == nil {
		headers = make(map[string]string)
	}
	c.headersMu.Lock()
	c.headers = headers
	c.headersMu.Unlock()
}

// RemoveHeader deletes a single default header, leaving others intact.
func (c *Client) RemoveHeader(key string) {
	c.headersMu.Lock()
	delete(c.headers, key)
	c.headersMu.Unlock()
}

// SetOnError replaces the error observer for subsequent requests.
func (c *Client) SetOnError(observer func(ErrorReport)) {
	c.mu.Lock()
	c.onError = observer
	c.mu.Unlock()
}

// SetEndpoint repoints the client at a different GraphQL endpoint for
// subsequent requests; in-flight requests keep the one they started with.
func (c *Client) SetEndpoint(endpoint string) {
	c.mu.Lock()
	c.endpoint = endpoint
	c.mu.Unlock()
}
