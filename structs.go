package gql

import (
	"context"
	"net/http"
	"sync"

	"github.com/tidwall/gjson"
	libpack_logging "github.com/lukaszraczylo/go-graphql-fetch/logging"
)

// FetchFunc is the transport capability. The client treats it as an
// injected black box: it receives the endpoint and the resolved fetch
// options and returns a response or a transport-level error.
type FetchFunc func(ctx context.Context, url string, options *FetchOptions) (*http.Response, error)

// Cache is the capability the client requires from a response cache.
// Eviction, persistence and hydration are the implementation's concern.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// Config carries the construction-time options for NewClient.
type Config struct {
	Fetch        FetchFunc
	HTTPClient   *http.Client
	Headers      map[string]string
	FetchOptions map[string]interface{}
	Cache        Cache
	OnError      func(ErrorReport)
	Logger       *libpack_logging.Logger
	Endpoint     string
	SSRMode      bool
	LogErrors    bool
}

// Client issues GraphQL operations against a single endpoint and
// normalizes every failure mode into a Result.
type Client struct {
	Logger       *libpack_logging.Logger
	fetch        FetchFunc
	cache        Cache
	onError      func(ErrorReport)
	headers      map[string]string
	fetchOptions map[string]interface{}
	endpoint     string
	headersMu    sync.RWMutex
	mu           sync.RWMutex // guards endpoint and onError
	ssrMode      bool
	logErrors    bool
}

// Operation is a GraphQL document with its variables. Any variable
// value may be an Upload, arbitrarily nested.
type Operation struct {
	Variables     map[string]interface{} `json:"variables,omitempty"`
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
}

// RequestOptions is the per-call overrides bag. Headers win over the
// client defaults per key; FetchOptionsOverrides shallow-merge over the
// configured transport options and participate in the cache key.
type RequestOptions struct {
	Headers               map[string]string
	FetchOptionsOverrides map[string]interface{}
}

// FetchOptions is the resolved set of transport call parameters.
// Options is opaque to the client and passed to the transport verbatim,
// which is where concerns like cancellation or credentials travel.
type FetchOptions struct {
	Headers     map[string]string
	Options     map[string]interface{}
	Method      string
	Body        []byte
	ContentType string // multipart boundary value, applied by the transport
}

// CacheKey is the memoization identity of a request: the operation plus
// the merged transport option overrides. Resolved headers and body are
// deliberately excluded.
type CacheKey struct {
	Operation    Operation              `json:"operation"`
	FetchOptions map[string]interface{} `json:"fetchOptions"`
}

// Result is the normalized outcome of a request. Error is true iff any
// of the three error fields is populated; data and GraphQL errors may
// coexist for partial successes.
type Result struct {
	Data          interface{}   `json:"data,omitempty"`
	GraphQLErrors []interface{} `json:"graphQLErrors,omitempty"`
	FetchError    error         `json:"-"`
	HTTPError     *HTTPError    `json:"httpError,omitempty"`
	raw           []byte
	Error         bool `json:"error"`
}

// Get extracts a value from the raw response body by gjson path, e.g.
// result.Get("data.viewer.login"). Requests that never produced a body
// yield an empty result.
func (r *Result) Get(path string) gjson.Result {
	return gjson.GetBytes(r.raw, path)
}

// ErrorReport is what the error observer receives for errored results.
type ErrorReport struct {
	Result    *Result
	Operation Operation
}

// classification is the executor's verdict before normalization.
type classification struct {
	data          interface{}
	fetchError    error
	httpError     *HTTPError
	graphQLErrors []interface{}
	raw           []byte
}

// envelope mirrors the GraphQL-over-HTTP response body.
type envelope struct {
	Data   interface{}   `json:"data"`
	Errors []interface{} `json:"errors"`
}
