package gql

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Request executes one GraphQL operation end to end: build fetch
// options, perform the transport call, classify the outcome, normalize
// it into a Result. It never returns a Go error - transport, HTTP and
// GraphQL failures all land in the Result, and errored results are
// reported as a side effect before returning.
func (c *Client) Request(ctx context.Context, operation Operation, opts *RequestOptions) *Result {
	result := generateResult(c.executeOperation(ctx, operation, opts))
	if result.Error {
		c.logErrorResult(&ErrorReport{Result: result, Operation: operation})
	}
	return result
}

// cachedResult is the stored shape of a memoized result. The raw
// response body backs Result.Get and is not part of the Result's own
// JSON form, so it rides along explicitly.
type cachedResult struct {
	Result *Result `json:"result"`
	Raw    []byte  `json:"raw,omitempty"`
}

// CachedRequest memoizes Request through the configured cache. The key
// is the operation plus merged option overrides; only successful
// results are stored. Without a cache it degrades to a plain Request.
func (c *Client) CachedRequest(ctx context.Context, operation Operation, opts *RequestOptions) *Result {
	if c.cache == nil {
		return c.Request(ctx, operation, opts)
	}

	hash := c.GetCacheKey(operation, opts).Hash()
	if cached, ok := c.cache.Get(hash); ok {
		var stored cachedResult
		if err := json.Unmarshal(cached, &stored); err == nil && stored.Result != nil {
			stored.Result.raw = stored.Raw
			c.Logger.Debug("Cache hit", map[string]interface{}{"hash": hash})
			return stored.Result
		}
		c.Logger.Warn("Can't decode cached result", map[string]interface{}{"hash": hash})
	}

	result := c.Request(ctx, operation, opts)
	if !result.Error {
		if payload, err := json.Marshal(cachedResult{Result: result, Raw: result.raw}); err == nil {
			c.cache.Set(hash, payload)
		}
	}
	return result
}

// executeOperation runs the request state machine. Exactly one
// outbound call; the first failure short-circuits classification.
func (c *Client) executeOperation(ctx context.Context, operation Operation, opts *RequestOptions) classification {
	fetchOptions, err := c.getFetchOptions(operation, opts)
	if err != nil {
		return classification{fetchError: err}
	}

	c.mu.RLock()
	endpoint := c.endpoint
	c.mu.RUnlock()

	response, err := c.fetch(ctx, endpoint, fetchOptions)
	if err != nil {
		return classification{fetchError: err}
	}
	defer response.Body.Close()

	body, err := readResponseBody(response)
	if err != nil {
		return classification{fetchError: errors.Wrap(err, "can't read response body")}
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return classification{httpError: &HTTPError{
			Status:     response.StatusCode,
			StatusText: http.StatusText(response.StatusCode),
			Body:       string(body),
		}}
	}

	var parsed envelope
	if err := json.Unmarshal(body, &parsed); err != nil {
		return classification{fetchError: errors.Wrap(err, "can't parse response body")}
	}

	cls := classification{data: parsed.Data, raw: body}
	if len(parsed.Errors) > 0 {
		cls.graphQLErrors = parsed.Errors
	}
	return cls
}

// readResponseBody drains the body, transparently inflating gzip.
func readResponseBody(response *http.Response) ([]byte, error) {
	reader := io.Reader(response.Body)
	if response.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(response.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}
	return io.ReadAll(reader)
}

// generateResult normalizes a classification into the single result
// shape. Pure and total: the error flag is true iff any error field is
// present, and present fields pass through unchanged.
func generateResult(cls classification) *Result {
	return &Result{
		Error:         cls.fetchError != nil || cls.httpError != nil || len(cls.graphQLErrors) > 0,
		Data:          cls.data,
		GraphQLErrors: cls.graphQLErrors,
		FetchError:    cls.fetchError,
		HTTPError:     cls.httpError,
		raw:           cls.raw,
	}
}
