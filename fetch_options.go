package gql

import (
	"github.com/goccy/go-json"
	"github.com/gookit/goutil/maputil"
	"github.com/pkg/errors"
)

const defaultMethod = "POST"

// snapshotHeaders merges default and per-call headers into a fresh map,
// per-call values winning. The copy shields in-flight requests from
// later header mutations on the client.
func (c *Client) snapshotHeaders(overrides map[string]string) map[string]string {
	c.headersMu.RLock()
	merged := make(map[string]string, len(c.headers)+len(overrides))
	for key, value := range c.headers {
		merged[key] = value
	}
	c.headersMu.RUnlock()
	return maputil.MergeStringMap(overrides, merged, false)
}

// getFetchOptions resolves an operation and its overrides into
// transport call parameters, choosing JSON or multipart encoding based
// on whether the variables carry uploads.
func (c *Client) getFetchOptions(operation Operation, opts *RequestOptions) (*FetchOptions, error) {
	var overrideHeaders map[string]string
	var overrideOptions map[string]interface{}
	if opts != nil {
		overrideHeaders = opts.Headers
		overrideOptions = opts.FetchOptionsOverrides
	}

	options := mergeOptions(c.fetchOptions, overrideOptions)
	method := defaultMethod
	if m, ok := options["method"].(string); ok && m != "" {
		method = m
	}

	fetchOptions := &FetchOptions{
		Method:  method,
		Headers: c.snapshotHeaders(overrideHeaders),
		Options: options,
	}

	uploads := collectUploads("variables", operation.Variables)
	if len(uploads) == 0 {
		body, err := json.Marshal(operation)
		if err != nil {
			return nil, errors.Wrap(err, "can't serialize operation")
		}
		fetchOptions.Body = body
		fetchOptions.Headers["Content-Type"] = "application/json"
		return fetchOptions, nil
	}

	body, contentType, err := buildMultipartBody(operation, uploads)
	if err != nil {
		return nil, err
	}
	// The multipart writer owns the boundary, so Content-Type stays out
	// of the headers map and is applied by the transport instead.
	fetchOptions.Body = body
	fetchOptions.ContentType = contentType
	return fetchOptions, nil
}
