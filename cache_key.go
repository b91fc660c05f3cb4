package gql

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/goccy/go-json"
)

// GetCacheKey derives the memoization identity for an operation. Only
// the operation and the merged transport option overrides participate;
// resolved headers and body do not. Pure: no network or cache access.
func (c *Client) GetCacheKey(operation Operation, opts *RequestOptions) *CacheKey {
	var overrides map[string]interface{}
	if opts != nil {
		overrides = opts.FetchOptionsOverrides
	}
	return &CacheKey{
		Operation:    operation,
		FetchOptions: mergeOptions(c.fetchOptions, overrides),
	}
}

// Hash returns a stable digest of the key. Map keys serialize in
// sorted order, so structurally equal keys hash identically no matter
// the insertion order.
func (k *CacheKey) Hash() string {
	payload, err := json.Marshal(k)
	if err != nil {
		return ""
	}
	digest := md5.Sum(payload)
	return hex.EncodeToString(digest[:])
}
