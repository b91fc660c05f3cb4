package gql

// logErrorResult forwards classified error information without
// touching the result. A configured observer takes precedence and
// suppresses logging entirely; otherwise each present error category
// gets its own diagnostic entry, independently of the others.
func (c *Client) logErrorResult(report *ErrorReport) {
	c.mu.RLock()
	observer := c.onError
	c.mu.RUnlock()
	if observer != nil {
		observer(*report)
		return
	}
	if !c.logErrors {
		return
	}

	result := report.Result
	if result.FetchError != nil {
		c.Logger.Error("FETCH ERROR:", map[string]interface{}{
			"error": sanitizeForLogging(result.FetchError.Error()),
			"query": sanitizeForLogging(report.Operation.Query),
		})
	}
	if result.HTTPError != nil {
		c.Logger.Error("HTTP ERROR:", map[string]interface{}{
			"status":     result.HTTPError.Status,
			"statusText": result.HTTPError.StatusText,
			"body":       sanitizeForLogging(result.HTTPError.Body),
		})
	}
	for _, entry := range result.GraphQLErrors {
		c.Logger.Error("GRAPHQL ERROR:", map[string]interface{}{
			"error": entry,
		})
	}
}
