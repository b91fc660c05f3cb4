package main

import (
	"context"
	"fmt"

	graphql "github.com/lukaszraczylo/go-graphql-fetch"
)

func main() {
	client, err := graphql.NewClientFromEnv()
	if err != nil {
		fmt.Println("Can't create client:", err)
		return
	}
	client.SetHeader("User-Agent", "go-graphql-fetch-sample")

	operation := graphql.Operation{
		Query: `query Viewer {
			viewer {
				login
			}
		}`,
	}

	result := client.CachedRequest(context.Background(), operation, nil)
	if result.Error {
		fmt.Println("Request failed:", result.FetchError, result.HTTPError, result.GraphQLErrors)
		return
	}
	fmt.Println("Viewer:", result.Get("data.viewer.login").String())

	// Repeated to be served from the cache when GRAPHQL_CACHE_ENABLED is set.
	client.CachedRequest(context.Background(), operation, nil)
}
