package gql

import (
	"os"
	"sync"
	"time"

	libpack_cache "github.com/lukaszraczylo/go-graphql-fetch/cache"
	libpack_logging "github.com/lukaszraczylo/go-graphql-fetch/logging"
)

var (
	testLoggerOnce sync.Once
	testLogger     *libpack_logging.Logger
)

// GetTestLogger returns a shared logger for tests, defaulting to error
// level unless LOG_LEVEL overrides it.
func GetTestLogger() *libpack_logging.Logger {
	testLoggerOnce.Do(func() {
		testLogger = libpack_logging.New()
		level := "error"
		if env := os.Getenv("LOG_LEVEL"); env != "" {
			level = env
		}
		testLogger.SetMinLogLevel(libpack_logging.GetLogLevel(level))
	})
	return testLogger
}

// NewTestCache returns a short-TTL store suitable for tests.
func NewTestCache() *libpack_cache.Cache {
	return libpack_cache.New(5 * time.Second)
}

// NewTestClient builds a client around a stubbed transport.
func NewTestClient(fetch FetchFunc) *Client {
	client, err := NewClient(Config{
		Endpoint: "https://example.com/graphql",
		Fetch:    fetch,
		Logger:   GetTestLogger(),
	})
	if err != nil {
		panic(err)
	}
	return client
}
