package gql

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_generateResult(t *testing.T) {
	fetchErr := errors.New("network down")
	httpErr := &HTTPError{Status: 500, StatusText: "Internal Server Error", Body: "boom"}

	tests := []struct {
		name      string
		cls       classification
		wantError bool
	}{
		{
			name:      "empty classification",
			cls:       classification{},
			wantError: false,
		},
		{
			name:      "data only",
			cls:       classification{data: "data!"},
			wantError: false,
		},
		{
			name:      "fetch error",
			cls:       classification{fetchError: fetchErr},
			wantError: true,
		},
		{
			name:      "http error",
			cls:       classification{httpError: httpErr},
			wantError: true,
		},
		{
			name:      "graphql errors",
			cls:       classification{graphQLErrors: []interface{}{"oops!"}},
			wantError: true,
		},
		{
			name:      "partial success",
			cls:       classification{data: "data!", graphQLErrors: []interface{}{"oops!"}},
			wantError: true,
		},
		{
			name:      "all three categories",
			cls:       classification{fetchError: fetchErr, httpError: httpErr, graphQLErrors: []interface{}{"oops!"}},
			wantError: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := generateResult(tt.cls)
			assert.Equal(t, tt.wantError, result.Error)
			assert.Equal(t, tt.cls.data, result.Data)
			assert.Equal(t, tt.cls.fetchError, result.FetchError)
			assert.Equal(t, tt.cls.httpError, result.HTTPError)
			assert.Equal(t, tt.cls.graphQLErrors, result.GraphQLErrors)
		})
	}
}

func TestErrorObserver_ReceivesReport(t *testing.T) {
	var received []ErrorReport
	client, err := NewClient(Config{
		Endpoint:  "https://example.com/graphql",
		Fetch:     stubResponse(http.StatusForbidden, "Denied!"),
		LogErrors: true,
		OnError: func(report ErrorReport) {
			received = append(received, report)
		},
		Logger: GetTestLogger(),
	})
	require.NoError(t, err)

	operation := Operation{Query: "query { ok }"}
	client.Request(context.Background(), operation, nil)

	require.Len(t, received, 1)
	assert.Equal(t, operation, received[0].Operation)
	require.NotNil(t, received[0].Result.HTTPError)
	assert.Equal(t, 403, received[0].Result.HTTPError.Status)
}

func TestErrorObserver_NotInvokedOnSuccess(t *testing.T) {
	invoked := false
	client, err := NewClient(Config{
		Endpoint: "https://example.com/graphql",
		Fetch:    stubResponse(http.StatusOK, `{"data":1}`),
		OnError:  func(ErrorReport) { invoked = true },
		Logger:   GetTestLogger(),
	})
	require.NoError(t, err)

	client.Request(context.Background(), Operation{Query: "query { ok }"}, nil)
	assert.False(t, invoked)
}

func TestLogErrorResult_DoesNotMutateResult(t *testing.T) {
	client, err := NewClient(Config{
		Endpoint:  "https://example.com/graphql",
		Fetch:     stubResponse(http.StatusOK, `{"data":"data!","errors":["oops!"]}`),
		LogErrors: true,
		Logger:    GetTestLogger(),
	})
	require.NoError(t, err)

	result := client.Request(context.Background(), Operation{Query: "query { ok }"}, nil)
	assert.True(t, result.Error)
	assert.Equal(t, "data!", result.Data)
	assert.Equal(t, []interface{}{"oops!"}, result.GraphQLErrors)
}
