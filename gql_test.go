package gql

import (
	"context"
	"strings"
)

// End-to-end coverage against the in-package mock server, exercising
// the default request pipeline over a real HTTP/2 connection.

func (suite *Tests) newMockedClient() (*Client, func()) {
	server := StartMockServer()
	client, err := NewClient(Config{
		Endpoint:   server.URL,
		HTTPClient: server.Client(),
		Logger:     GetTestLogger(),
	})
	suiteAssert.NoError(err)
	return client, server.Close
}

func (suite *Tests) Test_EndToEnd_Success() {
	client, teardown := suite.newMockedClient()
	defer teardown()

	result := client.Request(context.Background(), Operation{Query: "query { viewer { login } }"}, nil)
	suiteAssert.False(result.Error)
	suiteAssert.Equal("mockuser", result.Get("data.viewer.login").String())
}

func (suite *Tests) Test_EndToEnd_PartialSuccess() {
	client, teardown := suite.newMockedClient()
	defer teardown()

	result := client.Request(context.Background(), Operation{Query: "query { partial }"}, nil)
	suiteAssert.True(result.Error)
	suiteAssert.NotNil(result.Data)
	suiteAssert.Len(result.GraphQLErrors, 1)
}

func (suite *Tests) Test_EndToEnd_GraphQLErrors() {
	client, teardown := suite.newMockedClient()
	defer teardown()

	result := client.Request(context.Background(), Operation{Query: "query { broken }"}, nil)
	suiteAssert.True(result.Error)
	suiteAssert.Len(result.GraphQLErrors, 1)
	suiteAssert.Nil(result.HTTPError)
}

func (suite *Tests) Test_EndToEnd_HTTPError() {
	client, teardown := suite.newMockedClient()
	defer teardown()

	result := client.Request(context.Background(), Operation{Query: "query { denied }"}, nil)
	suiteAssert.True(result.Error)
	suiteAssert.NotNil(result.HTTPError)
	suiteAssert.Equal(403, result.HTTPError.Status)
	suiteAssert.Equal("Denied!", result.HTTPError.Body)
}

func (suite *Tests) Test_EndToEnd_FileUpload() {
	client, teardown := suite.newMockedClient()
	defer teardown()

	result := client.Request(context.Background(), Operation{
		Query: "mutation ($a: Upload!) { upload(file: $a) }",
		Variables: map[string]interface{}{
			"a": Upload{Name: "a.txt", R: strings.NewReader("file payload")},
		},
	}, nil)
	suiteAssert.False(result.Error)
	suiteAssert.Equal(int64(1), result.Get("data.uploaded").Int())
}
