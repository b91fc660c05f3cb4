// mock_server.go
package gql

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/net/http2"
)

// StartMockServer runs an HTTP/2 GraphQL endpoint for tests and local
// experiments. Keywords in the query select the scenario: "viewer"
// returns data, "partial" data plus errors, "broken" errors only,
// "denied" a 403 with a plain-text body. Multipart operations are
// acknowledged with the number of files received.
func StartMockServer() *httptest.Server {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			handleMultipartOperation(w, r)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		query := gjson.GetBytes(body, "query").String()
		switch {
		case strings.Contains(query, "denied"):
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("Denied!"))
		case strings.Contains(query, "partial"):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":{"viewer":{"login":"mockuser"}},"errors":[{"message":"partial failure"}]}`))
		case strings.Contains(query, "broken"):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"errors":[{"message":"Unknown query"}]}`))
		case strings.Contains(query, "viewer"):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":{"viewer":{"login":"mockuser"}}}`))
		default:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":null}`))
		}
	})

	server := httptest.NewUnstartedServer(handler)
	http2.ConfigureServer(server.Config, &http2.Server{})
	server.TLS = server.Config.TLSConfig
	server.StartTLS()
	return server
}

func handleMultipartOperation(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if r.FormValue("operations") == "" || r.FormValue("map") == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"data":{"uploaded":%d}}`, len(r.MultipartForm.File))
}
