// Package test contains helpers for tests that go through the full router.
package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"reflect"
	"testing"

	"github.com/nuno80/agenzia-eventi/internal/router"
	"github.com/stretchr/testify/require"
)

// requestBody turns the body of a test request into a reader.
//
// Strings are sent verbatim so that tests can send broken JSON. Structs,
// maps and slices are encoded as JSON.
func requestBody(t *testing.T, body any) io.Reader {
	switch b := body.(type) {
	case nil:
		return http.NoBody
	case string:
		return bytes.NewBufferString(b)
	case *bytes.Buffer:
		return b
	}

	switch reflect.TypeOf(body).Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Pointer:
		encoded, err := json.Marshal(body)
		require.Nil(t, err, "Request body could not be encoded")
		return bytes.NewBuffer(encoded)
	}

	require.FailNow(t, "Unsupported request body", "%T", body)
	return nil
}

// Request sends a request to a router configured with the API_URL of the
// environment and returns the recorded response.
func Request(t *testing.T, method, reqURL string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	apiURL, ok := os.LookupEnv("API_URL")
	require.True(t, ok, "environment variable API_URL must be set")

	baseURL, err := url.Parse(apiURL)
	require.Nil(t, err, "environment variable API_URL must be a valid URL")

	// The metrics are registered once per router, teardown releases them
	// for the next request
	r, teardown, err := router.Config(baseURL)
	defer teardown()
	require.Nil(t, err, "Router could not be initialized")

	router.AttachRoutes(r.Group("/"))

	req, err := http.NewRequest(method, reqURL, requestBody(t, body))
	require.Nil(t, err)

	for _, h := range headers {
		for name, value := range h {
			req.Header.Set(name, value)
		}
	}

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)

	return *recorder
}

// DecodeResponse decodes the JSON body of a response into target.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target any) {
	err := json.Unmarshal(r.Body.Bytes(), target)
	require.Nil(t, err, "Response %q could not be decoded into %T. Request ID: %s", r.Body, target, r.Result().Header.Get("x-request-id"))
}

// AssertHTTPStatus fails the test immediately when the response status is
// none of the expected ones.
func AssertHTTPStatus(t *testing.T, r *httptest.ResponseRecorder, expectedStatus ...int) {
	require.Contains(t, expectedStatus, r.Code, "Unexpected HTTP status. Request ID: '%s' Response body: %s", r.Result().Header.Get("x-request-id"), r.Body.String())
}
