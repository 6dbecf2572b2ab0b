package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ekremsevim/studiohub/internal/app/models/dto"
	"github.com/ekremsevim/studiohub/internal/middleware"
)

const testUserID int64 = 42

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter builds a router whose requests run as testUserID, matching
// what the JWT middleware would set for an authenticated call.
func newTestRouter() *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, testUserID)
		c.Next()
	})
	return router
}

func performRequest(t *testing.T, router *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)
	return strings.NewReader(string(data))
}

// decodeResponse unmarshals the envelope and re-marshals Data into out, so
// tests can assert on typed payloads.
func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder, out interface{}) dto.APIResponse {
	t.Helper()

	var envelope dto.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	if out != nil && envelope.Data != nil {
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out))
	}
	return envelope
}

func requireErrorCode(t *testing.T, recorder *httptest.ResponseRecorder, status int, code dto.ErrorCode) dto.APIResponse {
	t.Helper()

	require.Equal(t, status, recorder.Code)
	envelope := decodeResponse(t, recorder, nil)
	require.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	require.Equal(t, code, envelope.Error.Code)
	return envelope
}
