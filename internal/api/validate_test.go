package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name   string `json:"name" validate:"required,max=5"`
	Rating int    `json:"rating" validate:"min=1,max=5"`
}

func request(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeJSON(t *testing.T) {
	var req sampleRequest
	require.NoError(t, DecodeJSON(request(`{"name":"abc","rating":4}`), &req))
	assert.Equal(t, sampleRequest{Name: "abc", Rating: 4}, req)
}

func TestDecodeJSON_ReportsJSONFieldNames(t *testing.T) {
	var req sampleRequest
	err := DecodeJSON(request(`{"name":"","rating":9}`), &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name must satisfy required")
	assert.Contains(t, err.Error(), "rating must satisfy max=5")
}

func TestDecodeJSON_InvalidJSON(t *testing.T) {
	var req sampleRequest
	err := DecodeJSON(request(`{"name":`), &req)
	assert.EqualError(t, err, "invalid json")
}
