package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title *string `json:"title"`
}

func TestDecodeJSON(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Algebra"}`))
		var v sampleRequest
		require.NoError(t, DecodeJSON(req, &v))
		require.NotNil(t, v.Title)
		assert.Equal(t, "Algebra", *v.Title)
	})

	t.Run("empty body is allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/", nil)
		var v sampleRequest
		require.NoError(t, DecodeJSON(req, &v))
		assert.Nil(t, v.Title)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
		var v sampleRequest
		err := DecodeJSON(req, &v)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidRequest))
		assert.Equal(t, "Invalid request format", ErrorMessage(err))
	})

	t.Run("wrong type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":42}`))
		var v sampleRequest
		assert.ErrorIs(t, DecodeJSON(req, &v), ErrInvalidRequest)
	})
}
