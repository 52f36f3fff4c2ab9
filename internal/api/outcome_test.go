package api

import (
	"errors"
	"testing"

	"github.com/phrazzld/question-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	value := "paper"

	found := Classify(&value, nil)
	assert.Equal(t, Found, found.Kind)
	assert.Same(t, &value, found.Value)
	assert.NoError(t, found.Err)

	missing := Classify[*string](nil, store.NewStoreError("paper", "get", "paper not found", store.ErrPaperNotFound))
	assert.Equal(t, NotFound, missing.Kind)
	assert.Nil(t, missing.Value)

	failed := Classify[*string](nil, errors.New("connection refused"))
	assert.Equal(t, Failed, failed.Kind)
	assert.EqualError(t, failed.Err, "connection refused")

	invalid := Classify[*string](nil, store.ErrInvalidID)
	assert.Equal(t, Failed, invalid.Kind)
}

func TestOutcomeKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "found", Found.String())
	assert.Equal(t, "not_found", NotFound.String())
	assert.Equal(t, "failed", Failed.String())
}
