package apperr

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("User not found").Status())
	assert.Equal(t, http.StatusBadRequest, InvalidInput("Invalid request body").Status())
	assert.Equal(t, http.StatusInternalServerError, (&Error{Msg: "?"}).Status())
}

func TestAsUnwrapsWrappedErrors(t *testing.T) {
	base := NotFound("Session not found")
	wrapped := fmt.Errorf("list requests: %w", base)

	got, ok := As(wrapped)
	require.True(t, ok)
	assert.Same(t, base, got)
	assert.Equal(t, "Session not found", got.Error())

	assert.Equal(t, KindNotFound, got.Kind)

	_, ok = As(fmt.Errorf("boom"))
	assert.False(t, ok)
}
