package upbank

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusError_Taxonomy(t *testing.T) {
	body := []byte(`{"errors":[{"status":"429","title":"Too Many Requests","detail":"Slow down"}]}`)

	err := statusError(429, body)
	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 429, apiErr.StatusCode)
	assert.Equal(t, "up api returned 429: Slow down", err.Error())

	assert.ErrorIs(t, statusError(401, nil), ErrNotAuthorized)

	nf := statusError(404, []byte(`{"errors":[{"status":"404","title":"Not Found","detail":"Record not found"}]}`))
	assert.True(t, IsNotFound(nf))
	assert.Equal(t, "Record not found", nf.Error())
}

func TestStatusError_MalformedBody(t *testing.T) {
	err := statusError(500, []byte("<html>oops</html>"))
	assert.Equal(t, "up api returned 500", err.Error())

	nf := statusError(404, nil)
	assert.Equal(t, "resource not found", nf.Error())
}

func TestIsNotFound_Wrapped(t *testing.T) {
	err := fmt.Errorf("fetching transaction: %w", &NotFoundError{Detail: "gone"})
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(fmt.Errorf("plain error")))
}
