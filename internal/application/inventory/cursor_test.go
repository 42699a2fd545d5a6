package inventory

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bioinventario-api/internal/domain"
	"github.com/jhoicas/bioinventario-api/internal/domain/repository"
)

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)
	c := repository.TransactionCursor{CreatedAt: at, ID: "5f0c7a1e-3b2d-4c9e-8a7f-6d5e4c3b2a10"}

	got, err := DecodeCursor(EncodeCursor(c))
	require.NoError(t, err)
	assert.True(t, at.Equal(got.CreatedAt))
	assert.Equal(t, c.ID, got.ID)
}

func TestDecodeCursor_Invalid(t *testing.T) {
	tests := []string{
		"@@",
		base64.RawURLEncoding.EncodeToString([]byte("sin-separador")),
		base64.RawURLEncoding.EncodeToString([]byte("abc|id")),
		base64.RawURLEncoding.EncodeToString([]byte("123|")),
	}
	for _, token := range tests {
		_, err := DecodeCursor(token)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, token)
	}
}
