package inventory

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/bioinventario-api/internal/domain"
	"github.com/jhoicas/bioinventario-api/internal/domain/repository"
)

// EncodeCursor serializa la posición (created_at, id) como token opaco.
func EncodeCursor(c repository.TransactionCursor) string {
	raw := strconv.FormatInt(c.CreatedAt.UnixNano(), 10) + "|" + c.ID
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor interpreta un token de EncodeCursor. Un token corrupto es ErrInvalidInput.
func DecodeCursor(token string) (*repository.TransactionCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: cursor inválido", domain.ErrInvalidInput)
	}
	nanos, id, ok := strings.Cut(string(raw), "|")
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: cursor inválido", domain.ErrInvalidInput)
	}
	n, err := strconv.ParseInt(nanos, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: cursor inválido", domain.ErrInvalidInput)
	}
	return &repository.TransactionCursor{CreatedAt: time.Unix(0, n).UTC(), ID: id}, nil
}
