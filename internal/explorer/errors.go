package explorer

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietddude/tigscan/internal/infra/api"
	"github.com/vietddude/tigscan/internal/schema"
)

// Describe renders err as a message for end users.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *api.Error
	var ve *schema.ValidationError
	switch {
	case errors.Is(err, context.Canceled):
		return "Request canceled"
	case errors.As(err, &ve):
		return "Validation Error: " + ve.Error()
	case errors.As(err, &apiErr) && apiErr.Code == api.CodeNetwork:
		return "Network Error: " + apiErr.Message
	case errors.As(err, &apiErr):
		return fmt.Sprintf("API Error: %s (%d)", apiErr.Message, apiErr.Status)
	case errors.Is(err, ErrNoBlocks):
		return "No blocks found"
	default:
		return "Network Error: " + err.Error()
	}
}
