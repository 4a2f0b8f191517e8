package dispatch

import (
	"errors"

	"go.temporal.io/sdk/temporal"
)

// RootMessage extracts the most specific human-readable message from an error
// chain. It unwraps to the innermost cause so users see the handler's own
// words rather than layers of transport wrapping; engine application errors
// contribute their original message instead of their decorated Error() text.
func RootMessage(err error) string {
	if err == nil {
		return ""
	}
	innermost := err
	for {
		next := errors.Unwrap(innermost)
		if next == nil {
			break
		}
		innermost = next
	}
	var appErr *temporal.ApplicationError
	if errors.As(innermost, &appErr) {
		return appErr.Message()
	}
	return innermost.Error()
}
