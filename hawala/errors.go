package hawala

import "errors"

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidRoute    = errors.New("invalid route")
	ErrCycleDetected   = errors.New("cycle detected")
	ErrNotAuthorized   = errors.New("not authorized")
	ErrNotDestination  = errors.New("not destination")
	ErrAlreadyTerminal = errors.New("already terminal")
	ErrInvalidSecret   = errors.New("invalid secret")
	ErrInvalidLock     = errors.New("invalid lock")
	ErrNotFound        = errors.New("not found")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrInvalidAmount, "INVALID_AMOUNT"},
	{ErrInvalidRoute, "INVALID_ROUTE"},
	{ErrCycleDetected, "CYCLE_DETECTED"},
	{ErrNotAuthorized, "NOT_AUTHORIZED"},
	{ErrNotDestination, "NOT_DESTINATION"},
	{ErrAlreadyTerminal, "ALREADY_TERMINAL"},
	{ErrInvalidSecret, "INVALID_SECRET"},
	{ErrInvalidLock, "INVALID_LOCK"},
	{ErrNotFound, "NOT_FOUND"},
}

// Code : stable token reported to clients for a protocol error,
// "" when err is not one
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
