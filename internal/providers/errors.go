package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
)

type GatewayErrorKind string

const (
	GatewayUnauthorized  GatewayErrorKind = "unauthorized"
	GatewayRequestFailed GatewayErrorKind = "request_failed"
	GatewayEmptyResponse GatewayErrorKind = "empty_response"
	GatewayTimeout       GatewayErrorKind = "timeout"
)

// GatewayError is the typed failure surface of every LLM provider. Callers
// treat all kinds uniformly except Unauthorized, which no retry can fix.
type GatewayError struct {
	Kind     GatewayErrorKind
	Provider string
	Err      error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s gateway %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s gateway %s", e.Provider, e.Kind)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func AsGatewayError(err error) (*GatewayError, bool) {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}

// requestErrorKind distinguishes timeouts from other transport failures.
func requestErrorKind(err error) GatewayErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return GatewayTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return GatewayTimeout
	}
	return GatewayRequestFailed
}

func statusErrorKind(status int) GatewayErrorKind {
	if status == 401 || status == 403 {
		return GatewayUnauthorized
	}
	return GatewayRequestFailed
}
