package payment

import (
	"errors"
	"fmt"
)

var (
	// -- Configuration --
	ErrMissingSecretKey = errors.New("paystack secret key is not configured")
	ErrMissingBaseURL   = errors.New("app base URL is not configured")

	// -- Webhook auth --
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// GatewayError is a non-2xx response from the provider. The original
// status code and body are kept so callers can forward them verbatim.
type GatewayError struct {
	StatusCode int
	Body       []byte
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("paystack returned status %d: %s", e.StatusCode, string(e.Body))
}

// IsGatewayError unwraps err into a *GatewayError if there is one.
func IsGatewayError(err error) (*GatewayError, bool) {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
