// internal/payment/payment.go
package payment

import (
	"context"
)

type Gateway interface {
	Initialize(ctx context.Context, req InitializeRequest) (*Authorization, error)
	Verify(ctx context.Context, reference string) (*Verification, error)
	VerifySignature(signature string, body []byte) error
}
