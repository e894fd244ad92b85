package payment

import (
	"time"
)

// InitializeRequest starts a hosted payment session. Amount is in the
// currency's smallest subunit. Reference carries the order number: the
// gateway echoes it back on verify and webhook delivery, which is how
// both reconciliation paths find the order again.
type InitializeRequest struct {
	Email     string
	Amount    int64
	Reference string
}

// Authorization is the provider-hosted payment session the browser is
// redirected to.
type Authorization struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// Verification is the provider's verdict on a transaction.
type Verification struct {
	Status          string
	Reference       string
	Amount          int64
	Currency        string
	Channel         string
	GatewayResponse string
	PaidAt          *time.Time
}

// Paid reports whether the provider considers the transaction settled.
func (v *Verification) Paid() bool {
	return v.Status == "success"
}
