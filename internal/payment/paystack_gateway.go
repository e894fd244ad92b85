package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Cleve-codes/EastCom/internal/logger"

	"go.uber.org/zap"
)

const paystackBaseURL = "https://api.paystack.co"

// SignatureHeader carries the provider's hex HMAC-SHA512 of the raw
// webhook body.
const SignatureHeader = "X-Paystack-Signature"

type paystackGateway struct {
	secretKey  string
	appBaseURL string
	httpClient *http.Client
}

// NewPaystackGateway builds the gateway client. A missing secret key is
// not fatal here; each call re-checks it and reports a configuration
// error, so the rest of the API stays usable.
func NewPaystackGateway(secretKey, appBaseURL string) Gateway {
	if secretKey == "" {
		logger.L().Warn("Paystack secret key is empty")
	}

	return &paystackGateway{
		secretKey:  secretKey,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ----------------- Initialize -----------------

func (p *paystackGateway) Initialize(ctx context.Context, in InitializeRequest) (*Authorization, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("reference", in.Reference),
		zap.Int64("amount", in.Amount),
	)

	if p.secretKey == "" {
		return nil, ErrMissingSecretKey
	}
	if p.appBaseURL == "" {
		return nil, ErrMissingBaseURL
	}

	body := map[string]interface{}{
		"email":        in.Email,
		"amount":       in.Amount,
		"reference":    in.Reference,
		"callback_url": p.appBaseURL + "/checkout/success",
		"metadata": map[string]interface{}{
			"order_number": in.Reference,
		},
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", paystackBaseURL+"/transaction/initialize", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Content-Type", "application/json")

	log.Info("initializing paystack transaction")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Error("paystack request failed", zap.Error(err))
		return nil, fmt.Errorf("paystack initialize request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read paystack response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("paystack returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, &GatewayError{StatusCode: resp.StatusCode, Body: bodyBytes}
	}

	var res struct {
		Status  bool          `json:"status"`
		Message string        `json:"message"`
		Data    Authorization `json:"data"`
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("failed decoding paystack response", zap.Error(err))
		return nil, err
	}

	log.Info("paystack transaction initialized",
		zap.String("access_code", res.Data.AccessCode),
		zap.String("reference", res.Data.Reference),
	)

	return &res.Data, nil
}

// ----------------- Verify -----------------

func (p *paystackGateway) Verify(ctx context.Context, reference string) (*Verification, error) {
	log := logger.FromCtx(ctx).With(zap.String("reference", reference))

	if p.secretKey == "" {
		return nil, ErrMissingSecretKey
	}

	url := fmt.Sprintf("%s/transaction/verify/%s", paystackBaseURL, reference)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+p.secretKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Error("paystack request failed", zap.Error(err))
		return nil, fmt.Errorf("paystack verify request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read paystack response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("paystack returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, &GatewayError{StatusCode: resp.StatusCode, Body: bodyBytes}
	}

	var res struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			Status          string     `json:"status"`
			Reference       string     `json:"reference"`
			Amount          int64      `json:"amount"`
			Currency        string     `json:"currency"`
			Channel         string     `json:"channel"`
			GatewayResponse string     `json:"gateway_response"`
			PaidAt          *time.Time `json:"paid_at"`
		} `json:"data"`
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("failed decoding paystack response", zap.Error(err))
		return nil, err
	}

	log.Info("paystack transaction verified",
		zap.String("status", res.Data.Status),
		zap.String("reference", res.Data.Reference),
	)

	return &Verification{
		Status:          res.Data.Status,
		Reference:       res.Data.Reference,
		Amount:          res.Data.Amount,
		Currency:        res.Data.Currency,
		Channel:         res.Data.Channel,
		GatewayResponse: res.Data.GatewayResponse,
		PaidAt:          res.Data.PaidAt,
	}, nil
}

// ----------------- Verify Signature -----------------

// VerifySignature authenticates a webhook delivery. The hash must be
// computed over the raw body bytes exactly as received: decoding and
// re-encoding the JSON can change the representation and break the
// comparison.
func (p *paystackGateway) VerifySignature(signature string, body []byte) error {
	if p.secretKey == "" {
		return ErrMissingSecretKey
	}
	if signature == "" {
		return ErrInvalidSignature
	}

	mac := hmac.New(sha512.New, []byte(p.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}
