package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Cleve-codes/EastCom/internal/order"
	"github.com/Cleve-codes/EastCom/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, input order.CreateOrderInput) (*order.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) InitializePayment(ctx context.Context, o *order.Order) (*payment.Authorization, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Authorization), args.Error(1)
}

func (m *MockOrderService) VerifyPayment(ctx context.Context, reference string) (*order.VerificationResult, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.VerificationResult), args.Error(1)
}

func (m *MockOrderService) ApplyPaymentStatus(ctx context.Context, orderNumber, reference string, status order.PaymentStatus) error {
	args := m.Called(ctx, orderNumber, reference, status)
	return args.Error(0)
}

func (m *MockOrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

const testSecret = "sk_test_webhook_secret"

func sign(body []byte) string {
	mac := hmac.New(sha512.New, []byte(testSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func postWebhook(h *Handler, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/paystack/webhook", bytes.NewBuffer(body))
	if signature != "" {
		req.Header.Set(payment.SignatureHeader, signature)
	}
	w := httptest.NewRecorder()
	h.WebhookHandler(w, req)
	return w
}

func TestHandler_WebhookHandler(t *testing.T) {
	gateway := payment.NewPaystackGateway(testSecret, "https://shop.example.com")

	t.Run("ChargeSuccessAppliesStatus", func(t *testing.T) {
		orderSvc := new(MockOrderService)
		h := NewWebhookHandler(orderSvc, gateway)

		body := []byte(`{"event":"charge.success","data":{"reference":"EC-1700000000000-042","status":"success","amount":12200000}}`)

		orderSvc.On("ApplyPaymentStatus", mock.Anything,
			"EC-1700000000000-042", "EC-1700000000000-042", order.PaymentSuccess).
			Return(nil)

		w := postWebhook(h, body, sign(body))
		assert.Equal(t, http.StatusOK, w.Code)
		orderSvc.AssertExpectations(t)
	})

	t.Run("InvalidSignatureRejected", func(t *testing.T) {
		orderSvc := new(MockOrderService)
		h := NewWebhookHandler(orderSvc, gateway)

		// A valid-looking body must never be applied without a valid
		// signature.
		body := []byte(`{"event":"charge.success","data":{"reference":"EC-1700000000000-042"}}`)

		w := postWebhook(h, body, "deadbeef")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		orderSvc.AssertNotCalled(t, "ApplyPaymentStatus",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MissingSignatureRejected", func(t *testing.T) {
		orderSvc := new(MockOrderService)
		h := NewWebhookHandler(orderSvc, gateway)

		body := []byte(`{"event":"charge.success","data":{"reference":"EC-1"}}`)

		w := postWebhook(h, body, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("SignatureCheckedOverRawBody", func(t *testing.T) {
		orderSvc := new(MockOrderService)
		h := NewWebhookHandler(orderSvc, gateway)

		body := []byte(`{"event":"charge.success","data":{"reference":"EC-1"}}`)
		// Same JSON value, different bytes: the signature only covers
		// the exact bytes it was computed over.
		reordered := []byte(`{"data":{"reference":"EC-1"},"event":"charge.success"}`)

		w := postWebhook(h, reordered, sign(body))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("OtherEventsAcknowledged", func(t *testing.T) {
		orderSvc := new(MockOrderService)
		h := NewWebhookHandler(orderSvc, gateway)

		body := []byte(`{"event":"transfer.success","data":{"reference":"EC-1"}}`)

		w := postWebhook(h, body, sign(body))
		assert.Equal(t, http.StatusOK, w.Code)
		orderSvc.AssertNotCalled(t, "ApplyPaymentStatus",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownOrderAcknowledged", func(t *testing.T) {
		orderSvc := new(MockOrderService)
		h := NewWebhookHandler(orderSvc, gateway)

		body := []byte(`{"event":"charge.success","data":{"reference":"EC-unknown"}}`)

		// Acknowledge so the provider does not redeliver forever, even
		// though nothing was updated.
		orderSvc.On("ApplyPaymentStatus", mock.Anything, "EC-unknown", "EC-unknown", order.PaymentSuccess).
			Return(order.ErrOrderNotFound)

		w := postWebhook(h, body, sign(body))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		orderSvc := new(MockOrderService)
		h := NewWebhookHandler(orderSvc, gateway)

		body := []byte(`{"event":`)

		w := postWebhook(h, body, sign(body))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("UpdateFailureReturns500", func(t *testing.T) {
		orderSvc := new(MockOrderService)
		h := NewWebhookHandler(orderSvc, gateway)

		body := []byte(`{"event":"charge.success","data":{"reference":"EC-1"}}`)

		orderSvc.On("ApplyPaymentStatus", mock.Anything, "EC-1", "EC-1", order.PaymentSuccess).
			Return(errors.New("db down"))

		// A transient failure must not be acknowledged: the provider
		// should redeliver.
		w := postWebhook(h, body, sign(body))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("MissingSecretKey", func(t *testing.T) {
		orderSvc := new(MockOrderService)
		h := NewWebhookHandler(orderSvc, payment.NewPaystackGateway("", ""))

		body := []byte(`{"event":"charge.success","data":{"reference":"EC-1"}}`)

		w := postWebhook(h, body, sign(body))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
