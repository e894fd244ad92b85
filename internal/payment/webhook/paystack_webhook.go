package webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Cleve-codes/EastCom/internal/logger"
	"github.com/Cleve-codes/EastCom/internal/metrics"
	"github.com/Cleve-codes/EastCom/internal/order"
	"github.com/Cleve-codes/EastCom/internal/payment"

	"go.uber.org/zap"
)

const maxBodySize = 1 << 20 // 1 MiB

// Event is the JSON envelope Paystack posts.
type Event struct {
	Event string    `json:"event"`
	Data  EventData `json:"data"`
}

type EventData struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	PaidAt    string `json:"paid_at,omitempty"`
}

// Handler depends on the order service and the payment gateway
type Handler struct {
	OrderSvc order.Service
	Gateway  payment.Gateway
}

func NewWebhookHandler(orderSvc order.Service, gateway payment.Gateway) *Handler {
	return &Handler{
		OrderSvc: orderSvc,
		Gateway:  gateway,
	}
}

// WebhookHandler is the actual route handler. The signature is checked
// over the raw body before any JSON parsing touches it.
func (h *Handler) WebhookHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromCtx(ctx)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	sig := r.Header.Get(payment.SignatureHeader)
	if err := h.Gateway.VerifySignature(sig, body); err != nil {
		if errors.Is(err, payment.ErrMissingSecretKey) {
			log.Error("webhook received but secret key is not configured")
			http.Error(w, "configuration error", http.StatusInternalServerError)
			return
		}
		// Possible spoofing attempt; count it and drop the event.
		metrics.RecordWebhookRejected()
		log.Warn("webhook signature mismatch", zap.String("remote_ip", r.RemoteAddr))
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var evt Event
	if err := json.Unmarshal(body, &evt); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	metrics.RecordWebhookEvent(evt.Event)
	log.Info("webhook received",
		zap.String("event", evt.Event),
		zap.String("reference", evt.Data.Reference),
	)

	switch evt.Event {
	case "charge.success":
		// The reference is the order number we set at initialization.
		err := h.OrderSvc.ApplyPaymentStatus(ctx, evt.Data.Reference, evt.Data.Reference, order.PaymentSuccess)
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			// Acknowledge so the provider stops redelivering; the
			// service has already logged and counted it for alerting.
			w.WriteHeader(http.StatusOK)
			return
		case err != nil:
			log.Error("failed to update order from webhook", zap.Error(err))
			http.Error(w, "failed to update order", http.StatusInternalServerError)
			return
		}
	default:
		// Other event types are accepted but ignored.
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"success"}`))
}
