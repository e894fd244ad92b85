package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Cleve-codes/EastCom/internal/logger"
	"github.com/Cleve-codes/EastCom/internal/order"
	"github.com/Cleve-codes/EastCom/internal/payment"

	"github.com/go-chi/render"
	"go.uber.org/zap"
)

type checkoutResponse struct {
	Order            *order.Order `json:"order"`
	AuthorizationURL string       `json:"authorization_url"`
	AccessCode       string       `json:"access_code"`
	Reference        string       `json:"reference"`
}

// checkout creates a pending order from the cart snapshot and starts a
// hosted payment session. The order stays PENDING if initialization
// fails; the customer resubmits checkout to retry.
func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromCtx(ctx)

	var input order.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := s.orders.CreateOrder(ctx, input)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrMissingCustomerFields),
			errors.Is(err, order.ErrEmptyItems),
			errors.Is(err, order.ErrInvalidQuantity),
			errors.Is(err, order.ErrTotalMismatch):
			renderError(w, r, http.StatusBadRequest, err.Error())
		default:
			log.Error("failed to create order", zap.Error(err))
			renderError(w, r, http.StatusInternalServerError, "failed to create order")
		}
		return
	}

	auth, err := s.orders.InitializePayment(ctx, o)
	if err != nil {
		s.renderGatewayError(w, r, err, "failed to initialize payment")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, checkoutResponse{
		Order:            o,
		AuthorizationURL: auth.AuthorizationURL,
		AccessCode:       auth.AccessCode,
		Reference:        auth.Reference,
	})
}

// verifyPayment is the redirect reconciliation path: the browser comes
// back from the provider carrying the transaction reference.
func (s *Server) verifyPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reference := r.URL.Query().Get("reference")
	if reference == "" {
		renderError(w, r, http.StatusBadRequest, "reference is required")
		return
	}

	result, err := s.orders.VerifyPayment(ctx, reference)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			renderError(w, r, http.StatusNotFound, "no order matches this reference")
			return
		}
		s.renderGatewayError(w, r, err, "verification failed")
		return
	}

	render.JSON(w, r, result)
}

// renderGatewayError maps gateway failures onto HTTP responses:
// provider non-2xx responses are forwarded with their original status
// code and body, missing credentials are a server configuration error,
// and anything else is a transient upstream failure the caller may
// retry.
func (s *Server) renderGatewayError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	log := logger.FromCtx(r.Context())

	if ge, ok := payment.IsGatewayError(err); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(ge.StatusCode)
		w.Write(ge.Body)
		return
	}

	switch {
	case errors.Is(err, payment.ErrMissingSecretKey), errors.Is(err, payment.ErrMissingBaseURL):
		log.Error("payment gateway misconfigured", zap.Error(err))
		renderError(w, r, http.StatusInternalServerError, "server configuration error")
	default:
		log.Error("payment gateway unreachable", zap.Error(err))
		renderError(w, r, http.StatusBadGateway, fallback)
	}
}
