package server

import (
	"errors"
	"net/http"

	"github.com/Cleve-codes/EastCom/internal/logger"
	"github.com/Cleve-codes/EastCom/internal/order"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// getOrder serves the success page: the order with its items and the
// product name/image for each line.
func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderNumber := chi.URLParam(r, "orderNumber")

	o, err := s.orders.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			renderError(w, r, http.StatusNotFound, "order not found")
			return
		}
		logger.FromCtx(ctx).Error("failed to fetch order", zap.Error(err))
		renderError(w, r, http.StatusInternalServerError, "failed to fetch order")
		return
	}

	render.JSON(w, r, o)
}
