package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Cleve-codes/EastCom/internal/logger"
	"github.com/Cleve-codes/EastCom/internal/metrics"
	"github.com/Cleve-codes/EastCom/internal/payment"

	"go.uber.org/zap"
)

type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error)
	InitializePayment(ctx context.Context, o *Order) (*payment.Authorization, error)
	VerifyPayment(ctx context.Context, reference string) (*VerificationResult, error)
	ApplyPaymentStatus(ctx context.Context, orderNumber, reference string, status PaymentStatus) error
	GetByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
}

type service struct {
	repo    Repository
	gateway payment.Gateway
}

func NewService(repo Repository, gateway payment.Gateway) Service {
	return &service{
		repo:    repo,
		gateway: gateway,
	}
}

// CreateOrder validates the checkout input, computes the total from the
// item snapshot and persists the order atomically in PENDING state.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.Int("item_count", len(input.Items)),
	)

	if strings.TrimSpace(input.CustomerName) == "" ||
		strings.TrimSpace(input.CustomerEmail) == "" ||
		strings.TrimSpace(input.CustomerPhone) == "" ||
		strings.TrimSpace(input.Address) == "" {
		return nil, ErrMissingCustomerFields
	}

	if len(input.Items) == 0 {
		return nil, ErrEmptyItems
	}

	var total float64
	items := make([]OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		total += float64(item.Quantity) * item.Price
		items = append(items, OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	// The client sends its own total for display; the stored total is
	// always derived from the items. A disagreement means a stale or
	// tampered cart.
	if input.TotalAmount != 0 && math.Abs(input.TotalAmount-total) > 0.009 {
		log.Warn("client total disagrees with item sum",
			zap.Float64("client_total", input.TotalAmount),
			zap.Float64("computed_total", total),
		)
		return nil, ErrTotalMismatch
	}

	o := &Order{
		OrderNumber:   GenerateOrderNumber(),
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		Address:       input.Address,
		TotalAmount:   total,
		PaymentStatus: PaymentPending,
		Items:         items,
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	log.Info("order created",
		zap.String("order_number", o.OrderNumber),
		zap.Float64("total_amount", o.TotalAmount),
	)

	return o, nil
}

// InitializePayment starts a hosted payment session for a pending
// order. The order number is sent as the gateway reference; both must
// stay equal for the lifetime of the transaction.
func (s *service) InitializePayment(ctx context.Context, o *Order) (*payment.Authorization, error) {
	auth, err := s.gateway.Initialize(ctx, payment.InitializeRequest{
		Email:     o.CustomerEmail,
		Amount:    toSubunits(o.TotalAmount),
		Reference: o.OrderNumber,
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordPaymentInitialized()
	return auth, nil
}

// VerifyPayment is the redirect reconciliation path. A transport-level
// failure talking to the provider surfaces as an error without touching
// the order: only the provider's actual verdict may write a status.
func (s *service) VerifyPayment(ctx context.Context, reference string) (*VerificationResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "VerifyPayment"),
		zap.String("reference", reference),
	)

	v, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		log.Error("could not reach payment provider", zap.Error(err))
		return nil, err
	}

	status := PaymentFailed
	if v.Paid() {
		status = PaymentSuccess
	}

	// The provider echoes back the reference we set at initialization,
	// which is the order number.
	orderNumber := v.Reference

	if err := s.applyStatus(ctx, "verify", orderNumber, reference, status); err != nil {
		return nil, err
	}

	log.Info("payment verified",
		zap.String("order_number", orderNumber),
		zap.String("status", string(status)),
	)

	return &VerificationResult{
		OrderNumber:     orderNumber,
		Reference:       v.Reference,
		Status:          status,
		Amount:          v.Amount,
		GatewayResponse: v.GatewayResponse,
		PaidAt:          v.PaidAt,
	}, nil
}

// ApplyPaymentStatus is the webhook path's entry into the same
// idempotent update the redirect path uses.
func (s *service) ApplyPaymentStatus(ctx context.Context, orderNumber, reference string, status PaymentStatus) error {
	return s.applyStatus(ctx, "webhook", orderNumber, reference, status)
}

func (s *service) applyStatus(ctx context.Context, path, orderNumber, reference string, status PaymentStatus) error {
	err := s.repo.ApplyPaymentStatus(ctx, orderNumber, reference, status)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			metrics.RecordUnknownOrderUpdate()
			logger.FromCtx(ctx).Error("payment update for unknown order",
				zap.String("order_number", orderNumber),
				zap.String("reference", reference),
				zap.String("path", path),
			)
		}
		return err
	}

	metrics.RecordPaymentReconciled(path, string(status))
	return nil
}

func (s *service) GetByOrderNumber(ctx context.Context, orderNumber string) (*Order, error) {
	return s.repo.GetByOrderNumber(ctx, orderNumber)
}

// toSubunits converts a major-unit amount into the gateway's integer
// subunits, rounding to the nearest subunit.
func toSubunits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
