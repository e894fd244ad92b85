package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder() *Order {
	return &Order{
		OrderNumber:   "EC-1700000000000-042",
		CustomerName:  "Jane Wanjiku",
		CustomerEmail: "jane@example.com",
		CustomerPhone: "0712345678",
		Address:       "Nairobi, Kenya",
		TotalAmount:   122000,
		PaymentStatus: PaymentPending,
		Items: []OrderItem{
			{ProductID: "prod-1", Quantity: 2, Price: 18500},
			{ProductID: "prod-2", Quantity: 1, Price: 85000},
		},
	}
}

func TestRepository_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		o := newTestOrder()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WithArgs(
				sqlmock.AnyArg(), o.OrderNumber, o.CustomerName, o.CustomerEmail,
				o.CustomerPhone, o.Address, o.TotalAmount, o.PaymentStatus,
			).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectExec(`INSERT INTO order_items`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "prod-1", 2, 18500.0).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO order_items`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "prod-2", 1, 85000.0).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.CreateOrder(ctx, o)
		assert.NoError(t, err)
		assert.NotEmpty(t, o.ID)
		assert.Equal(t, o.ID, o.Items[0].OrderID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollbackOnItemFailure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		o := newTestOrder()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WithArgs(
				sqlmock.AnyArg(), o.OrderNumber, o.CustomerName, o.CustomerEmail,
				o.CustomerPhone, o.Address, o.TotalAmount, o.PaymentStatus,
			).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectExec(`INSERT INTO order_items`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "prod-1", 2, 18500.0).
			WillReturnResult(sqlmock.NewResult(0, 1))
		// Second item fails; the whole creation must roll back.
		mock.ExpectExec(`INSERT INTO order_items`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "prod-2", 1, 85000.0).
			WillReturnError(errors.New("constraint violation"))
		mock.ExpectRollback()

		err = repo.CreateOrder(ctx, o)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("BeginFails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

		err = repo.CreateOrder(ctx, newTestOrder())
		assert.Error(t, err)
	})
}

func TestRepository_ApplyPaymentStatus(t *testing.T) {
	ctx := context.Background()
	orderNumber := "EC-1700000000000-042"

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectExec(`UPDATE orders`).
			WithArgs(orderNumber, PaymentSuccess, orderNumber).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.ApplyPaymentStatus(ctx, orderNumber, orderNumber, PaymentSuccess)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("IdempotentRepeat", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		// Providers redeliver; applying the same status twice must
		// succeed both times and end in the same state.
		mock.ExpectExec(`UPDATE orders`).
			WithArgs(orderNumber, PaymentSuccess, orderNumber).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE orders`).
			WithArgs(orderNumber, PaymentSuccess, orderNumber).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.ApplyPaymentStatus(ctx, orderNumber, orderNumber, PaymentSuccess))
		assert.NoError(t, repo.ApplyPaymentStatus(ctx, orderNumber, orderNumber, PaymentSuccess))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("OrderNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectExec(`UPDATE orders`).
			WithArgs("EC-unknown", PaymentSuccess, "EC-unknown").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.ApplyPaymentStatus(ctx, "EC-unknown", "EC-unknown", PaymentSuccess)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("DBError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectExec(`UPDATE orders`).
			WillReturnError(errors.New("db error"))

		err = repo.ApplyPaymentStatus(ctx, orderNumber, orderNumber, PaymentFailed)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_GetByOrderNumber(t *testing.T) {
	ctx := context.Background()
	orderNumber := "EC-1700000000000-042"

	t.Run("SuccessWithItems", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		orderRows := sqlmock.NewRows([]string{
			"id", "order_number", "customer_name", "customer_email",
			"customer_phone", "address", "total_amount", "payment_status",
			"payment_reference", "created_at",
		}).AddRow(
			"order-id-1", orderNumber, "Jane Wanjiku", "jane@example.com",
			"0712345678", "Nairobi, Kenya", 122000.0, "SUCCESS",
			orderNumber, time.Now(),
		)
		mock.ExpectQuery(`SELECT .* FROM orders`).
			WithArgs(orderNumber).
			WillReturnRows(orderRows)

		itemRows := sqlmock.NewRows([]string{
			"id", "order_id", "product_id", "quantity", "price", "name", "images",
		}).AddRow(
			"item-1", "order-id-1", "prod-1", 2, 18500.0,
			"Jinko Tiger Neo N-type 475W", "/images/s18.jpg",
		)
		mock.ExpectQuery(`SELECT oi.id, .* FROM order_items`).
			WithArgs("order-id-1").
			WillReturnRows(itemRows)

		o, err := repo.GetByOrderNumber(ctx, orderNumber)
		require.NoError(t, err)
		assert.Equal(t, orderNumber, o.OrderNumber)
		assert.Equal(t, PaymentSuccess, o.PaymentStatus)
		require.Len(t, o.Items, 1)
		assert.Equal(t, "Jinko Tiger Neo N-type 475W", o.Items[0].ProductName)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT .* FROM orders`).
			WithArgs("EC-unknown").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err = repo.GetByOrderNumber(ctx, "EC-unknown")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
