package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Cleve-codes/EastCom/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter *Filter, limit, page int32) ([]*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	Featured(ctx context.Context, limit int32) ([]*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id, slug, name, description, price, category,
	images, stock, specs, featured, created_at, updated_at
`

func (r *repository) List(ctx context.Context, filter *Filter, limit, page int32) ([]*Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	log := logger.FromCtx(ctx).With(
		zap.String("method", "List"),
		zap.Int32("limit", limit),
		zap.Int32("page", page),
	)

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`

	args := []any{}
	argIndex := 1

	if filter != nil {
		if filter.Category != nil && *filter.Category != "" && *filter.Category != "All" {
			query += fmt.Sprintf(" AND category = $%d", argIndex)
			args = append(args, *filter.Category)
			argIndex++
		}

		if filter.Search != nil && *filter.Search != "" {
			query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex)
			args = append(args, "%"+*filter.Search+"%")
			argIndex++
		}

		if filter.MinPrice != nil {
			query += fmt.Sprintf(" AND price >= $%d", argIndex)
			args = append(args, *filter.MinPrice)
			argIndex++
		}

		if filter.MaxPrice != nil {
			query += fmt.Sprintf(" AND price <= $%d", argIndex)
			args = append(args, *filter.MaxPrice)
			argIndex++
		}
	}

	orderBy := "created_at DESC"
	if filter != nil && filter.Sort != nil {
		switch *filter.Sort {
		case "price_asc":
			orderBy = "price ASC"
		case "price_desc":
			orderBy = "price DESC"
		case "newest":
			orderBy = "created_at DESC"
		}
	}
	query += " ORDER BY " + orderBy

	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Featured(ctx context.Context, limit int32) ([]*Product, error) {
	if limit <= 0 {
		limit = 4
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE featured = true ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var p Product
	var specs []byte

	err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		pq.Array(&p.Images),
		&p.Stock,
		&specs,
		&p.Featured,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(specs) > 0 {
		if err := json.Unmarshal(specs, &p.Specs); err != nil {
			return nil, fmt.Errorf("failed to decode product specs: %w", err)
		}
	}

	return &p, nil
}
