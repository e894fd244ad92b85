package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Cleve-codes/EastCom/internal/logger"
	"github.com/Cleve-codes/EastCom/internal/product"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter := &product.Filter{}
	if v := q.Get("category"); v != "" {
		filter.Category = &v
	}
	if v := q.Get("search"); v != "" {
		filter.Search = &v
	}
	if v := q.Get("sort"); v != "" {
		filter.Sort = &v
	}
	if v := q.Get("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &f
		}
	}
	if v := q.Get("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &f
		}
	}

	limit := parseInt32(q.Get("limit"), 20)
	page := parseInt32(q.Get("page"), 1)

	products, err := s.products.List(ctx, filter, limit, page)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list products", zap.Error(err))
		renderError(w, r, http.StatusInternalServerError, "failed to list products")
		return
	}
	if products == nil {
		products = []*product.Product{}
	}

	render.JSON(w, r, products)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	slug := chi.URLParam(r, "slug")

	p, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			renderError(w, r, http.StatusNotFound, "product not found")
			return
		}
		logger.FromCtx(ctx).Error("failed to fetch product", zap.Error(err))
		renderError(w, r, http.StatusInternalServerError, "failed to fetch product")
		return
	}

	render.JSON(w, r, p)
}

func (s *Server) featuredProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := s.products.Featured(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch featured products", zap.Error(err))
		renderError(w, r, http.StatusInternalServerError, "failed to fetch featured products")
		return
	}
	if products == nil {
		products = []*product.Product{}
	}

	render.JSON(w, r, products)
}

func parseInt32(s string, def int32) int32 {
	if s == "" {
		return def
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n <= 0 {
		return def
	}
	return int32(n)
}
