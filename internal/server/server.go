package server

import (
	"net/http"

	"github.com/Cleve-codes/EastCom/internal/logger"
	appmw "github.com/Cleve-codes/EastCom/internal/middleware"
	"github.com/Cleve-codes/EastCom/internal/order"
	"github.com/Cleve-codes/EastCom/internal/payment"
	"github.com/Cleve-codes/EastCom/internal/payment/webhook"
	"github.com/Cleve-codes/EastCom/internal/product"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	orders   order.Service
	products product.Service
	webhook  *webhook.Handler
}

func New(orders order.Service, products product.Service, gateway payment.Gateway) *Server {
	return &Server{
		orders:   orders,
		products: products,
		webhook:  webhook.NewWebhookHandler(orders, gateway),
	}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(logger.Middleware)
	r.Use(appmw.RateLimitMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", s.listProducts)
		r.Get("/products/featured", s.featuredProducts)
		r.Get("/products/{slug}", s.getProduct)

		r.Get("/orders/{orderNumber}", s.getOrder)
		r.Post("/checkout", s.checkout)

		r.Get("/paystack/verify", s.verifyPayment)
		r.Post("/paystack/webhook", s.webhook.WebhookHandler)
	})

	return r
}

type errResponse struct {
	Error string `json:"error"`
}

func renderError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	render.Status(r, code)
	render.JSON(w, r, errResponse{Error: msg})
}
