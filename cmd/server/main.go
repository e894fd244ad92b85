package main

import (
	"log"
	"net/http"

	"github.com/Cleve-codes/EastCom/internal/cache"
	"github.com/Cleve-codes/EastCom/internal/config"
	"github.com/Cleve-codes/EastCom/internal/db"
	"github.com/Cleve-codes/EastCom/internal/logger"
	"github.com/Cleve-codes/EastCom/internal/order"
	"github.com/Cleve-codes/EastCom/internal/payment"
	"github.com/Cleve-codes/EastCom/internal/product"
	"github.com/Cleve-codes/EastCom/internal/server"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	rdb := cache.InitRedis(cfg)

	gateway := payment.NewPaystackGateway(cfg.PaystackSecretKey, cfg.AppBaseURL)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, gateway)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, rdb)

	srv := server.New(orderSvc, productSvc, gateway)

	log.Printf("EastCom API listening on :%s", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, srv.Router()))
}
