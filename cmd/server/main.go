package main

import (
	"context"
	"log"
	"os"
	"time"

	"storefront-service/internal/controllers/http"
	"storefront-service/internal/infra/mysql"
	"storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/infra/stripe"
	"storefront-service/internal/metrics"
	"storefront-service/internal/repository"
	mysqlrepo "storefront-service/internal/repository/mysql"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	db, err := mysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	productRepo := mysqlrepo.NewProductRepository(db)
	categoryRepo := mysqlrepo.NewCategoryRepository(db)
	cartRepo := mysqlrepo.NewCartRepository(db)
	orderRepo := mysqlrepo.NewOrderRepository(db)
	userRepo := mysqlrepo.NewUserRepository(db)
	checkoutStore := mysqlrepo.NewCheckoutStore(db)

	gateway := stripe.NewClient(gatewayBaseURL(), os.Getenv("STRIPE_SECRET_KEY"), 10*time.Second)

	publisher, err := rabbitmq.NewPublisher(os.Getenv("RABBITMQ_URL"), "storefront.exchange")
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	catalog := services.NewCatalogService(productRepo, categoryRepo)
	cart := services.NewCartService(cartRepo, productRepo)
	checkout := services.NewCheckoutService(cartRepo, checkoutStore, gateway, publisher)
	orders := services.NewOrderService(orderRepo)
	auth := services.NewAuthService(userRepo, []byte(jwtSecret))

	if addr := os.Getenv("REDIS_HOST"); addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:         addr + ":6379",
			DB:           0,
			PoolSize:     50,
			MinIdleConns: 10,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		catalog.SetRedisClient(redisClient)

		go func() {
			time.Sleep(5 * time.Second)
			ctx := context.Background()
			products, err := productRepo.FindActive(repository.ProductFilter{Limit: 20})
			if err != nil {
				log.Printf("warmup: list products: %v", err)
				return
			}
			ids := make([]uint64, 0, len(products))
			for _, p := range products {
				ids = append(ids, p.ID)
			}
			if err := catalog.WarmupProductCache(ctx, ids); err != nil {
				log.Printf("warmup: %v", err)
			}
		}()
	}

	m := metrics.NewServerMetrics("api")
	handler := http.NewHandler(catalog, cart, checkout, orders, auth)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r, m)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting storefront service on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}

func gatewayBaseURL() string {
	if u := os.Getenv("STRIPE_API_URL"); u != "" {
		return u
	}
	return "https://api.stripe.com"
}
