package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

func main() {
	// Initialize OpenTelemetry
	tp, err := initTracer()
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	mp, err := initMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down meter: %v", err)
		}
	}()

	// Load the catalog. A load failure is not fatal: pages stay up and
	// render not-found/empty states against an empty catalog.
	catalog, err := LoadCatalog()
	if err != nil {
		log.Printf("❌ Failed to load catalog, serving without products: %v", err)
		catalog = NewCatalog(nil)
	} else {
		log.Printf("✅ Catalog loaded with %d products", catalog.Len())
	}

	// Initialize cart persistence
	repository, cleanup, err := initCartRepository()
	if err != nil {
		log.Fatalf("Failed to initialize cart repository: %v", err)
	}
	defer cleanup()

	// Initialize the analytics pipeline. No sink is a normal state: events
	// are dropped with a warning instead of breaking the user flow.
	var sink Sink
	if sinkURL := os.Getenv("ANALYTICS_SINK_URL"); sinkURL != "" {
		sink = NewHTTPSink(sinkURL)
		log.Printf("✅ Analytics sink configured: %s", sinkURL)
	} else {
		log.Printf("⚠️ ANALYTICS_SINK_URL not set, analytics events will be dropped")
	}
	pipeline := NewPipeline(sink)

	// Initialize dependencies
	carts := NewCartUseCase(repository)
	carts.OnCartCount(func(count int) {
		log.Printf("🛒 Cart count updated: %d", count)
	})
	if gauge, err := otel.Meter("storefront").Int64Gauge("cart_unit_count"); err == nil {
		carts.OnCartCount(func(count int) {
			gauge.Record(context.Background(), int64(count))
		})
	}

	checkout := NewCheckoutUseCase(carts, catalog, pipeline)
	tracer := tp.Tracer("storefront-service")
	handler := NewPageHandler(catalog, carts, checkout, pipeline, tracer)

	// Setup Gin router. Handlers create their own spans, so the otelgin
	// middleware stays off to avoid duplicates (it runs on the collector).
	r := gin.Default()

	// Health check
	r.GET("/health", handler.HealthCheck)

	// Pages, one route per page identifier
	r.GET("/pages/home", handler.Home)
	r.GET("/pages/products", handler.Products)
	r.GET("/pages/products/:id", handler.ProductDetail)
	r.GET("/pages/cart", handler.CartPage)
	r.GET("/pages/checkout", handler.CheckoutPage)
	r.GET("/pages/confirmation", handler.Confirmation)

	// Cart and checkout actions
	r.POST("/cart/items", handler.AddToCart)
	r.POST("/checkout/shipping", handler.SubmitShipping)
	r.POST("/checkout/payment", handler.SubmitPayment)
	r.POST("/checkout/purchase", handler.Purchase)

	// UI interaction events
	r.POST("/events/select-item", handler.SelectItem)
	r.POST("/events/promotion", handler.Promotion)
	r.POST("/events/begin-checkout", handler.BeginCheckout)

	port := getEnv("PORT", "8080")
	log.Printf("🚀 Storefront Service listening on port %s", port)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initCartRepository picks the cart backend: Postgres by default, in-memory
// when CART_BACKEND=memory (tests, demos, DB-less development).
func initCartRepository() (CartRepository, func(), error) {
	if getEnv("CART_BACKEND", "postgres") == "memory" {
		log.Println("✅ Using in-memory cart repository")
		return NewMemoryCartRepository(), func() {}, nil
	}

	pool, err := initDB()
	if err != nil {
		return nil, nil, err
	}
	return NewPostgresCartRepository(pool), pool.Close, nil
}

func initDB() (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DATABASE_USER", "root"),
		getEnv("DATABASE_PASSWORD", "pass"),
		getEnv("DATABASE_HOST", "localhost"),
		getEnv("DATABASE_PORT", "5432"),
		getEnv("DATABASE_NAME", "storefront_db"),
	)

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// Configure connection pool
	config.MaxConns = 10
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = 1 * time.Minute

	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Wait for database to be ready
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			log.Println("✅ Connected to storefront database with connection pool")
			return pool, nil
		}
		log.Printf("⏳ Waiting for database... (%d/30)", i+1)
		time.Sleep(1 * time.Second)
	}

	pool.Close()
	return nil, fmt.Errorf("failed to connect to database after 30 attempts")
}

func initTracer() (*sdktrace.TracerProvider, error) {
	ctx := context.Background()

	otlpEndpoint := getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(otlpEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(getEnv("SERVICE_NAME", "storefront-service")),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	otel.SetTracerProvider(tp)

	return tp, nil
}

func initMetrics() (*sdkmetric.MeterProvider, error) {
	ctx := context.Background()

	otlpEndpoint := getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")

	exporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(otlpEndpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(getEnv("SERVICE_NAME", "storefront-service")),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	return mp, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
