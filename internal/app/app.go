// Package app wires the entity stores, the auditor, services and the HTTP
// router into a runnable application.
package app

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"audittrail/internal/audit"
	_ "audittrail/internal/docs"
	"audittrail/internal/handlers"
	"audittrail/internal/logger"
	"audittrail/internal/metrics"
	"audittrail/internal/middleware"
	"audittrail/internal/models"
	"audittrail/internal/repository"
	"audittrail/internal/services"
	"audittrail/internal/validator"
)

// Options configures New.
type Options struct {
	JWTSecret []byte
	// Registry receives the audit counters and backs /metrics. Defaults to
	// the global Prometheus registry.
	Registry *prometheus.Registry
	Logger   *zap.SugaredLogger
}

// App is the assembled application.
type App struct {
	Router  *gin.Engine
	Auditor *audit.Auditor
}

// New builds the application on db.
func New(db *gorm.DB, opts Options) (*App, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Get()
	}

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}

	auditor := audit.New(
		services.NewAuditTrailService(db),
		audit.WithLogger(log),
		audit.WithMetrics(metrics.NewAudit(registerer)),
	)

	customers, err := auditedStore[models.Customer](db, auditor)
	if err != nil {
		return nil, err
	}
	orders, err := auditedStore[models.Order](db, auditor)
	if err != nil {
		return nil, err
	}
	apiClients, err := auditedStore[models.APIClient](db, auditor)
	if err != nil {
		return nil, err
	}

	routes := routes{
		jwtSecret:  opts.JWTSecret,
		customers:  handlers.NewCustomerHandler(services.NewCustomerService(db, customers)),
		orders:     handlers.NewOrderHandler(services.NewOrderService(db, orders)),
		apiClients: handlers.NewAPIClientHandler(services.NewAPIClientService(apiClients)),
		metrics:    promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	}

	validator.Register()
	return &App{Router: routes.engine(), Auditor: auditor}, nil
}

func auditedStore[T any](db *gorm.DB, auditor *audit.Auditor) (*repository.Store[T], error) {
	store, err := repository.NewStore[T](db)
	if err != nil {
		return nil, err
	}
	if err := auditor.Attach(store); err != nil {
		return nil, fmt.Errorf("failed to audit %s: %w", store.Name(), err)
	}
	return store, nil
}

type routes struct {
	jwtSecret  []byte
	customers  *handlers.CustomerHandler
	orders     *handlers.OrderHandler
	apiClients *handlers.APIClientHandler
	metrics    http.Handler
}

func (r routes) engine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(r.metrics))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(r.jwtSecret))
	v1.Use(middleware.AuditOrigin())

	customers := v1.Group("/customers")
	customers.POST("", r.customers.CreateCustomer)
	customers.GET("/:id", r.customers.GetCustomer)
	customers.PUT("/:id", r.customers.UpdateCustomer)
	customers.DELETE("/:id", r.customers.DeleteCustomer)
	customers.POST("/:id/restore", r.customers.RestoreCustomer)

	orders := v1.Group("/orders")
	orders.POST("", r.orders.CreateOrder)
	orders.GET("/:id", r.orders.GetOrder)
	orders.PUT("/:id", r.orders.UpdateOrder)
	orders.DELETE("/:id", r.orders.DeleteOrder)
	orders.POST("/:id/restore", r.orders.RestoreOrder)

	apiClients := v1.Group("/api-clients")
	apiClients.POST("", r.apiClients.CreateAPIClient)
	apiClients.PUT("/:id", r.apiClients.UpdateAPIClient)
	apiClients.POST("/:id/rotate", r.apiClients.RotateSecret)
	apiClients.DELETE("/:id", r.apiClients.DeleteAPIClient)

	return router
}
