package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"driveflow-docs-go/internal/api/middleware"
	"driveflow-docs-go/internal/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	Router   *gin.Engine
	Handlers *Handlers
	server   *http.Server
}

func NewServer(handlers *Handlers) *Server {
	router := gin.New()

	// Настройка лимитов
	router.MaxMultipartMemory = 8 << 20 // 8 MiB

	// Логирование запросов и восстановление после паники
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CORS для фронтенда редактора шаблонов
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Processing-Time"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Добавляем middleware для метрик
	router.Use(middleware.PrometheusMiddleware())

	// Добавляем middleware для трассировки
	router.Use(tracing.GinTracingMiddleware())

	// Добавляем middleware для таймаутов
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	return &Server{
		Router:   router,
		Handlers: handlers,
	}
}

func (s *Server) SetupRoutes() {
	// Health check для k8s
	s.Router.GET("/health", gin.WrapF(s.Handlers.Health))

	// Метрики Prometheus
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API endpoints
	v1 := s.Router.Group("/api/v1")
	{
		templates := v1.Group("/templates")
		{
			templates.GET("", s.Handlers.Templates.List)
			templates.POST("", s.Handlers.Templates.Create)
			templates.GET("/:id", s.Handlers.Templates.Get)
			templates.PUT("/:id", s.Handlers.Templates.Update)
			templates.DELETE("/:id", s.Handlers.Templates.Delete)

			templates.POST("/:id/elements", s.Handlers.Templates.AddElement)
			templates.PATCH("/:id/elements/:elementId", s.Handlers.Templates.UpdateElement)
			templates.DELETE("/:id/elements/:elementId", s.Handlers.Templates.RemoveElement)

			templates.POST("/:id/render", s.Handlers.Templates.Render)
			templates.POST("/:id/print", s.Handlers.Templates.Print)
			templates.POST("/:id/export/docx", s.Handlers.Templates.ExportDocx)
		}

		customers := v1.Group("/customers")
		{
			customers.GET("", s.Handlers.Rentals.ListCustomers)
			customers.POST("", s.Handlers.Rentals.SaveCustomer)
			customers.GET("/:id", s.Handlers.Rentals.GetCustomer)
			customers.DELETE("/:id", s.Handlers.Rentals.DeleteCustomer)
		}

		vehicles := v1.Group("/vehicles")
		{
			vehicles.GET("", s.Handlers.Rentals.ListVehicles)
			vehicles.POST("", s.Handlers.Rentals.SaveVehicle)
			vehicles.GET("/:id", s.Handlers.Rentals.GetVehicle)
			vehicles.DELETE("/:id", s.Handlers.Rentals.DeleteVehicle)
		}

		reservations := v1.Group("/reservations")
		{
			reservations.GET("", s.Handlers.Rentals.ListReservations)
			reservations.POST("", s.Handlers.Rentals.SaveReservation)
			reservations.GET("/:id", s.Handlers.Rentals.GetReservation)
			reservations.DELETE("/:id", s.Handlers.Rentals.DeleteReservation)
		}

		workers := v1.Group("/workers")
		{
			workers.GET("", s.Handlers.Rentals.ListWorkers)
			workers.POST("", s.Handlers.Rentals.SaveWorker)
			workers.GET("/:id", s.Handlers.Rentals.GetWorker)
			workers.DELETE("/:id", s.Handlers.Rentals.DeleteWorker)
		}

		expenses := v1.Group("/expenses")
		{
			expenses.GET("", s.Handlers.Rentals.ListExpenses)
			expenses.POST("", s.Handlers.Rentals.SaveExpense)
			expenses.GET("/:id", s.Handlers.Rentals.GetExpense)
			expenses.DELETE("/:id", s.Handlers.Rentals.DeleteExpense)
		}

		v1.GET("/store", s.Handlers.Rentals.GetStoreProfile)
		v1.PUT("/store", s.Handlers.Rentals.SaveStoreProfile)
	}
}

func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:           addr,
		Handler:        s.Router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Канал для получения ошибок
	errChan := make(chan error, 1)

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on %s", addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Канал для сигналов операционной системы
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Ожидаем сигнал или ошибку
	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
		return s.Stop()
	}
}

func (s *Server) Stop() error {
	if s.server != nil {
		// Создаем контекст с таймаутом для graceful shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		log.Println("Shutting down server...")

		// Останавливаем прием новых запросов
		if err := s.server.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
			return err
		}
	}
	return nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
