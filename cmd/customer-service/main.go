package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dhoini/Customer-microservice/internal/api/rest"
	"github.com/Dhoini/Customer-microservice/internal/api/rest/handlers"
	"github.com/Dhoini/Customer-microservice/internal/config"
	"github.com/Dhoini/Customer-microservice/internal/events"
	"github.com/Dhoini/Customer-microservice/internal/metrics"
	"github.com/Dhoini/Customer-microservice/internal/repository"
	"github.com/Dhoini/Customer-microservice/internal/repository/cassandra"
	"github.com/Dhoini/Customer-microservice/internal/repository/postgres"
	"github.com/Dhoini/Customer-microservice/internal/resource"
	"github.com/Dhoini/Customer-microservice/internal/service"
	"github.com/Dhoini/Customer-microservice/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Загружаем конфигурацию
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		// Логгер еще не создан, конфигурация нужна для уровня логирования
		logger.New(logger.INFO).Fatal("Failed to load configuration: %v", err)
	}

	log := logger.New(logger.ParseLevel(cfg.Log.Level))
	log.Infow("Customer microservice starting up...", "env", cfg.App.Env, "storage", cfg.Storage.Driver)

	// Устанавливаем режим Gin в зависимости от окружения
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Выбираем бэкенд репозитория
	var repo repository.CustomerRepository
	switch cfg.Storage.Driver {
	case "cassandra":
		session, err := cassandra.NewSession(cfg.Cassandra.Hosts, cfg.Cassandra.Keyspace, cfg.Cassandra.Consistency, log)
		if err != nil {
			log.Fatalw("Failed to connect to Cassandra", "error", err)
		}
		defer session.Close()
		repo = cassandra.NewCassandraCustomerRepository(session, log)
	case "postgres":
		pool, err := postgres.NewConnection(ctx, cfg.Database.DSN, log)
		if err != nil {
			log.Fatalw("Failed to connect to PostgreSQL", "error", err)
		}
		defer pool.Close()
		repo = postgres.NewPostgresCustomerRepository(pool, log)
	case "memory":
		log.Warnw("Using in-memory repository, data will not survive a restart")
		repo = repository.NewInMemoryCustomerRepository(log)
	default:
		log.Fatalw("Unknown storage driver", "driver", cfg.Storage.Driver)
	}

	// Инициализируем продюсер событий
	var producer events.Producer = events.NoOpProducer{}
	if cfg.Kafka.Enabled {
		kafkaProducer, err := events.NewKafkaProducer(cfg.Kafka.Brokers, log)
		if err != nil {
			// Не фатально: события вторичны по отношению к записи в хранилище
			log.Errorw("Failed to initialize Kafka producer, continuing without event publishing", "error", err)
		} else {
			producer = kafkaProducer
			defer func() {
				if err := kafkaProducer.Close(); err != nil {
					log.Errorw("Error closing Kafka producer", "error", err)
				}
			}()
		}
	}

	// Метрики
	registry := prometheus.NewRegistry()
	customerMetrics := metrics.NewCustomerMetrics(registry, log)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	// Собираем сервис и обработчики
	customerService := service.NewCustomerService(repo, producer, customerMetrics, log)
	assembler := resource.NewAssembler()
	customerHandler := handlers.NewCustomerHandler(customerService, assembler, log)
	healthHandler := handlers.NewHealthHandler(customerService, log)

	router := rest.SetupRouter(customerHandler, healthHandler, httpMetrics, registry, log)
	server := rest.NewServer(router, cfg, log)

	// Запускаем сервер в отдельной горутине
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalw("Server failed", "error", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Server forced to shutdown", "error", err)
	}

	log.Infow("Customer microservice stopped")
}
