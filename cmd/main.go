package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "voltage_lab/docs"
	_ "github.com/swaggo/files"
	_ "github.com/swaggo/gin-swagger"

	"github.com/prometheus/client_golang/prometheus"

	"voltage_lab/configs"
	"voltage_lab/internal/database"
	"voltage_lab/internal/handlers"
	"voltage_lab/internal/metrics"
	"voltage_lab/internal/middleware"
	"voltage_lab/internal/mqtt_client"
	"voltage_lab/internal/models"
	"voltage_lab/internal/services"
)

func main() {
	log.Println("=== VOLTAGE LAB ===")

	// 1. Конфигурация и логгер
	cfg := configs.LoadConfig()
	configs.InitLogger(cfg.App.LogLevel)
	log.Printf("Конфигурация загружена: HTTP=:%s, DB=%s:%s",
		cfg.App.Port, cfg.Database.Host, cfg.Database.Port)

	// 2. Генератор с начальными параметрами
	generator, err := services.NewGeneratorService(initialParams(cfg))
	if err != nil {
		log.Fatalf("Неверные стартовые параметры генератора: %v", err)
	}
	viewer := services.NewViewerService()
	m := metrics.New(prometheus.DefaultRegisterer)

	opts := []handlers.ServerOption{
		handlers.WithStaticDir(cfg.App.StaticDir),
	}

	// 3. База данных — необязательная: без неё работаем без истории и аутентификации
	db, err := database.InitDatabase(cfg)
	if err != nil {
		log.Printf("БД недоступна: %v", err)
		log.Println("Продолжаем работу без истории и аутентификации")
	} else {
		defer database.CloseDatabase(db)

		if err := database.RunMigrations(db); err != nil {
			log.Fatalf("Ошибка миграций: %v", err)
		}

		repo := database.NewRepository(db)
		opts = append(opts, handlers.WithRepository(repo))

		jwtService := services.NewJWTService(cfg.Auth.JWTSecret)
		authService := services.NewAuthService(db, jwtService)
		opts = append(opts, handlers.WithAuth(
			handlers.NewAuthHandlers(authService),
			middleware.NewJWTMiddleware(jwtService),
			cfg.Auth.Required,
		))
	}

	// 4. MQTT анонсер — тоже необязательный
	if cfg.MQTT.Broker != "" {
		announcer, err := mqtt_client.NewAnnouncer(cfg.MQTT)
		if err != nil {
			log.Printf("MQTT недоступен: %v", err)
			log.Println("Продолжаем работу без анонсов наборов")
		} else {
			defer announcer.Close()
			opts = append(opts, handlers.WithAnnouncer(announcer))
		}
	}

	// 5. REST API сервер
	restAPI := handlers.NewRESTAPIServer(generator, viewer, m, opts...)
	router := restAPI.SetupRoutes()

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	go func() {
		log.Printf("REST API Server запущен на :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка HTTP сервера: %v", err)
		}
	}()

	log.Println("Сервис запущен → Ctrl+C для остановки")

	// 6. Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Ошибка остановки HTTP сервера: %v", err)
	}

	log.Println("Сервис полностью остановлен")
}

// initialParams собирает стартовые параметры генератора из конфигурации
func initialParams(cfg *configs.Config) models.GeneratorParams {
	dateStart, err := time.Parse("2006-01-02", cfg.Generator.DateStart)
	if err != nil {
		log.Fatalf("Неверный GEN_DATE_START: %v", err)
	}
	dateEnd, err := time.Parse("2006-01-02", cfg.Generator.DateEnd)
	if err != nil {
		log.Fatalf("Неверный GEN_DATE_END: %v", err)
	}

	return models.GeneratorParams{
		Samples:     cfg.Generator.Samples,
		VoltageLow:  cfg.Generator.VoltageLow,
		VoltageHigh: cfg.Generator.VoltageHigh,
		DateStart:   dateStart,
		DateEnd:     dateEnd.Add(24*time.Hour - time.Second),
		FubIDs:      append([]string(nil), models.AllowedFubIDs...),
		Filename:    cfg.Generator.Filename,
	}
}
