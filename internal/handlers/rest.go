package handlers

import (
	"time"

	"voltage_lab/internal/database"
	"voltage_lab/internal/metrics"
	"voltage_lab/internal/middleware"
	"voltage_lab/internal/mqtt_client"
	"voltage_lab/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Voltage Lab API
// @version 1.0
// @description API генератора тестовых данных напряжения и просмотрщика CSV

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1

// @tag.name generator
// @tag.description Генерация тестового набора и выгрузка CSV

// @tag.name viewer
// @tag.description Загрузка CSV и построение графика

// @tag.name monitoring
// @tag.description Мониторинг состояния сервиса

// RESTAPIServer обрабатывает REST API запросы
type RESTAPIServer struct {
	generator    *services.GeneratorService
	viewer       *services.ViewerService
	repo         *database.Repository // nil — работаем без истории
	metrics      *metrics.Metrics
	announcer    *mqtt_client.Announcer // nil — без анонсов в MQTT
	authHandlers *AuthHandlers          // nil — без аутентификации
	jwtMW        *middleware.JWTMiddleware
	authRequired bool
	staticDir    string
}

// ErrorResponse стандартный ответ об ошибке
// @Description Стандартная структура ответа об ошибке
type ErrorResponse struct {
	Error   string `json:"error" example:"Неверный формат данных"`     // Описание ошибки
	Details string `json:"details,omitempty" example:"field required"` // Дополнительные детали ошибки
}

// SuccessResponse стандартный ответ об успехе
// @Description Стандартная структура успешного ответа
type SuccessResponse struct {
	Message string      `json:"message" example:"Операция выполнена успешно"` // Сообщение об успехе
	Data    interface{} `json:"data,omitempty"`                               // Дополнительные данные
}

// HealthResponse состояние сервиса
// @Description Информация о состоянии и работоспособности сервиса
type HealthResponse struct {
	Status     string    `json:"status" example:"healthy"`
	Service    string    `json:"service" example:"Voltage Lab"`
	Timestamp  time.Time `json:"timestamp" example:"2023-09-01T10:00:00Z"`
	HasDataset bool      `json:"has_dataset"` // Есть ли сгенерированный набор
	HasUpload  bool      `json:"has_upload"`  // Есть ли загруженная таблица
	Database   string    `json:"database" example:"up" enums:"up,down,disabled"`
}

// ServerOption настройка REST сервера
type ServerOption func(*RESTAPIServer)

// WithRepository подключает историю генераций и загрузок
func WithRepository(repo *database.Repository) ServerOption {
	return func(s *RESTAPIServer) { s.repo = repo }
}

// WithAnnouncer подключает публикацию событий в MQTT
func WithAnnouncer(a *mqtt_client.Announcer) ServerOption {
	return func(s *RESTAPIServer) { s.announcer = a }
}

// WithAuth подключает эндпоинты аутентификации; required защищает мутирующие маршруты
func WithAuth(auth *AuthHandlers, jwtMW *middleware.JWTMiddleware, required bool) ServerOption {
	return func(s *RESTAPIServer) {
		s.authHandlers = auth
		s.jwtMW = jwtMW
		s.authRequired = required
	}
}

// WithStaticDir задаёт директорию веб-интерфейса
func WithStaticDir(dir string) ServerOption {
	return func(s *RESTAPIServer) { s.staticDir = dir }
}

// NewRESTAPIServer создает новый REST API сервер
func NewRESTAPIServer(
	generator *services.GeneratorService,
	viewer *services.ViewerService,
	m *metrics.Metrics,
	opts ...ServerOption,
) *RESTAPIServer {
	server := &RESTAPIServer{
		generator: generator,
		viewer:    viewer,
		metrics:   m,
	}
	for _, opt := range opts {
		opt(server)
	}
	return server
}

// SetupRoutes настраивает маршруты REST API
func (api *RESTAPIServer) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Middleware
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:80", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	// Prometheus
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Веб-интерфейс
	if api.staticDir != "" {
		r.StaticFile("/", api.staticDir+"/index.html")
	}

	// Мутирующие маршруты опционально закрыты токеном
	authMW := gin.HandlerFunc(func(c *gin.Context) { c.Next() })
	if api.authRequired && api.jwtMW != nil {
		authMW = api.jwtMW.RequireAuth()
	}

	apiGroup := r.Group("/api/v1")

	// === ГЕНЕРАТОР ===
	generator := apiGroup.Group("/generator")
	{
		generator.GET("/config", api.GetGeneratorConfig)
		generator.PUT("/config", authMW, api.UpdateGeneratorConfig)
		generator.POST("/regenerate", authMW, api.Regenerate)
		generator.GET("/download", api.Download)
		generator.GET("/history", api.GetDatasetHistory)
	}

	// === ПРОСМОТРЩИК ===
	viewer := apiGroup.Group("/viewer")
	{
		viewer.POST("/upload", authMW, api.Upload)
		viewer.GET("/table", api.GetTable)
		viewer.GET("/plot", api.GetPlot)
		viewer.GET("/history", api.GetUploadHistory)
	}

	// === АУТЕНТИФИКАЦИЯ ===
	if api.authHandlers != nil {
		auth := apiGroup.Group("/auth")
		{
			auth.POST("/register", api.authHandlers.Register)
			auth.POST("/login", api.authHandlers.Login)
		}
	}

	// === МОНИТОРИНГ СЕРВИСА ===
	monitoring := apiGroup.Group("/monitoring")
	{
		monitoring.GET("/health", api.HealthCheck)
	}

	return r
}
