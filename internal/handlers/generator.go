package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"voltage_lab/internal/models"
	"voltage_lab/internal/services"

	"github.com/gin-gonic/gin"
)

// GeneratorConfigRequest запрос на обновление параметров генерации
// @Description Новые параметры генератора тестовых данных
type GeneratorConfigRequest struct {
	Samples     int      `json:"samples" example:"100"`              // Количество сэмплов [0..1000]
	VoltageLow  float64  `json:"voltage_low" example:"0"`            // Нижняя граница напряжения
	VoltageHigh float64  `json:"voltage_high" example:"10"`          // Верхняя граница напряжения
	DateStart   string   `json:"date_start" example:"2020-02-01"`    // Начало диапазона дат (YYYY-MM-DD)
	DateEnd     string   `json:"date_end" example:"2020-02-02"`      // Конец диапазона дат (YYYY-MM-DD)
	FubIDs      []string `json:"fub_ids" example:"FUB-01,FUB-02"`    // Подмножество допустимых FubId
	Filename    string   `json:"filename" example:"sample_data.csv"` // Имя файла выгрузки
}

// GeneratorConfigResponse текущие параметры генератора
// @Description Параметры генератора и допустимый набор FubId
type GeneratorConfigResponse struct {
	Params        models.GeneratorParams `json:"params"`
	AllowedFubIDs []string               `json:"allowed_fub_ids"` // Фиксированный допустимый набор
}

// RegenerateResponse результат генерации набора
// @Description Сводка по сгенерированному набору данных
type RegenerateResponse struct {
	DatasetID   string    `json:"dataset_id" example:"550e8400-e29b-41d4-a716-446655440000"` // UUID набора
	RowCount    int       `json:"row_count" example:"100"`                                   // Количество строк
	GeneratedAt time.Time `json:"generated_at" example:"2023-09-01T10:00:00Z"`               // Время генерации
}

// GetGeneratorConfig возвращает параметры генератора
// @Summary Текущие параметры генератора
// @Description Возвращает параметры генерации и фиксированный допустимый набор FubId
// @Tags generator
// @Produce json
// @Success 200 {object} GeneratorConfigResponse "Параметры генератора"
// @Router /generator/config [get]
func (api *RESTAPIServer) GetGeneratorConfig(c *gin.Context) {
	c.JSON(http.StatusOK, GeneratorConfigResponse{
		Params:        api.generator.Params(),
		AllowedFubIDs: models.AllowedFubIDs,
	})
}

// UpdateGeneratorConfig обновляет параметры генератора
// @Summary Обновление параметров генератора
// @Description Заменяет параметры генерации после проверки границ. Текущий набор не пересчитывается.
// @Tags generator
// @Accept json
// @Produce json
// @Param request body GeneratorConfigRequest true "Новые параметры"
// @Success 200 {object} SuccessResponse{data=GeneratorConfigResponse} "Параметры обновлены"
// @Failure 400 {object} ErrorResponse "Параметры вне допустимых границ"
// @Router /generator/config [put]
func (api *RESTAPIServer) UpdateGeneratorConfig(c *gin.Context) {
	var req GeneratorConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Неверный формат данных",
			Details: err.Error(),
		})
		return
	}

	dateStart, err := time.Parse("2006-01-02", req.DateStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Неверный формат date_start, ожидается YYYY-MM-DD",
		})
		return
	}
	dateEnd, err := time.Parse("2006-01-02", req.DateEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Неверный формат date_end, ожидается YYYY-MM-DD",
		})
		return
	}

	params := models.GeneratorParams{
		Samples:     req.Samples,
		VoltageLow:  req.VoltageLow,
		VoltageHigh: req.VoltageHigh,
		DateStart:   dateStart,
		DateEnd:     dateEnd.Add(24*time.Hour - time.Second), // включительно до конца дня
		FubIDs:      req.FubIDs,
		Filename:    req.Filename,
	}

	if err := api.generator.UpdateParams(params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Параметры отклонены",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Параметры генератора обновлены",
		Data: GeneratorConfigResponse{
			Params:        api.generator.Params(),
			AllowedFubIDs: models.AllowedFubIDs,
		},
	})
}

// Regenerate генерирует новый набор данных
// @Summary Генерация нового набора данных
// @Description Генерирует случайный набор по текущим параметрам и замещает им предыдущий
// @Tags generator
// @Produce json
// @Success 200 {object} SuccessResponse{data=RegenerateResponse} "Набор сгенерирован"
// @Router /generator/regenerate [post]
func (api *RESTAPIServer) Regenerate(c *gin.Context) {
	params := api.generator.Params()
	batch := api.generator.Regenerate()

	api.metrics.Regenerations.Inc()
	api.metrics.DatasetRows.Set(float64(len(batch.Points)))

	// История и анонс — необязательные компоненты
	if api.repo != nil {
		if err := api.repo.SaveDataset(batch, params); err != nil {
			slog.Warn("Не удалось сохранить историю генерации", "error", err)
		}
	}
	if api.announcer != nil {
		go api.announcer.AnnounceDataset(batch, params)
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Набор данных сгенерирован",
		Data: RegenerateResponse{
			DatasetID:   batch.ID.String(),
			RowCount:    len(batch.Points),
			GeneratedAt: batch.GeneratedAt,
		},
	})
}

// Download выгружает текущий набор как CSV
// @Summary Выгрузка набора в CSV
// @Description Отдаёт текущий набор как CSV-файл с заголовком Time,Voltage,FubId. Имя файла берётся из параметров на момент запроса.
// @Tags generator
// @Produce text/csv
// @Success 200 {string} string "CSV файл"
// @Failure 409 {object} ErrorResponse "Данные ещё не сгенерированы"
// @Router /generator/download [get]
func (api *RESTAPIServer) Download(c *gin.Context) {
	payload, filename, err := api.generator.DownloadCSV()
	if err != nil {
		if errors.Is(err, services.ErrNoData) {
			c.JSON(http.StatusConflict, ErrorResponse{
				Error: "Нет данных: сначала сгенерируйте набор",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Не удалось сериализовать набор",
			Details: err.Error(),
		})
		return
	}

	api.metrics.Downloads.Inc()

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
}

// GetDatasetHistory возвращает историю генераций
// @Summary История генераций
// @Description Последние записи о сгенерированных наборах (требует подключённой БД)
// @Tags generator
// @Produce json
// @Success 200 {object} SuccessResponse "История генераций"
// @Failure 503 {object} ErrorResponse "История недоступна без БД"
// @Router /generator/history [get]
func (api *RESTAPIServer) GetDatasetHistory(c *gin.Context) {
	if api.repo == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: "История недоступна: сервис работает без базы данных",
		})
		return
	}

	records, err := api.repo.RecentDatasets(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Не удалось получить историю",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "История генераций",
		Data:    records,
	})
}
