package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"voltage_lab/internal/models"
	"voltage_lab/internal/services"

	"github.com/gin-gonic/gin"
)

// Загрузки больше 10 МБ отклоняются до разбора
const maxUploadBytes = 10 << 20

// UploadResponse результат обработки загруженного CSV
// @Description Сводка по разобранной таблице
type UploadResponse struct {
	Filename     string    `json:"filename" example:"sample_data.csv"`         // Имя загруженного файла
	RowCount     int       `json:"row_count" example:"100"`                    // Строк после фильтрации
	FilteredRows int       `json:"filtered_rows" example:"2"`                  // Отброшено строк Invalid/Calib
	HasFubID     bool      `json:"has_fub_id" example:"true"`                  // Присутствует ли колонка FubId
	FubIDs       []string  `json:"fub_ids,omitempty"`                          // Уникальные значения FubId
	UploadedAt   time.Time `json:"uploaded_at" example:"2023-09-01T10:00:00Z"` // Время загрузки
}

// Upload принимает CSV и замещает им текущую таблицу
// @Summary Загрузка CSV в просмотрщик
// @Description Разбирает CSV с колонками Time и Voltage (FubId — опционально), отбрасывает строки Invalid/Calib и замещает текущую таблицу
// @Tags viewer
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV файл"
// @Success 200 {object} SuccessResponse{data=UploadResponse} "Таблица загружена"
// @Failure 400 {object} ErrorResponse "Файл не разбирается как CSV"
// @Failure 422 {object} ErrorResponse "Нет обязательной колонки или нечисловое напряжение"
// @Router /viewer/upload [post]
func (api *RESTAPIServer) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Файл не передан",
			Details: err.Error(),
		})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: "Файл превышает лимит 10 МБ",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Не удалось открыть загруженный файл",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Не удалось прочитать загруженный файл",
			Details: err.Error(),
		})
		return
	}

	table, err := api.viewer.Ingest(fileHeader.Filename, payload)
	if err != nil {
		api.rejectUpload(c, fileHeader.Filename, err)
		return
	}

	api.metrics.Uploads.Inc()
	api.metrics.FilteredRows.Add(float64(table.FilteredRows))

	if api.repo != nil {
		if err := api.repo.SaveUpload(table.Filename, models.UploadStatusOK, "",
			len(table.Rows), table.FilteredRows); err != nil {
			slog.Warn("Не удалось сохранить историю загрузки", "error", err)
		}
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Таблица загружена",
		Data: UploadResponse{
			Filename:     table.Filename,
			RowCount:     len(table.Rows),
			FilteredRows: table.FilteredRows,
			HasFubID:     table.HasFubID,
			FubIDs:       table.FubIDs(),
			UploadedAt:   table.UploadedAt,
		},
	})
}

// rejectUpload классифицирует отказ разбора и отвечает пользователю сообщением
func (api *RESTAPIServer) rejectUpload(c *gin.Context, filename string, err error) {
	var parseErr *services.ParseError
	var schemaErr *services.SchemaError
	var valueErr *services.ValueError

	status := http.StatusBadRequest
	uploadStatus := models.UploadStatusParseError
	stage := "parse"

	switch {
	case errors.As(err, &parseErr):
		// значения по умолчанию
	case errors.As(err, &schemaErr):
		status = http.StatusUnprocessableEntity
		uploadStatus = models.UploadStatusSchemaError
		stage = "schema"
	case errors.As(err, &valueErr):
		status = http.StatusUnprocessableEntity
		uploadStatus = models.UploadStatusValueError
		stage = "value"
	}

	api.metrics.UploadFailures.WithLabelValues(stage).Inc()

	if api.repo != nil {
		if saveErr := api.repo.SaveUpload(filename, uploadStatus, err.Error(), 0, 0); saveErr != nil {
			slog.Warn("Не удалось сохранить историю загрузки", "error", saveErr)
		}
	}

	c.JSON(status, ErrorResponse{
		Error:   "Файл отклонён",
		Details: err.Error(),
	})
}

// GetTable возвращает текущую разобранную таблицу
// @Summary Текущая таблица просмотрщика
// @Description Возвращает последнюю успешно загруженную таблицу
// @Tags viewer
// @Produce json
// @Success 200 {object} SuccessResponse "Текущая таблица"
// @Failure 409 {object} ErrorResponse "Таблица ещё не загружена"
// @Router /viewer/table [get]
func (api *RESTAPIServer) GetTable(c *gin.Context) {
	table := api.viewer.Table()
	if table == nil {
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: "Таблица ещё не загружена",
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Текущая таблица",
		Data:    table,
	})
}

// GetPlot строит scatter-график по текущей таблице
// @Summary График Time × Voltage
// @Description Отдаёт PNG с точками Time × Voltage; при наличии FubId серии раскрашиваются по его значениям
// @Tags viewer
// @Produce image/png
// @Success 200 {string} string "PNG изображение"
// @Failure 409 {object} ErrorResponse "Таблица ещё не загружена"
// @Router /viewer/plot [get]
func (api *RESTAPIServer) GetPlot(c *gin.Context) {
	table := api.viewer.Table()
	if table == nil {
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: "Таблица ещё не загружена",
		})
		return
	}
	if len(table.Rows) == 0 {
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: "Таблица пуста после фильтрации Invalid/Calib, строить нечего",
		})
		return
	}

	png, err := services.RenderScatterPNG(table)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Не удалось построить график",
			Details: err.Error(),
		})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// GetUploadHistory возвращает историю загрузок
// @Summary История загрузок
// @Description Последние записи о загрузках, включая отклонённые (требует подключённой БД)
// @Tags viewer
// @Produce json
// @Success 200 {object} SuccessResponse "История загрузок"
// @Failure 503 {object} ErrorResponse "История недоступна без БД"
// @Router /viewer/history [get]
func (api *RESTAPIServer) GetUploadHistory(c *gin.Context) {
	if api.repo == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: "История недоступна: сервис работает без базы данных",
		})
		return
	}

	records, err := api.repo.RecentUploads(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Не удалось получить историю",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "История загрузок",
		Data:    records,
	})
}

// HealthCheck проверка здоровья сервиса
// @Summary Проверка состояния сервиса
// @Description Возвращает состояние компонентов: наличие набора, таблицы и доступность БД
// @Tags monitoring
// @Produce json
// @Success 200 {object} HealthResponse "Состояние сервиса"
// @Router /monitoring/health [get]
func (api *RESTAPIServer) HealthCheck(c *gin.Context) {
	dbState := "disabled"
	if api.repo != nil {
		dbState = "up"
		if err := api.repo.Ping(); err != nil {
			dbState = "down"
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:     "healthy",
		Service:    "Voltage Lab",
		Timestamp:  time.Now().UTC(),
		HasDataset: api.generator.Batch() != nil,
		HasUpload:  api.viewer.Table() != nil,
		Database:   dbState,
	})
}
