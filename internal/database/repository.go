package database

import (
	"fmt"
	"strings"
	"time"

	"voltage_lab/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository сохраняет историю генераций и загрузок
type Repository struct {
	db *gorm.DB
}

// NewRepository создает репозиторий истории
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Ping проверяет доступность базы данных
func (r *Repository) Ping() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("не удалось получить sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// SaveDataset записывает факт генерации набора
func (r *Repository) SaveDataset(batch *models.SampleBatch, params models.GeneratorParams) error {
	record := models.DatasetRecord{
		ID:          batch.ID,
		Samples:     params.Samples,
		VoltageLow:  params.VoltageLow,
		VoltageHigh: params.VoltageHigh,
		DateStart:   params.DateStart,
		DateEnd:     params.DateEnd,
		FubIDs:      strings.Join(params.FubIDs, ","),
		RowCount:    len(batch.Points),
		CreatedAt:   batch.GeneratedAt,
	}
	if err := r.db.Create(&record).Error; err != nil {
		return fmt.Errorf("не удалось сохранить запись о наборе: %w", err)
	}
	return nil
}

// SaveUpload записывает результат обработки загрузки (включая отказы)
func (r *Repository) SaveUpload(filename, status, detail string, rowCount, filteredRows int) error {
	record := models.UploadRecord{
		ID:           uuid.New(),
		Filename:     filename,
		RowCount:     rowCount,
		FilteredRows: filteredRows,
		Status:       status,
		Detail:       detail,
		CreatedAt:    time.Now().UTC(),
	}
	if err := r.db.Create(&record).Error; err != nil {
		return fmt.Errorf("не удалось сохранить запись о загрузке: %w", err)
	}
	return nil
}

// RecentDatasets возвращает последние записи о генерациях
func (r *Repository) RecentDatasets(limit int) ([]models.DatasetRecord, error) {
	var records []models.DatasetRecord
	err := r.db.Order("created_at DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки истории наборов: %w", err)
	}
	return records, nil
}

// RecentUploads возвращает последние записи о загрузках
func (r *Repository) RecentUploads(limit int) ([]models.UploadRecord, error) {
	var records []models.UploadRecord
	err := r.db.Order("created_at DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки истории загрузок: %w", err)
	}
	return records, nil
}
