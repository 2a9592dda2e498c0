package database

import (
	"fmt"
	"log"

	"voltage_lab/internal/models"

	"gorm.io/gorm"
)

// RunMigrations выполняет миграции базы данных
func RunMigrations(db *gorm.DB) error {
	log.Println("Запуск миграций базы данных...")

	err := db.AutoMigrate(
		&models.DatasetRecord{},
		&models.UploadRecord{},
		&models.User{},
	)
	if err != nil {
		return fmt.Errorf("ошибка миграции: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("ошибка создания индексов: %w", err)
	}

	log.Println("Миграции выполнены успешно")
	return nil
}

// createIndexes создает дополнительные индексы
func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_volt_datasets_created_desc ON volt_datasets(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_volt_uploads_created_desc ON volt_uploads(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_volt_uploads_status_created ON volt_uploads(status, created_at DESC)",
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			log.Printf("Не удалось создать индекс: %s, ошибка: %v", indexSQL, err)
		}
	}

	return nil
}
