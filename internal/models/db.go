package models

import (
	"time"

	"github.com/google/uuid"
)

// DatasetRecord история генераций наборов данных
type DatasetRecord struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Samples     int       `json:"samples" gorm:"not null"`
	VoltageLow  float64   `json:"voltage_low" gorm:"not null"`
	VoltageHigh float64   `json:"voltage_high" gorm:"not null"`
	DateStart   time.Time `json:"date_start" gorm:"not null"`
	DateEnd     time.Time `json:"date_end" gorm:"not null"`
	FubIDs      string    `json:"fub_ids" gorm:"type:varchar(255)"` // через запятую
	RowCount    int       `json:"row_count" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;index"`
}

func (DatasetRecord) TableName() string {
	return "volt_datasets"
}

// Статусы обработки загрузки
const (
	UploadStatusOK          = "ok"
	UploadStatusParseError  = "parse_error"
	UploadStatusSchemaError = "schema_error"
	UploadStatusValueError  = "value_error"
)

// UploadRecord история загрузок в просмотрщик
type UploadRecord struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Filename     string    `json:"filename" gorm:"type:varchar(255);not null"`
	RowCount     int       `json:"row_count" gorm:"not null"`
	FilteredRows int       `json:"filtered_rows" gorm:"not null"`
	Status       string    `json:"status" gorm:"type:varchar(32);not null;index"`
	Detail       string    `json:"detail" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null;index"`
}

func (UploadRecord) TableName() string {
	return "volt_uploads"
}

// User учётная запись для доступа к мутирующим эндпоинтам
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"type:varchar(100)"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null"`
}

func (User) TableName() string {
	return "volt_users"
}
