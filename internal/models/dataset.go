package models

import (
	"time"

	"github.com/google/uuid"
)

// SentinelVoltage маркер невалидного измерения в исходных данных.
// Такие строки отбрасываются до числового преобразования.
const SentinelVoltage = "Invalid/Calib"

// AllowedFubIDs фиксированный набор допустимых идентификаторов FUB
var AllowedFubIDs = []string{"FUB-01", "FUB-02", "FUB-03", "FUB-04"}

// SamplePoint одна строка сгенерированного набора данных
type SamplePoint struct {
	Time    time.Time `json:"time"`
	Voltage float64   `json:"voltage"`
	FubID   string    `json:"fub_id"`
}

// SampleBatch текущий сгенерированный набор. Полностью заменяется при каждой
// генерации, история не накапливается.
type SampleBatch struct {
	ID          uuid.UUID     `json:"id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Points      []SamplePoint `json:"points"`
}

// GeneratorParams параметры генерации с границами
type GeneratorParams struct {
	Samples     int       `json:"samples"`
	VoltageLow  float64   `json:"voltage_low"`
	VoltageHigh float64   `json:"voltage_high"`
	DateStart   time.Time `json:"date_start"`
	DateEnd     time.Time `json:"date_end"`
	FubIDs      []string  `json:"fub_ids"`
	Filename    string    `json:"filename"`
}

// Жёсткие границы параметров (сами значения настраиваются через API в их пределах)
const (
	MaxSamples     = 1000
	MinVoltageEdge = -100.0
	MaxVoltageEdge = 100.0
)

// UploadedRow строка загруженной таблицы после валидации и преобразования
type UploadedRow struct {
	Time    time.Time `json:"time"`
	Voltage float64   `json:"voltage"`
	FubID   string    `json:"fub_id,omitempty"`
}

// UploadedTable таблица, разобранная из загруженного CSV. Живёт до следующей
// загрузки, затем заменяется целиком.
type UploadedTable struct {
	Filename     string        `json:"filename"`
	Rows         []UploadedRow `json:"rows"`
	HasFubID     bool          `json:"has_fub_id"`
	FilteredRows int           `json:"filtered_rows"` // строки с маркером Invalid/Calib
	UploadedAt   time.Time     `json:"uploaded_at"`
}

// FubIDs возвращает отсортированный по первому вхождению список уникальных FubId
func (t *UploadedTable) FubIDs() []string {
	if !t.HasFubID {
		return nil
	}
	seen := make(map[string]struct{})
	var ids []string
	for _, row := range t.Rows {
		if _, ok := seen[row.FubID]; !ok {
			seen[row.FubID] = struct{}{}
			ids = append(ids, row.FubID)
		}
	}
	return ids
}
