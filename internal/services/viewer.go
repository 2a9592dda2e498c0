package services

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"voltage_lab/internal/models"
)

// ParseError байты не декодируются как UTF-8 или не разбираются как CSV,
// либо значение Time не является датой
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "ошибка разбора: " + e.Reason
}

// SchemaError в загруженной таблице нет обязательной колонки
type SchemaError struct {
	Missing string
}

func (e *SchemaError) Error() string {
	return "отсутствует обязательная колонка " + e.Missing
}

// ValueError значение Voltage не приводится к числу (и не является маркером Invalid/Calib)
type ValueError struct {
	Row   int
	Value string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("строка %d: значение Voltage %q не является числом", e.Row, e.Value)
}

// Форматы времени, принимаемые в колонке Time
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ViewerService держит последнюю загруженную таблицу.
// Каждая загрузка замещает предыдущую целиком.
type ViewerService struct {
	mu    sync.RWMutex
	table *models.UploadedTable
}

// NewViewerService создает сервис просмотра без загруженных данных
func NewViewerService() *ViewerService {
	return &ViewerService{}
}

// Ingest разбирает загруженный CSV, валидирует схему, отбрасывает строки с
// маркером Invalid/Calib и приводит напряжение к float64. Успешный результат
// замещает текущую таблицу.
func (s *ViewerService) Ingest(filename string, payload []byte) (*models.UploadedTable, error) {
	table, err := ParseVoltageCSV(filename, payload)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()
	return table, nil
}

// Table возвращает текущую таблицу или nil, если загрузки ещё не было
func (s *ViewerService) Table() *models.UploadedTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// ParseVoltageCSV разбирает CSV с обязательными колонками Time и Voltage и
// необязательной FubId. Классификация отказов: ParseError / SchemaError / ValueError.
func ParseVoltageCSV(filename string, payload []byte) (*models.UploadedTable, error) {
	if !utf8.Valid(payload) {
		return nil, &ParseError{Reason: "файл не является текстом UTF-8"}
	}

	reader := csv.NewReader(strings.NewReader(string(payload)))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Reason: "некорректный CSV: " + err.Error()}
	}
	if len(records) == 0 {
		return nil, &ParseError{Reason: "файл пуст"}
	}

	header := records[0]
	timeIdx, voltIdx, fubIdx := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "Time":
			timeIdx = i
		case "Voltage":
			voltIdx = i
		case "FubId":
			fubIdx = i
		}
	}
	if voltIdx == -1 {
		return nil, &SchemaError{Missing: "Voltage"}
	}
	if timeIdx == -1 {
		return nil, &SchemaError{Missing: "Time"}
	}

	table := &models.UploadedTable{
		Filename:   filename,
		Rows:       make([]models.UploadedRow, 0, len(records)-1),
		HasFubID:   fubIdx != -1,
		UploadedAt: time.Now().UTC(),
	}

	for i, record := range records[1:] {
		rowNum := i + 2 // нумерация строк файла, с учётом заголовка

		ts, err := parseTime(record[timeIdx])
		if err != nil {
			return nil, &ParseError{Reason: fmt.Sprintf("строка %d: %v", rowNum, err)}
		}

		rawVoltage := strings.TrimSpace(record[voltIdx])
		if rawVoltage == models.SentinelVoltage {
			table.FilteredRows++
			continue
		}

		voltage, err := strconv.ParseFloat(rawVoltage, 64)
		if err != nil {
			return nil, &ValueError{Row: rowNum, Value: rawVoltage}
		}

		row := models.UploadedRow{Time: ts, Voltage: voltage}
		if fubIdx != -1 {
			row.FubID = strings.TrimSpace(record[fubIdx])
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("значение Time %q не является датой", raw)
}
