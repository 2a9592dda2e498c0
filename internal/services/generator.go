package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"voltage_lab/internal/models"

	"github.com/google/uuid"
)

// ErrNoData возвращается при попытке выгрузить CSV до первой генерации
var ErrNoData = fmt.Errorf("данные ещё не сгенерированы")

// GeneratorService хранит параметры генерации и текущий набор данных.
// Набор полностью заменяется при каждой генерации.
type GeneratorService struct {
	mu     sync.RWMutex
	params models.GeneratorParams
	batch  *models.SampleBatch
	rnd    *rand.Rand
}

// NewGeneratorService создает сервис генерации с начальными параметрами
func NewGeneratorService(params models.GeneratorParams) (*GeneratorService, error) {
	if err := ValidateParams(params); err != nil {
		return nil, err
	}
	return &GeneratorService{
		params: params,
		rnd:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}, nil
}

// ValidateParams проверяет параметры генерации на соответствие границам
func ValidateParams(p models.GeneratorParams) error {
	if p.Samples < 0 || p.Samples > models.MaxSamples {
		return fmt.Errorf("количество сэмплов %d вне диапазона [0, %d]", p.Samples, models.MaxSamples)
	}
	if p.VoltageLow < models.MinVoltageEdge || p.VoltageHigh > models.MaxVoltageEdge {
		return fmt.Errorf("диапазон напряжения выходит за пределы [%.0f, %.0f]",
			models.MinVoltageEdge, models.MaxVoltageEdge)
	}
	if p.VoltageLow > p.VoltageHigh {
		return fmt.Errorf("нижняя граница напряжения %.3f больше верхней %.3f", p.VoltageLow, p.VoltageHigh)
	}
	if p.DateStart.After(p.DateEnd) {
		return fmt.Errorf("начало диапазона дат позже конца (%s > %s)",
			p.DateStart.Format(time.RFC3339), p.DateEnd.Format(time.RFC3339))
	}
	if len(p.FubIDs) == 0 {
		return fmt.Errorf("не выбран ни один FubId")
	}
	allowed := make(map[string]struct{}, len(models.AllowedFubIDs))
	for _, id := range models.AllowedFubIDs {
		allowed[id] = struct{}{}
	}
	for _, id := range p.FubIDs {
		if _, ok := allowed[id]; !ok {
			return fmt.Errorf("FubId %q не входит в допустимый набор", id)
		}
	}
	if p.Filename == "" {
		return fmt.Errorf("имя файла не задано")
	}
	return nil
}

// Params возвращает копию текущих параметров
func (s *GeneratorService) Params() models.GeneratorParams {
	s.mu.RLock()
	defer s.mu.RUnlock()

	params := s.params
	params.FubIDs = append([]string(nil), s.params.FubIDs...)
	return params
}

// UpdateParams заменяет параметры генерации после проверки границ.
// Текущий набор при этом не трогаем — перегенерация запускается отдельно.
func (s *GeneratorService) UpdateParams(p models.GeneratorParams) error {
	if err := ValidateParams(p); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = p
	return nil
}

// Regenerate генерирует новый набор по текущим параметрам и замещает им старый.
// samples == 0 даёт пустую таблицу — это валидный результат.
func (s *GeneratorService) Regenerate() *models.SampleBatch {
	s.mu.Lock()
	defer s.mu.Unlock()

	span := s.params.DateEnd.Sub(s.params.DateStart)
	vRange := s.params.VoltageHigh - s.params.VoltageLow

	points := make([]models.SamplePoint, s.params.Samples)
	for i := range points {
		// Секундная точность: CSV несёт метки в RFC3339 без долей секунды
		points[i] = models.SamplePoint{
			Time:    s.params.DateStart.Add(time.Duration(s.rnd.Float64() * float64(span))).Truncate(time.Second),
			Voltage: s.params.VoltageLow + s.rnd.Float64()*vRange,
			FubID:   s.params.FubIDs[s.rnd.IntN(len(s.params.FubIDs))],
		}
	}

	s.batch = &models.SampleBatch{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Points:      points,
	}
	return s.batch
}

// Batch возвращает текущий набор или nil, если генерация ещё не выполнялась
func (s *GeneratorService) Batch() *models.SampleBatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batch
}

// DownloadCSV сериализует текущий набор в CSV и возвращает имя файла,
// перечитанное из параметров на момент вызова. Без данных — ErrNoData.
func (s *GeneratorService) DownloadCSV() ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.batch == nil {
		return nil, "", ErrNoData
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	// Фиксированный порядок колонок
	if err := writer.Write([]string{"Time", "Voltage", "FubId"}); err != nil {
		return nil, "", fmt.Errorf("не удалось записать заголовок CSV: %w", err)
	}
	for _, p := range s.batch.Points {
		row := []string{
			p.Time.UTC().Format(time.RFC3339),
			strconv.FormatFloat(p.Voltage, 'f', -1, 64),
			p.FubID,
		}
		if err := writer.Write(row); err != nil {
			return nil, "", fmt.Errorf("не удалось записать строку CSV: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", fmt.Errorf("ошибка сериализации CSV: %w", err)
	}

	return buf.Bytes(), s.params.Filename, nil
}
