package services

import (
	"bytes"
	"fmt"
	"time"

	"voltage_lab/internal/models"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Палитра серий: по одному цвету на FubId, по кругу
var seriesPalette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorGreen,
	chart.ColorRed,
	chart.ColorOrange,
	chart.ColorAlternateGray,
}

// pointStyle стиль "только точки", без соединяющей линии
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    4,
		DotColor:    col,
	}
}

// RenderScatterPNG строит scatter-график Time × Voltage по загруженной таблице.
// При наличии колонки FubId точки раскрашиваются по её уникальным значениям,
// иначе рисуется одна серия.
func RenderScatterPNG(table *models.UploadedTable) ([]byte, error) {
	if table == nil || len(table.Rows) == 0 {
		return nil, fmt.Errorf("нет данных для построения графика")
	}

	var series []chart.Series
	if table.HasFubID {
		for i, fubID := range table.FubIDs() {
			times, voltages := seriesValues(table, fubID)
			series = append(series, makeTimeSeries(fubID, times, voltages,
				pointStyle(seriesPalette[i%len(seriesPalette)])))
		}
	} else {
		times, voltages := seriesValues(table, "")
		series = append(series, makeTimeSeries("Voltage", times, voltages,
			pointStyle(chart.ColorBlue)))
	}

	ch := chart.Chart{
		Title:      "Voltage",
		Width:      900,
		Height:     500,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 48}},
		YAxis:      chart.YAxis{Name: "Voltage"},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("не удалось отрисовать график: %w", err)
	}
	return buf.Bytes(), nil
}

// seriesValues выбирает значения одной серии; пустой fubID — вся таблица
func seriesValues(table *models.UploadedTable, fubID string) ([]time.Time, []float64) {
	var times []time.Time
	var voltages []float64
	for _, row := range table.Rows {
		if table.HasFubID && row.FubID != fubID {
			continue
		}
		times = append(times, row.Time)
		voltages = append(voltages, row.Voltage)
	}
	return times, voltages
}

// makeTimeSeries собирает серию, дополняя одиночную точку второй —
// go-chart требует минимум два значения X
func makeTimeSeries(name string, times []time.Time, voltages []float64, st chart.Style) chart.TimeSeries {
	if len(times) == 1 {
		times = append(times, times[0].Add(time.Second))
		voltages = append(voltages, voltages[0])
	}
	return chart.TimeSeries{
		Name:    name,
		XValues: times,
		YValues: voltages,
		Style:   st,
	}
}
