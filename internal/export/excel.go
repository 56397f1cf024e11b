// Package export writes rental schedule workbooks for offline use.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"atelier/internal/config"
	"atelier/internal/domain"
	"atelier/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const scheduleSheet = "השכרות"

type ScheduleExporter struct {
	store  domain.Store
	config config.ExportConfig
	logger *zerolog.Logger
}

func NewScheduleExporter(store domain.Store, cfg config.ExportConfig, logger *zerolog.Logger) *ScheduleExporter {
	return &ScheduleExporter{
		store:  store,
		config: cfg,
		logger: logger,
	}
}

// ExportSchedule writes every rental touching [startDate, endDate] to an
// Excel workbook and returns the file path.
func (e *ScheduleExporter) ExportSchedule(ctx context.Context, startDate, endDate string) (string, error) {
	if err := os.MkdirAll(e.config.Path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	rentals, err := e.store.ListRentals(ctx)
	if err != nil {
		return "", fmt.Errorf("error getting rentals: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(scheduleSheet)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(scheduleSheet, "A1", fmt.Sprintf("תקופה: %s - %s", startDate, endDate))
	_ = f.MergeCell(scheduleSheet, "A1", "G1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(scheduleSheet, "A1", "A1", titleStyle)

	headers := []string{"שמלה", "לקוחה", "טלפון", "תאריך התחלה", "תאריך סיום", "מחיר", "סטטוס"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(scheduleSheet, cell, header)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = f.SetCellStyle(scheduleSheet, "A2", "G2", headerStyle)

	row := 3
	for _, rental := range rentals {
		if rental.Status == models.RentalCancelled {
			continue
		}
		if !models.Overlaps(rental.StartDate, rental.EndDate, startDate, endDate) {
			continue
		}
		values := []interface{}{
			rental.DressName,
			rental.CustomerName,
			rental.CustomerPhone,
			rental.StartDate,
			rental.EndDate,
			rental.TotalPrice,
			rental.Status,
		}
		for i, value := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(scheduleSheet, cell, value)
		}
		row++
	}

	_ = f.SetColWidth(scheduleSheet, "A", "B", 25)
	_ = f.SetColWidth(scheduleSheet, "C", "G", 16)
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("schedule_%s_to_%s.xlsx", startDate, endDate)
	filePath := filepath.Join(e.config.Path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.logger.Info().Str("file_path", filePath).Msg("Excel file created")
	return filePath, nil
}
