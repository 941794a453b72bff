package reports

import (
	"bytes"
	"fmt"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

// RentRollSheet is the name of the worksheet holding the rent roll.
const RentRollSheet = "Rent Roll"

// RentRollContentType is the MIME type of the generated workbook.
const RentRollContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RentRollHeader lists the columns of the rent roll in order.
var RentRollHeader = []string{
	"Building",
	"House",
	"Tenant",
	"Phone",
	"Rent",
	"Balance",
	"Active",
}

var rentRollWidths = []float64{28, 10, 28, 18, 14, 14, 10}

// GenerateRentRoll renders one row per tenant into an xlsx workbook.
func GenerateRentRoll(entries []domain.RentRollEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(RentRollSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	// Built-in format 4 is "#,##0.00".
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}

	for col, header := range RentRollHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(RentRollSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(RentRollSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(RentRollSheet, name, name, rentRollWidths[col]); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, e := range entries {
		row := i + 2
		active := "No"
		if e.IsActive {
			active = "Yes"
		}
		values := []any{
			e.BuildingName,
			e.UnitNumber,
			e.TenantName,
			e.Phone,
			e.RentAmount.InexactFloat64(),
			e.Balance.InexactFloat64(),
			active,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(RentRollSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	if len(entries) > 0 {
		first, _ := excelize.CoordinatesToCellName(5, 2)
		last, _ := excelize.CoordinatesToCellName(6, len(entries)+1)
		if err := f.SetCellStyle(RentRollSheet, first, last, moneyStyle); err != nil {
			return nil, fmt.Errorf("failed to set money style: %w", err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
