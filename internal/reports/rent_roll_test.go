package reports

import (
	"bytes"
	"testing"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerateRentRoll(t *testing.T) {
	entries := []domain.RentRollEntry{
		{
			BuildingName: "Green View Apartments",
			UnitNumber:   "A1",
			TenantName:   "Jane Wanjiru",
			Phone:        "+254712345678",
			RentAmount:   decimal.NewFromInt(15000),
			Balance:      decimal.RequireFromString("7500.50"),
			IsActive:     true,
		},
		{
			BuildingName: "Blue Sky Towers",
			UnitNumber:   "B2",
			TenantName:   "Peter Otieno",
			Phone:        "+254722000111",
			RentAmount:   decimal.NewFromInt(12000),
			Balance:      decimal.Zero,
			IsActive:     false,
		},
	}

	data, err := GenerateRentRoll(entries)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{RentRollSheet}, f.GetSheetList())

	rows, err := f.GetRows(RentRollSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, RentRollHeader, rows[0])
	assert.Equal(t, []string{"Green View Apartments", "A1", "Jane Wanjiru", "+254712345678"}, rows[1][:4])
	assert.Equal(t, "Yes", rows[1][6])
	assert.Equal(t, "No", rows[2][6])

	raw, err := f.GetCellValue(RentRollSheet, "F2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "7500.5", raw)
}

func TestGenerateRentRollEmpty(t *testing.T) {
	data, err := GenerateRentRoll(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(RentRollSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, RentRollHeader, rows[0])
}
