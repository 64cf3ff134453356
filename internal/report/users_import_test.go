package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		require.NoError(t, writeRow(f, sheet, i+1, row))
	}
	return f
}

func TestUsersFromWorkbook(t *testing.T) {
	f := workbook(t, [][]interface{}{
		{"First Name", "Last Name", "Email", "Password", "Phone"},
		{"Jane", "Doe", "jane@example.com", "secret", "555-0100"},
		{"No", "Password", "nopass@example.com", ""},
		{"Jane", "Again", "JANE@example.com", "other"},
		{"", "", "solo@example.com", "pw"},
	})

	result, err := UsersFromWorkbook(f)
	require.NoError(t, err)

	require.Len(t, result.Users, 2)
	assert.Equal(t, "Jane Doe", result.Users[0].Name)
	assert.Equal(t, "555-0100", result.Users[0].Phone)
	assert.Equal(t, "solo@example.com", result.Users[1].Email)
	assert.Len(t, result.Skipped, 2)
	assert.Contains(t, result.Skipped[0], "row 3")
	assert.Contains(t, result.Skipped[1], "duplicate email")
}

func TestUsersFromWorkbook_RequiresColumns(t *testing.T) {
	f := workbook(t, [][]interface{}{
		{"Name", "Email"},
		{"Jane", "jane@example.com"},
	})

	_, err := UsersFromWorkbook(f)
	assert.Error(t, err)
}

func TestUsersFromWorkbook_EmptySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := UsersFromWorkbook(f)
	assert.Error(t, err)
}
