package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/pkg/yderr"
	"github.com/portyard/yardboard/internal/util/rowutil"
)

func TestReadWorkbook(t *testing.T) {
	content := workbook(t,
		[]any{"Container", "", "Vessel", "Vessel"},
		[]any{"ABCU1234567", "x", "EVER GIVEN", "EVER GREEN"},
		[]any{},
		[]any{"TGHU7654321"},
	)

	rows, err := ReadWorkbook(bytes.NewReader(content))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	v, ok := rows[0].Get("__EMPTY")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	v, _ = rows[0].Get("Vessel")
	assert.Equal(t, "EVER GIVEN", v)
	v, _ = rows[0].Get("Vessel_1")
	assert.Equal(t, "EVER GREEN", v)

	assert.Len(t, rows[1], 1)
}

func TestReadWorkbookReadsStoredNumbers(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Container", "Weight"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"ABCU1234567", 9.13}))
	// whole-number display format
	style, err := f.NewStyle(&excelize.Style{NumFmt: 1})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "B2", "B2", style))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := ReadWorkbook(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	v, _ := rows[0].Get("Weight")
	assert.Equal(t, "9.13", v)

	result := ParseRows(rows)
	require.Len(t, result.Containers, 1)
	assert.InDelta(t, 9.13, result.Containers[0].Weight, 1e-9)
}

func TestReadWorkbookRejectsGarbage(t *testing.T) {
	_, err := ReadWorkbook(strings.NewReader("definitely not a spreadsheet"))
	require.Error(t, err)
	assert.Equal(t, yderr.CodeInvalidWorkbook, asYardError(t, err).ErrorCode)
}

func row(pairs ...string) rowutil.Row {
	r := make(rowutil.Row, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		r = append(r, rowutil.Cell{Header: pairs[i], Value: pairs[i+1]})
	}
	return r
}

func TestParseRows(t *testing.T) {
	rows := []rowutil.Row{
		row("Container", "ABCU1234567", "Owner", "MSC", "Vessel", "EVER GIVEN", "ISO", "45G1", "F/E", "F", "Flow", "Export", "Location", "A1-06-02-03"),
		row("Container", "TGHU7654321", "Vessel", "MAERSK ALABAMA", "ISO", "22G1", "F/E", "E", "Flow", "Import", "Location", "B1-03-01-01"),
		row("Owner", "ONE"),
		row("Container", "  "),
		row("Container", "Tổng cộng"),
		row("Container", "XYZU0000001", "Vessel", "EVER GIVEN"),
	}

	result := ParseRows(rows)

	assert.Equal(t, model.ParseStats{TotalRows: 6, CreatedContainers: 3, SkippedRows: 2}, result.Stats)
	assert.Equal(t, []string{"EVER GIVEN", "MAERSK ALABAMA"}, result.Vessels)
	require.Len(t, result.Containers, 4)

	start, end := result.Containers[0], result.Containers[1]
	assert.Equal(t, "ABCU1234567", start.ID)
	assert.Equal(t, "A1", start.Block)
	assert.Equal(t, 5, start.Bay)
	assert.Equal(t, 7, end.Bay)
	assert.Equal(t, model.PartStart, start.PartType)
	assert.Equal(t, model.PartEnd, end.PartType)
	assert.True(t, start.IsMultiBay)
	assert.Equal(t, 40, end.Size)
	assert.Equal(t, "MSC", start.Owner)
	assert.Equal(t, model.FlowExport, start.Flow)
	assert.Equal(t, "A1-06-02-03", start.Location)

	single := result.Containers[2]
	assert.Equal(t, "B1", single.Block)
	assert.Equal(t, 3, single.Bay)
	assert.Equal(t, 20, single.Size)
	assert.False(t, single.IsMultiBay)
	assert.Equal(t, model.StatusEmpty, single.Status)
	assert.Equal(t, model.FlowImport, single.Flow)
	assert.Equal(t, model.OwnerUnknown, single.Owner)

	unmapped := result.Containers[3]
	assert.Equal(t, model.BlockUnknown, unmapped.Block)
	assert.Equal(t, model.LocationUnmapped, unmapped.Location)
	assert.Equal(t, model.StatusFull, unmapped.Status)
}

func TestParseRowsEmpty(t *testing.T) {
	result := ParseRows(nil)
	assert.Empty(t, result.Containers)
	assert.Empty(t, result.Vessels)
	assert.Equal(t, model.ParseStats{}, result.Stats)
}
