package service

import (
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
	"gopkg.in/guregu/null.v3"

	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/pkg/observability"
	"github.com/portyard/yardboard/internal/pkg/yderr"
	"github.com/portyard/yardboard/internal/util/rowutil"
	"github.com/portyard/yardboard/internal/util/yardcode"
)

const emptyHeaderPrefix = "__EMPTY"

// ReadWorkbook reads the first worksheet of a workbook into header-keyed rows.
// The first row holds the headers. Blank rows are dropped and empty cells are
// omitted from their row. Blank headers become __EMPTY, __EMPTY_1, ... and
// repeated headers get a _1, _2, ... suffix.
func ReadWorkbook(r io.Reader) ([]rowutil.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, yderr.ErrInvalidWorkbook.Msg("failed to open workbook: %s", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, yderr.ErrInvalidWorkbook.Msg("workbook has no worksheet")
	}

	grid, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, yderr.ErrInvalidWorkbook.Msg("failed to read worksheet %q: %s", sheets[0], err)
	}
	if len(grid) == 0 {
		return []rowutil.Row{}, nil
	}

	headers := uniqueHeaders(grid[0])
	rows := make([]rowutil.Row, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		row := make(rowutil.Row, 0, len(cells))
		for i, v := range cells {
			if i >= len(headers) || v == "" {
				continue
			}
			row = append(row, rowutil.Cell{Header: headers[i], Value: v})
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func uniqueHeaders(raw []string) []string {
	seen := make(map[string]int, len(raw))
	headers := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = emptyHeaderPrefix
		}
		if n, ok := seen[h]; ok {
			seen[h] = n + 1
			headers[i] = h + "_" + strconv.Itoa(n+1)
			continue
		}
		seen[h] = 0
		headers[i] = h
	}
	return headers
}

// ParseRows converts worksheet rows into containers. Rows without an identifier
// are counted as skipped; total and footer rows are dropped without being counted.
// A row mapped to an even bay yields two records (start at bay-1, end at bay+1)
// but is still counted once in CreatedContainers.
func ParseRows(rows []rowutil.Row) *model.ParseResult {
	started := time.Now()
	defer func() {
		observability.IngestDuration.Observe(time.Since(started).Seconds())
	}()

	result := &model.ParseResult{
		Containers: make([]*model.Container, 0, len(rows)),
		Stats:      model.ParseStats{TotalRows: len(rows)},
	}
	vessels := make([]string, 0)

	for _, row := range rows {
		idRaw, ok := rowutil.Lookup(row, rowutil.AliasID)
		id := strings.TrimSpace(idRaw)
		if !ok || id == "" {
			result.Stats.SkippedRows++
			observability.IngestRows.WithLabelValues("skipped").Inc()
			continue
		}
		if lower := strings.ToLower(id); strings.Contains(lower, "total") || strings.Contains(lower, "tổng") {
			observability.IngestRows.WithLabelValues("footer").Inc()
			continue
		}

		base := containerFromRow(id, row)
		if base.Vessel.Valid {
			vessels = append(vessels, base.Vessel.String)
		}

		locRaw, _ := rowutil.Lookup(row, rowutil.AliasLocation)
		loc := yardcode.ParseLocation(locRaw)
		switch {
		case !loc.Mapped:
			base.Block = model.BlockUnknown
			result.Containers = append(result.Containers, base)
		case loc.Bay%2 == 0:
			start, end := *base, *base
			for _, part := range []*model.Container{&start, &end} {
				part.Block, part.Row, part.Tier = loc.Block, loc.Row, loc.Tier
				part.Size = 40
				part.IsMultiBay = true
			}
			start.Bay, start.PartType = loc.Bay-1, model.PartStart
			end.Bay, end.PartType = loc.Bay+1, model.PartEnd
			result.Containers = append(result.Containers, &start, &end)
		default:
			base.Block, base.Bay, base.Row, base.Tier = loc.Block, loc.Bay, loc.Row, loc.Tier
			base.Size = 20
			result.Containers = append(result.Containers, base)
		}
		result.Stats.CreatedContainers++
		observability.IngestRows.WithLabelValues("created").Inc()
	}

	result.Vessels = lo.Uniq(vessels)
	sort.Strings(result.Vessels)

	log.Debug().
		Str("evt.name", "ingest.parsed").
		Int("totalRows", result.Stats.TotalRows).
		Int("createdContainers", result.Stats.CreatedContainers).
		Int("skippedRows", result.Stats.SkippedRows).
		Int("records", len(result.Containers)).
		Msg("parsed worksheet rows")

	return result
}

// containerFromRow resolves every field except the grid position.
func containerFromRow(id string, row rowutil.Row) *model.Container {
	c := &model.Container{
		ID:     id,
		Block:  model.BlockUnknown,
		Owner:  model.OwnerUnknown,
		Status: model.StatusFull,
	}

	if v, ok := rowutil.Lookup(row, rowutil.AliasOwner); ok && strings.TrimSpace(v) != "" {
		c.Owner = strings.TrimSpace(v)
	}
	if v, ok := rowutil.Lookup(row, rowutil.AliasVessel); ok && strings.TrimSpace(v) != "" {
		c.Vessel = null.StringFrom(strings.TrimSpace(v))
	}
	if v, ok := rowutil.Lookup(row, rowutil.AliasTransshipmentPort); ok && strings.TrimSpace(v) != "" {
		c.TransshipmentPort = null.StringFrom(strings.TrimSpace(v))
	}
	if v, ok := rowutil.Lookup(row, rowutil.AliasWeight); ok {
		c.Weight = yardcode.ParseWeight(v)
	}

	var iso string
	if v, ok := rowutil.Lookup(row, rowutil.AliasISO); ok {
		if code, valid := yardcode.NormalizeISO(v); valid {
			iso = code
			c.ISO = null.StringFrom(code)
		}
	}
	sizeRaw, _ := rowutil.Lookup(row, rowutil.AliasSize)
	c.Size = yardcode.ClassifySize(sizeRaw, iso)

	statusRaw, _ := rowutil.Lookup(row, rowutil.AliasStatus)
	c.Status = yardcode.ClassifyStatus(statusRaw)
	flowRaw, _ := rowutil.Lookup(row, rowutil.AliasFlow)
	c.Flow = yardcode.ClassifyFlow(flowRaw)

	locRaw, _ := rowutil.Lookup(row, rowutil.AliasLocation)
	c.Location = yardcode.DisplayLocation(locRaw)

	return c
}
