package yardcode

import (
	"strings"

	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/util/rowutil"
)

// ClassifyStatus maps a full/empty cell. Only recognizable empty markers yield
// EMPTY; a blank or unknown value is FULL.
func ClassifyStatus(raw string) model.ContainerStatus {
	v := rowutil.Normalize(raw)
	if v == "e" || v == "mt" || strings.Contains(v, "empty") || strings.Contains(v, "rỗng") {
		return model.StatusEmpty
	}
	return model.StatusFull
}

// ClassifyFlow maps a direction cell. Export markers are checked first, so a
// value mentioning both is an export.
func ClassifyFlow(raw string) model.Flow {
	v := rowutil.Normalize(raw)
	switch {
	case strings.Contains(v, "ex") || strings.Contains(v, "xuất"):
		return model.FlowExport
	case strings.Contains(v, "im") || strings.Contains(v, "nhập"):
		return model.FlowImport
	default:
		return model.FlowNone
	}
}
