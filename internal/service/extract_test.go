package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/portyard/yardboard/internal/model"
)

func TestExtractSchedule(t *testing.T) {
	text := "Dis/Load: 9/9 before any vessel\n" +
		"ever given ETA 10/10 Dis/Load: 1,200 / 350\n" +
		"MAERSK\nALABAMA  Dis/Load 20|30\n" +
		"EVER GIVEN Dis/Load 5/5\n"

	schedule := ExtractSchedule(text, []string{"EVER GIVEN", "MAERSK ALABAMA", "NOT MENTIONED"})

	assert.Equal(t, []*model.ScheduleData{
		{VesselName: "EVER GIVEN", Discharge: 1200, Load: 350},
		{VesselName: "MAERSK ALABAMA", Discharge: 20, Load: 30},
	}, schedule)
}

func TestExtractScheduleLongestNameWins(t *testing.T) {
	schedule := ExtractSchedule("MSC ANNA II Dis/Load 10/20", []string{"MSC ANNA", "MSC ANNA II"})

	assert.Equal(t, []*model.ScheduleData{
		{VesselName: "MSC ANNA II", Discharge: 10, Load: 20},
	}, schedule)
}

func TestExtractScheduleNothingToFind(t *testing.T) {
	assert.Empty(t, ExtractSchedule("", []string{"EVER GIVEN"}))
	assert.Empty(t, ExtractSchedule("EVER GIVEN Dis/Load 1/2", nil))
	assert.Empty(t, ExtractSchedule("EVER GIVEN Dis/Load 1/2", []string{"   "}))
}

func TestParseFigure(t *testing.T) {
	assert.Equal(t, 1200, parseFigure("1,200"))
	assert.Equal(t, 1200, parseFigure("1.200 "))
	assert.Equal(t, 0, parseFigure(" , "))
}
