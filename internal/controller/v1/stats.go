package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/server/svr"
	"github.com/portyard/yardboard/internal/service"
	"github.com/portyard/yardboard/internal/util/rekuest"
)

type Stats struct {
	fx.In

	StatisticsService *service.Statistics
}

func RegisterStats(v1 *svr.V1, c Stats) {
	stats := v1.Group("/stats")
	stats.Get("/blocks", c.GetBlockStats)
	stats.Post("/vessels", c.GetVesselTable)
}

func (c *Stats) GetBlockStats(ctx *fiber.Ctx) error {
	result, err := c.StatisticsService.Occupancy()
	if err != nil {
		return err
	}
	return ctx.JSON(result)
}

func (c *Stats) GetVesselTable(ctx *fiber.Ctx) error {
	var query model.VesselTableQuery
	if len(ctx.Body()) > 0 {
		if err := rekuest.ValidBody(ctx, &query); err != nil {
			return err
		}
	}
	return ctx.JSON(c.StatisticsService.VesselTable(&query))
}
