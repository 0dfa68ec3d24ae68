package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/server/svr"
	"github.com/portyard/yardboard/internal/service"
	"github.com/portyard/yardboard/internal/util/rekuest"
)

type Analysis struct {
	fx.In

	StatisticsService *service.Statistics
}

func RegisterAnalysis(v1 *svr.V1, c Analysis) {
	analysis := v1.Group("/analysis")
	analysis.Get("/discharge", c.GetDischarge)
	analysis.Post("/load", c.GetLoad)
}

func (c *Analysis) GetDischarge(ctx *fiber.Ctx) error {
	return ctx.JSON(c.StatisticsService.Discharge())
}

func (c *Analysis) GetLoad(ctx *fiber.Ctx) error {
	var query model.LoadQuery
	if len(ctx.Body()) > 0 {
		if err := rekuest.ValidBody(ctx, &query); err != nil {
			return err
		}
	}
	return ctx.JSON(c.StatisticsService.Load(&query))
}
