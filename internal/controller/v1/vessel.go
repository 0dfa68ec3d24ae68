package v1

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/server/svr"
	"github.com/portyard/yardboard/internal/service"
	"github.com/portyard/yardboard/internal/util/rekuest"
)

type Vessel struct {
	fx.In

	ScheduleService *service.Schedule
}

func RegisterVessel(v1 *svr.V1, c Vessel) {
	v1.Get("/vessels", c.GetVessels)
	v1.Get("/vessels/selection", c.GetSelection)
	v1.Put("/vessels/selection", c.PutSelection)
}

func (c *Vessel) GetVessels(ctx *fiber.Ctx) error {
	filter := model.VesselListFilter(strings.ToUpper(ctx.Query("filter", string(model.VesselListAll))))
	if err := rekuest.ValidVar(string(filter), "oneof=ALL SCHEDULE OTHER"); err != nil {
		return err
	}
	return ctx.JSON(c.ScheduleService.VesselList(filter))
}

func (c *Vessel) GetSelection(ctx *fiber.Ctx) error {
	return ctx.JSON(c.ScheduleService.Selection())
}

type selectionRequest struct {
	Vessels []string `json:"vessels" validate:"dive,max=128"`
}

func (c *Vessel) PutSelection(ctx *fiber.Ctx) error {
	var request selectionRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}
	return ctx.JSON(c.ScheduleService.SetSelection(ctx.UserContext(), request.Vessels))
}
