package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/portyard/yardboard/internal/server/svr"
	"github.com/portyard/yardboard/internal/service"
	"github.com/portyard/yardboard/internal/util/rekuest"
)

type Schedule struct {
	fx.In

	ScheduleService *service.Schedule
	UploadLimiter   svr.UploadLimiter
}

func RegisterSchedule(v1 *svr.V1, c Schedule) {
	schedule := v1.Group("/schedule")
	schedule.Get("/", c.GetSchedule)
	schedule.Post("/file", fiber.Handler(c.UploadLimiter), c.ExtractFile)
	schedule.Post("/parse", c.Parse)
	schedule.Get("/text", c.GetText)
}

func (c *Schedule) GetSchedule(ctx *fiber.Ctx) error {
	return ctx.JSON(c.ScheduleService.Entries())
}

// ExtractFile only extracts text unless ?parse=true is given. Extraction
// failures are reported in the body with a 200.
func (c *Schedule) ExtractFile(ctx *fiber.Ctx) error {
	file, err := readUpload(ctx)
	if err != nil {
		return err
	}

	result, err := c.ScheduleService.ExtractFile(ctx.UserContext(), file.FileName, file.ContentType, file.Content, ctx.QueryBool("parse"))
	if err != nil {
		return err
	}
	return ctx.JSON(result)
}

type parseRequest struct {
	Text string `json:"text"`
}

func (c *Schedule) Parse(ctx *fiber.Ctx) error {
	var request parseRequest
	if len(ctx.Body()) > 0 {
		if err := rekuest.ValidBody(ctx, &request); err != nil {
			return err
		}
	}

	result, err := c.ScheduleService.Parse(ctx.UserContext(), request.Text)
	if err != nil {
		return err
	}
	return ctx.JSON(result)
}

func (c *Schedule) GetText(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"text": c.ScheduleService.Text(),
	})
}
