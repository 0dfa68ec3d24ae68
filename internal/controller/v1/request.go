package v1

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/pkg/cachectrl"
	"github.com/portyard/yardboard/internal/server/svr"
	"github.com/portyard/yardboard/internal/service"
	"github.com/portyard/yardboard/internal/util/rekuest"
)

type Request struct {
	fx.In

	RequestService *service.Request
}

func RegisterRequest(v1 *svr.V1, c Request) {
	requests := v1.Group("/requests")
	requests.Get("/", c.GetRequests)
	requests.Post("/", c.Submit)
	requests.Get("/alarm", c.GetAlarm)
	requests.Post("/:id/assign", c.Assign)
	requests.Post("/:id/ack/:target", c.Acknowledge)
}

func (c *Request) GetRequests(ctx *fiber.Ctx) error {
	cachectrl.OptOut(ctx)
	return ctx.JSON(c.RequestService.List())
}

func (c *Request) Submit(ctx *fiber.Ctx) error {
	var submission model.RequestSubmission
	if err := rekuest.ValidBody(ctx, &submission); err != nil {
		return err
	}

	req, err := c.RequestService.Submit(ctx.UserContext(), &submission)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(req)
}

func (c *Request) Assign(ctx *fiber.Ctx) error {
	var assignment model.RequestAssignment
	if err := rekuest.ValidBody(ctx, &assignment); err != nil {
		return err
	}

	req, err := c.RequestService.Assign(ctx.UserContext(), ctx.Params("id"), assignment.Location)
	if err != nil {
		return err
	}
	return ctx.JSON(req)
}

func (c *Request) Acknowledge(ctx *fiber.Ctx) error {
	target := strings.ToLower(ctx.Params("target"))
	if err := rekuest.ValidVar(target, "oneof=gate yard"); err != nil {
		return err
	}

	req, err := c.RequestService.Acknowledge(ctx.UserContext(), ctx.Params("id"), model.AckTarget(target))
	if err != nil {
		return err
	}
	return ctx.JSON(req)
}

func (c *Request) GetAlarm(ctx *fiber.Ctx) error {
	mode := strings.ToUpper(ctx.Query("mode", string(model.ModeViewer)))
	if err := rekuest.ValidVar(mode, "oneof=VIEWER GATE YARD"); err != nil {
		return err
	}
	cachectrl.OptOut(ctx)
	return ctx.JSON(c.RequestService.Alarm(model.AppMode(mode)))
}
