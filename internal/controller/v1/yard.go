package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/portyard/yardboard/internal/pkg/cachectrl"
	"github.com/portyard/yardboard/internal/server/svr"
	"github.com/portyard/yardboard/internal/service"
)

type Yard struct {
	fx.In

	YardService   *service.Yard
	ResetService  *service.Reset
	UploadLimiter svr.UploadLimiter
}

func RegisterYard(v1 *svr.V1, c Yard) {
	yard := v1.Group("/yard")
	yard.Post("/upload", fiber.Handler(c.UploadLimiter), c.Upload)
	yard.Get("/", c.GetDataset)
	yard.Get("/containers", c.GetContainers)
	yard.Delete("/", c.Clear)
}

func (c *Yard) Upload(ctx *fiber.Ctx) error {
	file, err := readUpload(ctx)
	if err != nil {
		return err
	}

	dataset, err := c.YardService.Upload(ctx.UserContext(), file.FileName, file.Content)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(dataset)
}

func (c *Yard) GetDataset(ctx *fiber.Ctx) error {
	dataset := c.YardService.Dataset()
	if cachectrl.Revalidate(ctx, dataset.Version) {
		return nil
	}
	return ctx.JSON(dataset)
}

// GetContainers searches when search is given, otherwise lists the containers
// of block, otherwise everything.
func (c *Yard) GetContainers(ctx *fiber.Ctx) error {
	if term := ctx.Query("search"); term != "" {
		return ctx.JSON(c.YardService.Search(term))
	}
	if block := ctx.Query("block"); block != "" {
		containers, ok := c.YardService.ByBlock()[block]
		if !ok {
			return ctx.JSON([]any{})
		}
		return ctx.JSON(containers)
	}
	return ctx.JSON(c.YardService.Containers())
}

func (c *Yard) Clear(ctx *fiber.Ctx) error {
	if err := c.ResetService.ClearAll(ctx.UserContext()); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
