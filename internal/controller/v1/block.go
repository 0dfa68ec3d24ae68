package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/pkg/cachectrl"
	"github.com/portyard/yardboard/internal/server/svr"
	"github.com/portyard/yardboard/internal/service"
	"github.com/portyard/yardboard/internal/util/rekuest"
)

type Block struct {
	fx.In

	BlockConfigService *service.BlockConfig
}

func RegisterBlock(v1 *svr.V1, c Block) {
	v1.Get("/blocks", c.GetBlocks)
	v1.Put("/blocks", c.PutBlocks)
}

func (c *Block) GetBlocks(ctx *fiber.Ctx) error {
	blocks, version := c.BlockConfigService.GetBlocks()
	if cachectrl.Revalidate(ctx, version) {
		return nil
	}
	return ctx.JSON(fiber.Map{
		"version": version,
		"blocks":  blocks,
	})
}

type putBlocksRequest struct {
	Blocks []*model.BlockConfig `json:"blocks" validate:"required,min=1,dive,required"`
}

func (c *Block) PutBlocks(ctx *fiber.Ctx) error {
	var request putBlocksRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	blocks, err := c.BlockConfigService.ReplaceBlocks(ctx.UserContext(), request.Blocks)
	if err != nil {
		return err
	}
	_, version := c.BlockConfigService.GetBlocks()
	return ctx.JSON(fiber.Map{
		"version": version,
		"blocks":  blocks,
	})
}
