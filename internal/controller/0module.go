package controller

import (
	"go.uber.org/fx"

	"github.com/portyard/yardboard/internal/controller/meta"
	v1 "github.com/portyard/yardboard/internal/controller/v1"
)

func Module() fx.Option {
	return fx.Module("controller",
		meta.Module(),
		v1.Module(),
	)
}
