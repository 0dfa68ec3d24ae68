package server

import (
	"go.uber.org/fx"

	"github.com/portyard/yardboard/internal/server/httpserver"
	"github.com/portyard/yardboard/internal/server/svr"
)

func Module() fx.Option {
	return fx.Module("server",
		fx.Provide(httpserver.Create),
		fx.Provide(httpserver.CreateUploadLimiter),
		fx.Provide(svr.CreateEndpointGroups))
}
