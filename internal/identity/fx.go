package identity

import (
	"github.com/riverasoft/reservas/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("identity",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config) Resolver {
	return NewHTTPResolver(cfg.UserServiceURL, cfg.IdentityTimeout)
}
