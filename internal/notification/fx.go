package notification

import (
	"github.com/riverasoft/reservas/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("notification",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config) Dispatcher {
	return NewHTTPDispatcher(cfg.NotificationServiceURL, cfg.NotificationTimeout)
}
