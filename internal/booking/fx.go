package booking

import (
	"github.com/riverasoft/reservas/internal/booking/repository"
	"github.com/riverasoft/reservas/internal/booking/service"
	"go.uber.org/fx"
)

var Module = fx.Module("booking.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
