package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/riverasoft/reservas/internal/booking"
	"github.com/riverasoft/reservas/internal/clock"
	"github.com/riverasoft/reservas/internal/config"
	"github.com/riverasoft/reservas/internal/identity"
	"github.com/riverasoft/reservas/internal/migration"
	"github.com/riverasoft/reservas/internal/notification"
	"github.com/riverasoft/reservas/internal/observability/metrics"
	"github.com/riverasoft/reservas/internal/server"
	"github.com/riverasoft/reservas/pkg/db"
	"github.com/riverasoft/reservas/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		metrics.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// External collaborators
		identity.Module,
		notification.Module,

		// Functional domains
		booking.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
