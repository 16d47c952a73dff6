package main

import (
	"flag"
	"time"

	"go.uber.org/fx"

	fxzerolog "github.com/efectn/fx-zerolog"
	"github.com/genesis-marketplace/marketplace-admin/internal/application"
	"github.com/genesis-marketplace/marketplace-admin/internal/bootstrap"
	"github.com/genesis-marketplace/marketplace-admin/internal/database"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/auth"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/marketplace"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/scheduler"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
	"github.com/genesis-marketplace/marketplace-admin/internal/router"
	_ "go.uber.org/automaxprocs"
)

func main() {
	flag.Parse()
	shared.LoadDotEnv()

	fx.New(
		/* provide patterns */
		// basic
		shared.NewSharedModule,
		// application
		fx.Provide(application.NewApplication),
		// database
		fx.Provide(database.NewDatabase),
		// router
		fx.Provide(router.NewRouter),
		/* provide modules */
		auth.NewAuthModule,
		marketplace.NewMarketplaceModule,
		// start aplication
		fx.Invoke(bootstrap.Start),
		// jobs start after the database is connected
		scheduler.NewSchedulerModule,
		// define logger
		fx.WithLogger(fxzerolog.Init()),
		fx.StartTimeout(time.Minute),
	).Run()
}
