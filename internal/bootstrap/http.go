package bootstrap

import (
	"context"
	"flag"
	"os"
	"runtime"

	"github.com/genesis-marketplace/marketplace-admin/internal/application"
	"github.com/genesis-marketplace/marketplace-admin/internal/database"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/auth/middleware"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
	"github.com/genesis-marketplace/marketplace-admin/internal/router"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

var migrate = flag.Bool("migrate", false, "migrate the database before serving")

// function to start webserver
func Start(
	lifecycle fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg *koanf.Koanf,
	log zerolog.Logger,
	app *application.Application,
	routes *router.Router,
	gate *middleware.Gate,
	metrics *shared.Metrics,
	alerter shared.Alerter,
	database *database.Database,
	redis *shared.RedisClient,
	amqp *shared.Amqp,
) {
	lifecycle.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := database.ConnectDatabase(ctx); err != nil {
					return err
				}
				log.Info().Msg("1- Connected the Database succesfully!")

				// read flag -migrate to migrate the database
				if *migrate {
					if err := database.MigrateModels(); err != nil {
						return err
					}
				}

				if err := redis.Connect(ctx); err != nil {
					log.Error().Err(err).Msg("An unknown error occurred when to connect the Redis!")
					return err
				}
				if redis.Enabled() {
					log.Info().Msg("2- Connected the Redis succesfully!")
				}

				if err := amqp.Connect(); err != nil {
					log.Error().Err(err).Msg("An unknown error occurred when to connect the Amqp!")
					return err
				}
				if amqp.Enabled() {
					log.Info().Msg("3- Connected the Amqp succesfully!")
				}

				routes.Register()
				app.Handler = router.Handler(cfg, app, gate, metrics, alerter, log)

				if err := app.Listen(); err != nil {
					log.Error().Err(err).Msg("An unknown error occurred when to bind the server!")
					return err
				}

				// Information message
				log.Info().Msgf("%s is running at %s", app.AppName, app.Addr())

				// Debug informations
				if !app.Production {
					log.Debug().Msgf("Hostname: %s", app.Hostname)
					log.Debug().Msgf("Port: %s", app.Port)
					log.Debug().Msgf("Static root: %s", app.StaticRoot)
					log.Debug().Msgf("Processes: %d", runtime.GOMAXPROCS(0))
					log.Debug().Msgf("PID: %d", os.Getpid())
				}

				go func() {
					if err := app.Serve(); err != nil {
						log.Error().Err(err).Msg("An unknown error occurred when to run server!")
						_ = shutdowner.Shutdown(fx.ExitCode(1))
					}
				}()

				return nil
			},
			OnStop: func(ctx context.Context) error {
				log.Info().Msg("Running cleanup tasks...")

				log.Info().Msg("1- Shutdown the Server")
				if err := app.Shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("An unknown error occurred when to shutdown the server!")
				}

				log.Info().Msg("2- Shutdown the Database")
				database.ShutdownDatabase()

				log.Info().Msg("3- Shutdown the Redis")
				if err := redis.Close(); err != nil {
					log.Error().Err(err).Msg("An unknown error occurred when to shutdown the Redis!")
				}

				log.Info().Msg("4- Shutdown the Amqp")
				amqp.Close()

				log.Info().Msgf("%s was successful shutdown.", app.AppName)
				log.Info().Msg("\u001b[96msee you again👋\u001b[0m")

				return nil
			},
		},
	)
}
