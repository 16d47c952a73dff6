package marketplace

import (
	"github.com/genesis-marketplace/marketplace-admin/internal/application"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/marketplace/controller"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/marketplace/repository"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/marketplace/service"
	"go.uber.org/fx"
)

type MarketplaceRouter struct {
	App        *application.Application
	Controller *controller.Controller
}

var NewMarketplaceModule = fx.Options(
	fx.Provide(repository.NewTaskRepository),
	fx.Provide(repository.NewUserRepository),
	fx.Provide(repository.NewTelegramUserRepository),
	fx.Provide(repository.NewInviteLogRepository),
	fx.Provide(repository.NewTradingDataRepository),
	fx.Provide(repository.NewVolumeRepository),

	fx.Provide(service.NewTaskService),
	fx.Provide(service.NewUserService),
	fx.Provide(service.NewTelegramUserService),
	fx.Provide(service.NewInviteLogService),
	fx.Provide(service.NewTradingDataService),
	fx.Provide(service.NewVolumeService),

	fx.Provide(controller.NewController),

	fx.Provide(NewMarketplaceRouter),
)

func NewMarketplaceRouter(app *application.Application, controller *controller.Controller) *MarketplaceRouter {
	return &MarketplaceRouter{
		App:        app,
		Controller: controller,
	}
}

func (_i *MarketplaceRouter) RegisterHealthRoutes() {
	_i.App.Router.GET("/api/health", _i.Controller.Health.Check)
}

// access control for these paths is applied by the auth gate in front of the router
func (_i *MarketplaceRouter) RegisterMarketplaceRoutes() {
	r := _i.App.Router

	tasks := _i.Controller.Tasks
	r.GET("/api/tasks", tasks.List)
	r.POST("/api/tasks", tasks.Create)
	r.PUT("/api/tasks/{id}", tasks.Update)
	r.DELETE("/api/tasks/{id}", tasks.Delete)

	users := _i.Controller.Users
	r.GET("/api/users", users.List)
	r.POST("/api/users", users.Create)

	telegramUsers := _i.Controller.TelegramUsers
	r.GET("/api/telegram-users", telegramUsers.List)
	r.POST("/api/telegram-users", telegramUsers.Create)

	r.GET("/api/telegram-invite-logs", _i.Controller.InviteLogs.List)

	data := _i.Controller.Data
	r.GET("/api/data", data.List)
	r.POST("/api/data", data.Create)
	r.PUT("/api/data/{id}", data.Update)
	r.DELETE("/api/data/{id}", data.Delete)

	volume := _i.Controller.Volume
	r.GET("/api/volume", volume.List)
	r.POST("/api/volume", volume.Create)
	r.PUT("/api/volume/{id}", volume.Update)
	r.DELETE("/api/volume/{id}", volume.Delete)
}
