package scheduler

import (
	"context"

	"go.uber.org/fx"
)

var NewSchedulerModule = fx.Options(
	fx.Provide(NewScheduler),
	fx.Invoke(RegisterJobs),
)

// RegisterJobs starts the jobs once the database is connected and stops them on shutdown
func RegisterJobs(lifecycle fx.Lifecycle, s *Scheduler) {
	lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go s.StartPoolMonitor()
			return nil
		},
		OnStop: func(context.Context) error {
			s.Stop()
			return nil
		},
	})
}
