// Package bootstrap runs a finite command with a uniform lifecycle.
//
// An App loads nothing itself: it takes a typed config, applies defaults,
// validates it and initializes logging. RunTask then executes start hooks,
// the task (canceled on SIGINT/SIGTERM), and stop hooks bounded by a
// graceful timeout.
//
//	app, err := bootstrap.NewApp(&cfg, bootstrap.WithLogger(log))
//	app.OnStop(shutdownTelemetry)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return run(ctx)
//	})
package bootstrap
