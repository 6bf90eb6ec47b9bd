//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"EconDash/internal/app"
	"EconDash/internal/collector"
)

// InitializeApp builds the App via Wire. Caller must call cleanup when done.
func InitializeApp(ctx context.Context, path app.ConfigPath) (*app.App, func(), error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvideLogger,
		app.ProvideFetcher,
		wire.Bind(new(collector.Fetcher), new(*collector.FredFetcher)),
		app.ProvideCollector,
		app.ProvideFallback,
		app.ProvideRecorder,
		app.ProvideService,
		app.ProvideScheduler,
		app.ProvideServer,
		wire.Struct(new(app.App), "*"),
	)
	return nil, nil, nil
}
