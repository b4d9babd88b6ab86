package main

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/restudy-app/restudy-back/internal/config"
	"github.com/restudy-app/restudy-back/internal/db"
	"github.com/restudy-app/restudy-back/internal/service"
	"github.com/restudy-app/restudy-back/internal/transport"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			newLogger,
			db.NewGormClient,
			service.NewGeneral,
			transport.NewHTTPServer,
		),
		fx.Invoke(func(*transport.HTTPServer) {}),
	)

	app.Run()
}

func newLogger() (*zap.SugaredLogger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
