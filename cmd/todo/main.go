package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"crud-apps/internal/app"
	"crud-apps/internal/config"
)

func setup() (*app.App, error) {
	cfg, err := config.Load(config.Todo)
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}

func main() {
	application, err := setup()
	if err != nil {
		logrus.Fatalf("app init: %v", err)
	}

	if err := application.Run(context.Background()); err != nil {
		logrus.Fatalf("app run: %v", err)
	}
}
