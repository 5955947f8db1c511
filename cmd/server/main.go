package main

import (
	"github.com/sirupsen/logrus"

	"github.com/Hitesh-Bhor28/bloomai-backend/config"
	"github.com/Hitesh-Bhor28/bloomai-backend/internal/appServer"
)

func main() {
	viperInstance, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("cannot load config: %s", err.Error())
	}

	cfg, err := config.ParseConfig(viperInstance)
	if err != nil {
		logrus.Fatalf("cannot parse config: %s", err.Error())
	}

	appServer.NewServer(cfg)
}
