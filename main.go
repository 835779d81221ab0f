package main

import (
	"os"
	"os/signal"
	"syscall"

	"wallet-settings/internal/app"
	"wallet-settings/internal/container"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("failed to load .env file")
	}

	c, err := container.BuildContainer()
	if err != nil {
		logrus.WithError(err).Fatal("failed to build container")
	}

	err = c.Invoke(func(application *app.App) {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		go func() {
			<-quit
			application.Stop()
		}()

		if err := application.Start(); err != nil {
			logrus.WithError(err).Fatal("application failed")
		}
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to start application")
	}
}
