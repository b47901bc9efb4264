package main

import (
	"fxconvert/internal/app"

	"github.com/sirupsen/logrus"
)

// @title FX Convert API
// @version 1.0
// @description Directional exchange rates with multi-hop conversion.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("Application stopped with error")
	}
}
