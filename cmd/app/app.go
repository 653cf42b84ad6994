package main

import (
	"os"

	"github.com/DRSN-tech/catalog-editor/internal/app"
	config "github.com/DRSN-tech/catalog-editor/internal/cfg"
	"github.com/DRSN-tech/catalog-editor/pkg/logger"
)

//	@title			Catalog editor gateway
//	@version		1.0
//	@description	Сессии редактирования товаров поверх удалённого каталога
//	@BasePath		/api/v1
func main() {
	log := logger.NewZerologLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
