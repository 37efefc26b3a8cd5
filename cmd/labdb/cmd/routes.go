package cmd

import (
	"github.com/labstack/echo/v4"
	"github.com/materials-commons/labdb/pkg/labapi/webapi"
	"gorm.io/gorm"
)

type RouteOpts struct {
	db *gorm.DB
}

func setupRoutes(e *echo.Echo, opts RouteOpts) {
	g := e.Group("/api")

	exportController := webapi.NewExportController(opts.db)
	g.GET("/export", exportController.ExportTree)
	g.GET("/report", exportController.Report)

	objectController := webapi.NewObjectController(opts.db)
	g.GET("/:kind", objectController.Search)
	g.POST("/:kind", objectController.Add)
	g.GET("/:kind/:id", objectController.GetByID)
	g.PATCH("/:kind/:id", objectController.Update)
	g.DELETE("/:kind/:id", objectController.Delete)
}
