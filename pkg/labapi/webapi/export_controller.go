package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/materials-commons/labdb/pkg/labdb/export"
	"github.com/materials-commons/labdb/pkg/labdb/stor"
	"gorm.io/gorm"
)

type ExportController struct {
	db *gorm.DB
}

func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{db: db}
}

func (c *ExportController) ExportTree(ctx echo.Context) error {
	var (
		tree *export.Tree
		err  error
	)

	err = stor.WithObjectStor(c.db, func(s stor.ObjectStor) error {
		tree, err = export.ExportTree(s)
		return err
	})
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, tree)
}

// Report returns the project summary, or with ?detailed=true the sequences
// of every project with their measurement counts.
func (c *ExportController) Report(ctx echo.Context) error {
	detailed, err := boolQuery(ctx, "detailed", false)
	if err != nil {
		return err
	}

	var report interface{}
	err = stor.WithObjectStor(c.db, func(s stor.ObjectStor) error {
		if detailed {
			report, err = export.DetailedReport(s)
		} else {
			report, err = export.SummaryReport(s)
		}
		return err
	})
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, report)
}
