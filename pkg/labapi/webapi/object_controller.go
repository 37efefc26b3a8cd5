package webapi

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/materials-commons/labdb/pkg/labdb/labmodel"
	"github.com/materials-commons/labdb/pkg/labdb/stor"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ObjectController serves the object store over HTTP. Every request runs in
// its own transaction.
type ObjectController struct {
	db *gorm.DB
}

func NewObjectController(db *gorm.DB) *ObjectController {
	return &ObjectController{db: db}
}

func (c *ObjectController) Search(ctx echo.Context) error {
	kind, err := kindParam(ctx)
	if err != nil {
		return err
	}

	filters, err := queryFilters(ctx, kind)
	if err != nil {
		return err
	}

	var records []labmodel.Record
	err = stor.WithObjectStor(c.db, func(s stor.ObjectStor) error {
		records, err = s.Search(kind, filters)
		return err
	})
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, records)
}

func (c *ObjectController) GetByID(ctx echo.Context) error {
	kind, id, err := kindAndIDParams(ctx)
	if err != nil {
		return err
	}

	var record labmodel.Record
	err = stor.WithObjectStor(c.db, func(s stor.ObjectStor) error {
		record, err = s.GetByID(kind, id)
		return err
	})
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, record)
}

// Add stores the record in the request body. ?allow_duplicates=true skips
// the duplicate check.
func (c *ObjectController) Add(ctx echo.Context) error {
	kind, err := kindParam(ctx)
	if err != nil {
		return err
	}

	allowDuplicates, err := boolQuery(ctx, "allow_duplicates", false)
	if err != nil {
		return err
	}

	record := kind.New()
	if err := ctx.Bind(record); err != nil {
		return err
	}

	var result stor.AddResult
	err = stor.WithObjectStor(c.db, func(s stor.ObjectStor) error {
		result, err = s.Add(record, allowDuplicates)
		return err
	})
	if err != nil {
		return toHTTPError(err)
	}

	switch result.Condition {
	case stor.DanglingReference:
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "parent of "+kind.String()+" does not exist")
	case stor.DuplicateDetected:
		return echo.NewHTTPError(http.StatusConflict, "duplicate "+kind.String()+" not added")
	}

	return ctx.JSON(http.StatusCreated, result)
}

// Update applies the patch in the request body. ?bump_time=false keeps the
// time of the row.
func (c *ObjectController) Update(ctx echo.Context) error {
	kind, id, err := kindAndIDParams(ctx)
	if err != nil {
		return err
	}

	bumpTime, err := boolQuery(ctx, "bump_time", true)
	if err != nil {
		return err
	}

	patch := kind.NewPatch()
	if err := ctx.Bind(patch); err != nil {
		return err
	}

	var record labmodel.Record
	err = stor.WithObjectStor(c.db, func(s stor.ObjectStor) error {
		record, err = s.Update(kind, id, patch, bumpTime)
		return err
	})
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, record)
}

func (c *ObjectController) Delete(ctx echo.Context) error {
	kind, id, err := kindAndIDParams(ctx)
	if err != nil {
		return err
	}

	err = stor.WithObjectStor(c.db, func(s stor.ObjectStor) error {
		return s.Delete(kind, id)
	})
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func kindParam(ctx echo.Context) (labmodel.Kind, error) {
	kind, err := labmodel.ParseKind(ctx.Param("kind"))
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return kind, nil
}

func kindAndIDParams(ctx echo.Context) (labmodel.Kind, int, error) {
	kind, err := kindParam(ctx)
	if err != nil {
		return "", 0, err
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return "", 0, echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	return kind, id, nil
}

func queryFilters(ctx echo.Context, kind labmodel.Kind) (stor.Filters, error) {
	params := ctx.QueryParams()
	columns := make([]string, 0, len(params))
	for column := range params {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	filters := make(stor.Filters, len(columns))
	for _, column := range columns {
		value, err := kind.ParseColumnValue(column, params.Get(column))
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		filters[column] = value
	}

	return filters, nil
}

func boolQuery(ctx echo.Context, name string, def bool) (bool, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, echo.NewHTTPError(http.StatusBadRequest, name+" must be true or false")
	}

	return v, nil
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, stor.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, stor.ErrUnknownKind), errors.Is(err, stor.ErrUnknownColumn), errors.Is(err, stor.ErrWrongKind):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
	}
}
