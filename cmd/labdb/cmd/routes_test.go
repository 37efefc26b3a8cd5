package cmd

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/materials-commons/labdb/pkg/tutil"
	"github.com/stretchr/testify/require"
)

func TestRoutes(t *testing.T) {
	e := echo.New()
	setupRoutes(e, RouteOpts{db: tutil.NewTestDB(t)})

	do := func(method, target, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusCreated, do(http.MethodPost, "/api/gateware", `{"name":"kasli"}`).Code)
	require.Equal(t, http.StatusCreated, do(http.MethodPost, "/api/devicedb", `{"name":"ddb","gateware_id":1}`).Code)
	require.Equal(t, http.StatusUnprocessableEntity, do(http.MethodPost, "/api/project", `{"name":"p","devicedb_id":5}`).Code)

	rec := do(http.MethodGet, "/api/devicedb/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"gateware_id":1`)

	rec = do(http.MethodGet, "/api/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"devicedb":{`)

	require.Equal(t, http.StatusOK, do(http.MethodPatch, "/api/gateware/1", `{"path":"/gw"}`).Code)
	require.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/api/gateware/1", "").Code)
	require.Equal(t, http.StatusNotFound, do(http.MethodGet, "/api/devicedb/1", "").Code)
	require.Equal(t, http.StatusBadRequest, do(http.MethodGet, "/api/experiment", "").Code)

	rec = do(http.MethodGet, "/api/report", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestParseFilters(t *testing.T) {
	filters, err := parseFilters("project", []string{"name=trap", "devicedb_id=3"})
	require.NoError(t, err)
	require.Equal(t, "trap", filters["name"])
	require.Equal(t, 3, filters["devicedb_id"])

	_, err = parseFilters("project", []string{"name"})
	require.Error(t, err)

	_, err = parseFilters("project", []string{"path=/x"})
	require.Error(t, err)
}
