package api

import (
	"net/http"

	"github.com/emrgen/article/internal/service"
	"github.com/labstack/echo/v4"
)

type SchemaRouter struct {
	e       *echo.Echo
	schemas *service.SchemaService
}

func NewSchemaRouter(e *echo.Echo, schemas *service.SchemaService) *SchemaRouter {
	return &SchemaRouter{
		e:       e,
		schemas: schemas,
	}
}

func (r *SchemaRouter) Bind() {
	r.e.POST("/v1/schemas", r.createDraft)
	r.e.GET("/v1/schemas/:code", r.getSchema)
	r.e.GET("/v1/schemas/:code/renovation", r.checkRenovation)
	r.e.PUT("/v1/schemas/:code", r.updateDraft)
	r.e.POST("/v1/schemas/:code/renovate", r.renovateDraft)
	r.e.POST("/v1/schemas/:code/approve", r.approveDraft)
}

// queryScope reads the schema scope from query parameters on read endpoints.
func queryScope(c echo.Context) (schemaScope, error) {
	scope := schemaScope{
		ArticleVersionCode: c.QueryParam("articleVersionCode"),
		LanguageCode:       c.QueryParam("languageCode"),
	}
	return scope, scope.Validate()
}

func (r *SchemaRouter) createDraft(c echo.Context) error {
	var req createDraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.Validate(); err != nil {
		return httpError(err)
	}

	schema, err := r.schemas.CreateDraftSchema(c.Request().Context(), toPayloads(req.Sections), req.context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, schema)
}

func (r *SchemaRouter) getSchema(c echo.Context) error {
	scope, err := queryScope(c)
	if err != nil {
		return httpError(err)
	}

	schema, err := r.schemas.GetSchema(c.Request().Context(), c.Param("code"), scope.context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, schema)
}

func (r *SchemaRouter) checkRenovation(c echo.Context) error {
	scope, err := queryScope(c)
	if err != nil {
		return httpError(err)
	}

	needed, err := r.schemas.CheckRenovation(c.Request().Context(), c.Param("code"), scope.context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"shouldBeRenovated": needed})
}

func (r *SchemaRouter) updateDraft(c echo.Context) error {
	var req updateDraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.Validate(); err != nil {
		return httpError(err)
	}

	schema, err := r.schemas.UpdateDraftSchema(c.Request().Context(), c.Param("code"), toPayloads(req.Sections), req.context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, schema)
}

func (r *SchemaRouter) renovateDraft(c echo.Context) error {
	var req updateDraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.Validate(); err != nil {
		return httpError(err)
	}

	schema, err := r.schemas.RenovateDraftSchema(c.Request().Context(), c.Param("code"), toPayloads(req.Sections), req.context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, schema)
}

func (r *SchemaRouter) approveDraft(c echo.Context) error {
	var scope schemaScope
	if err := c.Bind(&scope); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := scope.Validate(); err != nil {
		return httpError(err)
	}

	version, err := r.schemas.ApproveDraft(c.Request().Context(), c.Param("code"), scope.context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, version)
}
