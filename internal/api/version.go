package api

import (
	"net/http"

	"github.com/emrgen/article/internal/service"
	"github.com/labstack/echo/v4"
)

type VersionRouter struct {
	e        *echo.Echo
	versions *service.ArticleVersionService
}

func NewVersionRouter(e *echo.Echo, versions *service.ArticleVersionService) *VersionRouter {
	return &VersionRouter{
		e:        e,
		versions: versions,
	}
}

func (r *VersionRouter) Bind() {
	r.e.GET("/v1/versions/:code", r.getVersion)
	r.e.POST("/v1/versions/:code/promote", r.promoteVersion)
	r.e.GET("/v1/article-languages/:code/actual-version", r.getActualVersion)
}

func (r *VersionRouter) getVersion(c echo.Context) error {
	languageCode := c.QueryParam("languageCode")
	if languageCode == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "languageCode is required")
	}

	version, err := r.versions.GetArticleVersion(c.Request().Context(), c.Param("code"), languageCode)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, version)
}

func (r *VersionRouter) promoteVersion(c echo.Context) error {
	var req struct {
		LanguageCode string `json:"languageCode"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.LanguageCode == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "languageCode is required")
	}

	version, err := r.versions.PromoteVersion(c.Request().Context(), c.Param("code"), req.LanguageCode)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, version)
}

func (r *VersionRouter) getActualVersion(c echo.Context) error {
	version, err := r.versions.GetActualVersion(c.Request().Context(), c.Param("code"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, version)
}
