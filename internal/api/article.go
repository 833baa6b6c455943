package api

import (
	"net/http"

	"github.com/emrgen/article/internal/service"
	"github.com/labstack/echo/v4"
)

type ArticleRouter struct {
	e        *echo.Echo
	articles *service.ArticleService
}

func NewArticleRouter(e *echo.Echo, articles *service.ArticleService) *ArticleRouter {
	return &ArticleRouter{
		e:        e,
		articles: articles,
	}
}

func (r *ArticleRouter) Bind() {
	r.e.POST("/v1/languages", r.createLanguage)
	r.e.POST("/v1/categories", r.createCategory)
	r.e.POST("/v1/articles", r.createArticle)
	r.e.GET("/v1/articles", r.listArticles)
	r.e.GET("/v1/articles/:code", r.getArticle)
	r.e.POST("/v1/articles/:code/languages", r.addLanguage)
}

func (r *ArticleRouter) createLanguage(c echo.Context) error {
	var req createLanguageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.Validate(); err != nil {
		return httpError(err)
	}

	language, err := r.articles.CreateLanguage(c.Request().Context(), req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, language)
}

func (r *ArticleRouter) createCategory(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.Validate(); err != nil {
		return httpError(err)
	}

	category, err := r.articles.CreateCategory(c.Request().Context(), req.Name, req.ParentCode)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (r *ArticleRouter) createArticle(c echo.Context) error {
	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.Validate(); err != nil {
		return httpError(err)
	}

	article, err := r.articles.CreateArticle(c.Request().Context(), service.CreateArticleRequest{
		Name:         req.Name,
		Type:         req.Type,
		LanguageCode: req.LanguageCode,
		CategoryCode: req.CategoryCode,
		Sections:     toPayloads(req.Sections),
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, article)
}

func (r *ArticleRouter) getArticle(c echo.Context) error {
	languageCode := c.QueryParam("languageCode")
	if languageCode == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "languageCode is required")
	}

	article, err := r.articles.GetArticle(c.Request().Context(), c.Param("code"), languageCode)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, article)
}

func (r *ArticleRouter) listArticles(c echo.Context) error {
	languageCode := c.QueryParam("languageCode")
	if languageCode == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "languageCode is required")
	}

	var categoryCode *string
	if code := c.QueryParam("categoryCode"); code != "" {
		categoryCode = &code
	}

	items, err := r.articles.ListArticles(c.Request().Context(), categoryCode, languageCode)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (r *ArticleRouter) addLanguage(c echo.Context) error {
	var req addLanguageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.Validate(); err != nil {
		return httpError(err)
	}

	article, err := r.articles.AddArticleLanguage(c.Request().Context(), c.Param("code"), service.AddLanguageRequest{
		Name:         req.Name,
		LanguageCode: req.LanguageCode,
		Sections:     toPayloads(req.Sections),
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, article)
}
