package api

import (
	"errors"
	"net/http"

	"github.com/emrgen/article/internal/service"
	"github.com/emrgen/article/internal/store"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// httpError translates domain errors into HTTP responses. Unknown errors are
// logged and surface as a plain 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, store.ErrArticleNotFound),
		errors.Is(err, store.ErrArticleLanguageNotFound),
		errors.Is(err, store.ErrArticleVersionNotFound),
		errors.Is(err, store.ErrActualVersionNotFound),
		errors.Is(err, store.ErrSchemaNotFound),
		errors.Is(err, store.ErrLanguageNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrLanguageShouldExist),
		errors.Is(err, service.ErrVersionShouldExist):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrNameNotUnique),
		errors.Is(err, service.ErrDuplicateLanguage),
		errors.Is(err, service.ErrAlreadyActualSchema),
		errors.Is(err, service.ErrAlreadyApprovedSchema):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	var verr validation.Errors
	if errors.As(err, &verr) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, verr.Error())
	}

	logrus.Errorf("unhandled error: %v", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
