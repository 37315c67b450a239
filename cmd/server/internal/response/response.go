package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/acmchapter/recruitment-api/internal/types"
)

var (
	InternalServerError = echo.NewHTTPError(
		http.StatusInternalServerError,
		types.StringError("something went wrong"),
	)
	UnauthorizedError = echo.NewHTTPError(
		http.StatusUnauthorized,
		types.StringError("authentication required"),
	)
)
