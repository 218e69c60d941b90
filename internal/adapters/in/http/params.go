package http

import (
	"net/http"
	"strconv"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ActorHeader carries the authenticated user id set by the upstream gateway.
const ActorHeader = "X-User-ID"

func actor(c echo.Context) (kernel.UUID, error) {
	raw := c.Request().Header.Get(ActorHeader)
	if raw == "" {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusUnauthorized, ActorHeader+" header is required")
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusUnauthorized, ActorHeader+" header is not a valid id")
	}
	return id, nil
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter "+name)
	}
	return kernel.UUIDFromBytes(id[:])
}

func optionalID(raw string) (*kernel.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return &id, nil
}

func ids(raw []string) ([]kernel.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	parsed, err := kernel.UUIDsFromStrings(raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("ids", err)
	}
	return parsed, nil
}

func requiredID(raw, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter "+name)
	}
	return v, nil
}

// bind decodes and validates the request body.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return c.Validate(dst)
}
