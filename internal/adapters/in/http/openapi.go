package http

import (
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPIYAML []byte

var (
	specOnce sync.Once
	spec     *openapi3.T
	specErr  error
)

// Spec returns the parsed and validated API document.
func Spec() (*openapi3.T, error) {
	specOnce.Do(func() {
		loader := openapi3.NewLoader()
		spec, specErr = loader.LoadFromData(openAPIYAML)
		if specErr != nil {
			specErr = fmt.Errorf("load openapi document: %w", specErr)
			return
		}
		if err := spec.Validate(loader.Context); err != nil {
			specErr = fmt.Errorf("validate openapi document: %w", err)
		}
	})
	return spec, specErr
}

// swaggerDoc serves the document to the swagger UI.
type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string { return d.json }

var registerOnce sync.Once

// registerSwagger makes the document available to echo-swagger under the
// default instance name.
func registerSwagger(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	registerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(raw)})
	})
	return nil
}

// OpenAPIValidator rejects requests that do not match the document. Routes the
// document does not describe, such as /health and /swagger, pass through.
func OpenAPIValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         false,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				var routeErr *routers.RouteError
				if errors.As(findErr, &routeErr) {
					return next(c)
				}
				return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: findErr.Error()})
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if validateErr := openapi3filter.ValidateRequest(req.Context(), input); validateErr != nil {
				return c.JSON(http.StatusBadRequest, Error{
					Code:    http.StatusBadRequest,
					Message: firstLine(validateErr.Error()),
				})
			}
			return next(c)
		}
	}, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
