package http

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"courier/internal/core/application/auth"
	"courier/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPISpec []byte

const (
	principalKey  = "courier.principal"
	credentialKey = "courier.credential"
)

// GetSwagger parses and validates the embedded API document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// swaggerDoc serves the embedded document to the API browser as JSON.
type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var registerDocOnce sync.Once

// RegisterSwaggerDoc makes doc available under swag.Name for echo-swagger.
func RegisterSwaggerDoc(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal openapi document: %w", err)
	}
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(raw)})
	})
	return nil
}

// CredentialVerifier resolves a bearer credential to the caller behind it.
type CredentialVerifier interface {
	Verify(ctx context.Context, credential string) (auth.Principal, error)
}

// RequestValidator checks every request that matches an operation of doc
// against its parameters, body and security requirements. Bearer credentials
// are verified while checking security, and the resulting principal is put on
// the echo context. Requests outside the document pass through untouched.
func RequestValidator(doc *openapi3.T, verifier CredentialVerifier) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			var (
				principal  *auth.Principal
				credential string
				authErr    error
			)
			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: func(ctx context.Context, in *openapi3filter.AuthenticationInput) error {
						token, err := bearerToken(in.RequestValidationInput.Request)
						if err != nil {
							authErr = err
							return err
						}
						p, err := verifier.Verify(ctx, token)
						if err != nil {
							authErr = err
							return err
						}
						principal, credential = &p, token
						return nil
					},
				},
			}

			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				if authErr != nil {
					return authErr
				}
				return errs.NewValueIsInvalidErrorWithCause("request", err)
			}

			if principal != nil {
				c.Set(principalKey, *principal)
				c.Set(credentialKey, credential)
			}
			return next(c)
		}
	}, nil
}

func bearerToken(req *http.Request) (string, error) {
	header := req.Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", errs.NewAuthError("credential is required")
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", errs.NewAuthError("authorization header must carry a bearer credential")
	}
	return strings.TrimSpace(token), nil
}

func principalFrom(c echo.Context) (auth.Principal, error) {
	p, ok := c.Get(principalKey).(auth.Principal)
	if !ok {
		return auth.Principal{}, errs.NewAuthError("credential is required")
	}
	return p, nil
}

func credentialFrom(c echo.Context) (string, error) {
	token, ok := c.Get(credentialKey).(string)
	if !ok || token == "" {
		return "", errs.NewAuthError("credential is required")
	}
	return token, nil
}
