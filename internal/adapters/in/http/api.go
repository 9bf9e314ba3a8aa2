package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Wire types of the API. Field names and tags follow openapi.yaml.

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type RegisterRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Role     *int    `json:"role,omitempty"`
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Credential struct {
	Token string `json:"token"`
}

type PasswordChange struct {
	NewPassword string `json:"newPassword"`
}

type BalanceChange struct {
	Delta int64 `json:"delta"`
}

type Balance struct {
	Username string `json:"username"`
	Balance  int64  `json:"balance"`
}

type User struct {
	Username string `json:"username"`
	Role     int    `json:"role"`
	Balance  int64  `json:"balance"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type SendItemRequest struct {
	DstName     string  `json:"dstName"`
	Type        int     `json:"type"`
	Amount      int64   `json:"amount"`
	Description *string `json:"description,omitempty"`
}

type SentItem struct {
	Id   int64 `json:"id"`
	Cost int64 `json:"cost"`
}

type Item struct {
	Id            int64               `json:"id"`
	Cost          int64               `json:"cost"`
	Type          int                 `json:"type"`
	State         int                 `json:"state"`
	SendingDate   openapi_types.Date  `json:"sendingDate"`
	ReceivingDate *openapi_types.Date `json:"receivingDate"`
	SrcName       string              `json:"srcName"`
	DstName       string              `json:"dstName"`
	Description   string              `json:"description"`
}

type ItemList struct {
	Count int    `json:"count"`
	Items []Item `json:"items"`
}

type Waybill struct {
	ItemId      int64              `json:"itemId"`
	Category    string             `json:"category"`
	Cost        int64              `json:"cost"`
	Sender      string             `json:"sender"`
	Recipient   string             `json:"recipient"`
	Description string             `json:"description"`
	SendingDate openapi_types.Date `json:"sendingDate"`
	DueDate     openapi_types.Date `json:"dueDate"`
}

// QueryItemsParams defines parameters for QueryItems.
type QueryItemsParams struct {
	Type           int     `form:"type" json:"type"`
	Id             *int64  `form:"id,omitempty" json:"id,omitempty"`
	SendingYear    *int    `form:"sendingYear,omitempty" json:"sendingYear,omitempty"`
	SendingMonth   *int    `form:"sendingMonth,omitempty" json:"sendingMonth,omitempty"`
	SendingDay     *int    `form:"sendingDay,omitempty" json:"sendingDay,omitempty"`
	ReceivingYear  *int    `form:"receivingYear,omitempty" json:"receivingYear,omitempty"`
	ReceivingMonth *int    `form:"receivingMonth,omitempty" json:"receivingMonth,omitempty"`
	ReceivingDay   *int    `form:"receivingDay,omitempty" json:"receivingDay,omitempty"`
	SrcName        *string `form:"srcName,omitempty" json:"srcName,omitempty"`
	DstName        *string `form:"dstName,omitempty" json:"dstName,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /api/v1/users)
	RegisterUser(ctx echo.Context) error
	// (GET /api/v1/users)
	ListUsers(ctx echo.Context) error
	// (POST /api/v1/users/{username}/balance)
	AdjustUserBalance(ctx echo.Context, username string) error
	// (POST /api/v1/sessions)
	Login(ctx echo.Context) error
	// (DELETE /api/v1/sessions)
	Logout(ctx echo.Context) error
	// (GET /api/v1/me)
	GetMe(ctx echo.Context) error
	// (PUT /api/v1/me/password)
	ChangePassword(ctx echo.Context) error
	// (POST /api/v1/me/balance)
	AdjustMyBalance(ctx echo.Context) error
	// (GET /api/v1/items)
	QueryItems(ctx echo.Context, params QueryItemsParams) error
	// (POST /api/v1/items)
	SendItem(ctx echo.Context) error
	// (DELETE /api/v1/items/{id})
	DeleteItem(ctx echo.Context, id int64) error
	// (POST /api/v1/items/{id}/receive)
	ReceiveItem(ctx echo.Context, id int64) error
	// (GET /api/v1/items/{id}/waybill)
	GetWaybill(ctx echo.Context, id int64) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) RegisterUser(ctx echo.Context) error {
	return w.Handler.RegisterUser(ctx)
}

func (w *ServerInterfaceWrapper) ListUsers(ctx echo.Context) error {
	return w.Handler.ListUsers(ctx)
}

func (w *ServerInterfaceWrapper) AdjustUserBalance(ctx echo.Context) error {
	var username string
	err := runtime.BindStyledParameterWithOptions("simple", "username", ctx.Param("username"), &username,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter username: %s", err))
	}
	return w.Handler.AdjustUserBalance(ctx, username)
}

func (w *ServerInterfaceWrapper) Login(ctx echo.Context) error {
	return w.Handler.Login(ctx)
}

func (w *ServerInterfaceWrapper) Logout(ctx echo.Context) error {
	return w.Handler.Logout(ctx)
}

func (w *ServerInterfaceWrapper) GetMe(ctx echo.Context) error {
	return w.Handler.GetMe(ctx)
}

func (w *ServerInterfaceWrapper) ChangePassword(ctx echo.Context) error {
	return w.Handler.ChangePassword(ctx)
}

func (w *ServerInterfaceWrapper) AdjustMyBalance(ctx echo.Context) error {
	return w.Handler.AdjustMyBalance(ctx)
}

func (w *ServerInterfaceWrapper) QueryItems(ctx echo.Context) error {
	var params QueryItemsParams
	query := ctx.QueryParams()

	if err := runtime.BindQueryParameter("form", true, true, "type", query, &params.Type); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter type: %s", err))
	}

	optional := []struct {
		name string
		dest any
	}{
		{"id", &params.Id},
		{"sendingYear", &params.SendingYear},
		{"sendingMonth", &params.SendingMonth},
		{"sendingDay", &params.SendingDay},
		{"receivingYear", &params.ReceivingYear},
		{"receivingMonth", &params.ReceivingMonth},
		{"receivingDay", &params.ReceivingDay},
		{"srcName", &params.SrcName},
		{"dstName", &params.DstName},
	}
	for _, p := range optional {
		if err := runtime.BindQueryParameter("form", true, false, p.name, query, p.dest); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", p.name, err))
		}
	}

	return w.Handler.QueryItems(ctx, params)
}

func (w *ServerInterfaceWrapper) SendItem(ctx echo.Context) error {
	return w.Handler.SendItem(ctx)
}

func (w *ServerInterfaceWrapper) DeleteItem(ctx echo.Context) error {
	id, err := bindItemID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.DeleteItem(ctx, id)
}

func (w *ServerInterfaceWrapper) ReceiveItem(ctx echo.Context) error {
	id, err := bindItemID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ReceiveItem(ctx, id)
}

func (w *ServerInterfaceWrapper) GetWaybill(ctx echo.Context) error {
	id, err := bindItemID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetWaybill(ctx, id)
}

func bindItemID(ctx echo.Context) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/api/v1/users", w.RegisterUser)
	router.GET(baseURL+"/api/v1/users", w.ListUsers)
	router.POST(baseURL+"/api/v1/users/:username/balance", w.AdjustUserBalance)
	router.POST(baseURL+"/api/v1/sessions", w.Login)
	router.DELETE(baseURL+"/api/v1/sessions", w.Logout)
	router.GET(baseURL+"/api/v1/me", w.GetMe)
	router.PUT(baseURL+"/api/v1/me/password", w.ChangePassword)
	router.POST(baseURL+"/api/v1/me/balance", w.AdjustMyBalance)
	router.GET(baseURL+"/api/v1/items", w.QueryItems)
	router.POST(baseURL+"/api/v1/items", w.SendItem)
	router.DELETE(baseURL+"/api/v1/items/:id", w.DeleteItem)
	router.POST(baseURL+"/api/v1/items/:id/receive", w.ReceiveItem)
	router.GET(baseURL+"/api/v1/items/:id/waybill", w.GetWaybill)
}
