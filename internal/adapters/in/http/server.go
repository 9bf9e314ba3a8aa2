package http

import (
	"context"
	"log/slog"
	"net/http"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/application/usecases/queries"
	"courier/internal/core/domain/model/item"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/user"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

type CommandHandlerWithResult[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// SessionManager opens and closes sessions.
type SessionManager interface {
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, credential string) error
}

// Handlers groups the use cases the API exposes.
type Handlers struct {
	RegisterUser   CommandHandler[commands.RegisterUserCommand]
	ChangePassword CommandHandler[commands.ChangePasswordCommand]
	AdjustBalance  CommandHandlerWithResult[commands.AdjustBalanceCommand, int64]
	SendItem       CommandHandlerWithResult[commands.SendItemCommand, commands.SendItemResult]
	ReceiveItem    CommandHandler[commands.ReceiveItemCommand]
	DeleteItem     CommandHandler[commands.DeleteItemCommand]

	GetUserInfo QueryHandler[queries.GetUserInfoQuery, queries.UserInfoResponse]
	ListUsers   QueryHandler[queries.ListUsersQuery, []queries.UserInfoResponse]
	QueryItems  QueryHandler[queries.QueryItemsQuery, []queries.ItemResponse]
	GetWaybill  QueryHandler[queries.GetWaybillQuery, ports.Waybill]
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	sessions SessionManager
	logger   *slog.Logger
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, sessions SessionManager, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		sessions: sessions,
		logger:   logger.With("component", "http"),
	}
}

// RegisterUser handles POST /api/v1/users.
func (s *Server) RegisterUser(ctx echo.Context) error {
	var body RegisterRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badBody(ctx, err)
	}

	role := user.Customer
	if body.Role != nil {
		role = user.Role(*body.Role)
	}
	profile := user.Profile{
		Name:    deref(body.Name),
		Phone:   deref(body.Phone),
		Address: deref(body.Address),
	}

	cmd, err := commands.NewRegisterUserCommand(body.Username, body.Password, role, profile)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}
	if err = s.handlers.RegisterUser.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, s.logger, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// ListUsers handles GET /api/v1/users.
func (s *Server) ListUsers(ctx echo.Context) error {
	caller, err := principalFrom(ctx)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}

	query, err := queries.NewListUsersQuery(caller.Username)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}
	users, err := s.handlers.ListUsers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}

	response := make([]User, len(users))
	for i, u := range users {
		response[i] = userOf(u)
	}
	return ctx.JSON(http.StatusOK, response)
}

// AdjustUserBalance handles POST /api/v1/users/{username}/balance.
func (s *Server) AdjustUserBalance(ctx echo.Context, username string) error {
	return s.adjustBalance(ctx, username)
}

// AdjustMyBalance handles POST /api/v1/me/balance.
func (s *Server) AdjustMyBalance(ctx echo.Context) error {
	return s.adjustBalance(ctx, "")
}

// adjustBalance applies the requested delta to target, or to the caller when
// target is empty.
func (s *Server) adjustBalance(ctx echo.Context, target string) error {
	caller, err := principalFrom(ctx)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}
	if target == "" {
		target = caller.Username
	}

	var body BalanceChange
	if err = ctx.Bind(&body); err != nil {
		return s.badBody(ctx, err)
	}

	cmd, err := commands.NewAdjustBalanceCommand(caller.Username, target, body.Delta)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}
	balance, err := s.handlers.AdjustBalance.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, Balance{Username: target, Balance: balance})
}

// Login handles POST /api/v1/sessions.
func (s *Server) Login(ctx echo.Context) error {
	var body LoginRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badBody(ctx, err)
	}

	token, err := s.sessions.Login(ctx.Request().Context(), body.Username, body.Password)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusCreated, Credential{Token: token})
}

// Logout handles DELETE /api/v1/sessions.
func (s *Server) Logout(ctx echo.Context) error {
	credential, err := credentialFrom(ctx)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}
	if err = s.sessions.Logout(ctx.Request().Context(), credential); err != nil {
		return errorResponse(ctx, s.logger, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetMe handles GET /api/v1/me.
func (s *Server) GetMe(ctx echo.Context) error {
	caller, err := principalFrom(ctx)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}

	query, err := queries.NewGetUserInfoQuery(caller.Username)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}
	info, err := s.handlers.GetUserInfo.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, userOf(info))
}

// ChangePassword handles PUT /api/v1/me/password.
func (s *Server) ChangePassword(ctx echo.Context) error {
	caller, err := principalFrom(ctx)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}

	var body PasswordChange
	if err = ctx.Bind(&body); err != nil {
		return s.badBody(ctx, err)
	}

	cmd, err := commands.NewChangePasswordCommand(caller.Username, body.NewPassword)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}
	if err = s.handlers.ChangePassword.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, s.logger, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// QueryItems handles GET /api/v1/items.
func (s *Server) QueryItems(ctx echo.Context, params QueryItemsParams) error {
	caller, err := principalFrom(ctx)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}

	filter := item.Filter{
		ID: params.Id,
		SendingDate: item.DateParts{
			Year:  params.SendingYear,
			Month: params.SendingMonth,
			Day:   params.SendingDay,
		},
		ReceivingDate: item.DateParts{
			Year:  params.ReceivingYear,
			Month: params.ReceivingMonth,
			Day:   params.ReceivingDay,
		},
		Sender:    params.SrcName,
		Recipient: params.DstName,
	}

	query, err := queries.NewQueryItemsQuery(caller.Username, caller.Role, queries.ItemScope(params.Type), filter)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}
	items, err := s.handlers.QueryItems.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}

	response := ItemList{Count: len(items), Items: make([]Item, len(items))}
	for i, it := range items {
		response.Items[i] = itemOf(it)
	}
	return ctx.JSON(http.StatusOK, response)
}

// SendItem handles POST /api/v1/items.
func (s *Server) SendItem(ctx echo.Context) error {
	caller, err := principalFrom(ctx)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}

	var body SendItemRequest
	if err = ctx.Bind(&body); err != nil {
		return s.badBody(ctx, err)
	}

	cmd, err := commands.NewSendItemCommand(
		caller.Username,
		body.DstName,
		item.Category(body.Type),
		body.Amount,
		deref(body.Description),
	)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}
	result, err := s.handlers.SendItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusCreated, SentItem{Id: result.ItemID, Cost: result.Cost})
}

// DeleteItem handles DELETE /api/v1/items/{id}.
func (s *Server) DeleteItem(ctx echo.Context, id int64) error {
	caller, err := principalFrom(ctx)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}

	cmd, err := commands.NewDeleteItemCommand(caller.Username, id)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}
	if err = s.handlers.DeleteItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, s.logger, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReceiveItem handles POST /api/v1/items/{id}/receive.
func (s *Server) ReceiveItem(ctx echo.Context, id int64) error {
	caller, err := principalFrom(ctx)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}

	cmd, err := commands.NewReceiveItemCommand(caller.Username, id)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}
	if err = s.handlers.ReceiveItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, s.logger, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetWaybill handles GET /api/v1/items/{id}/waybill.
func (s *Server) GetWaybill(ctx echo.Context, id int64) error {
	caller, err := principalFrom(ctx)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}

	query, err := queries.NewGetWaybillQuery(caller.Username, caller.Role, id)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}
	waybill, err := s.handlers.GetWaybill.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}

	response, err := waybillOf(waybill)
	if err != nil {
		return errorResponse(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) badBody(ctx echo.Context, err error) error {
	return errorResponse(ctx, s.logger, errs.NewValueIsInvalidErrorWithCause("request body", err))
}

func userOf(u queries.UserInfoResponse) User {
	return User{
		Username: u.Username,
		Role:     int(u.Role),
		Balance:  u.Balance,
		Name:     u.Name,
		Phone:    u.Phone,
		Address:  u.Address,
	}
}

func itemOf(it queries.ItemResponse) Item {
	response := Item{
		Id:          it.ID,
		Cost:        it.Cost,
		Type:        int(it.Category),
		State:       int(it.State),
		SendingDate: openapi_types.Date{Time: it.SendingDate.Time()},
		SrcName:     it.Sender,
		DstName:     it.Recipient,
		Description: it.Description,
	}
	if it.ReceivingDate != nil {
		response.ReceivingDate = &openapi_types.Date{Time: it.ReceivingDate.Time()}
	}
	return response
}

func waybillOf(w ports.Waybill) (Waybill, error) {
	sent, err := kernel.ParseDate(w.SendingDate)
	if err != nil {
		return Waybill{}, errs.NewStorageError("decode waybill sending date", err)
	}
	due, err := kernel.ParseDate(w.DueDate)
	if err != nil {
		return Waybill{}, errs.NewStorageError("decode waybill due date", err)
	}

	return Waybill{
		ItemId:      w.ItemID,
		Category:    w.Category,
		Cost:        w.Cost,
		Sender:      w.Sender,
		Recipient:   w.Recipient,
		Description: w.Description,
		SendingDate: openapi_types.Date{Time: sent.Time()},
		DueDate:     openapi_types.Date{Time: due.Time()},
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
