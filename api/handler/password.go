package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/chirper/backend/api/transport"
	"github.com/chirper/backend/domain"
	"github.com/chirper/backend/pkg/httpcontext"
	authUC "github.com/chirper/backend/usecase/auth"
)

// PasswordHandler serves the password recovery endpoints.
type PasswordHandler struct {
	baseHandler
	uc *authUC.Service
}

func NewPasswordHandler(uc *authUC.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *PasswordHandler {
	return &PasswordHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Check that an email has an account
// @Tags password
// @Router /api/v1/auth/forgot/email [post]
func (h *PasswordHandler) FindEmail(ctx *fasthttp.RequestCtx) {
	var req transport.EmailRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" {
		h.respondInvalidPayload(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	message, err := h.uc.FindEmail(stdCtx, req.Email)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, message)
}

// @Summary Email a password reset code
// @Tags password
// @Router /api/v1/auth/forgot [post]
func (h *PasswordHandler) SendPasswordResetCode(ctx *fasthttp.RequestCtx) {
	var req transport.EmailRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" {
		h.respondInvalidPayload(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	message, err := h.uc.SendPasswordResetCode(stdCtx, req.Email)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, message)
}

// @Summary Resolve the account behind a reset code
// @Tags password
// @Router /api/v1/auth/reset/{code} [get]
func (h *PasswordHandler) FindByResetCode(ctx *fasthttp.RequestCtx) {
	code, _ := ctx.UserValue("code").(string)
	if code == "" {
		h.respondInvalidPayload(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.FindByPasswordResetCode(stdCtx, code)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Complete a password reset
// @Tags password
// @Router /api/v1/auth/reset [post]
func (h *PasswordHandler) PasswordReset(ctx *fasthttp.RequestCtx) {
	var req transport.PasswordResetRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" {
		h.respondInvalidPayload(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	message, err := h.uc.PasswordReset(stdCtx, req.Email, req.Password, req.Password2)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, message)
}

// @Summary Change the password of the logged-in user
// @Tags password
// @Router /api/v1/auth/reset/current [post]
func (h *PasswordHandler) CurrentPasswordReset(ctx *fasthttp.RequestCtx) {
	principal, ok := h.principal(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing principal", nil))
		return
	}

	var req transport.CurrentPasswordResetRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalidPayload(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	message, err := h.uc.CurrentPasswordReset(stdCtx, principal, req.CurrentPassword, req.Password, req.Password2)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, message)
}
