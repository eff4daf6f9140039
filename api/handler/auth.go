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

type AuthHandler struct {
	baseHandler
	uc *authUC.Service
}

func NewAuthHandler(uc *authUC.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Log in with email and password
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" {
		h.respondInvalidPayload(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Login(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Pre-register an account
// @Tags auth
// @Router /api/v1/auth/registration/check [post]
func (h *AuthHandler) Registration(ctx *fasthttp.RequestCtx) {
	var req transport.RegistrationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" {
		h.respondInvalidPayload(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	message, err := h.uc.Registration(stdCtx, req.Email, req.Username, req.Birthday)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, message)
}

// @Summary Email an activation code
// @Tags auth
// @Router /api/v1/auth/registration/code [post]
func (h *AuthHandler) SendRegistrationCode(ctx *fasthttp.RequestCtx) {
	var req transport.EmailRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" {
		h.respondInvalidPayload(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	message, err := h.uc.SendRegistrationCode(stdCtx, req.Email)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, message)
}

// @Summary Confirm an activation code
// @Tags auth
// @Router /api/v1/auth/registration/activate/{code} [get]
func (h *AuthHandler) ActivateUser(ctx *fasthttp.RequestCtx) {
	code, _ := ctx.UserValue("code").(string)
	if code == "" {
		h.respondInvalidPayload(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	message, err := h.uc.ActivateUser(stdCtx, code)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, message)
}

// @Summary Set the password and finish registration
// @Tags auth
// @Router /api/v1/auth/registration/confirm [post]
func (h *AuthHandler) EndRegistration(ctx *fasthttp.RequestCtx) {
	var req transport.EndRegistrationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" {
		h.respondInvalidPayload(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.EndRegistration(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Log out and revoke the session record
// @Tags auth
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	if _, ok := h.principal(ctx); !ok {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing principal", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	message, err := h.uc.Logout(stdCtx, h.tokenID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, message)
}

// @Summary Refresh the session token
// @Tags auth
// @Router /api/v1/auth/user [get]
func (h *AuthHandler) UserByToken(ctx *fasthttp.RequestCtx) {
	principal, ok := h.principal(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing principal", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.UserByToken(stdCtx, principal)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Full record of the authenticated user
// @Tags auth
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(ctx *fasthttp.RequestCtx) {
	principal, ok := h.principal(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing principal", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.AuthenticatedUser(stdCtx, principal)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}
