package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/chirper/backend/api/transport"
	"github.com/chirper/backend/domain"
	"github.com/chirper/backend/internal/middleware"
	"github.com/chirper/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

// principal reads the identity forwarded by the token middleware. The bool
// is false on unprotected routes or when the middleware did not run.
func (h baseHandler) principal(ctx *fasthttp.RequestCtx) (domain.Principal, bool) {
	email := string(ctx.Request.Header.Peek(middleware.HeaderAuthEmail))
	if email == "" {
		return domain.Principal{}, false
	}
	id, _ := strconv.ParseInt(string(ctx.Request.Header.Peek(middleware.HeaderAuthUserID)), 10, 64)
	return domain.Principal{ID: id, Email: email}, true
}

// tokenID reads the jti of the presented token, forwarded by the middleware.
func (h baseHandler) tokenID(ctx *fasthttp.RequestCtx) string {
	return string(ctx.Request.Header.Peek(middleware.HeaderAuthTokenID))
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data, nil))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	if fieldErr, ok := domain.AsFieldError(err); ok {
		status := statusForCode(fieldErr.Code)
		h.respondJSON(ctx, status, transport.NewFieldError(string(fieldErr.Code), fieldErr.Field, fieldErr.Message))
		return
	}
	status, code := mapError(err)
	h.respondJSON(ctx, status, transport.NewError(code, err.Error(), nil))
}

func (h baseHandler) respondInvalidPayload(ctx *fasthttp.RequestCtx) {
	h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
}

func mapError(err error) (int, string) {
	for _, code := range []domain.ErrorCode{
		domain.ErrCodeUnauthorized,
		domain.ErrCodeForbidden,
		domain.ErrCodeInvalid,
		domain.ErrCodeNotFound,
		domain.ErrCodeConflict,
	} {
		if domain.IsDomainError(err, code) {
			return statusForCode(code), string(code)
		}
	}
	return http.StatusInternalServerError, string(domain.ErrCodeInternal)
}

func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrCodeForbidden:
		return http.StatusForbidden
	case domain.ErrCodeInvalid:
		return http.StatusBadRequest
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
