package middleware

import (
	"strconv"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/chirper/backend/internal/token"
)

// Header names carrying the authenticated principal into handlers. The
// middleware overwrites them on every request so clients cannot inject
// their own values.
const (
	HeaderAuthEmail   = "X-Auth-Email"
	HeaderAuthUserID  = "X-Auth-User-ID"
	HeaderAuthTokenID = "X-Auth-Token-ID"
)

// TokenAuth validates bearer tokens and forwards the principal identity to
// the protected handler.
func TokenAuth(tokens *token.Provider, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			ctx.Request.Header.Del(HeaderAuthEmail)
			ctx.Request.Header.Del(HeaderAuthUserID)
			ctx.Request.Header.Del(HeaderAuthTokenID)

			tokenString := extractToken(ctx)
			if tokenString == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			claims, err := tokens.Validate(tokenString)
			if err != nil {
				logger.Warn("invalid bearer token", zap.Error(err))
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			ctx.Request.Header.Set(HeaderAuthEmail, claims.Subject)
			ctx.Request.Header.Set(HeaderAuthUserID, strconv.FormatInt(claims.UserID, 10))
			ctx.Request.Header.Set(HeaderAuthTokenID, claims.ID)

			next(ctx)
		}
	}
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
