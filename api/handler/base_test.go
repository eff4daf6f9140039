package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/chirper/backend/domain"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"forbidden", domain.ErrBadCredentials, http.StatusForbidden, "FORBIDDEN"},
		{"not found", domain.ErrUserNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"invalid", domain.ErrInvalidPayload, http.StatusBadRequest, "INVALID"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"conflict", domain.NewError(domain.ErrCodeConflict, "dup"), http.StatusConflict, "CONFLICT"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := mapError(tc.err)
			if status != tc.wantStatus || code != tc.wantCode {
				t.Errorf("mapError() = (%d, %q), want (%d, %q)", status, code, tc.wantStatus, tc.wantCode)
			}
		})
	}
}

func TestRespondError_FieldScoped(t *testing.T) {
	h := newBaseHandler(nil, nil)
	ctx := &fasthttp.RequestCtx{}

	h.respondError(ctx, domain.NewFieldError(domain.ErrCodeInvalid, "password", "Passwords do not match."))

	if ctx.Response.StatusCode() != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", ctx.Response.StatusCode())
	}

	var payload struct {
		Status string            `json:"status"`
		Code   string            `json:"code"`
		Error  map[string]string `json:"error"`
	}
	if err := json.Unmarshal(ctx.Response.Body(), &payload); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if payload.Status != "error" || payload.Code != "INVALID" {
		t.Errorf("payload = %+v", payload)
	}
	if payload.Error["password"] != "Passwords do not match." {
		t.Errorf("field binding = %+v", payload.Error)
	}
}

func TestRespondError_FieldScopedNotFound(t *testing.T) {
	h := newBaseHandler(nil, nil)
	ctx := &fasthttp.RequestCtx{}

	h.respondError(ctx, domain.NewFieldError(domain.ErrCodeNotFound, "currentPassword", "The password you entered was incorrect."))

	if ctx.Response.StatusCode() != http.StatusNotFound {
		t.Errorf("status = %d, want 404", ctx.Response.StatusCode())
	}
}

func TestPrincipal(t *testing.T) {
	h := newBaseHandler(nil, nil)

	ctx := &fasthttp.RequestCtx{}
	if _, ok := h.principal(ctx); ok {
		t.Error("principal present without middleware headers")
	}

	ctx.Request.Header.Set("X-Auth-Email", "jack@example.com")
	ctx.Request.Header.Set("X-Auth-User-ID", "42")
	p, ok := h.principal(ctx)
	if !ok {
		t.Fatal("principal missing")
	}
	if p.Email != "jack@example.com" || p.ID != 42 {
		t.Errorf("principal = %+v", p)
	}
}

func TestTokenID(t *testing.T) {
	h := newBaseHandler(nil, nil)

	ctx := &fasthttp.RequestCtx{}
	if h.tokenID(ctx) != "" {
		t.Error("token id present without middleware header")
	}

	ctx.Request.Header.Set("X-Auth-Token-ID", "jti-42")
	if got := h.tokenID(ctx); got != "jti-42" {
		t.Errorf("tokenID() = %q, want jti-42", got)
	}
}
