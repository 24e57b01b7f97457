package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	assessMethod = "/eligibility.v1.EligibilityService/Assess"
	healthMethod = "/grpc.health.v1.Health/Check"
)

func TestUnaryAuthInterceptor(t *testing.T) {
	v := newTestValidator(t)
	interceptor := UnaryAuthInterceptor(v,
		map[string]string{assessMethod: ScopeAssess},
		[]string{healthMethod},
	)

	var sawClaims *Claims
	handler := func(ctx context.Context, _ interface{}) (interface{}, error) {
		sawClaims, _ = ClaimsFromContext(ctx)
		return "ok", nil
	}
	withAuth := func(token string) context.Context {
		return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
	}

	tests := []struct {
		name   string
		ctx    context.Context
		method string
		want   codes.Code
	}{
		{"skipped method", context.Background(), healthMethod, codes.OK},
		{"no metadata", context.Background(), assessMethod, codes.Unauthenticated},
		{"no header", metadata.NewIncomingContext(context.Background(), metadata.MD{}), assessMethod, codes.Unauthenticated},
		{"bad token", withAuth("nope"), assessMethod, codes.Unauthenticated},
		{"missing scope", withAuth(signHS256(t, testSecret, partnerClaims("partner-portal", time.Minute))), assessMethod, codes.PermissionDenied},
		{"granted", withAuth(signHS256(t, testSecret, partnerClaims("partner-portal", time.Minute, ScopeAssess))), assessMethod, codes.OK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sawClaims = nil
			_, err := interceptor(tt.ctx, nil, &grpc.UnaryServerInfo{FullMethod: tt.method}, handler)
			if got := status.Code(err); got != tt.want {
				t.Fatalf("code = %v, want %v (err = %v)", got, tt.want, err)
			}
			if tt.name == "granted" && (sawClaims == nil || sawClaims.PartnerID != "acme-brokers") {
				t.Errorf("handler did not receive claims, got %+v", sawClaims)
			}
		})
	}
}

func TestRequireScope(t *testing.T) {
	v := newTestValidator(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFromContext(r.Context()); !ok {
			t.Error("claims missing from request context")
		}
		w.WriteHeader(http.StatusNoContent)
	})
	h := RequireScope(v, ScopeReadRegimes)(next)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"missing scope", "Bearer " + signHS256(t, testSecret, partnerClaims("partner-portal", time.Minute, ScopeAssess)), http.StatusForbidden},
		{"granted", "Bearer " + signHS256(t, testSecret, partnerClaims("partner-portal", time.Minute, ScopeReadRegimes)), http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/eligibility/regimes", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want == http.StatusUnauthorized && rec.Header().Get("WWW-Authenticate") == "" {
				t.Error("401 without WWW-Authenticate header")
			}
		})
	}
}
