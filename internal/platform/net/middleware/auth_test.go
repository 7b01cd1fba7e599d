package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	perr "numwash/internal/platform/errors"
	pnet "numwash/internal/platform/net"
	"numwash/internal/platform/net/middleware"
)

type fakeGuard struct {
	err error
}

func (f fakeGuard) Authorize(*http.Request) error { return f.err }

// statusOnly is a deny writer that sets the code and drops the body
func statusOnly(w http.ResponseWriter, status int, _ any) {
	w.WriteHeader(status)
}

// guardPass runs one request through mw and reports whether the inner
// handler was reached
func guardPass(mw func(http.Handler) http.Handler, req *http.Request) (bool, *httptest.ResponseRecorder) {
	var reached bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	mw(inner).ServeHTTP(rec, req)
	return reached, rec
}

func TestGuard_NilPortPassesThrough(t *testing.T) {
	mw := middleware.Guard(nil, statusOnly)

	reached, rec := guardPass(mw, httptest.NewRequest(http.MethodGet, "/", nil))
	if !reached {
		t.Fatal("handler never ran behind a nil guard")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestGuard_AllowCallsNext(t *testing.T) {
	mw := middleware.Guard(fakeGuard{}, statusOnly)

	reached, _ := guardPass(mw, httptest.NewRequest(http.MethodGet, "/", nil))
	if !reached {
		t.Fatal("authorized request never reached the handler")
	}
}

func TestGuard_DenyWritesMappedStatus(t *testing.T) {
	mw := middleware.Guard(fakeGuard{err: perr.Unauthorizedf("missing or invalid api key")}, statusOnly)

	reached, rec := guardPass(mw, httptest.NewRequest(http.MethodGet, "/", nil))
	if reached {
		t.Fatal("denied request leaked through to the handler")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestGuard_MirrorsRequestIDHeaderOnDeny(t *testing.T) {
	mw := middleware.Guard(fakeGuard{err: perr.Unauthorizedf("nope")}, statusOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "rid-guard-1"))
	_, rec := guardPass(mw, req)

	if got := rec.Header().Get("X-Request-ID"); got != "rid-guard-1" {
		t.Fatalf("expected mirrored request id, got %q", got)
	}
}

func TestStaticKey_Authorize(t *testing.T) {
	key := middleware.StaticKey("sekret")

	ok := httptest.NewRequest(http.MethodGet, "/", nil)
	ok.Header.Set("X-API-Key", "sekret")
	if err := key.Authorize(ok); err != nil {
		t.Fatalf("expected matching key to pass, got %v", err)
	}

	bad := httptest.NewRequest(http.MethodGet, "/", nil)
	bad.Header.Set("X-API-Key", "wrong")
	if err := key.Authorize(bad); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("expected unauthorized for wrong key, got %v", err)
	}

	missing := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := key.Authorize(missing); err == nil {
		t.Fatal("expected unauthorized for missing key")
	}

	// an empty configured key never matches, not even an empty header
	empty := middleware.StaticKey("")
	if err := empty.Authorize(missing); err == nil {
		t.Fatal("expected empty key to deny everything")
	}
}
