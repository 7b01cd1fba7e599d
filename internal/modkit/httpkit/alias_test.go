package httpkit

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "numwash/internal/platform/errors"
)

// exec runs h against one request and returns what hit the wire
func exec(t *testing.T, h Handler, method string, body io.Reader) (int, string) {
	t.Helper()

	req := httptest.NewRequest(method, "/api/v1/cleanup/contacts", body)
	rec := httptest.NewRecorder()
	h(rec, req)

	res := rec.Result()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	_ = res.Body.Close()
	return rec.Code, string(b)
}

func TestConstructors_StatusAndBody(t *testing.T) {
	t.Parallel()

	if r := OK("x"); r.Status != http.StatusOK || r.Body != "x" {
		t.Fatalf("OK = %+v", r)
	}
	if r := Created("x"); r.Status != http.StatusCreated {
		t.Fatalf("Created = %+v", r)
	}
	if r := NoContent(); r.Status != http.StatusNoContent || r.Body != nil {
		t.Fatalf("NoContent = %+v", r)
	}
	if r := Data("x"); r.Status != http.StatusOK {
		t.Fatalf("Data = %+v", r)
	}

	boom := errors.New("boom")
	if r := Error(boom); r.Body != any(boom) {
		t.Fatalf("Error should carry the error as body, got %+v", r)
	}
}

func TestList_WiresPagination(t *testing.T) {
	t.Parallel()

	h := Handle(func(*http.Request) Response {
		return List([]string{"+351912345678"}, 1, 1, 50, "next")
	})

	code, body := exec(t, h, http.MethodGet, nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	for _, want := range []string{`"total":1`, `"cursor":"next"`, "+351912345678"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body %q missing %q", body, want)
		}
	}
}

func TestCall_EnvelopesPlainValues(t *testing.T) {
	t.Parallel()

	h := Call(func(*http.Request) (any, error) {
		return map[string]int{"updated": 3}, nil
	})

	code, body := exec(t, h, http.MethodGet, nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !strings.Contains(body, `"updated":3`) {
		t.Fatalf("payload missing from envelope: %q", body)
	}
}

func TestCall_HandsBuiltResponsesThrough(t *testing.T) {
	t.Parallel()

	h := Call(func(*http.Request) (any, error) {
		return Created("edit queued"), nil
	})

	code, body := exec(t, h, http.MethodGet, nil)
	if code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", code)
	}
	if !strings.Contains(body, "edit queued") {
		t.Fatalf("body = %q", body)
	}
}

func TestCall_MapsProjectErrors(t *testing.T) {
	t.Parallel()

	h := Call(func(*http.Request) (any, error) {
		return nil, perr.Newf(perr.ErrorCodeNotFound, "contact 9 missing")
	})

	code, body := exec(t, h, http.MethodGet, nil)
	if code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", code)
	}
	if !strings.Contains(body, "contact 9 missing") {
		t.Fatalf("body = %q", body)
	}
}

type editReq struct {
	Contact int    `json:"contact"`
	Raw     string `json:"raw"`
}

func TestJSON_BindsBodyAndEnvelopes(t *testing.T) {
	t.Parallel()

	h := JSON[editReq](func(_ *http.Request, in editReq) (any, error) {
		if in.Contact != 9 {
			t.Fatalf("bound contact = %d", in.Contact)
		}
		return map[string]string{"raw": in.Raw}, nil
	})

	code, body := exec(t, h, http.MethodPost,
		strings.NewReader(`{"contact":9,"raw":"912 345 678"}`))
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !strings.Contains(body, "912 345 678") {
		t.Fatalf("body = %q", body)
	}
}

func TestJSON_RejectsBadBodies(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		want string
	}{
		{"malformed", `{"contact":`, "invalid JSON"},
		{"unknown field", `{"contact":1,"extra":true}`, "unknown field"},
		{"empty body", "", "empty body"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			called := false
			h := JSON[editReq](func(_ *http.Request, _ editReq) (any, error) {
				called = true
				return nil, nil
			})

			code, body := exec(t, h, http.MethodPost, strings.NewReader(tc.body))
			if code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", code)
			}
			if called {
				t.Fatal("handler ran on a rejected body")
			}
			if !strings.Contains(body, tc.want) {
				t.Fatalf("body %q missing %q", body, tc.want)
			}
		})
	}
}

func TestJSON_ValidationRuns(t *testing.T) {
	t.Parallel()

	type strictReq struct {
		Raw string `json:"raw" validate:"required"`
	}

	h := JSON[strictReq](func(_ *http.Request, _ strictReq) (any, error) {
		t.Fatal("handler ran on an invalid payload")
		return nil, nil
	})

	code, body := exec(t, h, http.MethodPost, strings.NewReader(`{"raw":""}`))
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	if !strings.Contains(body, "required") {
		t.Fatalf("validation message missing: %q", body)
	}
}

func TestJSON_HandlerErrorStillMaps(t *testing.T) {
	t.Parallel()

	h := JSON[editReq](func(_ *http.Request, _ editReq) (any, error) {
		return nil, errors.New("canonical pass refused")
	})

	code, body := exec(t, h, http.MethodPost, strings.NewReader(`{"contact":1,"raw":"x"}`))
	if code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", code)
	}
	if !strings.Contains(body, "canonical pass refused") {
		t.Fatalf("body = %q", body)
	}
}
