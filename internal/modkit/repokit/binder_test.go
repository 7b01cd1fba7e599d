package repokit

import (
	"context"
	"strings"
	"testing"

	"numwash/internal/platform/store"
)

// inertQueryer satisfies Queryer without touching a database
type inertQueryer struct{ name string }

func (inertQueryer) Exec(context.Context, string, ...any) (store.CommandTag, error) {
	return nil, nil
}

func (inertQueryer) Query(context.Context, string, ...any) (store.Rows, error) {
	return nil, nil
}

func (inertQueryer) QueryRow(context.Context, string, ...any) store.Row { return nil }

// phoneRepo is the shape a domain package would bind
type phoneRepo struct{ q Queryer }

func TestBindFunc_BindsTheQueryer(t *testing.T) {
	t.Parallel()

	b := BindFunc[*phoneRepo](func(q Queryer) *phoneRepo { return &phoneRepo{q: q} })

	q := inertQueryer{name: "tx-7"}
	r := b.Bind(q)
	if r.q != Queryer(q) {
		t.Fatalf("bound queryer = %#v, want %#v", r.q, q)
	}
}

func TestMustBind_RefusesNilQueryer(t *testing.T) {
	t.Parallel()

	b := BindFunc[*phoneRepo](func(q Queryer) *phoneRepo { return &phoneRepo{q: q} })

	defer func() {
		msg, _ := recover().(string)
		if !strings.Contains(msg, "nil Queryer") {
			t.Fatalf("panic = %q", msg)
		}
	}()
	MustBind(b, nil)
}

func TestMustBind_BindsWhenWired(t *testing.T) {
	t.Parallel()

	b := BindFunc[*phoneRepo](func(q Queryer) *phoneRepo { return &phoneRepo{q: q} })

	r := MustBind(b, inertQueryer{})
	if r == nil || r.q == nil {
		t.Fatal("bound repo missing its queryer")
	}
}
