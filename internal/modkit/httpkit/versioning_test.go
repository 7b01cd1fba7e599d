package httpkit

import (
	"net/http"
	"testing"
)

func TestMountAPI_PrefixesVersion(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		version string
		want    string
	}{
		{"bare version", "v2", "/api/v2"},
		{"leading slash trimmed", "/v3", "/api/v3"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			root := &recRouter{}
			mounted := 0
			MountAPI(root, tc.version, nil, func(Router) { mounted++ })

			if len(root.prefixes) != 1 || root.prefixes[0] != tc.want {
				t.Fatalf("prefixes = %v, want [%s]", root.prefixes, tc.want)
			}
			if mounted != 1 {
				t.Fatalf("mount ran %d times", mounted)
			}
		})
	}
}

func TestMountAPIV1_AppliesScopeMiddleware(t *testing.T) {
	t.Parallel()

	root := &recRouter{}
	mw := func(next http.Handler) http.Handler { return next }

	MountAPIV1(root, []func(http.Handler) http.Handler{mw}, func(api Router) {
		api.Post("/cleanup/apply", func(http.ResponseWriter, *http.Request) {})
	})

	if root.prefixes[0] != "/api/v1" {
		t.Fatalf("prefix = %q", root.prefixes[0])
	}
	if len(root.mwBatch) != 1 || len(root.mwBatch[0]) != 1 {
		t.Fatalf("middleware batches = %v", root.mwBatch)
	}
	if root.mounts[0].verb != http.MethodPost || root.mounts[0].path != "/cleanup/apply" {
		t.Fatalf("mounted = %+v", root.mounts[0])
	}
}
