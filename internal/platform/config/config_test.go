package config

import (
	"testing"
	"time"

	kit "numwash/internal/platform/testkit"
)

func TestPrefixStacking(t *testing.T) {
	pg := New().Prefix("NUMWASH_").Prefix("PGSQL_")
	if got := pg.key("URL"); got != "NUMWASH_PGSQL_URL" {
		t.Fatalf("key composed %q", got)
	}
	// the root view stays unprefixed
	if got := New().key("HOME"); got != "HOME" {
		t.Fatalf("root key composed %q", got)
	}
}

func TestMustVariants_ParseAndTrim(t *testing.T) {
	c := New().Prefix("NW_")

	t.Setenv("NW_SERVICE", "  sweeper ")
	if got := c.MustString("SERVICE"); got != "sweeper" {
		t.Fatalf("MustString %q", got)
	}

	t.Setenv("NW_WORKERS", " 4 ")
	if got := c.MustInt("WORKERS"); got != 4 {
		t.Fatalf("MustInt %d", got)
	}

	t.Setenv("NW_DRY_RUN", " true ")
	if !c.MustBool("DRY_RUN") {
		t.Fatalf("MustBool parsed false")
	}

	t.Setenv("NW_SLOW_MS", " 750ms ")
	if got := c.MustDuration("SLOW_MS"); got != 750*time.Millisecond {
		t.Fatalf("MustDuration %v", got)
	}

	t.Setenv("NW_BASE", "https://ops.example.net/numwash")
	u := c.MustURL("BASE")
	if u.Scheme != "https" || u.Host != "ops.example.net" {
		t.Fatalf("MustURL parsed %v", u)
	}

	t.Setenv("NW_PORT", "8091")
	if got := c.MustPort("PORT"); got != ":8091" {
		t.Fatalf("MustPort %q", got)
	}
}

func TestMustVariants_Panics(t *testing.T) {
	c := New().Prefix("NW_")
	t.Setenv("NW_BAD_INT", "seven")
	t.Setenv("NW_BAD_BOOL", "si")
	t.Setenv("NW_BAD_DUR", "soon")
	t.Setenv("NW_BAD_URL", "://")
	t.Setenv("NW_REL_URL", "/v1/healthz")
	t.Setenv("NW_BAD_PORT", "eighty")
	t.Setenv("NW_ZERO_PORT", "0")
	t.Setenv("NW_HIGH_PORT", "70000")

	cases := []struct {
		name string
		fn   func()
	}{
		{"string missing", func() { _ = c.MustString("ABSENT") }},
		{"int missing", func() { _ = c.MustInt("ABSENT") }},
		{"int not a number", func() { _ = c.MustInt("BAD_INT") }},
		{"bool missing", func() { _ = c.MustBool("ABSENT") }},
		{"bool not a bool", func() { _ = c.MustBool("BAD_BOOL") }},
		{"duration not a duration", func() { _ = c.MustDuration("BAD_DUR") }},
		{"url unparsable", func() { _ = c.MustURL("BAD_URL") }},
		{"url relative", func() { _ = c.MustURL("REL_URL") }},
		{"port not a number", func() { _ = c.MustPort("BAD_PORT") }},
		{"port zero", func() { _ = c.MustPort("ZERO_PORT") }},
		{"port above range", func() { _ = c.MustPort("HIGH_PORT") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kit.MustPanic(t, tc.fn)
		})
	}
}

func TestRequire_WhitespaceCountsAsMissing(t *testing.T) {
	c := New().Prefix("SWEEPER_")
	t.Setenv("SWEEPER_STORE", "vcf")
	t.Setenv("SWEEPER_VCF_PATH", "/data/contacts.vcf")
	c.Require("STORE", "VCF_PATH") // all present

	kit.MustPanic(t, func() { c.Require("STORE", "ABSENT") })

	// whitespace-only counts as missing
	t.Setenv("SWEEPER_BLANK", "   ")
	kit.MustPanic(t, func() { c.Require("BLANK") })
}

func TestMayString_Trims(t *testing.T) {
	c := New().Prefix("VCF_")
	if got := c.MayString("ABSENT", "contacts.vcf"); got != "contacts.vcf" {
		t.Fatalf("default path: %q", got)
	}
	t.Setenv("VCF_PATH", " /tmp/export.vcf ")
	if got := c.MayString("PATH", "x"); got != "/tmp/export.vcf" {
		t.Fatalf("trimmed value: %q", got)
	}
}

func TestMayInt_FallsBackOnJunk(t *testing.T) {
	c := New().Prefix("POOL_")
	if got := c.MayInt("ABSENT", 16); got != 16 {
		t.Fatalf("default: %d", got)
	}
	t.Setenv("POOL_SIZE", " 32 ")
	if got := c.MayInt("SIZE", 0); got != 32 {
		t.Fatalf("parsed: %d", got)
	}
	t.Setenv("POOL_JUNK", "lots")
	if got := c.MayInt("JUNK", 16); got != 16 {
		t.Fatalf("malformed falls back: %d", got)
	}
}

func TestMayFloat64_FallsBack(t *testing.T) {
	c := New().Prefix("RATE_")
	if got := c.MayFloat64("ABSENT", 0.1); got != 0.1 {
		t.Fatalf("default: %v", got)
	}
	t.Setenv("RATE_SAMPLE", " 0.75 ")
	if got := c.MayFloat64("SAMPLE", 1); got != 0.75 {
		t.Fatalf("parsed: %v", got)
	}
	t.Setenv("RATE_JUNK", "most")
	if got := c.MayFloat64("JUNK", 0.1); got != 0.1 {
		t.Fatalf("malformed falls back: %v", got)
	}
}

func TestMayBool_FallsBack(t *testing.T) {
	c := New().Prefix("FLAG_")
	if !c.MayBool("ABSENT", true) {
		t.Fatalf("default not honored")
	}
	t.Setenv("FLAG_VERBOSE", "1")
	if !c.MayBool("VERBOSE", false) {
		t.Fatalf("parsed value not honored")
	}
	t.Setenv("FLAG_JUNK", "maybe")
	if c.MayBool("JUNK", false) {
		t.Fatalf("malformed should fall back to false")
	}
}

func TestMayDuration_Parses(t *testing.T) {
	c := New().Prefix("RETRY_")
	if got := c.MayDuration("ABSENT", 3*time.Second); got != 3*time.Second {
		t.Fatalf("default: %v", got)
	}
	t.Setenv("RETRY_BACKOFF", "40ms")
	if got := c.MayDuration("BACKOFF", time.Second); got != 40*time.Millisecond {
		t.Fatalf("parsed: %v", got)
	}
	t.Setenv("RETRY_JUNK", "shortly")
	if got := c.MayDuration("JUNK", time.Minute); got != time.Minute {
		t.Fatalf("malformed falls back: %v", got)
	}
}

func TestMayCSV_SplitsAndTrims(t *testing.T) {
	c := New().Prefix("PLAN_")

	fallback := []string{"91", "96"}
	if got := c.MayCSV("ABSENT", fallback); len(got) != 2 || got[0] != "91" || got[1] != "96" {
		t.Fatalf("default: %#v", got)
	}

	// parts are trimmed and empties dropped
	t.Setenv("PLAN_MOBILE", " 91, 92 , ,93 ,, ")
	got := c.MayCSV("MOBILE", nil)
	want := []string{"91", "92", "93"}
	if len(got) != len(want) {
		t.Fatalf("split %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("part %d: %q", i, got[i])
		}
	}

	// a value of only separators behaves like an absent key
	t.Setenv("PLAN_FIXED", " , ,  ,")
	if got := c.MayCSV("FIXED", fallback); len(got) != 2 || got[0] != "91" {
		t.Fatalf("separator-only: %#v", got)
	}
}

func TestMayEnum_FoldsCase(t *testing.T) {
	c := New().Prefix("STORE_")

	if got := c.MayEnum("ABSENT", "pg", "pg", "vcf", "mongo"); got != "pg" {
		t.Fatalf("default: %q", got)
	}

	// matching folds case but hands back the original spelling
	t.Setenv("STORE_KIND", "VCF")
	if got := c.MayEnum("KIND", "pg", "pg", "vcf", "mongo"); got != "VCF" {
		t.Fatalf("folded match: %q", got)
	}

	// an empty default with a missing key stays empty
	if got := c.MayEnum("ABSENT", "", "pg", "vcf"); got != "" {
		t.Fatalf("empty default: %q", got)
	}

	t.Setenv("STORE_BOGUS", "oracle")
	kit.MustPanic(t, func() { _ = c.MayEnum("BOGUS", "pg", "pg", "vcf", "mongo") })
}
