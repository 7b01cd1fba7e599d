package domain

import (
	"reflect"
	"testing"

	"numwash/internal/core/classify"
)

func TestContact_RawNumbersKeepsStoreOrder(t *testing.T) {
	t.Parallel()

	c := Contact{
		ID:          "42",
		DisplayName: "Ana Silva",
		Phones: []PhoneEntry{
			{ID: "p1", RawNumber: "912 345 678"},
			{ID: "p2", RawNumber: "+351912345678"},
			{ID: "p3", RawNumber: "213456789", Label: "work"},
		},
	}

	want := []string{"912 345 678", "+351912345678", "213456789"}
	if got := c.RawNumbers(); !reflect.DeepEqual(got, want) {
		t.Fatalf("RawNumbers() = %v, want %v", got, want)
	}

	if got := (Contact{}).RawNumbers(); len(got) != 0 {
		t.Fatalf("empty contact RawNumbers() = %v, want empty", got)
	}
}

func TestContact_PendingEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		actions []classify.Action
		want    int
	}{
		{"no phones", nil, 0},
		{"all skip", []classify.Action{classify.ActionSkip, classify.ActionSkip}, 0},
		{"mixed", []classify.Action{
			classify.ActionSkip,
			classify.ActionAddPrefix,
			classify.ActionDelete,
			classify.ActionRemoveSpaces,
		}, 3},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var c Contact
			for _, a := range tc.actions {
				c.Phones = append(c.Phones, PhoneEntry{Action: a})
			}
			if got := c.PendingEdits(); got != tc.want {
				t.Fatalf("PendingEdits() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestContact_FlagsSuffixDuplicates(t *testing.T) {
	t.Parallel()

	dup := Contact{Phones: []PhoneEntry{
		{RawNumber: "912 345 678"},
		{RawNumber: "+351 912 345 678"},
	}}
	if !dup.HasDuplicates() {
		t.Fatal("suffix pair not reported as duplicate")
	}
	if !dup.NeedsAction() {
		t.Fatal("duplicate contact not reported as needing action")
	}

	clean := Contact{Phones: []PhoneEntry{
		{RawNumber: "+351912345678"},
		{RawNumber: "+351213456789"},
	}}
	if clean.HasDuplicates() {
		t.Fatal("distinct canonical numbers reported as duplicate")
	}
	if clean.NeedsAction() {
		t.Fatal("canonical contact reported as needing action")
	}
}

func TestPhase_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseIdle, "idle"},
		{PhaseLoading, "loading"},
		{PhaseReady, "ready"},
		{PhaseApplying, "applying"},
		{Phase(9), "unknown"},
	}

	for _, tc := range tests {
		if got := tc.phase.String(); got != tc.want {
			t.Fatalf("Phase(%d).String() = %q, want %q", tc.phase, got, tc.want)
		}
	}
}

func TestApplyResult_HadErrors(t *testing.T) {
	t.Parallel()

	if (ApplyResult{Updated: 3, Prefixed: 2}).HadErrors() {
		t.Fatal("clean result reported errors")
	}
	if !(ApplyResult{Updated: 3, Failed: 1}).HadErrors() {
		t.Fatal("failed contact not reported")
	}
}
