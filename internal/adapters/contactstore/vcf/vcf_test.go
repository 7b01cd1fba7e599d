package vcf

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	perr "numwash/internal/platform/errors"
	"numwash/internal/platform/testkit"
	"numwash/internal/services/cleanup/domain"
)

const fixture = `BEGIN:VCARD
VERSION:3.0
UID:c1
FN:Alice
TEL;TYPE=CELL:912345678
TEL;TYPE=HOME:212345678
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Bob
TEL:+351 91 234 5678
END:VCARD
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	if err := os.WriteFile(path, []byte(fixture), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestNew_EmptyPathPanics(t *testing.T) {
	t.Parallel()
	testkit.MustPanic(t, func() { New("") })
}

func TestList_ReadsCardsInFileOrder(t *testing.T) {
	t.Parallel()

	s := New(writeFixture(t))
	cs, err := s.ListContactsWithPhones(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cs) != 2 {
		t.Fatalf("contacts = %d want 2", len(cs))
	}
	if cs[0].DisplayName != "Alice" || cs[1].DisplayName != "Bob" {
		t.Fatalf("order mismatch: %q %q", cs[0].DisplayName, cs[1].DisplayName)
	}
	if cs[0].ID != "c1" {
		t.Fatalf("existing UID should be kept, got %q", cs[0].ID)
	}
	if len(cs[0].Phones) != 2 || cs[0].Phones[0].Raw != "912345678" || cs[0].Phones[0].Label != "CELL" {
		t.Fatalf("alice phones = %+v", cs[0].Phones)
	}
	if len(cs[1].Phones) != 1 || cs[1].Phones[0].Raw != "+351 91 234 5678" {
		t.Fatalf("bob phones = %+v", cs[1].Phones)
	}
}

func TestList_MintsAndPersistsMissingUIDs(t *testing.T) {
	t.Parallel()

	path := writeFixture(t)
	s := New(path)

	cs, err := s.ListContactsWithPhones(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	bobID := cs[1].ID
	if bobID == "" || bobID == "c1" {
		t.Fatalf("bob should get a fresh UID, got %q", bobID)
	}

	// a second store on the same path must see the same identity
	again, err := New(path).ListContactsWithPhones(context.Background())
	if err != nil {
		t.Fatalf("relist: %v", err)
	}
	if again[1].ID != bobID {
		t.Fatalf("minted UID not persisted: %q vs %q", again[1].ID, bobID)
	}
}

func TestList_MissingFileIsUnavailable(t *testing.T) {
	t.Parallel()

	s := New(filepath.Join(t.TempDir(), "nope.vcf"))
	_, err := s.ListContactsWithPhones(context.Background())
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
}

func TestFetchContact(t *testing.T) {
	t.Parallel()

	s := New(writeFixture(t))
	got, err := s.FetchContact(context.Background(), "c1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got.DisplayName != "Alice" || len(got.Phones) != 2 {
		t.Fatalf("fetch mismatch: %+v", got)
	}

	if _, err := s.FetchContact(context.Background(), "ghost"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestSubmitBatch_RewritesFile(t *testing.T) {
	t.Parallel()

	path := writeFixture(t)
	s := New(path)
	ctx := context.Background()

	cs, err := s.ListContactsWithPhones(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	err = s.SubmitBatch(ctx, []domain.Mutation{
		{ContactID: "c1", Phones: []domain.StoredPhone{{Label: "CELL", Raw: "+351912345678"}}},
		{ContactID: cs[1].ID, Phones: []domain.StoredPhone{{Label: "", Raw: "+351912345678"}}},
	})
	if err != nil {
		t.Fatalf("submit batch: %v", err)
	}

	after, err := s.ListContactsWithPhones(ctx)
	if err != nil {
		t.Fatalf("relist: %v", err)
	}
	if len(after[0].Phones) != 1 || after[0].Phones[0].Raw != "+351912345678" {
		t.Fatalf("c1 phones not replaced: %+v", after[0].Phones)
	}
	if after[0].Phones[0].Label != "CELL" {
		t.Fatalf("label should round trip, got %q", after[0].Phones[0].Label)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(raw), "+351912345678") {
		t.Fatalf("rewritten file missing new number:\n%s", raw)
	}
	if strings.Contains(string(raw), "212345678") {
		t.Fatalf("replaced home number should be gone:\n%s", raw)
	}
}

func TestSubmitBatch_MissingContactRejectsWholeBatch(t *testing.T) {
	t.Parallel()

	path := writeFixture(t)
	s := New(path)
	ctx := context.Background()

	if _, err := s.ListContactsWithPhones(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read before: %v", err)
	}

	err = s.SubmitBatch(ctx, []domain.Mutation{
		{ContactID: "c1", Phones: []domain.StoredPhone{{Raw: "+351912345678"}}},
		{ContactID: "ghost"},
	})
	if !perr.IsCode(err, perr.ErrorCodeBatchFailed) {
		t.Fatalf("want batch failed, got %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read after: %v", err)
	}
	if string(before) != string(after) {
		t.Fatalf("rejected batch must leave the file untouched")
	}
}

func TestSubmitOne(t *testing.T) {
	t.Parallel()

	s := New(writeFixture(t))
	ctx := context.Background()

	if err := s.SubmitOne(ctx, domain.Mutation{ContactID: "c1", Phones: nil}); err != nil {
		t.Fatalf("submit one: %v", err)
	}
	got, err := s.FetchContact(ctx, "c1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got.Phones) != 0 {
		t.Fatalf("phones should be gone: %+v", got.Phones)
	}

	if err := s.SubmitOne(ctx, domain.Mutation{ContactID: "ghost"}); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestSeedContacts_CreatesAndUpserts(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fresh.vcf")
	s := New(path)
	ctx := context.Background()

	err := s.SeedContacts(ctx, []domain.StoredContact{
		{ID: "s1", DisplayName: "Seed One", Phones: []domain.StoredPhone{{Label: "CELL", Raw: "912345678"}}},
		{ID: "s2", DisplayName: "Seed Two"},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	cs, err := s.ListContactsWithPhones(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cs) != 2 || cs[0].ID != "s1" || cs[1].ID != "s2" {
		t.Fatalf("seeded contacts mismatch: %+v", cs)
	}

	// second seed with same ID replaces in place
	err = s.SeedContacts(ctx, []domain.StoredContact{
		{ID: "s1", DisplayName: "Renamed", Phones: nil},
	})
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	cs, err = s.ListContactsWithPhones(ctx)
	if err != nil {
		t.Fatalf("relist: %v", err)
	}
	if len(cs) != 2 || cs[0].DisplayName != "Renamed" || len(cs[0].Phones) != 0 {
		t.Fatalf("upsert mismatch: %+v", cs)
	}
}
