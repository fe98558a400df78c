package tomledit

import (
	"errors"
	"strings"
	"testing"
)

const sampleDoc = `# Quote Q-2026-042
[meta]
template = "quote.typ" # relative to this file

[client]
name = "ACME GmbH"   # the customer
city = "Berlin"

[quote]
number = "Q-2026-042"
total = 12500.50

[blocks.intro]
title = "Introduction"
format = "markdown"
content = "Dear customer,"
`

func TestParse_RoundTripUnchanged(t *testing.T) {
	if got := Parse(sampleDoc).String(); got != sampleDoc {
		t.Errorf("round trip altered document:\n%s", got)
	}
}

func TestSet_ReplaceScalarKeepsFormatting(t *testing.T) {
	doc := Parse(sampleDoc)
	if err := doc.Set("client.name", "Example AG"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got := doc.String()
	want := strings.Replace(sampleDoc,
		`name = "ACME GmbH"   # the customer`,
		`name = "Example AG"   # the customer`, 1)
	if got != want {
		t.Errorf("document mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestSet_BlockContentRedirect(t *testing.T) {
	doc := Parse(sampleDoc)
	if err := doc.Set("blocks.intro", "Hello!"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got := doc.String()
	if !strings.Contains(got, `content = "Hello!"`) {
		t.Errorf("content not rewritten:\n%s", got)
	}
	// Sibling metadata untouched, byte for byte.
	if !strings.Contains(got, "title = \"Introduction\"\nformat = \"markdown\"\n") {
		t.Errorf("block siblings damaged:\n%s", got)
	}
	if strings.Contains(got, "Dear customer,") {
		t.Errorf("old content survived:\n%s", got)
	}
}

func TestSet_NumericValueBecomesString(t *testing.T) {
	// Values always land as TOML strings, matching how the CLI passes them.
	doc := Parse(sampleDoc)
	if err := doc.Set("quote.total", "9999.99"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !strings.Contains(doc.String(), `total = "9999.99"`) {
		t.Errorf("value not set:\n%s", doc.String())
	}
}

func TestSet_NewKeyInExistingSection(t *testing.T) {
	doc := Parse(sampleDoc)
	if err := doc.Set("client.phone", "+49 30 1234"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got := doc.String()
	// The new key lands inside [client], before the [quote] header.
	clientIdx := strings.Index(got, "[client]")
	quoteIdx := strings.Index(got, "[quote]")
	phoneIdx := strings.Index(got, `phone = "+49 30 1234"`)
	if phoneIdx < clientIdx || phoneIdx > quoteIdx {
		t.Errorf("phone key misplaced:\n%s", got)
	}
}

func TestSet_AutoVivifySection(t *testing.T) {
	doc := Parse(sampleDoc)
	if err := doc.Set("shipping.address.city", "Hamburg"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got := doc.String()
	if !strings.Contains(got, "[shipping.address]\ncity = \"Hamburg\"\n") {
		t.Errorf("section not created:\n%s", got)
	}
	if !strings.HasPrefix(got, sampleDoc) {
		t.Errorf("existing document altered:\n%s", got)
	}
}

func TestSet_RootKey(t *testing.T) {
	src := "# header comment\ntitle = \"old\"\n\n[meta]\ntemplate = \"t.typ\"\n"
	doc := Parse(src)
	if err := doc.Set("title", "new"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	want := "# header comment\ntitle = \"new\"\n\n[meta]\ntemplate = \"t.typ\"\n"
	if got := doc.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSet_ThroughScalarFails(t *testing.T) {
	doc := Parse(sampleDoc)
	err := doc.Set("client.name.first", "x")
	var notFound *PathNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected PathNotFoundError, got %v", err)
	}
	if notFound.Path != "client.name.first" {
		t.Errorf("error path = %q", notFound.Path)
	}
	// Failed sets leave the document untouched.
	if doc.String() != sampleDoc {
		t.Error("document modified by failed set")
	}
}

func TestSet_ArrayOfTablesIsOpaque(t *testing.T) {
	src := "[meta]\ntemplate = \"t.typ\"\n\n[[items]]\nname = \"a\"\n"
	doc := Parse(src)

	if err := doc.Set("items.name", "b"); err == nil {
		t.Error("expected error navigating into array of tables")
	}
	if err := doc.Set("items", "b"); err == nil {
		t.Error("expected error overwriting array of tables")
	}
}

func TestSet_InlineTableIsOpaque(t *testing.T) {
	src := "[client]\naddress = { city = \"Berlin\", zip = \"10115\" }\n"
	doc := Parse(src)

	err := doc.Set("client.address.city", "Hamburg")
	var notFound *PathNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected PathNotFoundError, got %v", err)
	}

	// Replacing the whole inline table is allowed.
	if err := doc.Set("client.address", "unknown"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !strings.Contains(doc.String(), `address = "unknown"`) {
		t.Errorf("inline table not replaced:\n%s", doc.String())
	}
}

func TestSet_OverwriteTableWithScalar(t *testing.T) {
	doc := Parse(sampleDoc)
	if err := doc.Set("client", "gone"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got := doc.String()
	if strings.Contains(got, "[client]") || strings.Contains(got, "ACME") {
		t.Errorf("table section survived:\n%s", got)
	}
	if !strings.Contains(got, `client = "gone"`) {
		t.Errorf("scalar not written:\n%s", got)
	}
}

func TestSet_MultilineStringValue(t *testing.T) {
	src := "[blocks.intro]\ntitle = \"Intro\"\ncontent = \"\"\"\nline one\nline two\n\"\"\"\n\n[blocks.terms]\ncontent = \"t\"\n"
	doc := Parse(src)

	if err := doc.Set("blocks.intro", "replaced"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got := doc.String()
	if !strings.Contains(got, `content = "replaced"`) {
		t.Errorf("multiline value not replaced:\n%s", got)
	}
	if strings.Contains(got, "line one") {
		t.Errorf("old multiline body survived:\n%s", got)
	}
	if !strings.Contains(got, "[blocks.terms]\ncontent = \"t\"\n") {
		t.Errorf("following section damaged:\n%s", got)
	}
}

func TestSet_EscapesSpecialCharacters(t *testing.T) {
	doc := Parse("[a]\nb = \"x\"\n")
	if err := doc.Set("a.b", "he said \"hi\"\nnew\tline"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	want := `b = "he said \"hi\"\nnew\tline"`
	if !strings.Contains(doc.String(), want) {
		t.Errorf("escaping wrong:\n%s", doc.String())
	}
}

func TestSetAll_DeterministicOrder(t *testing.T) {
	doc := Parse(sampleDoc)
	err := doc.SetAll(map[string]string{
		"quote.number": "Q-2026-043",
		"client.city":  "Hamburg",
		"extra.note":   "hello",
	})
	if err != nil {
		t.Fatalf("SetAll failed: %v", err)
	}

	got := doc.String()
	for _, want := range []string{
		`number = "Q-2026-043"`,
		`city = "Hamburg"`,
		"[extra]\nnote = \"hello\"",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestSet_MultilineArrayValueReplaced(t *testing.T) {
	src := "[quote]\ntags = [\n  \"a\",\n  \"b\",\n]\nnumber = \"Q-1\"\n"
	doc := Parse(src)

	if err := doc.Set("quote.tags", "none"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got := doc.String()
	if !strings.Contains(got, `tags = "none"`) {
		t.Errorf("array not replaced:\n%s", got)
	}
	if strings.Contains(got, `"a",`) {
		t.Errorf("array body survived:\n%s", got)
	}
	if !strings.Contains(got, `number = "Q-1"`) {
		t.Errorf("sibling lost:\n%s", got)
	}
}
