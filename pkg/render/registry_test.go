package render_test

import (
	"testing"

	"github.com/goliatone/go-docgen/pkg/diag"
	"github.com/goliatone/go-docgen/pkg/render"
	"github.com/goliatone/go-docgen/pkg/schema"
	"github.com/goliatone/go-docgen/pkg/template"
)

func summaryRenderer() *render.Renderer {
	summary := schema.Document{
		Name:   "Summary",
		Fields: []schema.Field{{Name: "headline", Nullable: true}},
	}
	variants := map[string]template.Compiled{
		"en": {Source: orderSource(), Locale: "en", Targets: []string{"Summary"}},
	}
	return render.NewRenderer(summary, orderSource(), []string{"en"}, variants, nil)
}

func TestArtifact_GetAndOrderedKeys(t *testing.T) {
	receipt := newReceiptRenderer(nil)
	summary := summaryRenderer()

	artifact := render.NewArtifact([]*render.Renderer{receipt, summary}, nil)

	if artifact.Len() != 2 {
		t.Fatalf("expected 2 renderers, got %d", artifact.Len())
	}

	want := []render.Key{
		{Data: "Order", Document: "Receipt"},
		{Data: "Order", Document: "Summary"},
	}
	got := artifact.Keys()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("key %d = %v, want %v", i, got[i], want[i])
		}
	}

	if _, ok := artifact.Get("Order", "Receipt"); !ok {
		t.Fatal("expected renderer for (Order, Receipt)")
	}
	if _, ok := artifact.Get("Order", "Invoice"); ok {
		t.Fatal("unexpected renderer for (Order, Invoice)")
	}
}

func TestArtifact_FirstRendererWinsOnDuplicateKey(t *testing.T) {
	first := newReceiptRenderer(nil)
	duplicate := newReceiptRenderer(nil)

	artifact := render.NewArtifact([]*render.Renderer{first, duplicate, nil}, nil)
	if artifact.Len() != 1 {
		t.Fatalf("expected 1 renderer, got %d", artifact.Len())
	}
	got, _ := artifact.Get("Order", "Receipt")
	if got != first {
		t.Fatal("expected first-inserted renderer to win")
	}
}

func TestArtifact_WarningsAreCopied(t *testing.T) {
	warnings := diag.List{diag.New(diag.KindEmptyRegistry, "no templates installed")}
	artifact := render.NewArtifact(nil, warnings)

	got := artifact.Warnings()
	if len(got) != 1 || got[0].Kind != diag.KindEmptyRegistry {
		t.Fatalf("unexpected warnings: %v", got.Strings())
	}

	got[0].Kind = "mutated"
	if again := artifact.Warnings(); again[0].Kind != diag.KindEmptyRegistry {
		t.Fatal("Warnings must return a copy")
	}
}

func TestKeyString(t *testing.T) {
	key := render.Key{Data: "Order", Document: "Receipt"}
	if key.String() != "Order->Receipt" {
		t.Fatalf("unexpected key string %q", key.String())
	}
}
