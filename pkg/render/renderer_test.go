package render_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docgen/pkg/engine"
	"github.com/goliatone/go-docgen/pkg/render"
	"github.com/goliatone/go-docgen/pkg/schema"
	"github.com/goliatone/go-docgen/pkg/template"
)

type stubFragment struct {
	output string
	vars   []string
	err    error
}

func (f stubFragment) Execute(map[string]any) (string, error) {
	return f.output, f.err
}

func (f stubFragment) Variables() []string {
	return f.vars
}

func receiptSchema() schema.Document {
	return schema.Document{
		Name: "Receipt",
		Fields: []schema.Field{
			{Name: "title"},
			{Name: "footer", Nullable: true},
		},
	}
}

func orderSource() schema.Data {
	return schema.Data{Name: "Order", Fields: []string{"id"}}
}

func variant(locale, title string) template.Compiled {
	return template.Compiled{
		Source:  orderSource(),
		Locale:  locale,
		Targets: []string{"Receipt"},
		Fields: map[string]engine.Fragment{
			"title":  stubFragment{output: title, vars: []string{"id"}},
			"footer": nil,
		},
	}
}

func newReceiptRenderer(resolver render.LocaleResolver) *render.Renderer {
	locales := []string{"en", "en-GB"}
	variants := map[string]template.Compiled{
		"en":    variant("en", "Order (en)"),
		"en-GB": variant("en-GB", "Order (en-GB)"),
	}
	return render.NewRenderer(receiptSchema(), orderSource(), locales, variants, resolver)
}

func TestRenderer_RenderFillsEveryDeclaredField(t *testing.T) {
	renderer := newReceiptRenderer(nil)

	doc, err := renderer.Render(context.Background(), map[string]any{"id": "1"}, "en-GB")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	want := render.Document{
		Type:   "Receipt",
		Locale: "en-GB",
		Fields: map[string]any{"title": "Order (en-GB)", "footer": nil},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_RenderFallsBackToFirstInstalledLocale(t *testing.T) {
	renderer := newReceiptRenderer(nil)

	doc, err := renderer.Render(context.Background(), map[string]any{"id": "1"}, "fr")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if doc.Locale != "en" {
		t.Fatalf("expected fallback to first-installed \"en\", got %q", doc.Locale)
	}
}

func TestRenderer_RenderHonorsContextCancellation(t *testing.T) {
	renderer := newReceiptRenderer(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Render(ctx, nil, "en"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRenderer_ResolverFailureSurfacesErrNoLocale(t *testing.T) {
	refuse := render.LocaleResolverFunc(func(string, []string) (string, bool) {
		return "", false
	})
	renderer := newReceiptRenderer(refuse)

	if _, err := renderer.Render(context.Background(), nil, "en"); !errors.Is(err, render.ErrNoLocale) {
		t.Fatalf("expected ErrNoLocale, got %v", err)
	}
}

func TestRenderer_FragmentErrorNamesFieldAndDocument(t *testing.T) {
	variants := map[string]template.Compiled{
		"en": {
			Source: orderSource(), Locale: "en", Targets: []string{"Receipt"},
			Fields: map[string]engine.Fragment{
				"title":  stubFragment{err: errors.New("boom")},
				"footer": nil,
			},
		},
	}
	renderer := render.NewRenderer(receiptSchema(), orderSource(), []string{"en"}, variants, nil)

	_, err := renderer.Render(context.Background(), nil, "en")
	if err == nil {
		t.Fatal("expected render error")
	}
	for _, fragment := range []string{"title", "Receipt", "boom"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("error %q missing %q", err.Error(), fragment)
		}
	}
}

func TestRenderer_MissingRequiredFieldContentIsAnError(t *testing.T) {
	variants := map[string]template.Compiled{
		"en": {
			Source: orderSource(), Locale: "en", Targets: []string{"Receipt"},
			Fields: map[string]engine.Fragment{"footer": nil},
		},
	}
	renderer := render.NewRenderer(receiptSchema(), orderSource(), []string{"en"}, variants, nil)

	_, err := renderer.Render(context.Background(), map[string]any{"id": "1"}, "en")
	if err == nil {
		t.Fatal("expected render error for required field without content")
	}
	for _, part := range []string{"title", "Receipt", "en"} {
		if !strings.Contains(err.Error(), part) {
			t.Fatalf("error %q missing %q", err.Error(), part)
		}
	}
}

func TestRenderer_ContentTypeFollowsFieldEncodings(t *testing.T) {
	plain := render.NewRenderer(receiptSchema(), orderSource(), nil, nil, nil)
	if got := plain.ContentType(); got != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type %q", got)
	}

	htmlDoc := schema.Document{
		Name: "Receipt",
		Fields: []schema.Field{
			{Name: "title"},
			{Name: "body", Encoding: schema.EncodingHTML},
		},
	}
	html := render.NewRenderer(htmlDoc, orderSource(), nil, nil, nil)
	if got := html.ContentType(); got != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", got)
	}
}

func TestRenderer_LocalesReturnsCopy(t *testing.T) {
	renderer := newReceiptRenderer(nil)
	locales := renderer.Locales()
	locales[0] = "mutated"
	if again := renderer.Locales(); again[0] != "en" {
		t.Fatalf("Locales must return a copy, got %v", again)
	}
}
