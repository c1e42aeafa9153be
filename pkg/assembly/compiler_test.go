package assembly_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-docgen/pkg/assembly"
	"github.com/goliatone/go-docgen/pkg/schema"
	"github.com/goliatone/go-docgen/pkg/template"
)

func TestCompile_DescriptorEncodingOverridesBuilderDefault(t *testing.T) {
	builder := assembly.NewBuilder(assembly.WithDefaultEncoding(schema.EncodingPlainText))

	article := schema.Document{
		Name: "Article",
		Fields: []schema.Field{
			{Name: "body", Encoding: schema.EncodingHTML},
			{Name: "teaser"},
		},
	}
	if err := builder.InstallDocumentSchema(article); err != nil {
		t.Fatalf("install document schema: %v", err)
	}

	source := schema.Data{Name: "Post", Fields: []string{"content"}}
	def := template.Definition{
		Source:  source,
		Locale:  "en",
		Targets: []string{"Article"},
		Fields: map[string]string{
			"body":   "{{ content }}",
			"teaser": "{{ content }}",
		},
	}
	if err := builder.InstallTemplate(source, def); err != nil {
		t.Fatalf("install template: %v", err)
	}

	artifact, err := builder.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	doc, err := artifact.MustGet("Post", "Article").Render(context.Background(), map[string]any{
		"content": `<b>bold & loud</b>`,
	}, "en")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	body, _ := doc.Fields["body"].(string)
	if strings.Contains(body, "<b>") {
		t.Fatalf("html-encoded field must escape markup, got %q", body)
	}
	if !strings.Contains(body, "&lt;b&gt;") {
		t.Fatalf("expected escaped markup in body, got %q", body)
	}

	teaser, _ := doc.Fields["teaser"].(string)
	if teaser != `<b>bold & loud</b>` {
		t.Fatalf("plain-text field must pass content through, got %q", teaser)
	}
}

func TestCompile_BuilderDefaultHTMLAppliesToUnannotatedFields(t *testing.T) {
	builder := assembly.NewBuilder(assembly.WithDefaultEncoding(schema.EncodingHTML))
	if err := builder.InstallDocumentSchema(receiptSchema()); err != nil {
		t.Fatalf("install document schema: %v", err)
	}
	if err := builder.InstallTemplate(orderData(), orderDefinition("en", map[string]string{
		"title":  "{{ id }}",
		"footer": "{{ total }}",
	})); err != nil {
		t.Fatalf("install template: %v", err)
	}

	artifact, err := builder.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	renderer := artifact.MustGet("Order", "Receipt")
	if got := renderer.ContentType(); got != "text/html; charset=utf-8" {
		t.Fatalf("default-html renderer advertises %q", got)
	}
	doc, err := renderer.Render(context.Background(), map[string]any{
		"id":    "<1>",
		"total": "2",
	}, "en")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if doc.Fields["title"] != "&lt;1&gt;" {
		t.Fatalf("expected escaped title, got %q", doc.Fields["title"])
	}
}
