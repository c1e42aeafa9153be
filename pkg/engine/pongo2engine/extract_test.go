package pongo2engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractRoots(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "plain text",
			src:  "no variables here",
			want: nil,
		},
		{
			name: "single variable",
			src:  "Order {{ id }}",
			want: []string{"id"},
		},
		{
			name: "dotted path uses root",
			src:  "{{ customer.address.city }}",
			want: []string{"customer"},
		},
		{
			name: "deduplicates in first-appearance order",
			src:  "{{ total }} {{ id }} {{ total }}",
			want: []string{"total", "id"},
		},
		{
			name: "filter names are not variables",
			src:  "{{ name|upper }} {{ total|floatformat:2 }}",
			want: []string{"name", "total"},
		},
		{
			name: "string literals are skipped",
			src:  `{{ name|default:"anonymous" }}`,
			want: []string{"name"},
		},
		{
			name: "if tag operands",
			src:  "{% if total and discount %}deal{% endif %}",
			want: []string{"total", "discount"},
		},
		{
			name: "for loop locals are excluded",
			src:  "{% for item in lines %}{{ item.qty }} of {{ sku }}{% endfor %}",
			want: []string{"lines", "sku"},
		},
		{
			name: "forloop builtin is excluded",
			src:  "{% for x in rows %}{{ forloop.Counter }}{% endfor %}",
			want: []string{"rows"},
		},
		{
			name: "unterminated tag yields what was seen",
			src:  "{{ id }} {{ broken",
			want: []string{"id"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractRoots(tc.src)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("roots mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
