package pongo2engine

import "strings"

// Tag keywords and builtins that must never be reported as data variables.
var reservedWords = map[string]struct{}{
	"if": {}, "elif": {}, "else": {}, "endif": {},
	"for": {}, "endfor": {}, "in": {}, "empty": {}, "reversed": {}, "sorted": {},
	"not": {}, "and": {}, "or": {}, "is": {},
	"true": {}, "false": {}, "none": {}, "nil": {},
	"autoescape": {}, "endautoescape": {}, "on": {}, "off": {},
	"with": {}, "endwith": {}, "set": {},
	"block": {}, "endblock": {}, "extends": {}, "include": {},
	"macro": {}, "endmacro": {}, "filter": {}, "endfilter": {},
	"comment": {}, "endcomment": {}, "verbatim": {}, "endverbatim": {},
	"spaceless": {}, "endspaceless": {}, "cycle": {}, "firstof": {},
	"forloop": {},
}

// ExtractRoots scans a raw template string and returns the top-level variable
// names it references: for every dotted path inside a `{{ … }}` or `{% … %}`
// tag, the first segment. Filter names, tag keywords, string and numeric
// literals, and loop-local variables are excluded. Names appear once each, in
// first-appearance order.
//
// This is a best-effort lexical pass over the tag subset the field compiler
// accepts; it does not interpret the template.
func ExtractRoots(src string) []string {
	var (
		out    []string
		seen   = map[string]struct{}{}
		locals = map[string]struct{}{}
	)

	for i := 0; i < len(src); {
		varStart := strings.Index(src[i:], "{{")
		tagStart := strings.Index(src[i:], "{%")

		start, open, close := -1, "", ""
		switch {
		case varStart >= 0 && (tagStart < 0 || varStart < tagStart):
			start, open, close = varStart, "{{", "}}"
		case tagStart >= 0:
			start, open, close = tagStart, "{%", "%}"
		default:
			return out
		}

		i += start + len(open)
		end := strings.Index(src[i:], close)
		if end < 0 {
			// Unterminated tag; the parser will reject it, nothing to report.
			return out
		}
		content := src[i : i+end]
		i += end + len(close)

		if open == "{%" {
			registerLoopLocals(content, locals)
		}
		scanExpression(content, locals, seen, &out)
	}
	return out
}

// registerLoopLocals records the iteration variables of a `for` tag so later
// references to them are not mistaken for data fields.
func registerLoopLocals(content string, locals map[string]struct{}) {
	fields := strings.Fields(content)
	if len(fields) < 4 || fields[0] != "for" {
		return
	}
	for idx, field := range fields {
		if field != "in" {
			continue
		}
		for _, name := range fields[1:idx] {
			for _, part := range strings.Split(name, ",") {
				part = strings.TrimSpace(part)
				if part != "" {
					locals[part] = struct{}{}
				}
			}
		}
		return
	}
}

func scanExpression(expr string, locals, seen map[string]struct{}, out *[]string) {
	afterPipe := false
	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c == '\'' || c == '"':
			i = skipString(expr, i)
			afterPipe = false
		case c == '|':
			afterPipe = true
			i++
		case c == ' ' || c == '\t':
			i++
		case isIdentStart(c):
			j := i + 1
			for j < len(expr) && isIdentByte(expr[j]) {
				j++
			}
			token := expr[i:j]
			i = j
			root := token
			if dot := strings.IndexByte(root, '.'); dot >= 0 {
				root = root[:dot]
			}
			if afterPipe {
				afterPipe = false
				continue
			}
			if _, reserved := reservedWords[root]; reserved {
				continue
			}
			if _, local := locals[root]; local {
				continue
			}
			if _, dup := seen[root]; dup {
				continue
			}
			seen[root] = struct{}{}
			*out = append(*out, root)
		default:
			afterPipe = false
			i++
		}
	}
}

func skipString(expr string, i int) int {
	quote := expr[i]
	for j := i + 1; j < len(expr); j++ {
		if expr[j] == '\\' {
			j++
			continue
		}
		if expr[j] == quote {
			return j + 1
		}
	}
	return len(expr)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || c == '.' || (c >= '0' && c <= '9')
}
