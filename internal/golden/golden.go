// Package golden extracts end-to-end compiler test cases from Markdown
// documents: a "Test: <name>" heading introduces a case, followed by an
// `l` fenced code block holding the source program and one or more
// assertion fences (`tac`, `symtab`, `error`) holding the expected
// output fragments. This mirrors how the teacher's own Markdown-driven
// test corpus is structured, adapted to this compiler's own assertion
// shapes instead of an embedded expression language.
package golden

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Case is one extracted test case.
type Case struct {
	Name string
	// Source is the program text from the `l` fence.
	Source string
	// ExpectTAC, when non-empty, is the expected TAC body (sans banner),
	// one instruction per line.
	ExpectTAC string
	// ExpectSymtab, when non-empty, is the expected Table.Print output.
	ExpectSymtab string
	// ExpectErrorSubstring, when non-empty, is a substring every
	// diagnostic-bearing case must contain somewhere in its output.
	ExpectErrorSubstring string
}

const sourceFence = "l"

func isAssertionFence(lang string) bool {
	switch lang {
	case "tac", "symtab", "error":
		return true
	}
	return false
}

// Extract parses markdown and returns every "Test: ..." case it finds.
func Extract(markdown string) ([]Case, error) {
	md := goldmark.New()
	source := []byte(markdown)
	doc := md.Parser().Parse(text.NewReader(source))

	var cases []Case
	var cur *Case

	err := gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gast.Heading:
			text := headingText(node, source)
			if !strings.HasPrefix(text, "Test: ") {
				return gast.WalkContinue, nil
			}
			if cur != nil {
				cases = append(cases, *cur)
			}
			cur = &Case{Name: strings.TrimPrefix(text, "Test: ")}

		case *gast.FencedCodeBlock:
			lang := string(node.Language(source))
			content := fenceContent(node, source)
			if cur == nil {
				return gast.WalkContinue, nil
			}
			switch {
			case lang == sourceFence:
				cur.Source = strings.TrimRight(content, "\n")
			case lang == "tac":
				cur.ExpectTAC = strings.TrimRight(content, "\n")
			case lang == "symtab":
				cur.ExpectSymtab = strings.TrimRight(content, "\n")
			case lang == "error":
				cur.ExpectErrorSubstring = strings.TrimSpace(content)
			case lang != "" && !isAssertionFence(lang):
				return gast.WalkStop, fmt.Errorf("unknown fence language %q in test %q", lang, cur.Name)
			}
		}
		return gast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if cur != nil {
		cases = append(cases, *cur)
	}
	return cases, nil
}

func headingText(h *gast.Heading, source []byte) string {
	var sb strings.Builder
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
	}
	return sb.String()
}

func fenceContent(b *gast.FencedCodeBlock, source []byte) string {
	var sb strings.Builder
	for i := 0; i < b.Lines().Len(); i++ {
		line := b.Lines().At(i)
		sb.Write(line.Value(source))
	}
	return sb.String()
}
