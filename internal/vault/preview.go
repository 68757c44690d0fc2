package vault

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Summary is display metadata for a note, derived from its content.
type Summary struct {
	Title   string
	Preview string
}

// Summarize derives a title and a short preview from note content.
// Title comes from frontmatter `title`, then the first H1, then falls
// back to the note's basename.
func Summarize(note Note, content string) Summary {
	fmTitle, body := splitFrontmatter([]byte(content))

	title := fmTitle
	if title == "" {
		title = extractHeading(body)
	}
	if title == "" {
		title = note.Basename()
	}

	return Summary{
		Title:   title,
		Preview: extractPreview(body),
	}
}

type frontmatter struct {
	Title string `yaml:"title"`
}

// splitFrontmatter peels an optional YAML frontmatter block off the
// content, returning its title field and the remaining body.
func splitFrontmatter(content []byte) (string, string) {
	lines := bytes.Split(content, []byte("\n"))

	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return "", string(content)
	}

	var fmEnd int
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			fmEnd = i
			break
		}
	}
	if fmEnd == 0 {
		return "", string(content)
	}

	var fm frontmatter
	if err := yaml.Unmarshal(bytes.Join(lines[1:fmEnd], []byte("\n")), &fm); err != nil {
		return "", string(content)
	}

	body := bytes.Join(lines[fmEnd+1:], []byte("\n"))
	return fm.Title, string(body)
}

func extractHeading(markdown string) string {
	reader := text.NewReader([]byte(markdown))
	doc := goldmark.DefaultParser().Parse(reader)

	var title string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindHeading {
			heading := n.(*ast.Heading)
			if heading.Level == 1 {
				title = string(n.Text([]byte(markdown)))
				return ast.WalkStop, nil
			}
		}
		return ast.WalkContinue, nil
	})

	return title
}

func extractPreview(markdown string) string {
	reader := text.NewReader([]byte(markdown))
	doc := goldmark.DefaultParser().Parse(reader)

	var preview strings.Builder
	lineCount := 0
	maxLines := 2

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if n.Kind() == ast.KindHeading {
			return ast.WalkSkipChildren, nil
		}

		if n.Kind() == ast.KindParagraph {
			if lineCount >= maxLines {
				return ast.WalkStop, nil
			}

			text := string(n.Text([]byte(markdown)))
			if text != "" {
				if preview.Len() > 0 {
					preview.WriteString(" ")
				}
				preview.WriteString(text)
				lineCount++
			}

			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	previewText := preview.String()
	if len(previewText) > 60 {
		previewText = previewText[:57] + "..."
	}

	return previewText
}
