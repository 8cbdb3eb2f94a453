package markdown

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

const wordWrap = 160

// Markdown is a document built up section by section.
type Markdown struct {
	content strings.Builder
}

func New() *Markdown {
	return &Markdown{}
}

// AddHeading adds a heading; levels outside 1-6 fall back to 1.
func (m *Markdown) AddHeading(text string, level int) *Markdown {
	if level < 1 || level > 6 {
		level = 1
	}
	fmt.Fprintf(&m.content, "%s %s\n\n", strings.Repeat("#", level), text)
	return m
}

func (m *Markdown) AddParagraph(text string) *Markdown {
	fmt.Fprintf(&m.content, "%s\n\n", text)
	return m
}

// AddTable writes rows under headers. Short rows are padded with empty cells; columns listed
// in groupColumns blank out a value equal to the one in the row above.
func (m *Markdown) AddTable(headers []string, rows [][]string, groupColumns ...int) *Markdown {
	if len(headers) == 0 {
		return m
	}

	separators := make([]string, len(headers))
	for i := range separators {
		separators[i] = "---"
	}
	writeRow(&m.content, headers)
	writeRow(&m.content, separators)

	grouped := make(map[int]bool, len(groupColumns))
	for _, col := range groupColumns {
		grouped[col] = true
	}

	previous := make([]string, len(headers))
	for _, row := range rows {
		cells := make([]string, len(headers))
		copy(cells, row)

		for col := range cells {
			if !grouped[col] {
				continue
			}
			if cells[col] == previous[col] {
				cells[col] = ""
			} else {
				previous[col] = cells[col]
			}
		}
		writeRow(&m.content, cells)
	}

	m.content.WriteString("\n")
	return m
}

func (m *Markdown) AddList(items []string) *Markdown {
	for _, item := range items {
		fmt.Fprintf(&m.content, "- %s\n", item)
	}
	m.content.WriteString("\n")
	return m
}

func (m *Markdown) String() string {
	return m.content.String()
}

// WriteTo writes the raw markdown.
func (m *Markdown) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, m.content.String())
	return int64(n), err
}

// Render returns the document rendered for a terminal.
func (m *Markdown) Render() (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create glamour renderer: %v", err)
	}

	out, err := renderer.Render(m.content.String())
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %v", err)
	}
	return out, nil
}

// Print renders the document to w, falling back to raw markdown if rendering fails.
func (m *Markdown) Print(w io.Writer) error {
	out, err := m.Render()
	if err != nil {
		_, err = m.WriteTo(w)
		return err
	}

	_, err = io.WriteString(w, out+"\n")
	return err
}

func writeRow(b *strings.Builder, cells []string) {
	escaped := make([]string, len(cells))
	for i, cell := range cells {
		escaped[i] = strings.ReplaceAll(cell, "|", `\|`)
	}
	b.WriteString("| " + strings.Join(escaped, " | ") + " |\n")
}
