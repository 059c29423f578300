package core

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat is the target textual encoding of a report.
type OutputFormat int

const (
	FormatPlain OutputFormat = iota
	FormatMarkdown
	FormatHTML
)

func (f OutputFormat) String() string {
	switch f {
	case FormatPlain:
		return "plain"
	case FormatMarkdown:
		return "markdown"
	case FormatHTML:
		return "html"
	default:
		return ""
	}
}

func (f *OutputFormat) UnmarshalYAML(node *yaml.Node) error {
	var format string
	if err := node.Decode(&format); err != nil {
		return err
	}

	switch strings.ToLower(format) {
	case "plain", "":
		*f = FormatPlain
	case "markdown":
		*f = FormatMarkdown
	case "html":
		*f = FormatHTML
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	return nil
}

// Title1 emits the report-level heading.
func (f OutputFormat) Title1(title string) string {
	switch f {
	case FormatHTML:
		return fmt.Sprintf("<h1>%s</h1>\n", title)
	case FormatMarkdown:
		return fmt.Sprintf("\n# %s\n\n", title)
	default:
		return fmt.Sprintf("\n%s\n\n", title)
	}
}

// Title2 emits a per-query section heading.
func (f OutputFormat) Title2(title string) string {
	switch f {
	case FormatHTML:
		return fmt.Sprintf("<h3>%s</h3>\n", title)
	case FormatMarkdown:
		return fmt.Sprintf("## %s\n\n", title)
	default:
		return fmt.Sprintf("%s\n\n", title)
	}
}

// Simple emits a plain content line.
func (f OutputFormat) Simple(content string) string {
	return fmt.Sprintf("%s\n", content)
}

// BreakLine emits a paragraph break.
func (f OutputFormat) BreakLine() string {
	if f == FormatHTML {
		return "<br>\n"
	}
	return "\n"
}

// Body wraps the assembled report content in the format's document
// envelope.
func (f OutputFormat) Body(content string) string {
	if f == FormatHTML {
		return fmt.Sprintf("<html>\n<body>\n%s</body>\n</html>\n", content)
	}
	return content
}
