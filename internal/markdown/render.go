// Package markdown renders the constrained message markdown subset to
// styled terminal text. Message text is passed in verbatim; this
// package owns making it safe to place into the view (control
// sequences in the input are stripped, never forwarded).
package markdown

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	italicStyle  = lipgloss.NewStyle().Italic(true)
	strikeStyle  = lipgloss.NewStyle().Strikethrough(true)
	codeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("216")).Background(lipgloss.Color("236"))
	quoteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	linkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Underline(true)
)

var (
	headingRe     = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	bulletRe      = regexp.MustCompile(`^(\s*)[-*+]\s+(.*)$`)
	orderedRe     = regexp.MustCompile(`^(\s*)(\d+)\.\s+(.*)$`)
	codeSpanRe    = regexp.MustCompile("`([^`\n]+)`")
	linkRe        = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
	boldRe        = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicStarRe  = regexp.MustCompile(`\*([^*]+)\*`)
	italicUnderRe = regexp.MustCompile(`_([^_]+)_`)
	strikeRe      = regexp.MustCompile(`~~([^~]+)~~`)
	controlRe     = regexp.MustCompile("[\x00-\x08\x0b-\x1f\x7f]")
)

// Render converts message text to styled terminal output.
func Render(text string) string {
	text = controlRe.ReplaceAllString(text, "")
	lines := strings.Split(text, "\n")

	var out []string
	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if fence, lang, ok := parseFence(line); ok {
			end := findClosingFence(lines, i+1, fence)
			if end >= 0 {
				code := strings.Join(lines[i+1:end], "\n")
				out = append(out, highlightCode(code, lang))
				i = end
				continue
			}
		}

		if match := headingRe.FindStringSubmatch(line); match != nil {
			out = append(out, headingStyle.Render(inline(match[2])))
			continue
		}
		if strings.HasPrefix(line, "> ") || line == ">" {
			quoted := strings.TrimPrefix(strings.TrimPrefix(line, ">"), " ")
			out = append(out, quoteStyle.Render("│ "+inline(quoted)))
			continue
		}
		if match := bulletRe.FindStringSubmatch(line); match != nil {
			out = append(out, match[1]+"• "+inline(match[2]))
			continue
		}
		if match := orderedRe.FindStringSubmatch(line); match != nil {
			out = append(out, match[1]+match[2]+". "+inline(match[3]))
			continue
		}
		out = append(out, inline(line))
	}
	return strings.Join(out, "\n")
}

// inline styles spans within a single line. Code spans are carved out
// first so emphasis markers inside them stay literal.
func inline(line string) string {
	spans := codeSpanRe.FindAllStringSubmatchIndex(line, -1)
	if len(spans) == 0 {
		return emphasis(line)
	}

	var out strings.Builder
	prev := 0
	for _, span := range spans {
		out.WriteString(emphasis(line[prev:span[0]]))
		out.WriteString(codeStyle.Render(line[span[2]:span[3]]))
		prev = span[1]
	}
	out.WriteString(emphasis(line[prev:]))
	return out.String()
}

func emphasis(segment string) string {
	segment = linkRe.ReplaceAllStringFunc(segment, func(match string) string {
		parts := linkRe.FindStringSubmatch(match)
		return hyperlink(parts[2], linkStyle.Render(parts[1]))
	})
	segment = boldRe.ReplaceAllStringFunc(segment, func(match string) string {
		return boldStyle.Render(boldRe.FindStringSubmatch(match)[1])
	})
	segment = strikeRe.ReplaceAllStringFunc(segment, func(match string) string {
		return strikeStyle.Render(strikeRe.FindStringSubmatch(match)[1])
	})
	segment = italicStarRe.ReplaceAllStringFunc(segment, func(match string) string {
		return italicStyle.Render(italicStarRe.FindStringSubmatch(match)[1])
	})
	segment = italicUnderRe.ReplaceAllStringFunc(segment, func(match string) string {
		return italicStyle.Render(italicUnderRe.FindStringSubmatch(match)[1])
	})
	return segment
}

// hyperlink wraps label in an OSC 8 sequence; the terminal opens the
// target in a new context.
func hyperlink(url, label string) string {
	return "\x1b]8;;" + url + "\x07" + label + "\x1b]8;;\x07"
}
