package markdown

import (
	"bytes"
	"os"
	"strings"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
)

const chromaStyleName = "dracula"

// parseFence reports whether line opens a fenced code block, returning
// the fence run and the info-string language.
func parseFence(line string) (string, string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if len(trimmed) < 3 {
		return "", "", false
	}

	fenceChar := trimmed[0]
	if fenceChar != '`' && fenceChar != '~' {
		return "", "", false
	}

	count := 0
	for count < len(trimmed) && trimmed[count] == fenceChar {
		count++
	}
	if count < 3 {
		return "", "", false
	}

	fence := trimmed[:count]
	lang := ""
	if rest := strings.Fields(trimmed[count:]); len(rest) > 0 {
		lang = rest[0]
	}
	return fence, lang, true
}

func findClosingFence(lines []string, start int, fence string) int {
	for i := start; i < len(lines); i++ {
		if isClosingFence(lines[i], fence) {
			return i
		}
	}
	return -1
}

func isClosingFence(line, fence string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < len(fence) {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != fence[0] {
			return false
		}
	}
	return true
}

func highlightCode(code, lang string) string {
	if code == "" {
		return ""
	}
	if os.Getenv("NO_COLOR") != "" {
		return code
	}

	lexer := resolveLexer(code, lang)
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	style := styles.Get(chromaStyleName)
	if style == nil {
		style = styles.Fallback
	}

	var buf bytes.Buffer
	if err := formatters.TTY256.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func resolveLexer(code, lang string) chroma.Lexer {
	lang = strings.ToLower(strings.TrimSpace(lang))
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}
