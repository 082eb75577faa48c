package include

import "strings"

const frontMatterDelimiter = "---"

// PostProcess applies the include pipeline in its fixed order: trailing
// newline, line endings, front matter, indentation, escaping.
func PostProcess(text string, opts Options) string {
	text = StripTrailingNewline(text)
	if opts.FixNewline {
		text = Newline(text)
	}
	if opts.HideYFM {
		text = HideFrontMatter(text)
	}
	if opts.Indent > 0 {
		text = Indent(text, opts.Indent)
	}
	if opts.Escape {
		text = Escape(text)
	}
	return text
}

// StripTrailingNewline removes exactly one trailing "\n".
func StripTrailingNewline(text string) string {
	return strings.TrimSuffix(text, "\n")
}

// Newline converts CRLF line endings to LF.
func Newline(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// HideFrontMatter drops everything up to and including the second "---"
// delimiter line. Detection only counts delimiters; they do not have to open
// the text.
func HideFrontMatter(text string) string {
	if strings.Count(text, frontMatterDelimiter) < 2 {
		return text
	}
	start := strings.Index(text, frontMatterDelimiter) + 1
	end := start + strings.Index(text[start:], frontMatterDelimiter)
	rest := text[end+len(frontMatterDelimiter):]

	if trimmed, ok := strings.CutPrefix(rest, "\r\n"); ok {
		return trimmed
	}
	return strings.TrimPrefix(rest, "\n")
}

// Indent prefixes every line of text with width spaces.
func Indent(text string, width int) string {
	if width <= 0 {
		return text
	}
	pad := strings.Repeat(" ", width)
	return pad + strings.ReplaceAll(text, "\n", "\n"+pad)
}

// Escape replaces & < > " ' with HTML entities. The ampersand goes first so
// entities produced by later substitutions are not escaped again.
func Escape(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	text = strings.ReplaceAll(text, `"`, "&quot;")
	return strings.ReplaceAll(text, "'", "&#039;")
}
