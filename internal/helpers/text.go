package helpers

import (
	"strconv"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-stache/internal/include"
)

func raw(options *raymond.Options) string {
	return "<raw>" + options.Fn() + "</raw>"
}

// percent returns dividend as a percentage of divisor with toFixed decimals.
// Equal values are 100 and a zero divisor is 0.
func percent(dividend, divisor any, options *raymond.Options) string {
	a, _ := toFloat(dividend)
	b, _ := toFloat(divisor)

	r := 0.0
	switch {
	case a == b:
		r = 100
	case b != 0:
		r = a / b * 100
	}
	return strconv.FormatFloat(r, 'f', max(hashInt(options, "toFixed"), 0), 64)
}

func withNewline(options *raymond.Options) string {
	return include.Newline(options.Fn())
}

// getPrismType maps Sandcastle language names to Prism grammar names.
func getPrismType(language string) string {
	switch strings.ToUpper(language) {
	case "C#", "VB":
		return "csharp"
	case "C++":
		return "cpp"
	}
	return language
}

// normalizeSandcastleURL turns a relative Sandcastle page link into a sibling
// directory link. Absolute URLs pass through.
func normalizeSandcastleURL(url string) string {
	if strings.Contains(url, "://") {
		return url
	}
	url = strings.Replace(url, ".htm", "/", 1)
	url = strings.Replace(url, "html/", "", 1)
	return "../" + url
}

func slugify(title string) string {
	out, err := slug.Normalize(title)
	if err != nil {
		fail(err)
	}
	return out
}
