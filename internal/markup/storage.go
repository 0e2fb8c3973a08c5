package markup

import (
	"html"
	"regexp"
	"strings"
)

// Pre-compiled expressions, applied in order by PlainText.
var (
	cdataSection      = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	scriptTag         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	headTag           = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	svgTag            = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	macroParameter    = regexp.MustCompile(`(?is)<ac:parameter[^>]*>.*?</ac:parameter>`)
	pageReference     = regexp.MustCompile(`(?i)<ri:page[^>]*ri:content-title="([^"]*)"[^>]*/?>`)
	htmlComments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	listItem          = regexp.MustCompile(`(?i)<li[^>]*>`)
	tableCell         = regexp.MustCompile(`(?i)</(td|th)>`)
	blockElements     = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article|ac:structured-macro)>`)
	openBlockElements = regexp.MustCompile(`(?i)<(p|div|h[1-6]|tr|blockquote|pre|table|section|article)[^>]*>`)
	brTags            = regexp.MustCompile(`(?i)<br\s*/?>`)
	hrTags            = regexp.MustCompile(`(?i)<hr\s*/?>`)
	allTags           = regexp.MustCompile(`<[^>]+>`)
	multiSpaces       = regexp.MustCompile(`[ \t]+`)
)

// clean drops the parts of a storage body that never render and turns
// CDATA code bodies and page links into ordinary text.
func clean(body string) string {
	// CDATA holds raw code; escape it so tag handling leaves it intact.
	body = cdataSection.ReplaceAllStringFunc(body, func(s string) string {
		return html.EscapeString(cdataSection.FindStringSubmatch(s)[1])
	})
	for _, re := range []*regexp.Regexp{scriptTag, styleTag, headTag, svgTag, macroParameter, htmlComments} {
		body = re.ReplaceAllString(body, "")
	}
	return pageReference.ReplaceAllString(body, "$1")
}

// PlainText strips storage-format markup and returns one trimmed line per
// block, with list items prefixed by "- ".
func PlainText(body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}

	body = clean(body)

	body = listItem.ReplaceAllString(body, "\n- ")
	body = tableCell.ReplaceAllString(body, " ")
	body = openBlockElements.ReplaceAllString(body, "\n")
	body = blockElements.ReplaceAllString(body, "\n")
	body = brTags.ReplaceAllString(body, "\n")
	body = hrTags.ReplaceAllString(body, "\n")

	body = allTags.ReplaceAllString(body, "")
	body = html.UnescapeString(body)

	lines := strings.Split(body, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(multiSpaces.ReplaceAllString(line, " "))
		if line != "" && line != "-" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}

// Excerpt returns the first limit runes of the plain text, ending in "..."
// when shortened.
func Excerpt(body string, limit int) string {
	text := strings.ReplaceAll(PlainText(body), "\n", " ")
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return strings.TrimSpace(string(runes[:limit-3])) + "..."
}
