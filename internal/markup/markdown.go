package markup

import (
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/custodia-labs/devsync-cli/internal/logger"
)

// Markdown converts a storage body to Markdown. Relative links resolve
// against the host of baseURL, which may be empty. When conversion fails
// or loses all text, the PlainText rendering is returned instead.
func Markdown(body, baseURL string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}

	domain := baseURL
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		domain = u.Host
	}

	converted, err := md.NewConverter(domain, true, nil).ConvertString(clean(body))
	if err != nil {
		logger.Warn("markdown conversion failed, using plain text: %v", err)
		return PlainText(body)
	}
	converted = strings.TrimSpace(converted)
	if converted == "" {
		return PlainText(body)
	}
	return converted
}
