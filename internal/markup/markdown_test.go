package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		contains []string
		excludes []string
	}{
		{
			name:     "heading and list",
			body:     "<h1>Deploys</h1><ul><li>Tag the release</li><li>Ship</li></ul>",
			contains: []string{"# Deploys", "- Tag the release", "- Ship"},
		},
		{
			name:     "emphasis and links",
			body:     `<p>Read <strong>this</strong> <a href="/wiki/x">guide</a></p>`,
			contains: []string{"**this**", "[guide](", "acme.atlassian.net/wiki/x)"},
		},
		{
			name:     "code macro keeps its body",
			body:     `<ac:structured-macro ac:name="code"><ac:parameter ac:name="language">go</ac:parameter><ac:plain-text-body><![CDATA[make release]]></ac:plain-text-body></ac:structured-macro>`,
			contains: []string{"make release"},
			excludes: []string{"CDATA", "language"},
		},
		{
			name:     "scripts dropped",
			body:     "<p>Visible</p><script>alert(1)</script>",
			contains: []string{"Visible"},
			excludes: []string{"alert"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Markdown(tt.body, "https://acme.atlassian.net")
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, not := range tt.excludes {
				assert.NotContains(t, out, not)
			}
		})
	}
}

func TestMarkdown_Empty(t *testing.T) {
	assert.Empty(t, Markdown("  ", ""))
}

func TestMarkdown_PageReference(t *testing.T) {
	body := `<p>See <ac:link><ri:page ri:content-title="Runbook" /></ac:link></p>`

	assert.Equal(t, "See Runbook", Markdown(body, ""))
}
