package jira

// adfNode is a node of an Atlassian Document Format tree.
type adfNode struct {
	Type    string    `json:"type"`
	Version int       `json:"version,omitempty"`
	Text    string    `json:"text,omitempty"`
	Content []adfNode `json:"content,omitempty"`
}

// adfDocument wraps text in a single-paragraph document.
func adfDocument(text string) adfNode {
	return adfNode{
		Type:    "doc",
		Version: 1,
		Content: []adfNode{{
			Type:    "paragraph",
			Content: []adfNode{{Type: "text", Text: text}},
		}},
	}
}

// firstText returns the text of the first node of the first block, which is
// what the dashboard shows. A nil document has no text.
func (n *adfNode) firstText() string {
	if n == nil || len(n.Content) == 0 || len(n.Content[0].Content) == 0 {
		return ""
	}
	return n.Content[0].Content[0].Text
}
