package domain

// ConfluenceUser is the authenticated principal of a Confluence connection test.
type ConfluenceUser struct {
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
}

// Space is a Confluence space.
type Space struct {
	ID          int64  `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description,omitempty"`
	WebURL      string `json:"webUrl,omitempty"`
}

// Page is a Confluence page. Body holds storage-format XHTML when requested.
type Page struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	SpaceKey string `json:"spaceKey,omitempty"`
	Version  int    `json:"version,omitempty"`
	Body     string `json:"body,omitempty"`
	WebURL   string `json:"webUrl,omitempty"`
}
