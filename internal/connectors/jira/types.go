package jira

import "encoding/json"

// Wire shapes of the Jira REST v3 responses used by the dashboard.

type userJSON struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
	Active       bool   `json:"active"`
	TimeZone     string `json:"timeZone"`
}

type projectJSON struct {
	ID             string `json:"id"`
	Key            string `json:"key"`
	Name           string `json:"name"`
	ProjectTypeKey string `json:"projectTypeKey"`
}

type namedJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type commentJSON struct {
	ID      string    `json:"id"`
	Author  *userJSON `json:"author"`
	Body    *adfNode  `json:"body"`
	Created string    `json:"created"`
	Self    string    `json:"self"`
}

type fieldsJSON struct {
	Summary     string     `json:"summary"`
	Description *adfNode   `json:"description"`
	Status      *namedJSON `json:"status"`
	Priority    *namedJSON `json:"priority"`
	Assignee    *userJSON  `json:"assignee"`
	Created     string     `json:"created"`
	Updated     string     `json:"updated"`
	DueDate     string     `json:"duedate"`
	Comment     *struct {
		Comments []commentJSON `json:"comments"`
	} `json:"comment"`
}

type issueJSON struct {
	ID     string     `json:"id"`
	Key    string     `json:"key"`
	Fields fieldsJSON `json:"fields"`
}

// searchJSON keeps issues raw so a non-array value can be detected.
type searchJSON struct {
	Issues json.RawMessage `json:"issues"`
}

type transitionJSON struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	To   namedJSON `json:"to"`
}

type transitionsJSON struct {
	Transitions []transitionJSON `json:"transitions"`
}

type createdIssueJSON struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// Request bodies.

type keyRef struct {
	Key string `json:"key"`
}

type nameRef struct {
	Name string `json:"name"`
}

type idRef struct {
	ID string `json:"id"`
}

type createFields struct {
	Project     keyRef   `json:"project"`
	Summary     string   `json:"summary"`
	Description *adfNode `json:"description,omitempty"`
	IssueType   nameRef  `json:"issuetype"`
	Priority    nameRef  `json:"priority"`
}

type createRequest struct {
	Fields createFields `json:"fields"`
}

type transitionRequest struct {
	Transition idRef `json:"transition"`
}

type commentRequest struct {
	Body adfNode `json:"body"`
}
