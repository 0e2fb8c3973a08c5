// Package jira implements a Jira Cloud REST v3 session for the dashboard.
//
// Every request goes through the proxy fetcher with fallback, authenticated
// with basic auth built from the account email and API token. Responses are
// shaped into the ticket view models of the domain package; rich text is
// exchanged as Atlassian Document Format (ADF).
package jira
