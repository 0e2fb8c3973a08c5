// Package atlassian holds the REST plumbing shared by the Jira and
// Confluence sessions: basic authentication, JSON encoding and the mapping
// of Atlassian error responses to domain errors.
//
// Requests are sent through a Fetcher. The Jira session passes the proxy
// fetcher so requests fall back through relays; Confluence passes a
// direct-only fetcher.
package atlassian
