// Package confluence implements a Confluence Cloud REST session for the
// dashboard: the current user, spaces, and pages with their storage-format
// body. It shares basic authentication with Jira.
package confluence
