// Package oauth implements driven.OAuthExchanger on golang.org/x/oauth2.
//
// Each provider is described by a ProviderConfig holding the OAuth app
// registration, endpoints and scopes. GitHub uses the github.com OAuth app
// endpoints; Jira and Confluence share one Atlassian (3LO) app.
package oauth
