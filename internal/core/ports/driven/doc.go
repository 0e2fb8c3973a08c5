// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - KeyValueStore: Local persisted state (credentials, settings, tokens)
//   - ConfigStore: Application configuration
//   - SessionFactory: Builds provider sessions from credentials
//   - GitHubAPI: An authenticated GitHub session
//   - JiraAPI: An authenticated Jira Cloud session
//   - ConfluenceAPI: An authenticated Confluence Cloud session
//
// # Optional Interfaces
//
//   - TokenProvider: Supplies access tokens to a session. Sessions built
//     from entered credentials use a static provider; OAuth logins supply
//     a refreshing one.
//   - OAuthExchanger: Code exchange and refresh for OAuth logins. Without
//     it, only entered credentials are supported.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
