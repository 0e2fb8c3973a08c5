// Package connectors builds provider sessions. Each subpackage knows how to
// talk to one provider API; Factory binds them to the session factory port
// used by the core services.
package connectors
