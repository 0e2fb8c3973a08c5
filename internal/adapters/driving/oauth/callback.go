// Package oauth provides the local OAuth redirect server and browser launcher.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"time"
)

// CallbackPath is the redirect path registered with OAuth apps.
const CallbackPath = "/callback"

// Callback is what the provider redirected back with.
type Callback struct {
	Code  string
	State string
}

// CallbackServer receives a single OAuth redirect on localhost.
// State is checked by the caller, which holds the flow.
type CallbackServer struct {
	mu       sync.Mutex
	port     int
	resultCh chan Callback
	errCh    chan error
	server   *http.Server
	listener net.Listener
}

// NewCallbackServer creates a callback server. Port 0 picks a free port on Start.
func NewCallbackServer(port int) *CallbackServer {
	return &CallbackServer{
		port:     port,
		resultCh: make(chan Callback, 1),
		errCh:    make(chan error, 1),
	}
}

// Start begins listening on 127.0.0.1 at the configured port.
func (s *CallbackServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listener, err := listen(s.port)
	if err != nil {
		return err
	}
	s.serve(listener)
	return nil
}

// StartInRange listens on the first free port from first to last. OAuth
// apps only accept registered redirect URIs, so any port outside the
// range would be rejected by the provider.
func (s *CallbackServer) StartInRange(first, last int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for port := first; port <= last; port++ {
		listener, err := listen(port)
		if err != nil {
			continue
		}
		s.serve(listener)
		return nil
	}
	return fmt.Errorf("no free callback port in %d-%d", first, last)
}

func listen(port int) (net.Listener, error) {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return listener, nil
}

// serve runs the HTTP server on listener (caller must hold lock).
func (s *CallbackServer) serve(listener net.Listener) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+CallbackPath, s.handleCallback)

	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	s.listener = listener
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.sendErr(err)
		}
	}()
}

func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	w.Header().Set("Content-Type", "text/html")

	if errParam := q.Get("error"); errParam != "" {
		desc := q.Get("error_description")
		s.sendErr(fmt.Errorf("oauth error: %s - %s", errParam, desc))
		_, _ = fmt.Fprint(w, resultHTML("Authorization failed", desc))
		return
	}

	code := q.Get("code")
	if code == "" {
		s.sendErr(errors.New("no authorization code received"))
		_, _ = fmt.Fprint(w, resultHTML("Authorization failed", "No authorization code was received."))
		return
	}

	select {
	case s.resultCh <- Callback{Code: code, State: q.Get("state")}:
	default:
	}
	_, _ = fmt.Fprint(w, resultHTML("Authorization successful", "You can close this window and return to DevSync."))
}

func (s *CallbackServer) sendErr(err error) {
	select {
	case s.errCh <- err:
	default:
	}
}

// Wait blocks until a callback arrives, the provider reports an error,
// or ctx is done.
func (s *CallbackServer) Wait(ctx context.Context) (Callback, error) {
	select {
	case cb := <-s.resultCh:
		return cb, nil
	case err := <-s.errCh:
		return Callback{}, err
	case <-ctx.Done():
		return Callback{}, fmt.Errorf("waiting for authorization callback: %w", ctx.Err())
	}
}

// Stop shuts the server down. It is safe to call more than once.
func (s *CallbackServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Port returns the listening port.
func (s *CallbackServer) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

// RedirectURI returns the redirect URI for this server.
func (s *CallbackServer) RedirectURI() string {
	return fmt.Sprintf("http://localhost:%d%s", s.Port(), CallbackPath)
}

func resultHTML(title, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<title>DevSync</title>
<style>
body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; background: #0d1117; }
.card { text-align: center; background: #161b22; padding: 48px 64px; border-radius: 12px; border: 1px solid #30363d; }
h1 { color: #58a6ff; margin: 0 0 8px 0; font-size: 24px; }
p { color: #8b949e; margin: 0; }
</style>
</head>
<body>
<div class="card"><h1>%s</h1><p>%s</p></div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(message))
}

// OpenBrowser opens the default browser at url.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
