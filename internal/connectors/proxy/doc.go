// Package proxy sends provider requests through an ordered list of request
// strategies.
//
// The first strategy is always a direct request. The remaining strategies
// relay the request through public CORS relays by prefixing the URL-encoded
// target with the relay's address. A cursor remembers the active strategy:
//
//   - Fetch makes one attempt with the active strategy. On a network error
//     or a non-2xx status it advances the cursor (wrapping) and returns the
//     error, so the next call tries the next strategy.
//   - FetchWithFallback walks every strategy once starting at the cursor and
//     returns the first 2xx response. The cursor is left on the strategy
//     that succeeded.
//   - Reset moves the cursor back to the direct strategy.
//
// Relayed requests carry the same headers as direct ones, including
// Authorization. Relays therefore see the caller's credentials; configure
// proxy.strategies to "direct" only when that is not acceptable.
package proxy
