// Package catalog talks to the remote media catalog: title searches over the
// track and video namespaces, and per-item existence checks.
//
// The Client is the concrete HTTP transport (bearer-token auth, typed JSON
// decoding). Untyped remote payloads are validated and coerced into Candidate
// values at this boundary so nothing downstream handles raw JSON. The
// CachedSearcher decorator adds a short TTL response cache and rate limiting
// for interactive callers.
package catalog
