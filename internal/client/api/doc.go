// Package api contains the gateway to the EcoSync backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering every
//     remote operation: auth, posts, moderation actions, lost & found,
//     settings, rewards, and AI tips.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that attaches
//     Authorization: Bearer headers from an injected TokenSource, tags every
//     request with an X-Request-Id, and validates response shapes against
//     the schemas in models before returning them.
//
// # Error Handling
//
// Non-2xx responses are returned as *RequestError carrying the
// server-provided message; transport failures wrap ErrUnavailable. Callers
// can match with errors.Is / errors.As and are responsible for presentation.
package api
