// package services contains the platform adapters that translate raw
// platform responses into the common record shapes the match engine consumes.
//
// Deezer exposes a real unauthenticated search API and is fully searchable.
// Spotify and YouTube Music offer no public search in this design; their
// adapters resolve source metadata through oEmbed endpoints and synthesize
// search-link records pointing at the platform's own search UI. Raw platform
// JSON never leaves this package.
package services
