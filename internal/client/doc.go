// Package client is the HTTP client used by the flashdeck CLI.
//
// Client satisfies reconcile.CardWriter, so a Reconciler created by the CLI
// commits edits by issuing one PATCH or DELETE per changed card. Transport
// failures and 503 responses are reported as ErrUnavailable.
package client
