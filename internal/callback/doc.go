// Package callback serves the host's HTTP callback endpoint.
//
// A wallet configured with an http(s) callback URL answers by opening that
// URL; the browser or OS forwards it here and the handler feeds the full
// URL into the session client.
//
// HTTP API
//
//	GET <path>?p=<payload>
//	    Handle a wallet response. 200 when the request's callback ran, with
//	    status "ok" or "failed" in the body; 404 for an unknown request, 403
//	    for a URL that is not the configured callback, 400 for input that
//	    matched no request, 429 when rate limited.
//
//	GET /metrics
//	    Prometheus exposition of the client's counters.
//
//	GET /health
//	    Liveness check with the session state.
//
// Each request is access-logged with method, path, status and duration.
package callback
