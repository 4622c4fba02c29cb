// Package gateway – failure taxonomy.
//
// Every failed gateway call is classified into exactly one of the sentinel
// errors below. The classification drives the orchestrator's retry policy:
// transient and empty responses are worth another attempt, upstream rate or
// quota pressure is not.
package gateway

import "errors"

var (
	// ErrUpstreamRateLimited maps an upstream 429. Retrying immediately
	// cannot help, so the orchestrator aborts the whole attempt budget.
	ErrUpstreamRateLimited = errors.New("upstream rate limited")

	// ErrUpstreamQuota maps an upstream 402/billing failure. Like a 429 it
	// short-circuits all remaining attempts.
	ErrUpstreamQuota = errors.New("upstream quota exhausted")

	// ErrTransient covers network failures, timeouts, and any other non-2xx
	// status. Retried within the attempt budget.
	ErrTransient = errors.New("transient gateway failure")

	// ErrEmptyResponse is a 2xx response with no usable content field.
	// Retried within the attempt budget.
	ErrEmptyResponse = errors.New("empty gateway response")
)
