package agent

import "errors"

// ErrUpstreamModel indicates the hosted text-generation call failed
// (timeout, quota, malformed response). Handlers must map it to a generic
// user-safe message, never the raw upstream text.
var ErrUpstreamModel = errors.New("upstream model error")

// ErrUpstreamExecution indicates the generated SQL could not be executed.
var ErrUpstreamExecution = errors.New("query execution error")

// errBadStatement marks generated SQL that failed read-only validation.
var errBadStatement = errors.New("generated statement rejected")

// errDeniedCategory marks generated SQL that references a category the
// user has revoked. It surfaces as a refusal answer, not an error status.
var errDeniedCategory = errors.New("statement references a denied category")
