package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrMalformedAdvice means the advisor answered with something that is not the advice schema.
var ErrMalformedAdvice = errors.New("advisor returned malformed advice")
