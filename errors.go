package mule

import "errors"

// ErrAttemptsExhausted is returned in Result.Err when Task.MaxAttempts
// attempts were made without producing a complete file.
var ErrAttemptsExhausted = errors.New("maximum number of attempts exhausted")
