package services

import (
	"errors"
	"fmt"
)

// ErrEmptyReply means Gemini answered 2xx but no text could be extracted
// from any candidate.
var ErrEmptyReply = errors.New("gemini returned no usable text")

// SafetyBlockError is not a failure: the provider refused to generate due to
// content policy. The handler maps it to a supportive 200 response.
type SafetyBlockError struct {
	Reason string
}

func (e *SafetyBlockError) Error() string {
	return fmt.Sprintf("response blocked by safety filters: %s", e.Reason)
}

// UpstreamError carries a non-2xx status from the Gemini API so the handler
// can pick a matching status code and message.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("gemini API error: status %d", e.StatusCode)
}
