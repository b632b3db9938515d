package shared

import (
	"errors"
	"time"
)

// Failure kinds shared by every remote collaborator. Callers wrap them with
// fmt.Errorf("%w: ...") and check them with errors.Is.
var (
	ErrRemoteCall        = errors.New("remote call failed")
	ErrMalformedResponse = errors.New("malformed response")
	ErrMissingCredential = errors.New("missing credential")
)

// TokenUsage tracks the tokens consumed by a request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// AgentMeta holds operational metadata for a single generation call.
type AgentMeta struct {
	AgentName string
	Usage     TokenUsage
	Latency   time.Duration
}

// NewAgentMeta stamps the latency of a call that started at start.
func NewAgentMeta(agentName string, usage TokenUsage, start time.Time) AgentMeta {
	return AgentMeta{
		AgentName: agentName,
		Usage:     usage,
		Latency:   time.Since(start),
	}
}
