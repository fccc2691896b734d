package models

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// BiometricData is a point-in-time set of smartwatch readings attached to a
// chat request. Every field is optional; absent fields render as N/A in the
// prompt and are skipped by the analyzer.
type BiometricData struct {
	HeartRate    *float64 `json:"heartRate,omitempty"`    // BPM
	OxygenLevel  *float64 `json:"oxygenLevel,omitempty"`  // %
	StressLevel  *float64 `json:"stressLevel,omitempty"`  // %
	SleepQuality *float64 `json:"sleepQuality,omitempty"` // %
	Steps        *int     `json:"steps,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"` // °F
	Timestamp    string   `json:"timestamp,omitempty"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message             string         `json:"message"`
	ConversationHistory []ChatMessage  `json:"conversationHistory"`
	BiometricData       *BiometricData `json:"biometricData"`
}

// ChatReply is what the model gateway hands back on success.
type ChatReply struct {
	Text         string
	FinishReason string
}

// ChatResponse is the success payload. ConversationID is a fresh correlation
// token generated per response; nothing is stored server-side under it.
type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversationId"`
	FinishReason   string `json:"finishReason,omitempty"`
	Blocked        bool   `json:"blocked,omitempty"`
}

// ChatError is the body returned on every failure path.
type ChatError struct {
	Error          string `json:"error"`
	Details        string `json:"details"`
	TechnicalError string `json:"technicalError,omitempty"`
	RequestID      string `json:"requestId,omitempty"`
}
