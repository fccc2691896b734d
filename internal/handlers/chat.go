package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"avira-backend/internal/models"
	"avira-backend/internal/services"
)

// safetyMessage replaces the model reply when generation is blocked by the
// provider's content policy. Blocking is an expected outcome, not a failure,
// so the caller still gets a 200 with supportive content.
const safetyMessage = `I hear you, and I'm glad you reached out. What you're going through sounds really heavy, and you deserve real support right now. Please consider calling or texting 988 (the Suicide & Crisis Lifeline) - it's free, confidential, and available 24/7. Your campus counseling center is also there for you, often with same-day appointments. You don't have to carry this alone.`

const retryDetails = "Please try again or contact support if the issue persists"

type chatService interface {
	Chat(ctx context.Context, req models.ChatRequest) (*models.ChatReply, error)
}

type ChatHandler struct {
	chat chatService
}

func NewChatHandler(chat chatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body", "Send a JSON object with a message field", r))
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("Message is required", "Include a non-empty message field in the request", r))
		return
	}

	log.Printf("Processing wellness chat request (history=%d, hasBiometrics=%t)",
		len(req.ConversationHistory), req.BiometricData != nil)

	reply, err := h.chat.Chat(r.Context(), req)
	if err != nil {
		h.respondChatError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{
		Response:       strings.TrimSpace(reply.Text),
		ConversationID: uuid.NewString(),
		FinishReason:   reply.FinishReason,
	})
}

// respondChatError maps the service error taxonomy to HTTP responses. Safety
// blocks are the one deliberate non-error: they return 200.
func (h *ChatHandler) respondChatError(w http.ResponseWriter, r *http.Request, err error) {
	var blocked *services.SafetyBlockError
	if errors.As(err, &blocked) {
		log.Printf("Gemini blocked response (reason=%s), returning crisis resources", blocked.Reason)
		writeJSON(w, http.StatusOK, models.ChatResponse{
			Response:       safetyMessage,
			ConversationID: uuid.NewString(),
			Blocked:        true,
		})
		return
	}

	if errors.Is(err, services.ErrEmptyReply) {
		writeJSON(w, http.StatusInternalServerError,
			errorResp("No response generated", "Please try rephrasing your message", r))
		return
	}

	var upstream *services.UpstreamError
	if errors.As(err, &upstream) {
		log.Printf("Gemini API error: status=%d body=%s", upstream.StatusCode, upstream.Body)
		switch upstream.StatusCode {
		case http.StatusBadRequest:
			writeJSON(w, http.StatusBadRequest,
				errorRespWithCause("The AI service rejected the request", "Please try rephrasing your message", err, r))
		case http.StatusForbidden:
			writeJSON(w, http.StatusInternalServerError,
				errorRespWithCause("The AI service refused the request", "The API key may be invalid or out of quota - contact support", err, r))
		case http.StatusTooManyRequests:
			writeJSON(w, http.StatusTooManyRequests,
				errorRespWithCause("The AI service is receiving too many requests", "Please wait a moment and try again", err, r))
		default:
			writeJSON(w, statusForErrorText(upstream.Body),
				errorRespWithCause("Failed to get AI response", retryDetails, err, r))
		}
		return
	}

	log.Printf("Error in wellness chat handler: %v", err)
	writeJSON(w, statusForErrorText(err.Error()),
		errorRespWithCause("Failed to get AI response", retryDetails, err, r))
}

// statusForErrorText frames quota and availability problems as temporary
// (503) rather than generic server faults.
func statusForErrorText(text string) int {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "quota") ||
		strings.Contains(lower, "unavailable") ||
		strings.Contains(lower, "overloaded") {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
