package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"avira-backend/internal/models"
)

// One attempt per inbound request, with a hard cap so a slow upstream call
// cannot hang the handler.
const geminiTimeout = 30 * time.Second

type GeminiService struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiService(apiKey, modelName string) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetTopK(40)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(1024)
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockOnlyHigh},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockOnlyHigh},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockOnlyHigh},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockOnlyHigh},
	}

	return &GeminiService{
		client: client,
		model:  model,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// Chat composes the wellness prompt for one request and sends it to Gemini
// as a chat session: every turn except the final user message goes into the
// session history. Returns a typed error for every non-success outcome.
func (s *GeminiService) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatReply, error) {
	ctx, cancel := context.WithTimeout(ctx, geminiTimeout)
	defer cancel()

	turns := buildChatTurns(req)
	final := turns[len(turns)-1]

	cs := s.model.StartChat()
	for _, turn := range turns[:len(turns)-1] {
		cs.History = append(cs.History, &genai.Content{
			Role:  turn.role,
			Parts: []genai.Part{genai.Text(turn.text)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(final.text))
	if err != nil {
		return nil, classifyGeminiError(err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return nil, &SafetyBlockError{Reason: resp.PromptFeedback.BlockReason.String()}
	}

	finishReason := "STOP"
	if len(resp.Candidates) > 0 {
		cand := resp.Candidates[0]
		finishReason = finishReasonLabel(cand.FinishReason)
		if cand.FinishReason == genai.FinishReasonSafety {
			return nil, &SafetyBlockError{Reason: finishReason}
		}
		if cand.FinishReason != genai.FinishReasonStop {
			log.Printf("WARNING: Gemini stopped with finish reason %s", finishReason)
		}
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return nil, ErrEmptyReply
	}

	return &models.ChatReply{Text: text, FinishReason: finishReason}, nil
}

// classifyGeminiError folds SDK errors into the service taxonomy: safety
// blocks are a distinct non-failure outcome, HTTP errors keep their upstream
// status, everything else passes through wrapped.
func classifyGeminiError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		reason := "SAFETY"
		if blocked.PromptFeedback != nil && blocked.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			reason = blocked.PromptFeedback.BlockReason.String()
		} else if blocked.Candidate != nil {
			reason = finishReasonLabel(blocked.Candidate.FinishReason)
		}
		return &SafetyBlockError{Reason: reason}
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &UpstreamError{StatusCode: gerr.Code, Body: gerr.Body}
	}

	return fmt.Errorf("gemini request failed: %w", err)
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

// finishReasonLabel maps SDK finish reasons onto the wire-format names the
// API reports, which is what clients expect in the response.
func finishReasonLabel(reason genai.FinishReason) string {
	switch reason {
	case genai.FinishReasonStop:
		return "STOP"
	case genai.FinishReasonMaxTokens:
		return "MAX_TOKENS"
	case genai.FinishReasonSafety:
		return "SAFETY"
	case genai.FinishReasonRecitation:
		return "RECITATION"
	case genai.FinishReasonOther:
		return "OTHER"
	default:
		return "FINISH_REASON_UNSPECIFIED"
	}
}
