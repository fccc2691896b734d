package services

import (
	"fmt"
	"strings"

	"avira-backend/internal/models"
)

// Gemini role vocabulary.
const (
	roleUser  = "user"
	roleModel = "model"
)

const systemPrompt = `You are Avira, a compassionate wellness assistant designed for university students' mental health support.

Your responsibilities:
- Listen with empathy and without judgment
- Offer evidence-based coping strategies (breathing exercises, grounding techniques, sleep hygiene, study-stress management)
- Encourage healthy routines around sleep, movement, and social connection
- When smartwatch biometric data is provided, weave it naturally into your advice

Allowed interventions: relaxation and mindfulness exercises, journaling prompts, time-management suggestions, and gentle encouragement to use campus resources. You do not diagnose conditions, prescribe medication, or replace professional care.

Crisis policy: if a student expresses thoughts of self-harm, suicide, or harming others, respond with warmth, take it seriously, and always point them to immediate help: the 988 Suicide & Crisis Lifeline (call or text 988) and their campus counseling center.

Communication style: warm, concise, and conversational. Avoid clinical jargon. Ask at most one follow-up question per reply.

Disclaimer: you are an AI support companion, not a licensed therapist. Remind students of this when the conversation turns to serious or persistent symptoms.`

// Scripted first reply that seeds the model with an example of the expected
// tone before the real history begins.
const assistantAck = `I understand. I'm Avira, and I'm here to support you. Whatever is on your mind today - exam stress, trouble sleeping, feeling overwhelmed, or just needing to talk - I'm listening. How are you feeling right now?`

// promptTurn is one role-tagged unit of the composed prompt.
type promptTurn struct {
	role string
	text string
}

// buildChatTurns composes the full ordered turn list for a request:
// instruction turn, scripted acknowledgment, normalized caller history, and
// the final augmented user turn. Pure function of the request.
func buildChatTurns(req models.ChatRequest) []promptTurn {
	turns := []promptTurn{
		{role: roleUser, text: systemPrompt},
		{role: roleModel, text: assistantAck},
	}

	for _, msg := range req.ConversationHistory {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		turns = append(turns, promptTurn{role: mapHistoryRole(msg.Role), text: msg.Content})
	}

	turns = append(turns, promptTurn{role: roleUser, text: buildUserMessage(req.Message, req.BiometricData)})

	return turns
}

// mapHistoryRole normalizes caller roles into Gemini's vocabulary. Unknown
// roles are coerced to user rather than dropped, since the model has no
// notion of other roles.
func mapHistoryRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "assistant", "model":
		return roleModel
	default:
		return roleUser
	}
}

// buildUserMessage returns the final user turn: the raw message, plus the
// formatted biometric block and derived insights when a snapshot is present.
func buildUserMessage(message string, data *models.BiometricData) string {
	if data == nil {
		return message
	}

	var b strings.Builder
	b.WriteString(message)

	b.WriteString("\n\n[BIOMETRIC DATA FROM SMARTWATCH]:\n")
	b.WriteString(fmt.Sprintf("- Heart Rate: %s\n", formatReading(data.HeartRate, "%.0f BPM")))
	b.WriteString(fmt.Sprintf("- Blood Oxygen: %s\n", formatReading(data.OxygenLevel, "%.0f%%")))
	b.WriteString(fmt.Sprintf("- Stress Level: %s\n", formatReading(data.StressLevel, "%.0f%%")))
	b.WriteString(fmt.Sprintf("- Sleep Quality: %s\n", formatReading(data.SleepQuality, "%.0f%%")))
	b.WriteString(fmt.Sprintf("- Steps Today: %s\n", formatSteps(data.Steps)))
	b.WriteString(fmt.Sprintf("- Body Temperature: %s\n", formatReading(data.Temperature, "%.1f°F")))
	timestamp := data.Timestamp
	if timestamp == "" {
		timestamp = "N/A"
	}
	b.WriteString(fmt.Sprintf("- Timestamp: %s\n", timestamp))

	b.WriteString("\n[BIOMETRIC INSIGHTS]:\n")
	for _, insight := range AnalyzeBiometrics(data) {
		b.WriteString("- ")
		b.WriteString(insight)
		b.WriteString("\n")
	}

	b.WriteString("\nPlease take this biometric data into account and provide personalized wellness recommendations.")

	return b.String()
}

func formatReading(val *float64, format string) string {
	if val == nil {
		return "N/A"
	}
	return fmt.Sprintf(format, *val)
}

func formatSteps(val *int) string {
	if val == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *val)
}
