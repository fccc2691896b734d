package services

import (
	"strings"
	"testing"

	"avira-backend/internal/models"
)

func TestBuildChatTurns_Order(t *testing.T) {
	req := models.ChatRequest{
		Message: "I feel anxious before my exam",
		ConversationHistory: []models.ChatMessage{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello, how can I help?"},
		},
	}

	turns := buildChatTurns(req)

	if len(turns) != 5 {
		t.Fatalf("expected 5 turns, got %d", len(turns))
	}
	if turns[0].role != roleUser || turns[0].text != systemPrompt {
		t.Error("turn 0 must be the instruction turn in the user role")
	}
	if turns[1].role != roleModel || turns[1].text != assistantAck {
		t.Error("turn 1 must be the scripted acknowledgment in the model role")
	}
	if turns[2].role != roleUser || turns[2].text != "hi" {
		t.Errorf("turn 2 = {%s %q}, want user history turn", turns[2].role, turns[2].text)
	}
	if turns[3].role != roleModel || turns[3].text != "hello, how can I help?" {
		t.Errorf("turn 3 = {%s %q}, want model history turn", turns[3].role, turns[3].text)
	}
	if turns[4].role != roleUser || turns[4].text != "I feel anxious before my exam" {
		t.Errorf("final turn = {%s %q}, want the raw message", turns[4].role, turns[4].text)
	}
}

func TestBuildChatTurns_NoBiometricsLeavesMessageUntouched(t *testing.T) {
	turns := buildChatTurns(models.ChatRequest{Message: "I feel anxious before my exam"})

	final := turns[len(turns)-1]
	if final.text != "I feel anxious before my exam" {
		t.Errorf("final turn text = %q, want the message unmodified", final.text)
	}
}

func TestMapHistoryRole(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"user", roleUser},
		{"assistant", roleModel},
		{"model", roleModel},
		{"ASSISTANT", roleModel},
		{"system", roleUser}, // unknown roles are coerced to user
		{"", roleUser},
	}

	for _, tc := range tests {
		if got := mapHistoryRole(tc.in); got != tc.want {
			t.Errorf("mapHistoryRole(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildChatTurns_DropsEmptyHistoryEntries(t *testing.T) {
	req := models.ChatRequest{
		Message: "hi",
		ConversationHistory: []models.ChatMessage{
			{Role: "user", Content: "   "},
			{Role: "assistant", Content: ""},
		},
	}

	turns := buildChatTurns(req)
	if len(turns) != 3 {
		t.Errorf("expected blank history entries to be dropped, got %d turns", len(turns))
	}
}

func TestBuildUserMessage_WithBiometrics(t *testing.T) {
	msg := buildUserMessage("How am I doing?", &models.BiometricData{
		HeartRate: fptr(110),
		Steps:     iptr(2000),
		Timestamp: "2026-08-30T21:00:00Z",
	})

	for _, want := range []string{
		"How am I doing?",
		"[BIOMETRIC DATA FROM SMARTWATCH]:",
		"- Heart Rate: 110 BPM",
		"- Steps Today: 2000",
		"- Timestamp: 2026-08-30T21:00:00Z",
		"[BIOMETRIC INSIGHTS]:",
		"Elevated heart rate",
		"Activity level today is lower",
		"Please take this biometric data into account",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("augmented message missing %q", want)
		}
	}

	// Absent readings render as N/A, one per missing field.
	for _, want := range []string{
		"- Blood Oxygen: N/A",
		"- Stress Level: N/A",
		"- Sleep Quality: N/A",
		"- Body Temperature: N/A",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("augmented message missing absent-field marker %q", want)
		}
	}
}

func TestBuildUserMessage_FormatsAllReadings(t *testing.T) {
	msg := buildUserMessage("ok", &models.BiometricData{
		HeartRate:    fptr(72),
		OxygenLevel:  fptr(98),
		StressLevel:  fptr(40),
		SleepQuality: fptr(80),
		Steps:        iptr(5400),
		Temperature:  fptr(98.6),
	})

	for _, want := range []string{
		"- Heart Rate: 72 BPM",
		"- Blood Oxygen: 98%",
		"- Stress Level: 40%",
		"- Sleep Quality: 80%",
		"- Steps Today: 5400",
		"- Body Temperature: 98.6°F",
		"- Timestamp: N/A",
		"within normal ranges",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("augmented message missing %q\nfull message:\n%s", want, msg)
		}
	}
}
