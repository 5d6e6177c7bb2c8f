package model

import (
	"encoding/json"
	"testing"
)

func TestTaskRecordJSONKeepsContentVariant(t *testing.T) {
	in := TaskRecord{
		ID:        "task-1",
		Title:     "Holiday Trivia",
		Type:      TaskTypeQuiz,
		Points:    100,
		GemReward: 5,
		Content: QuizContent{
			Question:      "Which country started the Christmas tree tradition?",
			Options:       []string{"Germany", "England"},
			CorrectAnswer: 0,
		},
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out TaskRecord
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	quiz, ok := out.Content.(QuizContent)
	if !ok {
		t.Fatalf("expected QuizContent, got %T", out.Content)
	}
	if len(quiz.Options) != 2 || quiz.Options[0] != "Germany" {
		t.Fatalf("unexpected options %v", quiz.Options)
	}
}

func TestTaskRecordMarshalRejectsMismatchedContent(t *testing.T) {
	in := TaskRecord{ID: "t", Type: TaskTypeSurvey, Content: QuizContent{}}
	if _, err := json.Marshal(in); err == nil {
		t.Fatal("expected error for mismatched content")
	}
}

func TestTaskRecordUnmarshalUnknownType(t *testing.T) {
	var out TaskRecord
	err := json.Unmarshal([]byte(`{"id":"t","type":"dance","content":{"steps":3}}`), &out)
	if err == nil {
		t.Fatal("expected error for unknown task type")
	}
}

func TestCanSubmit(t *testing.T) {
	quiz := &TaskRecord{Type: TaskTypeQuiz, Content: QuizContent{Options: []string{"a", "b"}}}
	survey := &TaskRecord{Type: TaskTypeSurvey, Content: SurveyContent{Question: "?"}}
	proof := &TaskRecord{Type: TaskTypeAction, Content: ActionContent{RequiresProof: true}}
	noProof := &TaskRecord{Type: TaskTypeAction, Content: ActionContent{}}
	challenge := &TaskRecord{Type: TaskTypeChallenge, Content: ChallengeContent{}}

	tests := []struct {
		name string
		task *TaskRecord
		sub  Submission
		want bool
	}{
		{"quiz choice", quiz, QuizSubmission(1), true},
		{"quiz out of range", quiz, QuizSubmission(2), false},
		{"quiz no choice", quiz, Submission{Type: TaskTypeQuiz}, false},
		{"survey text", survey, TextSubmission(TaskTypeSurvey, "grateful"), true},
		{"survey blank", survey, TextSubmission(TaskTypeSurvey, "   "), false},
		{"challenge text", challenge, TextSubmission(TaskTypeChallenge, "recipe"), true},
		{"action proof missing", proof, ActionDone(), false},
		{"action proof given", proof, TextSubmission(TaskTypeAction, "held the door"), true},
		{"action done", noProof, ActionDone(), true},
		{"wrong type", survey, QuizSubmission(0), false},
		{"nil task", nil, QuizSubmission(0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.CanSubmit(tt.sub); got != tt.want {
				t.Fatalf("CanSubmit = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMergeClientConfigKeepsDefaultsForEmptyFields(t *testing.T) {
	base := DefaultClientConfig()
	merged := MergeClientConfig(base, ClientConfig{
		ID:           "christmas-corp",
		PrimaryColor: "#dc2626",
		SocialLinks:  SocialLinks{Twitter: "https://twitter.com/christmascorp"},
	})

	if merged.ID != "christmas-corp" || merged.PrimaryColor != "#dc2626" {
		t.Fatalf("override not applied: %+v", merged)
	}
	if merged.FontFamily != base.FontFamily {
		t.Fatalf("expected default font, got %q", merged.FontFamily)
	}
	if merged.SocialLinks.Website != base.SocialLinks.Website {
		t.Fatalf("expected default website, got %q", merged.SocialLinks.Website)
	}
	if merged.SocialLinks.Twitter != "https://twitter.com/christmascorp" {
		t.Fatalf("expected twitter override, got %q", merged.SocialLinks.Twitter)
	}
}

func TestPlayerRecordCloneIsIndependent(t *testing.T) {
	p := &PlayerRecord{ID: "p1", Badges: []Badge{{ID: "b1"}}}
	c := p.Clone()
	c.Badges[0].ID = "changed"
	c.Points = 10
	if p.Badges[0].ID != "b1" || p.Points != 0 {
		t.Fatal("clone shares state with original")
	}
	var nilPlayer *PlayerRecord
	if nilPlayer.Clone() != nil {
		t.Fatal("clone of nil should be nil")
	}
}
