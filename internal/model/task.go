package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TaskType selects the shape of a task's content and submission
type TaskType string

const (
	TaskTypeQuiz      TaskType = "quiz"
	TaskTypeSurvey    TaskType = "survey"
	TaskTypeAction    TaskType = "action"
	TaskTypeChallenge TaskType = "challenge"
)

// TaskContent is the type-specific payload of a task
type TaskContent interface {
	TaskType() TaskType
}

// QuizContent is a multiple choice question
type QuizContent struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// SurveyContent is a free text question
type SurveyContent struct {
	Question  string `json:"question"`
	MinLength int    `json:"minLength,omitempty"`
}

// ActionContent asks the player to do something outside the app
type ActionContent struct {
	Instructions  string `json:"instructions"`
	RequiresProof bool   `json:"requiresProof"`
}

// ChallengeContent asks for a free text solution
type ChallengeContent struct {
	Challenge string `json:"challenge"`
	MinLength int    `json:"minLength,omitempty"`
}

func (QuizContent) TaskType() TaskType      { return TaskTypeQuiz }
func (SurveyContent) TaskType() TaskType    { return TaskTypeSurvey }
func (ActionContent) TaskType() TaskType    { return TaskTypeAction }
func (ChallengeContent) TaskType() TaskType { return TaskTypeChallenge }

// TaskRecord is the task attached to a calendar day
type TaskRecord struct {
	ID          string
	Title       string
	Description string
	Type        TaskType
	Points      int
	GemReward   int
	BadgeReward *Badge
	Content     TaskContent
}

type taskWire struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        TaskType        `json:"type"`
	Points      int             `json:"points"`
	GemReward   int             `json:"gemReward"`
	BadgeReward *Badge          `json:"badgeReward,omitempty"`
	Content     json.RawMessage `json:"content,omitempty"`
}

// MarshalJSON encodes the content next to its type tag
func (t TaskRecord) MarshalJSON() ([]byte, error) {
	w := taskWire{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Type:        t.Type,
		Points:      t.Points,
		GemReward:   t.GemReward,
		BadgeReward: t.BadgeReward,
	}
	if t.Content != nil {
		if t.Content.TaskType() != t.Type {
			return nil, fmt.Errorf("task %s: content is %s, type is %s", t.ID, t.Content.TaskType(), t.Type)
		}
		raw, err := json.Marshal(t.Content)
		if err != nil {
			return nil, err
		}
		w.Content = raw
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the content variant selected by the type tag
func (t *TaskRecord) UnmarshalJSON(data []byte) error {
	var w taskWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	content, err := decodeContent(w.Type, w.Content)
	if err != nil {
		return fmt.Errorf("task %s: %w", w.ID, err)
	}
	*t = TaskRecord{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Type:        w.Type,
		Points:      w.Points,
		GemReward:   w.GemReward,
		BadgeReward: w.BadgeReward,
		Content:     content,
	}
	return nil
}

func decodeContent(typ TaskType, raw json.RawMessage) (TaskContent, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	switch typ {
	case TaskTypeQuiz:
		var c QuizContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case TaskTypeSurvey:
		var c SurveyContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case TaskTypeAction:
		var c ActionContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case TaskTypeChallenge:
		var c ChallengeContent
		err := json.Unmarshal(raw, &c)
		return c, err
	default:
		return nil, fmt.Errorf("unknown task type %q", typ)
	}
}

// Submission is a player's answer to a task. Which field is meaningful
// depends on Type.
type Submission struct {
	Type      TaskType `json:"type"`
	PlayerID  string   `json:"player,omitempty"`
	Choice    *int     `json:"choice,omitempty"`
	Text      string   `json:"text,omitempty"`
	Completed bool     `json:"completed,omitempty"`
}

// QuizSubmission answers a quiz with the index of the chosen option
func QuizSubmission(choice int) Submission {
	return Submission{Type: TaskTypeQuiz, Choice: &choice}
}

// TextSubmission answers a survey, challenge or proof-requiring action
func TextSubmission(typ TaskType, text string) Submission {
	return Submission{Type: typ, Text: text}
}

// ActionDone marks an action task without proof as done
func ActionDone() Submission {
	return Submission{Type: TaskTypeAction, Completed: true}
}

// CanSubmit reports whether s is a complete answer for t
func (t *TaskRecord) CanSubmit(s Submission) bool {
	if t == nil || s.Type != t.Type {
		return false
	}
	switch t.Type {
	case TaskTypeQuiz:
		if s.Choice == nil || *s.Choice < 0 {
			return false
		}
		if c, ok := t.Content.(QuizContent); ok && *s.Choice >= len(c.Options) {
			return false
		}
		return true
	case TaskTypeSurvey, TaskTypeChallenge:
		return strings.TrimSpace(s.Text) != ""
	case TaskTypeAction:
		if c, ok := t.Content.(ActionContent); ok && c.RequiresProof {
			return strings.TrimSpace(s.Text) != ""
		}
		return s.Completed || strings.TrimSpace(s.Text) != ""
	default:
		return false
	}
}

// TaskResult is the service's answer to a submission
type TaskResult struct {
	Success bool   `json:"success"`
	Points  int    `json:"points"`
	Gems    int    `json:"gems"`
	Badge   *Badge `json:"badge,omitempty"`
}
