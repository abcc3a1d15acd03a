package store

import (
	"time"
)

// Command is the unit of work for one pipeline run: the raw utterance,
// the issuing user and the arrival timestamp. Immutable once created.
type Command struct {
	Text       string
	UserID     string
	ReceivedAt time.Time
}

// UIContext carries the caller-supplied interface location (current page,
// selected record, active filters). The shape is not validated here.
type UIContext map[string]interface{}

// Actor is the resolved identity behind a command.
type Actor struct {
	ID             string
	UserID         string
	Name           string
	Email          string
	Role           string
	CompanyID      string
	IsCompanyAdmin bool
}

// StageResult is the generic envelope every pipeline stage produces.
// Owned exclusively by the run that produced it.
type StageResult struct {
	Stage   string
	Success bool
	Payload interface{}
	Error   string
}

// QualityVerdict is the supervisor's judgment for one StageResult.
type QualityVerdict struct {
	Approved     bool
	QualityScore int
	Reason       string
	Issues       []string
}

// Intent is the symbolic classification of a command plus extracted
// parameters. Confidence below 0.5 is never approved downstream.
type Intent struct {
	Name       string
	Params     map[string]interface{}
	Confidence float64
}

// PermissionDecision is the allow/deny outcome for (intent, actor, params).
type PermissionDecision struct {
	Allowed   bool
	Role      string
	Qualifier string
	Reason    string
}

// VoiceConfig tunes the speech synthesis of a composed response.
type VoiceConfig struct {
	Speed float64 `json:"speed"`
	Pitch float64 `json:"pitch"`
}

// CommandResult is what one full pipeline run returns to the caller.
type CommandResult struct {
	Success        bool
	Response       string
	VoiceConfig    VoiceConfig
	Visualizations []Visualization
	Suggestions    []Suggestion
	Intent         string
	QualityScore   int
	Warnings       []string
	Error          string
}

// ConversationEntry is the compact record appended to the memory store
// after every run. The store trims history by serialized size.
type ConversationEntry struct {
	Command   string    `json:"command"`
	Intent    string    `json:"intent"`
	Response  string    `json:"response"`
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
}
