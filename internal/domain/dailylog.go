package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// FollowUpRole identifies the author of a follow-up chat message.
type FollowUpRole string

const (
	RoleUser      FollowUpRole = "user"
	RoleAssistant FollowUpRole = "assistant"
)

// FollowUpMessage is one turn of the follow-up conversation attached to an
// insight. Transcripts are stored in order on the daily log.
type FollowUpMessage struct {
	Role FollowUpRole `json:"role"`
	Text string       `json:"text"`
}

// CompletedActionItems tracks which action-item indices the user has checked
// off, per phase. Evening insights carry no action items.
type CompletedActionItems struct {
	Morning []int `json:"morning"`
	Midday  []int `json:"midday"`
}

// DailyLog is the journal record for one (user, calendar date). Dates are
// YYYY-MM-DD strings computed in the configured journal timezone, so a "day"
// follows the user's wall clock rather than UTC.
//
// Insight payloads are kept as opaque JSON: the gateway's response shape has
// varied across revisions and every field is optional, so the log stores
// whatever was returned and the client renders what it understands.
type DailyLog struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	Date                 string
	Situation            string
	MorningInsight       json.RawMessage
	MorningFollowUp      []FollowUpMessage
	MiddayInsight        json.RawMessage
	MiddayAdjustment     string
	MiddayFollowUp       []FollowUpMessage
	EveningInsight       json.RawMessage
	EveningFollowUp      []FollowUpMessage
	MorningComplete      bool
	MiddayComplete       bool
	EveningComplete      bool
	Win                  string
	Weakness             string
	TomorrowsPrep        string
	CompletedActionItems CompletedActionItems
	WorkMode             string
	EnergyLevel          string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Flags returns the per-phase completion flags for phase tracking.
func (l *DailyLog) Flags() PhaseFlags {
	return PhaseFlags{
		Morning: l.MorningComplete,
		Midday:  l.MiddayComplete,
		Evening: l.EveningComplete,
	}
}

// InsightFor returns the stored insight payload for a phase, or nil.
func (l *DailyLog) InsightFor(phase Phase) json.RawMessage {
	switch phase {
	case PhaseMidday:
		return l.MiddayInsight
	case PhaseEvening:
		return l.EveningInsight
	default:
		return l.MorningInsight
	}
}

// FollowUpFor returns the stored follow-up transcript for a phase.
func (l *DailyLog) FollowUpFor(phase Phase) []FollowUpMessage {
	switch phase {
	case PhaseMidday:
		return l.MiddayFollowUp
	case PhaseEvening:
		return l.EveningFollowUp
	default:
		return l.MorningFollowUp
	}
}

// DailyLogUpdateParams holds partial-update fields for a daily log.
// Nil means "don't change".
type DailyLogUpdateParams struct {
	Situation            *string
	MorningInsight       *json.RawMessage
	MorningFollowUp      *[]FollowUpMessage
	MiddayInsight        *json.RawMessage
	MiddayAdjustment     *string
	MiddayFollowUp       *[]FollowUpMessage
	EveningInsight       *json.RawMessage
	EveningFollowUp      *[]FollowUpMessage
	MorningComplete      *bool
	MiddayComplete       *bool
	EveningComplete      *bool
	Win                  *string
	Weakness             *string
	TomorrowsPrep        *string
	CompletedActionItems *CompletedActionItems
	WorkMode             *string
	EnergyLevel          *string
}
