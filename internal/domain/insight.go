package domain

// Quote is the inspirational quote attached to an insight.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// ActionItem is one actionable step from an insight.
type ActionItem struct {
	Text string `json:"text"`
}

// Recommendation is an optional short content suggestion (read, listen).
type Recommendation struct {
	Type          string `json:"type,omitempty"`
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	EstimatedTime string `json:"estimatedTime,omitempty"`
}

// Insight is the structured reply of the generation gateway. The field set
// has varied across prompt revisions, so every field is optional and
// consumers must tolerate absence.
type Insight struct {
	Title           string           `json:"title,omitempty"`
	Quote           *Quote           `json:"quote,omitempty"`
	MainInsight     string           `json:"mainInsight,omitempty"`
	DeeperInsight   string           `json:"deeperInsight,omitempty"`
	PowerQuestion   string           `json:"powerQuestion,omitempty"`
	Metaphor        string           `json:"metaphor,omitempty"`
	ActionItems     []ActionItem     `json:"actionItems,omitempty"`
	TodaysPitfall   string           `json:"todaysPitfall,omitempty"`
	TheAnchor       string           `json:"theAnchor,omitempty"`
	CarryThis       string           `json:"carryThis,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}
