package conversation

// Status tags a turn result for the hosting agent or UI.
type Status string

const (
	StatusResolved          Status = "RESOLVED"
	StatusNeedClarification Status = "NEED_CLARIFICATION"
	StatusAck               Status = "ACK"
	StatusError             Status = "ERROR"
	StatusDeveloperCompare  Status = "DEVELOPER_COMPARE"
)

// Option is one clarification choice presented to the user.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ScoreEntry is one intent's combined score in a mode report.
type ScoreEntry struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// ModeReport summarizes a classification pass over one catalog mode.
type ModeReport struct {
	TopIntent string       `json:"top_intent"`
	Score     float64      `json:"score"`
	ScoresRaw []ScoreEntry `json:"scores_raw"`
}

// TurnResult is the tagged payload returned by Advance. Fields beyond Status
// and MessageToUser are status-specific: RouteTo for RESOLVED, Options for
// NEED_CLARIFICATION, the report fields for DEVELOPER_COMPARE.
type TurnResult struct {
	Status        Status      `json:"status"`
	MessageToUser string      `json:"message_to_user"`
	RouteTo       string      `json:"route_to,omitempty"`
	Options       []Option    `json:"options,omitempty"`
	JSONResult    *ModeReport `json:"json_result,omitempty"`
	TOONResult    *ModeReport `json:"toon_result,omitempty"`
	Analysis      string      `json:"analysis,omitempty"`
}
