package model

// RoleplayExchange is the input to one feedback generation
type RoleplayExchange struct {
	Scenario    string
	UserReply   string
	StigmaLevel string // Free-form; the client may send "Unknown"
}

// Feedback is the counselor response for a roleplay exchange
type Feedback struct {
	Reflection string `json:"ai_reflection"`
	Tip        string `json:"ai_tip"`
	RawAI      string `json:"raw_ai"` // Unparsed provider text (or the error sentinel)
}
