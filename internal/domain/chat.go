package domain

// ChatRole distinguishes who authored a chat message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry of the coach chat transcript. The transcript is
// append-only except for the full clear on disconnect/reset.
type ChatMessage struct {
	ID      string   `bson:"id" json:"id"`
	Role    ChatRole `bson:"role" json:"role"`
	Content string   `bson:"content" json:"content"`
}
