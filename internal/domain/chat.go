package domain

// ChatRole identifies the author of a companion chat message.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

func (r ChatRole) IsValid() bool {
	return r == ChatRoleUser || r == ChatRoleModel
}

// ChatMessage is one turn of a companion conversation.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}
