package domain

// Message is the boundary representation of one inbound chat message.
// ReplyTo is zero when the message is not a reply.
type Message struct {
	ID      int64  `json:"id"`
	Text    string `json:"message"`
	ReplyTo int64  `json:"reply_to_msg_id,omitempty"`
}

// IsReply checks whether the message references an earlier one.
func (m *Message) IsReply() bool {
	return m.ReplyTo != 0
}
