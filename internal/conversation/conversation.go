// Package conversation holds the append-only message log for one query.
package conversation

// Role identifies the author of a Message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the conversation log.
type Message struct {
	Role    Role
	Content string
}

// Conversation is the ordered message log sent to the model each round.
// The first message is always the system prompt. Entries are never
// removed or reordered. A Conversation is owned by a single loop and is
// not safe for concurrent use.
type Conversation struct {
	messages []Message
}

// New starts a conversation containing only the system prompt.
func New(systemPrompt string) *Conversation {
	return &Conversation{
		messages: []Message{{Role: RoleSystem, Content: systemPrompt}},
	}
}

// AppendUser records the user's query.
func (c *Conversation) AppendUser(content string) {
	c.append(RoleUser, content)
}

// AppendAssistant records a raw model response, verbatim.
func (c *Conversation) AppendAssistant(content string) {
	c.append(RoleAssistant, content)
}

// AppendObservation records a serialised OBSERVE message. Observations are
// sent with the user role.
func (c *Conversation) AppendObservation(observation string) {
	c.append(RoleUser, observation)
}

func (c *Conversation) append(role Role, content string) {
	c.messages = append(c.messages, Message{Role: role, Content: content})
}

// Messages returns a copy of the log.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages in the log.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the most recent message.
func (c *Conversation) Last() Message {
	return c.messages[len(c.messages)-1]
}
