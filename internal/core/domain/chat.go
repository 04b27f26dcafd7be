package domain

import "time"

// ChatTurn is one user/assistant exchange in a document conversation.
type ChatTurn struct {
	// Question is the user's message.
	Question string

	// Answer is the assistant's reply.
	Answer string

	// Method records how the answer was produced.
	Method GenerationMethod

	// AskedAt is when the question was received.
	AskedAt time.Time
}
