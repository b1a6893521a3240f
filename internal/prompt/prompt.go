// Package prompt assembles selected chunk texts and a user instruction
// into the role-tagged message pair sent to the model backend.
package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// Message roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ErrEmptySelection is returned when a prompt is assembled with zero
// chunks; question generation requires at least one.
var ErrEmptySelection = errors.New("at least one chunk must be selected")

// systemInstruction describes the assistant's purpose; it is fixed for
// every generation request.
const systemInstruction = "You are a helpful assistant that generates questions based on given context."

// Message is one role-tagged chat message.
type Message struct {
	Role    string
	Content string
}

// Assemble joins the chunk texts with a double line break, in the order
// the caller supplied them (selection order; callers wanting document
// order must sort identifiers before resolving texts), and builds the
// system/user message pair. The user message ends with an explicit
// directive on output cardinality: exactly 5 questions with 4 answer
// choices each.
func Assemble(instruction string, chunks []string) ([]Message, error) {
	if len(chunks) == 0 {
		return nil, ErrEmptySelection
	}

	context := strings.Join(chunks, "\n\n")
	user := fmt.Sprintf(
		"Context:\n%s\n\nUser Request: Generate 5 multiple choice questions based on the following prompt: %s\n\nPlease ensure you generate exactly 5 questions, each with 4 answer choices.",
		context, instruction)

	return []Message{
		{Role: RoleSystem, Content: systemInstruction},
		{Role: RoleUser, Content: user},
	}, nil
}
