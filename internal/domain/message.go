package domain

import (
	"fmt"
	"strings"
)

// Message validation errors. All of them wrap ErrValidation.
var (
	ErrBlankMessageText   = fmt.Errorf("%w: message text cannot be blank", ErrValidation)
	ErrMessageTextTooLong = fmt.Errorf(
		"%w: message text cannot exceed %d characters",
		ErrValidation,
		MaxMessageTextLength,
	)
	ErrInvalidOwnerID = fmt.Errorf("%w: message must reference an existing account", ErrValidation)
)

// MaxMessageTextLength is the maximum accepted message length. The limit is
// applied to the raw text, without trimming.
const MaxMessageTextLength = 254

// Message is a short text post belonging to exactly one account.
type Message struct {
	ID            int64  `json:"message_id"`
	OwnerID       int64  `json:"posted_by"`
	Text          string `json:"message_text"`
	PostedAtEpoch int64  `json:"time_posted_epoch"`
}

// Validate checks the message text invariants: the text must be non-blank
// once trimmed, and the untrimmed text must not exceed MaxMessageTextLength
// characters. The owner reference must be set.
func (m *Message) Validate() error {
	if strings.TrimSpace(m.Text) == "" {
		return ErrBlankMessageText
	}
	if len(m.Text) > MaxMessageTextLength {
		return ErrMessageTextTooLong
	}
	if m.OwnerID <= 0 {
		return ErrInvalidOwnerID
	}
	return nil
}
