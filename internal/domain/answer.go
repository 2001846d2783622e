package domain

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// Answer is a tri-state reply to an attendance or consent question.
// Pending is the zero value and means the guest has not answered yet.
type Answer int

const (
	AnswerPending Answer = iota
	AnswerYes
	AnswerNo
)

// AnswerFromNullBool maps a nullable store column to an Answer.
func AnswerFromNullBool(b sql.NullBool) Answer {
	if !b.Valid {
		return AnswerPending
	}
	if b.Bool {
		return AnswerYes
	}
	return AnswerNo
}

// AnswerFromBoolPtr maps an optional request boolean to an Answer.
func AnswerFromBoolPtr(b *bool) Answer {
	if b == nil {
		return AnswerPending
	}
	if *b {
		return AnswerYes
	}
	return AnswerNo
}

// Answered reports whether the answer has been resolved to yes or no.
func (a Answer) Answered() bool {
	return a == AnswerYes || a == AnswerNo
}

// NullBool maps the Answer back to its nullable store representation.
func (a Answer) NullBool() sql.NullBool {
	switch a {
	case AnswerYes:
		return sql.NullBool{Bool: true, Valid: true}
	case AnswerNo:
		return sql.NullBool{Bool: false, Valid: true}
	default:
		return sql.NullBool{}
	}
}

func (a Answer) String() string {
	switch a {
	case AnswerYes:
		return "yes"
	case AnswerNo:
		return "no"
	default:
		return "pending"
	}
}

// MarshalJSON encodes the answer as "yes", "no", or "pending".
func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts "yes"/"no"/"pending" as well as true/false/null.
func (a *Answer) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `null`, `"pending"`:
		*a = AnswerPending
		return nil
	case `true`, `"yes"`:
		*a = AnswerYes
		return nil
	case `false`, `"no"`:
		*a = AnswerNo
		return nil
	}
	return fmt.Errorf("invalid answer %s", data)
}
