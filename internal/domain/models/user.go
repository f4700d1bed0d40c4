package models

import (
	"encoding/json"
)

// User is an account holder. The password column stores a bcrypt hash and is
// never serialized.
type User struct {
	ID         int64           `json:"id" db:"id"`
	Email      string          `json:"email" db:"email"`
	Name       string          `json:"name" db:"name"`
	Password   string          `json:"-" db:"password"`
	TopicOrder json.RawMessage `json:"topicOrder,omitempty" db:"topic_order"`
}

// Identity is the trusted identity carried through the request context and
// embedded in auth tokens.
type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
