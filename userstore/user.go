package userstore

import (
	"errors"
	"fmt"
	"time"
)

// StatusActive is the status given to new users that do not name one.
const StatusActive = "active"

// timestampLayout is ISO-8601 in UTC with microseconds and a Z suffix.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

// ErrNotFound is returned when no user has the requested id.
var ErrNotFound = errors.New("userstore: user not found")

// ErrInvalidField reports a filter naming an unknown field, or an update
// touching a read-only field or carrying a value of the wrong type.
type ErrInvalidField struct {
	Field  string
	Reason string
}

func (e *ErrInvalidField) Error() string {
	return fmt.Sprintf("userstore: field %q: %s", e.Field, e.Reason)
}

// User is one record. Email and Phone are nil when unset.
type User struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Age       int64   `json:"age"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// NewUser holds the fields supplied when creating a user.
type NewUser struct {
	Name   string
	Age    int64
	Email  *string
	Phone  *string
	Status string
}

// Field returns the value of a record field by its JSON name, with unset
// optional fields as nil.
func (u User) Field(name string) (any, bool) {
	switch name {
	case "id":
		return u.ID, true
	case "name":
		return u.Name, true
	case "age":
		return u.Age, true
	case "email":
		return deref(u.Email), true
	case "phone":
		return deref(u.Phone), true
	case "status":
		return u.Status, true
	case "created_at":
		return u.CreatedAt, true
	case "updated_at":
		return u.UpdatedAt, true
	}
	return nil, false
}

// apply sets one mutable field. id and the timestamps are not mutable;
// unknown keys are a no-op.
func (u *User) apply(field string, value any) error {
	switch field {
	case "name", "status":
		s, ok := value.(string)
		if !ok {
			return &ErrInvalidField{Field: field, Reason: fmt.Sprintf("expected string, got %T", value)}
		}
		if field == "name" {
			u.Name = s
		} else {
			u.Status = s
		}
	case "age":
		n, ok := toInt64(value)
		if !ok {
			return &ErrInvalidField{Field: field, Reason: fmt.Sprintf("expected integer, got %T", value)}
		}
		u.Age = n
	case "email", "phone":
		var p *string
		if value != nil {
			s, ok := value.(string)
			if !ok {
				return &ErrInvalidField{Field: field, Reason: fmt.Sprintf("expected string or null, got %T", value)}
			}
			p = &s
		}
		if field == "email" {
			u.Email = p
		} else {
			u.Phone = p
		}
	case "id", "created_at", "updated_at":
		return &ErrInvalidField{Field: field, Reason: "field is read-only"}
	}
	// Keys that are not record fields are ignored.
	return nil
}

// matches reports whether every filter entry equals the record's field.
func (u User) matches(filter map[string]any) (bool, error) {
	for key, want := range filter {
		got, ok := u.Field(key)
		if !ok {
			return false, &ErrInvalidField{Field: key, Reason: "unknown field"}
		}
		if !equal(got, want) {
			return false, nil
		}
	}
	return true, nil
}

func equal(got, want any) bool {
	if got == nil || want == nil {
		return got == nil && want == nil
	}
	if g, ok := toInt64(got); ok {
		w, ok := toInt64(want)
		return ok && g == w
	}
	return got == want
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}

func deref(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
