package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// MatchID is a value object representing a unique match identifier
type MatchID struct {
	value string
}

// NewMatchID creates a new random MatchID
func NewMatchID() MatchID {
	return MatchID{value: uuid.New().String()}
}

// NewMatchIDFromString creates a MatchID from an existing string
func NewMatchIDFromString(id string) (MatchID, error) {
	if id == "" {
		return MatchID{}, errors.New("match ID cannot be empty")
	}
	if !isValidUUID(id) {
		return MatchID{}, errors.New("match ID must be a valid UUID")
	}
	return MatchID{value: id}, nil
}

// String returns the string representation of the MatchID
func (id MatchID) String() string {
	return id.value
}

// Equals checks if two MatchIDs are equal
func (id MatchID) Equals(other MatchID) bool {
	return id.value == other.value
}

// IsZero checks if the MatchID is the zero value
func (id MatchID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id MatchID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *MatchID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("MatchID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}
