package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// PlayerID is a value object representing a unique player identifier
type PlayerID struct {
	value string
}

// NewPlayerID creates a new random PlayerID
func NewPlayerID() PlayerID {
	return PlayerID{value: uuid.New().String()}
}

// NewPlayerIDFromString creates a PlayerID from an existing string
func NewPlayerIDFromString(id string) (PlayerID, error) {
	if id == "" {
		return PlayerID{}, errors.New("player ID cannot be empty")
	}
	if !isValidUUID(id) {
		return PlayerID{}, errors.New("player ID must be a valid UUID")
	}
	return PlayerID{value: id}, nil
}

// String returns the string representation of the PlayerID
func (id PlayerID) String() string {
	return id.value
}

// Equals checks if two PlayerIDs are equal
func (id PlayerID) Equals(other PlayerID) bool {
	return id.value == other.value
}

// IsZero checks if the PlayerID is the zero value
func (id PlayerID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id PlayerID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *PlayerID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("PlayerID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}
