package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// TournamentID is a value object representing a unique tournament identifier
// Value objects are immutable and have no identity beyond their value
type TournamentID struct {
	value string
}

// NewTournamentID creates a new random TournamentID
func NewTournamentID() TournamentID {
	return TournamentID{value: uuid.New().String()}
}

// NewTournamentIDFromString creates a TournamentID from an existing string
func NewTournamentIDFromString(id string) (TournamentID, error) {
	if id == "" {
		return TournamentID{}, errors.New("tournament ID cannot be empty")
	}
	if !isValidUUID(id) {
		return TournamentID{}, errors.New("tournament ID must be a valid UUID")
	}
	return TournamentID{value: id}, nil
}

// String returns the string representation of the TournamentID
func (id TournamentID) String() string {
	return id.value
}

// Equals checks if two TournamentIDs are equal
func (id TournamentID) Equals(other TournamentID) bool {
	return id.value == other.value
}

// IsZero checks if the TournamentID is the zero value
func (id TournamentID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id TournamentID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *TournamentID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("TournamentID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}

// isValidUUID checks whether a string parses as a UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
