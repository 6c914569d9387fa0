package shared

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// UUIDSlice is a slice of UUIDs stored as a JSONB column
type UUIDSlice []uuid.UUID

// Value implements driver.Valuer interface for GORM to store as JSONB
func (s UUIDSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (s *UUIDSlice) Scan(value interface{}) error {
	if value == nil {
		*s = UUIDSlice{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan UUIDSlice: unsupported type")
	}

	if len(bytes) == 0 {
		*s = UUIDSlice{}
		return nil
	}

	return json.Unmarshal(bytes, s)
}

// Contains reports whether the slice contains the given ID
func (s UUIDSlice) Contains(id uuid.UUID) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}
