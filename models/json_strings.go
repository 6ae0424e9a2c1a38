package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONStrings stores a string slice in a MySQL JSON column.
type JSONStrings []string

func (j JSONStrings) Value() (driver.Value, error) {
	if j == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(j))
	return string(b), err
}

func (j *JSONStrings) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return errors.New("unsupported type for JSONStrings")
	}
}
