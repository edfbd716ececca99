package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a list of names stored as a JSON array column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// Contains reports whether name is a member of the list.
func (l StringList) Contains(name string) bool {
	for _, n := range l {
		if n == name {
			return true
		}
	}
	return false
}

// Intersects reports whether the two lists share at least one member.
func (l StringList) Intersects(other StringList) bool {
	for _, n := range other {
		if l.Contains(n) {
			return true
		}
	}
	return false
}
