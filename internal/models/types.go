package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice stores an ordered list of strings as a JSON column.
type StringSlice []string

func (ss StringSlice) Value() (driver.Value, error) {
	if ss == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(ss))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (ss *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*ss = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, ss)
	case string:
		return json.Unmarshal([]byte(v), ss)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

func (StringSlice) GormDataType() string {
	return "json"
}

func (ss StringSlice) MarshalJSON() ([]byte, error) {
	if ss == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(ss))
}

// Clone returns a copy that shares no backing array with ss.
func (ss StringSlice) Clone() StringSlice {
	out := make(StringSlice, len(ss))
	copy(out, ss)
	return out
}
