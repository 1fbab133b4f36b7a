package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FormValue is a raw submitted field. It accepts a JSON string or number so
// clients may send quantities either way; the service does the parsing.
type FormValue string

// UnmarshalJSON implements json.Unmarshaler.
func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*v = FormValue(n.String())
	return nil
}

func (v *FormValue) ptr() *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func (v *FormValue) text() string {
	if v == nil {
		return ""
	}
	return string(*v)
}
