package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an opaque record identifier. The backend sends UUID strings for some
// records and integers for others; the console never interprets the value.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	s, err := scalarString(data)
	if err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}
	*id = ID(s)
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Port is a port number that may arrive as a JSON number, a string or null.
// The zero value renders as an empty cell.
type Port string

func (p *Port) UnmarshalJSON(data []byte) error {
	s, err := scalarString(data)
	if err != nil {
		return fmt.Errorf("invalid port: %w", err)
	}
	*p = Port(s)
	return nil
}

func (p Port) String() string {
	return string(p)
}

// scalarString converts a JSON string, number or null into its text form.
func scalarString(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", err
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return "", err
	}
	return n.String(), nil
}
