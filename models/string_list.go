package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is an ordered list of strings persisted as a JSON array in a
// text column. Decoding also accepts the legacy encodings found in older
// exports: a JSON array serialized inside a string, or newline separated text.
type StringList []string

// ParseStringList turns free text into a list. JSON array text is decoded as
// such, anything else is split on newlines with blank entries dropped.
func ParseStringList(s string) StringList {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "[") {
		var items []string
		if err := json.Unmarshal([]byte(trimmed), &items); err == nil {
			return compact(items)
		}
	}

	return compact(strings.Split(s, "\n"))
}

func compact(items []string) StringList {
	out := make(StringList, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Text joins the list back into the newline form used by admin forms.
func (l StringList) Text() string {
	return strings.Join(l, "\n")
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		*l = StringList{}
		return nil
	case strings.HasPrefix(trimmed, "["):
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = compact(items)
		return nil
	case strings.HasPrefix(trimmed, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = ParseStringList(s)
		return nil
	}
	return fmt.Errorf("string list: unsupported JSON value %s", trimmed)
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		*l = ParseStringList(v)
		return nil
	case []byte:
		*l = ParseStringList(string(v))
		return nil
	}
	return fmt.Errorf("string list: cannot scan %T", value)
}
