package config

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// StringSlice accepts a single string or a list of strings. Entries are
// trimmed and lower cased, empty ones are dropped.
type StringSlice []string

func (s *StringSlice) add(v string) {
	if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
		*s = append(*s, v)
	}
}

func (s *StringSlice) decode(a interface{}) error {
	switch d := a.(type) {
	case string:
		s.add(d)

	case []string:
		for _, v := range d {
			s.add(v)
		}

	case []interface{}:
		for _, de := range d {
			if err := s.decode(de); err != nil {
				return err
			}
		}

	default:
		return errors.Errorf("unexpected type %T for StringSlice: %+v", d, d)
	}

	return nil
}

func (s *StringSlice) UnmarshalYAML(node *yaml.Node) error {
	var a interface{}
	if err := node.Decode(&a); err != nil {
		return err
	}
	return s.decode(a)
}

func (s *StringSlice) UnmarshalJSON(b []byte) error {
	var a interface{}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}

	return s.decode(a)
}
