package course

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Encode serializes the snapshot as a JSON object mapping group keys, in
// snapshot order, to their course arrays.
func Encode(s Snapshot) ([]byte, error) {
	return s.MarshalJSON()
}

// Decode parses a snapshot produced by Encode. Any failure wraps
// ErrMalformedSnapshot.
func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := s.UnmarshalJSON(data); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// MarshalJSON implements json.Marshaler.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range s.Groups {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(g.Key)
		if err != nil {
			return nil, fmt.Errorf("encode group key: %w", err)
		}
		courses := g.Courses
		if courses == nil {
			courses = []Course{}
		}
		value, err := json.Marshal(courses)
		if err != nil {
			return nil, fmt.Errorf("encode group %q: %w", g.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, keeping group order.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return malformed(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return malformed(errors.New("expected object"))
	}

	groups := []Group{}
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return malformed(err)
		}
		key, ok := tok.(string)
		if !ok {
			return malformed(errors.New("expected group key"))
		}
		if _, dup := seen[key]; dup {
			return malformed(fmt.Errorf("duplicate group %q", key))
		}
		seen[key] = struct{}{}

		var courses []Course
		if err := dec.Decode(&courses); err != nil {
			return malformed(fmt.Errorf("group %q: %w", key, err))
		}
		if courses == nil {
			courses = []Course{}
		}
		for i, c := range courses {
			if !c.Status.Valid() {
				return malformed(fmt.Errorf("group %q course %d: status %q", key, i, c.Status))
			}
			if len(c.Prerequisites) == 0 {
				courses[i].Prerequisites = nil
			}
		}
		groups = append(groups, Group{Key: key, Courses: courses})
	}

	if _, err := dec.Token(); err != nil {
		return malformed(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return malformed(errors.New("trailing data after snapshot"))
	}

	s.Groups = groups
	return nil
}

func malformed(err error) error {
	return fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
}
