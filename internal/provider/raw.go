package provider

import (
	"encoding/json"
	"time"
)

// MetadataKind tags the shape the provider used for user metadata.
type MetadataKind int

const (
	// MetadataAbsent covers null, missing, and unrecognized shapes.
	MetadataAbsent MetadataKind = iota
	// MetadataMapping is the expected structured shape.
	MetadataMapping
	// MetadataString is a malformed-but-seen provider response where the
	// metadata arrives as a plain string instead of an object.
	MetadataString
)

// RawMetadata is the provider metadata block decoded into an explicit
// variant so every shape is handled once at the ingestion boundary.
type RawMetadata struct {
	Kind   MetadataKind
	Values map[string]any
	Text   string
}

// MappingMetadata builds a structured metadata value.
func MappingMetadata(values map[string]any) RawMetadata {
	return RawMetadata{Kind: MetadataMapping, Values: values}
}

// StringMetadata builds the malformed plain-string variant.
func StringMetadata(text string) RawMetadata {
	return RawMetadata{Kind: MetadataString, Text: text}
}

// UnmarshalJSON decodes the three known provider shapes. Anything that is
// neither an object nor a string degrades to Absent rather than failing
// the request.
func (m *RawMetadata) UnmarshalJSON(data []byte) error {
	*m = RawMetadata{}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var values map[string]any
	if err := json.Unmarshal(data, &values); err == nil {
		m.Kind = MetadataMapping
		m.Values = values
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		m.Kind = MetadataString
		m.Text = text
		return nil
	}

	return nil
}

// MarshalJSON round-trips the variant for logging and tests.
func (m RawMetadata) MarshalJSON() ([]byte, error) {
	switch m.Kind {
	case MetadataMapping:
		return json.Marshal(m.Values)
	case MetadataString:
		return json.Marshal(m.Text)
	default:
		return []byte("null"), nil
	}
}

// StringValue reads a string key out of the metadata, returning "" unless
// the metadata is a mapping and the key holds a string.
func (m RawMetadata) StringValue(key string) string {
	if m.Kind != MetadataMapping {
		return ""
	}
	if v, ok := m.Values[key].(string); ok {
		return v
	}
	return ""
}

// RawUser is the provider account payload as received, before
// normalization. FullName is only set when the provider pre-extracted it
// at the top level; it usually lives inside Metadata.
type RawUser struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	FullName  string      `json:"full_name,omitempty"`
	CreatedAt *time.Time  `json:"created_at,omitempty"`
	Metadata  RawMetadata `json:"user_metadata,omitempty"`
}

// RawSession is the provider session payload as received.
type RawSession struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
}
