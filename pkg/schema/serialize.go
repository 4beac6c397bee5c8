package schema

import "encoding/json"

// Marshal serializes a FormSchema back into the document shape Parse accepts.
// Parse(Marshal(s)) yields a schema equal to s.
func Marshal(s FormSchema) ([]byte, error) {
	if s.Fields == nil {
		s.Fields = []FieldDescriptor{}
	}
	return json.MarshalIndent(s, "", "  ")
}
