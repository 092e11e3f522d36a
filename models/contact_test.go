package models

import (
	"errors"
	"strings"
	"testing"
)

func TestContactValidate(t *testing.T) {
	tests := []struct {
		name       string
		contact    Contact
		wantFields []string
	}{
		{"valid", Contact{Name: "John Doe", Phone: "555-123-4567"}, nil},
		{"valid international", Contact{Name: "Ana", Phone: "+998 90 123 45 67"}, nil},
		{"missing name", Contact{Phone: "5551234567"}, []string{"name"}},
		{"missing phone", Contact{Name: "John"}, []string{"phone"}},
		{"both missing", Contact{}, []string{"name", "phone"}},
		{"name too long", Contact{Name: strings.Repeat("a", 101), Phone: "5551234567"}, []string{"name"}},
		{"phone letters", Contact{Name: "John", Phone: "call-me"}, []string{"phone"}},
		{"phone too short", Contact{Name: "John", Phone: "12345"}, []string{"phone"}},
		{"phone too many digits", Contact{Name: "John", Phone: "1234567890123456"}, []string{"phone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.contact.Validate()
			if tt.wantFields == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var contactErr *ContactError
			if !errors.As(err, &contactErr) {
				t.Fatalf("Validate() = %v, want *ContactError", err)
			}
			if len(contactErr.Fields) != len(tt.wantFields) {
				t.Fatalf("got %d field errors %v, want %d", len(contactErr.Fields), contactErr.Fields, len(tt.wantFields))
			}
			for _, field := range tt.wantFields {
				if _, ok := contactErr.Fields[field]; !ok {
					t.Errorf("missing error for field %q in %v", field, contactErr.Fields)
				}
			}
			if contactErr.Error() == "" {
				t.Error("Error() should not be empty")
			}
		})
	}
}
