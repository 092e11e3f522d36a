package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Contact is the customer contact info collected at checkout.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ContactError carries per-field validation messages so the checkout form
// can be re-presented inline.
type ContactError struct {
	Fields map[string]string
	err    error
}

func (e *ContactError) Error() string {
	return e.err.Error()
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s\-()]*$`)

// Validate checks the contact fields and returns a *ContactError listing
// every failing field, or nil.
func (c Contact) Validate() error {
	fields := make(map[string]string)

	name := strings.TrimSpace(c.Name)
	if name == "" {
		fields["name"] = "name is required"
	} else if len(name) > 100 {
		fields["name"] = "name must not exceed 100 characters"
	}

	phone := strings.TrimSpace(c.Phone)
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	switch {
	case phone == "":
		fields["phone"] = "phone is required"
	case len(phone) > 20 || !phonePattern.MatchString(phone):
		fields["phone"] = "phone contains invalid characters"
	case digits < 7 || digits > 15:
		fields["phone"] = "phone must contain 7 to 15 digits"
	}

	if len(fields) == 0 {
		return nil
	}

	var merr *multierror.Error
	for _, field := range []string{"name", "phone"} {
		if msg, ok := fields[field]; ok {
			merr = multierror.Append(merr, fmt.Errorf("%s: %s", field, msg))
		}
	}
	return &ContactError{Fields: fields, err: merr.ErrorOrNil()}
}
