package service

import (
	"sort"
	"strings"
)

// RequiredFieldsError lists the form fields that were missing or blank.
type RequiredFieldsError struct {
	Fields []string
}

func (e *RequiredFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func requireFields(fields map[string]*string) error {
	var missing []string
	for name, value := range fields {
		if value == nil || strings.TrimSpace(*value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &RequiredFieldsError{Fields: missing}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// requirePresentFields rejects fields sent blank on a partial update. Nil
// entries were not sent and pass.
func requirePresentFields(fields map[string]*string) error {
	present := make(map[string]*string, len(fields))
	for name, value := range fields {
		if value != nil {
			present[name] = value
		}
	}
	return requireFields(present)
}
