package validation

import "strings"

// Errors maps a form field to the message shown next to it.
type Errors map[string]string

// Error lists the messages in form order.
func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, field := range Fields {
		if msg, ok := e[field]; ok {
			parts = append(parts, field+": "+msg)
		}
	}
	return "invalid employee: " + strings.Join(parts, "; ")
}

// Has reports whether field has an error.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Clear drops the error for field, leaving the others untouched.
func (e Errors) Clear(field string) {
	delete(e, field)
}

// Err returns e as an error, or nil when there is nothing to report.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
