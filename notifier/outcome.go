package notifier

import (
	"fmt"
	"maps"
)

// ResponseTable maps HTTP status codes to friendly failure descriptions.
// The zero value is an empty table.
type ResponseTable struct {
	descriptions map[int]string
}

func NewResponseTable(descriptions map[int]string) ResponseTable {
	return ResponseTable{descriptions: maps.Clone(descriptions)}
}

func (t ResponseTable) Describe(code int) (string, bool) {
	description, ok := t.descriptions[code]

	return description, ok
}

func (t ResponseTable) Len() int {
	return len(t.descriptions)
}

// Codes returns a copy of the table contents.
func (t ResponseTable) Codes() map[int]string {
	return maps.Clone(t.descriptions)
}

type Policy int

const (
	// PolicyLenient logs classified failures and carries on.
	PolicyLenient Policy = iota
	// PolicyStrict turns classified failures into errors.
	PolicyStrict
)

func (p Policy) String() string {
	switch p {
	case PolicyLenient:
		return "lenient"
	case PolicyStrict:
		return "strict"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

func PolicyFor(strict bool) Policy {
	if strict {
		return PolicyStrict
	}

	return PolicyLenient
}

type Outcome struct {
	StatusCode  int
	Success     bool
	Known       bool
	Description string
	Fatal       bool
}

// Classify turns a status code into an outcome. Known is false for codes
// that are neither the success code nor listed in the table.
func Classify(code, successCode int, table ResponseTable, service string) Outcome {
	if code == successCode {
		return Outcome{
			StatusCode:  code,
			Success:     true,
			Known:       true,
			Description: "",
			Fatal:       false,
		}
	}

	if description, ok := table.Describe(code); ok {
		return Outcome{
			StatusCode:  code,
			Success:     false,
			Known:       true,
			Description: description,
			Fatal:       false,
		}
	}

	return Outcome{
		StatusCode:  code,
		Success:     false,
		Known:       false,
		Description: fmt.Sprintf("Unrecognised HTTP response code '%d' from %s", code, service),
		Fatal:       false,
	}
}
