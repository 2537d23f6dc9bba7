// Package command implements the small set of built-in AGI commands
// (ANSWER, VERBOSE, SET VARIABLE, GET FULL VARIABLE) plus RawCommand
// for anything not yet given its own type. Each command knows its wire
// form and how to interpret the Status that comes back as its own
// typed reply, satisfying connection.Command[R].
package command

import (
	"fmt"
	"strings"

	"github.com/curatorsigma/blazing-agi/agiparse"
)

// StatusParseError records a Status this package's ParseReply
// implementations could not interpret as a valid reply to the command
// that provoked it.
type StatusParseError struct {
	Result            int
	OperationalData   *string
	ResponseToCommand string
}

func (e *StatusParseError) Error() string {
	return fmt.Sprintf("unable to parse result %d, data %v as a %s status", e.Result, e.OperationalData, e.ResponseToCommand)
}

// quote wraps s in double quotes, escaping any embedded quote or
// backslash, matching the outbound wire protocol's rule for string
// arguments that may contain spaces.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// opData returns the trimmed contents of status's operational data, if
// any, with a single layer of surrounding parentheses removed.
func opData(status agiparse.Status) *string {
	if status.OperationalData == nil {
		return nil
	}
	trimmed := *status.OperationalData
	if len(trimmed) >= 2 && strings.HasPrefix(trimmed, "(") && strings.HasSuffix(trimmed, ")") {
		trimmed = trimmed[1 : len(trimmed)-1]
	}
	return &trimmed
}
