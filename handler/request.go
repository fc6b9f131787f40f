package handler

import (
	"io"
	"strings"
	"unicode"

	"go-atm-engine/common"
)

// Request is one terminal line split into a command and its arguments.
type Request struct {
	Command string
	Args    []string
}

// ParseRequest tokenizes a line on whitespace. Double quotes group words into
// one argument, so `transfer name "John Smith" 20 2004` names one recipient.
// An unterminated quote runs to the end of the line. A blank line yields nil.
func ParseRequest(line string) *Request {
	fields := splitFields(line)
	if len(fields) == 0 {
		return nil
	}
	return &Request{Command: strings.ToLower(fields[0]), Args: fields[1:]}
}

func splitFields(line string) []string {
	var (
		fields  []string
		current strings.Builder
		inQuote bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case unicode.IsSpace(r) && !inQuote:
			if started {
				fields = append(fields, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if started {
		fields = append(fields, current.String())
	}
	return fields
}

// Arg returns the i-th argument or "" when it is missing.
func (r *Request) Arg(i int) string {
	if i < len(r.Args) {
		return r.Args[i]
	}
	return ""
}

// Rest joins the arguments from i onwards.
func (r *Request) Rest(i int) string {
	if i < len(r.Args) {
		return strings.Join(r.Args[i:], " ")
	}
	return ""
}

// HandlerFunc serves one terminal command.
type HandlerFunc func(w io.Writer, r *Request) *common.AppError
