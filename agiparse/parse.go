package agiparse

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseLine decodes a single LF-stripped line as one of NetworkStart,
// Status, or Hangup. It never sees a VariableDump; those are assembled
// line-by-line by ParseVariableDump instead.
func ParseLine(line []byte) (Message, error) {
	if !utf8.Valid(line) {
		return nil, &ParseError{Kind: Utf8, Text: string(line)}
	}
	s := strings.TrimSuffix(string(line), "\r")

	if s == "agi_network: yes" {
		return NetworkStart{}, nil
	}
	if s == "HANGUP" {
		return Hangup{}, nil
	}
	if looksLikeStatus(s) {
		return parseStatus(s)
	}
	return nil, &ParseError{Kind: NotAnAGIMessage, Text: s}
}

// looksLikeStatus reports whether s opens with exactly three digits
// followed by a space, the shape every status line (200, 510, 511,
// 520, ...) takes regardless of whether the code is one this package's
// callers know what to do with.
func looksLikeStatus(s string) bool {
	if len(s) < 4 || s[3] != ' ' {
		return false
	}
	for _, r := range s[:3] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseStatus(s string) (Status, error) {
	parts := strings.SplitN(s, " ", 3)
	if len(parts) < 2 {
		return Status{}, &ParseError{Kind: NotAStatus, Text: s}
	}
	code, err := strconv.Atoi(parts[0])
	if err != nil {
		return Status{}, &ParseError{Kind: NotAStatus, Text: s, Err: err}
	}
	if !strings.HasPrefix(parts[1], "result=") {
		return Status{}, &ParseError{Kind: NotAStatus, Text: s}
	}
	resultStr := strings.TrimPrefix(parts[1], "result=")
	result, err := strconv.Atoi(resultStr)
	if err != nil {
		return Status{}, &ParseError{Kind: IntParse, Text: s, Err: err}
	}

	var opData *string
	if len(parts) == 3 && parts[2] != "" {
		extra := parts[2]
		if strings.HasPrefix(extra, "(") && strings.HasSuffix(extra, ")") {
			extra = extra[1 : len(extra)-1]
		}
		opData = &extra
	}
	return Status{Code: code, Result: result, OperationalData: opData}, nil
}

// requestKeys lists the agi_* keys that may carry the request URI, in
// the order a dump is scanned; whichever of them is seen first in the
// dump wins when both are present (Asterisk version dependent).
var requestKeys = map[string]struct{}{
	"agi_network_script": {},
	"agi_request":         {},
}

// ParseVariableDump decodes a complete dump block: one or more
// "agi_<name>: <value>" lines, with or without the terminating empty
// line (empty lines are skipped).
func ParseVariableDump(block []byte) (VariableDump, error) {
	if !utf8.Valid(block) {
		return VariableDump{}, &ParseError{Kind: Utf8, Text: string(block)}
	}
	text := string(block)

	vars := NewVariables()
	requestKey := ""
	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSuffix(rawLine, "\r")
		if line == "" {
			continue
		}
		idx := strings.Index(line, ": ")
		if idx < 0 {
			return VariableDump{}, &ParseError{Kind: NotAVariableDump, Text: line}
		}
		name := line[:idx]
		value := line[idx+2:]
		vars.Set(name, value)
		if requestKey == "" {
			if _, ok := requestKeys[name]; ok {
				requestKey = name
			}
		}
	}
	if requestKey == "" {
		return VariableDump{}, &ParseError{Kind: VariableDumpWithoutRequest}
	}

	raw, _ := vars.Get(requestKey)
	u, err := url.Parse(raw)
	if err != nil {
		return VariableDump{}, &ParseError{Kind: URLParse, Text: raw, Err: err}
	}
	return VariableDump{Variables: vars, RequestURI: u}, nil
}
