// Package scriptpath decides which script paths may be handed to the
// interpreter. There is exactly one rule: the path must end in the fixed
// script filename with at least one non-whitespace character before it.
//
// The host application enforces the same grammar at its own boundary. Hosts
// should copy Pattern verbatim rather than restating it.
package scriptpath

import "regexp"

// ScriptName is the only script filename the gate accepts.
const ScriptName = "__print_numbers.py"

// Pattern is the acceptance grammar shared with the host-side validator.
// It must stay byte-identical to the host's copy.
const Pattern = `\S+__print_numbers[.]py$`

// rule is Pattern with \S excluding all Unicode White_Space, as the host's
// regex engine does. RE2's \s alone covers ASCII white space only.
var rule = regexp.MustCompile(`[^\s\v\x{85}\p{Z}]+__print_numbers[.]py$`)

// RejectedPathError is returned by Validate for paths that do not match
// Pattern. The message echoes the input unmodified; use term.Safe before
// writing it to a terminal.
type RejectedPathError struct {
	Path string
}

func (e *RejectedPathError) Error() string {
	return "Provided Python script path does not match expected filename! Got: " + e.Path
}

// Match reports whether path satisfies Pattern, with Unicode white space
// semantics for \S.
func Match(path string) bool {
	return rule.MatchString(path)
}

// Validate returns nil if path satisfies Pattern, and a *RejectedPathError
// otherwise.
func Validate(path string) error {
	if !Match(path) {
		return &RejectedPathError{Path: path}
	}
	return nil
}
