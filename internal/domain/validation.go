package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	codeMinLen = 5
	codeMaxLen = 10

	msgBlank   = "must not be blank"
	msgNull    = "must not be null"
	msgSize    = "size must be between 5 and 10"
	msgPattern = "pgi should start with letter and be alphanumeric"
)

var codePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]+$`)

// Validate checks the request fields and returns a *ValidationError listing
// one message per invalid field, or nil when the request is valid.
// For pgi the first failing rule wins: blank, then size, then pattern.
func (r TravelRequest) Validate() error {
	fields := map[string]string{}

	switch {
	case strings.TrimSpace(r.Code) == "":
		fields["pgi"] = msgBlank
	case utf8.RuneCountInString(r.Code) < codeMinLen || utf8.RuneCountInString(r.Code) > codeMaxLen:
		fields["pgi"] = msgSize
	case !codePattern.MatchString(r.Code):
		fields["pgi"] = msgPattern
	}

	if strings.TrimSpace(r.Place) == "" {
		fields["place"] = msgBlank
	}

	if r.Date == nil {
		fields["date"] = msgNull
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
