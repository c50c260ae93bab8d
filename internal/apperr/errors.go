package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Classes group kinds by who is at fault. Use them with errors.Is.
var (
	ErrDataProcessing = errors.New("data processing error")
	ErrInvalidInput   = errors.New("invalid input")
	ErrService        = errors.New("service error")
)

// Kind identifies a single failure mode of the pipeline.
type Kind string

const (
	KindEmptyExtraction     Kind = "empty_extraction"
	KindNoParsableJSON      Kind = "no_parsable_json"
	KindMalformedJSON       Kind = "malformed_json"
	KindNotAList            Kind = "not_a_list"
	KindInvalidEntryFormat  Kind = "invalid_entry_format"
	KindInvalidCaptionShape Kind = "invalid_caption_shape"
	KindEmptyCaptionResult  Kind = "empty_caption_result"
	KindNoValidSubtitles    Kind = "no_valid_subtitles"
	KindInvalidInput        Kind = "invalid_input"
	KindUpstream            Kind = "upstream"
	KindUpstreamTimeout     Kind = "upstream_timeout"
)

// Class returns the sentinel class the kind belongs to.
func (k Kind) Class() error {
	switch k {
	case KindInvalidInput:
		return ErrInvalidInput
	case KindUpstream, KindUpstreamTimeout:
		return ErrService
	case "":
		return nil
	default:
		return ErrDataProcessing
	}
}

// Error is a classified pipeline failure. Index is the offending element
// position for per-element failures and -1 otherwise.
type Error struct {
	Kind    Kind
	Message string
	Index   int
	Err     error
}

// New builds a classified error without a cause.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Index: -1}
}

// Wrap builds a classified error around a cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Index: -1, Err: err}
}

// AtIndex returns a copy of e tagged with an element index.
func (e *Error) AtIndex(index int) *Error {
	cp := *e
	cp.Index = index
	return &cp
}

func (e *Error) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match both the class sentinel and another *Error of the same kind.
func (e *Error) Is(target error) bool {
	if other, ok := target.(*Error); ok {
		return other.Kind == e.Kind
	}
	class := e.Kind.Class()
	return class != nil && target == class
}

// KindOf extracts the kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// HTTPStatus maps an error to the response status the boundary should use.
func HTTPStatus(err error) int {
	switch kind := KindOf(err); {
	case kind == KindUpstreamTimeout:
		return http.StatusGatewayTimeout
	case kind == KindUpstream:
		return http.StatusInternalServerError
	case kind != "":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ClassOf returns the class sentinel of err, or nil when err is unclassified.
func ClassOf(err error) error {
	return KindOf(err).Class()
}
