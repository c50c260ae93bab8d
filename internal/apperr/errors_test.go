package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestClassMatching(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		class error
	}{
		{"extraction", KindMalformedJSON, ErrDataProcessing},
		{"transcript shape", KindInvalidEntryFormat, ErrDataProcessing},
		{"captions", KindEmptyCaptionResult, ErrDataProcessing},
		{"srt", KindNoValidSubtitles, ErrDataProcessing},
		{"input", KindInvalidInput, ErrInvalidInput},
		{"upstream", KindUpstream, ErrService},
		{"timeout", KindUpstreamTimeout, ErrService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", New(tt.kind, "boom"))
			if !errors.Is(err, tt.class) {
				t.Errorf("errors.Is(%v, %v) = false, want true", err, tt.class)
			}
			if KindOf(err) != tt.kind {
				t.Errorf("KindOf() = %v, want %v", KindOf(err), tt.kind)
			}
			if ClassOf(err) != tt.class {
				t.Errorf("ClassOf() = %v, want %v", ClassOf(err), tt.class)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"data", New(KindNotAList, "x"), http.StatusBadRequest},
		{"input", New(KindInvalidInput, "x"), http.StatusBadRequest},
		{"upstream", Wrap(KindUpstream, errors.New("503"), "gemini"), http.StatusInternalServerError},
		{"timeout", New(KindUpstreamTimeout, "slow"), http.StatusGatewayTimeout},
		{"unclassified", errors.New("panic-ish"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := Wrap(KindMalformedJSON, cause, "fenced JSON could not be parsed")
	if got, want := err.Error(), "fenced JSON could not be parsed: unexpected end of JSON input"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable through errors.Is")
	}
	if err.AtIndex(3).Index != 3 || err.Index != -1 {
		t.Error("AtIndex() should copy, not mutate")
	}
	if !errors.Is(err, New(KindMalformedJSON, "")) {
		t.Error("errors of the same kind should match")
	}
}

func TestClassOfUnclassified(t *testing.T) {
	if got := ClassOf(errors.New("plain")); got != nil {
		t.Errorf("ClassOf() = %v, want nil", got)
	}
}
