package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/reelscript/internal/apperr"
	"github.com/nguyentantai21042004/reelscript/internal/caption"
	"github.com/nguyentantai21042004/reelscript/internal/export"
	"github.com/nguyentantai21042004/reelscript/internal/generator"
	"github.com/nguyentantai21042004/reelscript/internal/logger"
	"github.com/nguyentantai21042004/reelscript/internal/transcript"
)

const maxBodyBytes = 4 << 20

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "reelscript is running")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusNotFound, "not found")
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req transcriptRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	link := strings.TrimSpace(req.YoutubeLink)
	if err := generator.ValidateLink(link); err != nil {
		s.writeError(w, r, http.StatusBadRequest, `Valid "youtube_link" required.`)
		return
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, `Invalid "format". Use "json", "srt" or "docx".`)
		return
	}

	s.logger.Info(ctx, "Transcript request for %s (format %s)", link, format)

	entries, err := s.gen.Transcript(ctx, link)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	if format == export.FormatJSON {
		s.writeJSON(w, r, http.StatusOK, transcriptResponse{Transcript: entries})
		return
	}

	data, skipped, err := export.Render(format, entries, export.Options{
		Title:       "Transcript: " + link,
		SRTDuration: s.srtDuration,
	})
	for _, sk := range skipped {
		s.logger.Warn(ctx, "Skipping transcript entry %d (%q): %s", sk.Position, sk.Timestamp, sk.Reason)
	}
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNoValidSubtitles {
			s.writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		s.writeFailure(w, r, err)
		return
	}

	id, _ := logger.RequestIDFromContext(ctx)
	s.writeAttachment(w, format, "transcript_"+id+format.Ext(), data)
}

func (s *Server) handleCaption(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req captionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	count, ok := parseCount(req.NumCaptions)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, fmt.Sprintf(`Invalid "num_captions" parameter (must be an integer between %d and %d).`, caption.MinCount, caption.MaxCount))
		return
	}

	entries, msg := parseTranscript(req.Transcript)
	if msg != "" {
		s.writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	s.logger.Info(ctx, "Caption request (style %q, language %q, count %d, %d entries)", req.Style, req.Language, count, len(entries))

	captions, err := s.gen.Captions(ctx, generator.CaptionRequest{
		Entries:  entries,
		Style:    req.Style,
		Language: req.Language,
		Count:    count,
	})
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, captionResponse{Captions: captions})
}

// parseCount decodes num_captions as a positive integer, given as a number or
// a numeric string. Absent yields 0, which the generator reads as its
// configured default, so an explicit 0 is rejected here. The upper bound
// is checked by the generator.
func parseCount(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, true
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}

	var n int
	switch t := v.(type) {
	case float64:
		if t != float64(int(t)) {
			return 0, false
		}
		n = int(t)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	return n, n >= caption.MinCount
}

// parseTranscript reads the caption request transcript. Elements must be
// objects; only their string subtitle and timestamp fields are used.
func parseTranscript(raw json.RawMessage) ([]transcript.Entry, string) {
	const invalid = `Invalid or missing "transcript" (must be array).`

	var items []any
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil || len(items) == 0 {
		return nil, invalid
	}

	entries := make([]transcript.Entry, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Sprintf(`Invalid "transcript" entry at index %d (must be an object).`, i)
		}
		var e transcript.Entry
		e.Subtitle, _ = obj["subtitle"].(string)
		e.Timestamp, _ = obj["timestamp"].(string)
		entries = append(entries, e)
	}
	return entries, ""
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !isJSONRequest(r) {
		s.writeError(w, r, http.StatusUnsupportedMediaType, "Request must be JSON")
		return false
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		s.logger.Debug(r.Context(), "Rejecting request body: %v", err)
		s.writeError(w, r, http.StatusBadRequest, "Request body must be valid JSON")
		return false
	}
	return true
}

func isJSONRequest(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// writeFailure maps a pipeline error to its status and message prefix.
// Rejected input is reported with its plain message.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	status := apperr.HTTPStatus(err)

	switch class := apperr.ClassOf(err); {
	case errors.Is(class, apperr.ErrInvalidInput):
		s.logger.Warn(ctx, "Invalid request: %v", err)
		s.writeError(w, r, status, err.Error())
	case class == nil:
		s.logger.Error(ctx, "Unexpected error: %v", err)
		s.writeError(w, r, http.StatusInternalServerError, "Unexpected Server Error: internal error")
	case errors.Is(class, apperr.ErrService):
		s.logger.Error(ctx, "Service error (%s): %v", apperr.KindOf(err), err)
		s.writeError(w, r, status, "Service Error: "+err.Error())
	default:
		s.logger.Warn(ctx, "Data processing error (%s): %v", apperr.KindOf(err), err)
		s.writeError(w, r, status, "Data Processing Error: "+err.Error())
	}
}

func (s *Server) writeAttachment(w http.ResponseWriter, format export.Format, name string, data []byte) {
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		s.logger.Error(r.Context(), "failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.writeJSON(w, r, status, errorResponse{Error: message})
}
