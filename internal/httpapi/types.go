package httpapi

import (
	"encoding/json"

	"github.com/nguyentantai21042004/reelscript/internal/transcript"
)

type transcriptRequest struct {
	YoutubeLink string `json:"youtube_link"`
	Format      string `json:"format"`
}

type transcriptResponse struct {
	Transcript []transcript.Entry `json:"transcript"`
}

type captionRequest struct {
	Transcript  json.RawMessage `json:"transcript"`
	Style       string          `json:"style"`
	Language    string          `json:"language"`
	NumCaptions json.RawMessage `json:"num_captions"`
}

type captionResponse struct {
	Captions []string `json:"captions"`
}

type errorResponse struct {
	Error string `json:"error"`
}
