package gemini

import "google.golang.org/genai"

// TranscriptSchema constrains transcript output to a list of
// {timestamp, subtitle} objects.
func TranscriptSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"timestamp": {Type: genai.TypeString},
				"subtitle":  {Type: genai.TypeString},
			},
			Required:         []string{"timestamp", "subtitle"},
			PropertyOrdering: []string{"timestamp", "subtitle"},
		},
	}
}

// CaptionSchema constrains caption output to a list of strings.
func CaptionSchema() *genai.Schema {
	return &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}
}
