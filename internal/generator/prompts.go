package generator

import (
	"fmt"

	"github.com/nguyentantai21042004/reelscript/internal/transcript"
)

const transcriptPrompt = `Analyze the following YouTube video and generate accurate timestamps with corresponding subtitles.
Requirements:
1. Language: Cantonese or English (prioritize accuracy in spoken language).
2. Provide timestamps in the format %[1]s (e.g., %[2]s) and the spoken text at each timestamp.
3. Return the result STRICTLY as a JSON array of objects with 'timestamp' and 'subtitle' fields. Do not include markdown fences or any other text outside the JSON array.

Example Output:
[
  {"timestamp": "%[2]s", "subtitle": "Hello there."},
  {"timestamp": "%[3]s", "subtitle": "This is a test."}
]`

const captionPrompt = `You are an expert social media copywriter specializing in Instagram.
Based on the following video transcript, generate exactly %[1]d distinct and engaging Instagram post caption variations in the %[2]s language.

Core Requirements:
1. Language & Style: All captions MUST be in %[2]s and reflect a %[3]s tone.
2. Distinct Variations: Each caption should offer a different angle, hook, or call-to-action related to the transcript content.
3. Conciseness: Keep captions suitable for Instagram (generally under 150 words in %[2]s).
4. Engagement: Aim to be compelling, encourage likes, comments, or shares.
5. Content Essence: Capture the main theme or key message of the transcript.
6. Formatting: Include relevant emojis and hashtags appropriate for %[2]s.
7. Output Format: Return the result ONLY as a valid JSON array of strings. Each string is one complete caption. Do NOT include markdown fences, numbering, explanations, or any text outside the JSON array.

Transcript (mixed English/Cantonese expected):
---
%[4]s
---

Generate the %[1]d distinct %[3]s Instagram captions in %[2]s as a JSON array of strings now:`

func buildTranscriptPrompt(format transcript.TimestampFormat) string {
	return fmt.Sprintf(transcriptPrompt, format.Layout(), format.Example(), secondExample(format))
}

func buildCaptionPrompt(count int, language, style, text string) string {
	return fmt.Sprintf(captionPrompt, count, language, style, text)
}

func secondExample(format transcript.TimestampFormat) string {
	switch format {
	case transcript.FormatMSMillis:
		return "00:11.456"
	case transcript.FormatMS:
		return "00:11"
	default:
		return "00:00:11.456"
	}
}
