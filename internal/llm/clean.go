package llm

import (
	"regexp"
	"strings"
)

// reasoningTags are chain-of-thought wrappers some models emit before the
// actual answer.
var reasoningTags = []*regexp.Regexp{
	regexp.MustCompile(`(?s)<thinking>.*?</thinking>`),
	regexp.MustCompile(`(?s)<think>.*?</think>`),
}

// CleanResponse strips markdown code fences and reasoning tags from raw
// model output so the remainder can be parsed as JSON.
func CleanResponse(text string) string {
	for _, re := range reasoningTags {
		text = re.ReplaceAllString(text, "")
	}
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		// Without a closing fence the whole remainder is payload.
		end := len(lines)
		for i := len(lines) - 1; i > 0; i-- {
			if strings.TrimSpace(lines[i]) == "```" {
				end = i
				break
			}
		}
		text = strings.Join(lines[1:end], "\n")
	}

	return strings.TrimSpace(text)
}
