package chunk

import "strings"

type Segment struct {
	Index      int
	StartToken int
	EndToken   int
	Text       string
}

// SlidingWindow slices text into overlapping token windows. stepTokens is the
// distance between window starts; a step smaller than the window size yields
// overlap. Text shorter than one window produces a single segment covering
// everything.
func SlidingWindow(text string, windowTokens, stepTokens int) []Segment {
	if windowTokens <= 0 {
		return nil
	}
	if stepTokens <= 0 || stepTokens > windowTokens {
		stepTokens = windowTokens
	}

	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil
	}

	segments := make([]Segment, 0, (len(tokens)/stepTokens)+1)
	for start := 0; start < len(tokens); start += stepTokens {
		end := start + windowTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		segments = append(segments, Segment{
			Index:      len(segments),
			StartToken: start,
			EndToken:   end,
			Text:       strings.Join(tokens[start:end], " "),
		})
		if end == len(tokens) {
			break
		}
	}

	return segments
}

// TokenCount reports the whitespace token count of text.
func TokenCount(text string) int {
	return len(strings.Fields(text))
}
