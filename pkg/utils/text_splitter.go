package utils

import "strings"

// SplitText splits a long string into chunks of approximately 'chunkSize'
// characters with 'overlap' characters of shared context at boundaries.
// Chunk ends are pulled back to the nearest newline or space when one is
// close, so words survive the cut.
func SplitText(text string, chunkSize int, overlap int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len([]rune(text)) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	totalLen := len(runes)

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		} else {
			end = softBoundary(runes, i, end)
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}

// softBoundary walks back from 'end' looking for a newline or space within
// the last tenth of the chunk. Falls back to the hard cut when none exists.
func softBoundary(runes []rune, start, end int) int {
	window := (end - start) / 10
	for j := end; j > end-window && j > start; j-- {
		if runes[j-1] == '\n' || runes[j-1] == ' ' {
			return j
		}
	}
	return end
}
