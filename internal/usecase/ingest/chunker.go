package ingest

import (
	"strings"
	"unicode"
)

// Chunk splits text into sentence-aware chunks of at most maxChars
// characters. Sentences are never split across chunks; a single sentence
// longer than maxChars becomes its own oversized chunk.
func Chunk(text string, maxChars int) []string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var current strings.Builder

	for _, sent := range sentences {
		if current.Len() > 0 && current.Len()+1+len(sent) > maxChars {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(sent)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// splitSentences breaks text on terminal punctuation followed by
// whitespace. Runs of enders ("?!", "...") stay with their sentence.
func splitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isSentenceEnd(runes[i]) {
			continue
		}

		j := i + 1
		for j < len(runes) && isSentenceEnd(runes[j]) {
			j++
		}
		if j < len(runes) && !unicode.IsSpace(runes[j]) {
			// Mid-token punctuation (e.g. "3.14", "v1.2"), not a boundary.
			i = j - 1
			continue
		}

		if sent := strings.TrimSpace(string(runes[start:j])); sent != "" {
			sentences = append(sentences, sent)
		}
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		start = j
		i = j - 1
	}

	if start < len(runes) {
		if sent := strings.TrimSpace(string(runes[start:])); sent != "" {
			sentences = append(sentences, sent)
		}
	}
	return sentences
}
