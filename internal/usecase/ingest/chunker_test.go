package ingest

import (
	"strings"
	"testing"
)

func TestChunk_SingleSentence(t *testing.T) {
	chunks := Chunk("Hello world.", 100)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "Hello world." {
		t.Errorf("unexpected chunk: %q", chunks[0])
	}
}

func TestChunk_AccumulatesUpToLimit(t *testing.T) {
	text := "One two three. Four five six. Seven eight nine."
	chunks := Chunk(text, 35)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if chunks[0] != "One two three. Four five six." {
		t.Errorf("unexpected first chunk: %q", chunks[0])
	}
	if chunks[1] != "Seven eight nine." {
		t.Errorf("unexpected second chunk: %q", chunks[1])
	}
}

func TestChunk_NeverSplitsSentences(t *testing.T) {
	text := "Short one. This sentence is quite a bit longer than the limit allows. End."
	chunks := Chunk(text, 20)

	for _, c := range chunks {
		if strings.HasSuffix(c, " quite") || strings.HasPrefix(c, "a bit") {
			t.Errorf("sentence was split mid-way: %q", c)
		}
	}
	// Oversized sentence stays whole as its own chunk.
	found := false
	for _, c := range chunks {
		if c == "This sentence is quite a bit longer than the limit allows." {
			found = true
		}
	}
	if !found {
		t.Errorf("oversized sentence not kept whole: %v", chunks)
	}
}

func TestChunk_EmptyAndWhitespace(t *testing.T) {
	if chunks := Chunk("", 100); chunks != nil {
		t.Errorf("expected nil for empty text, got %v", chunks)
	}
	if chunks := Chunk("   \n\t  ", 100); chunks != nil {
		t.Errorf("expected nil for whitespace text, got %v", chunks)
	}
}

func TestChunk_QuestionAndExclamation(t *testing.T) {
	chunks := Chunk("Really?! Yes. Amazing!", 10)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %v", len(chunks), chunks)
	}
	if chunks[0] != "Really?!" {
		t.Errorf("ender run should stay with sentence: %q", chunks[0])
	}
}

func TestSplitSentences_DecimalNumbersNotBoundaries(t *testing.T) {
	sentences := splitSentences("Pi is 3.14 exactly. Version v1.2 shipped.")
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(sentences), sentences)
	}
	if sentences[0] != "Pi is 3.14 exactly." {
		t.Errorf("decimal split a sentence: %q", sentences[0])
	}
}

func TestSplitSentences_NoTrailingPunctuation(t *testing.T) {
	sentences := splitSentences("First sentence. trailing fragment without a period")
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(sentences), sentences)
	}
	if sentences[1] != "trailing fragment without a period" {
		t.Errorf("unexpected tail: %q", sentences[1])
	}
}
