package domain

import "testing"

func TestResultBatch_Parallel(t *testing.T) {
	batch := ResultBatch{
		{Distance: 0.05, ID: "2", Text: "dogs are great", Metadata: map[string]string{MetaSource: "b.txt"}},
		{Distance: 0.10, ID: "1", Text: "cats are great", Metadata: map[string]string{MetaSource: "a.txt"}},
	}

	raw := batch.Parallel()

	// Single-query batch: outer lists always have exactly one element.
	if len(raw.IDs) != 1 || len(raw.Documents) != 1 || len(raw.Metadatas) != 1 || len(raw.Distances) != 1 {
		t.Fatalf("outer lists must have length 1, got ids=%d docs=%d metas=%d dists=%d",
			len(raw.IDs), len(raw.Documents), len(raw.Metadatas), len(raw.Distances))
	}
	if got := raw.IDs[0]; got[0] != "2" || got[1] != "1" {
		t.Errorf("ids order = %v, want [2 1]", got)
	}
	if got := raw.Distances[0]; got[0] != 0.05 || got[1] != 0.10 {
		t.Errorf("distances = %v, want [0.05 0.10]", got)
	}
	if got := raw.Metadatas[0][0][MetaSource]; got != "b.txt" {
		t.Errorf("metadata source = %q, want b.txt", got)
	}
}

func TestResultBatch_Parallel_Empty(t *testing.T) {
	raw := ResultBatch{}.Parallel()
	if len(raw.IDs) != 1 || len(raw.IDs[0]) != 0 {
		t.Fatalf("empty batch must still produce one empty inner list, got %v", raw.IDs)
	}
}

func TestQueryHit_Relevance(t *testing.T) {
	h := QueryHit{Distance: 0.25}
	if got := h.Relevance(); got != 0.75 {
		t.Errorf("relevance = %v, want 0.75", got)
	}
}
