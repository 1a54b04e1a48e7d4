package advisor

import "testing"

func TestExtractJSONArray(t *testing.T) {
	raw := "Sure! Here are my picks:\n```json\n[{\"title\":\"Berserk\"}]\n```\nEnjoy!"
	got, ok := ExtractJSONArray(raw)
	if !ok {
		t.Fatalf("expected an array to be found")
	}
	if got != `[{"title":"Berserk"}]` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSONArrayBare(t *testing.T) {
	got, ok := ExtractJSONArray(`[1,2,3]`)
	if !ok || got != `[1,2,3]` {
		t.Fatalf("unexpected result: %q %v", got, ok)
	}
}

func TestExtractJSONArrayNested(t *testing.T) {
	raw := `prefix [{"genres":["a","b"]}] suffix`
	got, ok := ExtractJSONArray(raw)
	if !ok || got != `[{"genres":["a","b"]}]` {
		t.Fatalf("unexpected result: %q %v", got, ok)
	}
}

func TestExtractJSONArrayMissing(t *testing.T) {
	for _, raw := range []string{"no array here", "only ] closes", "only [ opens", "] reversed ["} {
		if got, ok := ExtractJSONArray(raw); ok {
			t.Fatalf("expected no array in %q, got %q", raw, got)
		}
	}
}
