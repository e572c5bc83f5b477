package utils

import (
	"strconv"
	"strings"
	"testing"
)

func TestGenerateTransactionID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateTransactionID()
		if !strings.HasPrefix(id, "TXN") {
			t.Fatalf("expected TXN prefix, got %q", id)
		}
		for _, r := range id {
			if !strings.ContainsRune(idCharset, r) {
				t.Fatalf("unexpected character %q in id %q", r, id)
			}
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = true
	}
}

func TestGenerateSettlementRef(t *testing.T) {
	for i := 0; i < 1000; i++ {
		ref := GenerateSettlementRef()
		if len(ref) != 12 {
			t.Fatalf("expected 12 digits, got %q", ref)
		}
		n, err := strconv.ParseInt(ref, 10, 64)
		if err != nil {
			t.Fatalf("non-numeric settlement ref %q: %v", ref, err)
		}
		if n < 100000000000 || n > 999999999999 {
			t.Fatalf("settlement ref %d out of range", n)
		}
	}
}
