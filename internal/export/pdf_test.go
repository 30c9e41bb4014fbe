package export

import (
	"bytes"
	"testing"

	"github.com/laicwew/LexiQuest/internal/models"
)

func TestWriteDictionaryPDF(t *testing.T) {
	entries := []models.VocabularyEntry{
		{Word: "apple", LearnedAt: 1700000000000, ReviewCount: 2},
		{Word: "shelf", LearnedAt: 1700000100000},
	}

	var buf bytes.Buffer
	if err := WriteDictionaryPDF(&buf, "Frodo", entries); err != nil {
		t.Fatalf("Failed to write PDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("Expected a PDF header at the start of the output")
	}
}

func TestWriteDictionaryPDFEmptyDictionary(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDictionaryPDF(&buf, "Frodo", nil); err != nil {
		t.Fatalf("Failed to write PDF: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("Expected output for an empty dictionary")
	}
}
