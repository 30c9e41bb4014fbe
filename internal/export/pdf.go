// Package export renders the learned dictionary into shareable formats.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/laicwew/LexiQuest/internal/models"
)

// WriteDictionaryPDF renders the learned dictionary as a printable word list.
// Learned entries carry only the word and its review metadata, so the core
// Latin fonts suffice.
func WriteDictionaryPDF(w io.Writer, playerName string, entries []models.VocabularyEntry) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "LexiQuest Dictionary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Adventurer: %s  -  %d words", playerName, len(entries)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(70, 8, "Word", "B", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Reviews", "B", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Learned", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, entry := range entries {
		learned := ""
		if entry.LearnedAt > 0 {
			learned = time.UnixMilli(entry.LearnedAt).Format("2006-01-02 15:04")
		}
		pdf.CellFormat(70, 7, entry.Word, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", entry.ReviewCount), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, learned, "", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}
