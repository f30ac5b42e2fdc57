package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"simrs/internal/infrastructure/storage/local"
)

// JournalReader provides recorded mutation snapshots for a slot.
type JournalReader interface {
	History(ctx context.Context, slot string, limit int) ([]local.JournalEntry, error)
}

// JournalHandler serves the mutation journal for operators.
type JournalHandler struct {
	*BaseHandler
	journal JournalReader
}

// NewJournalHandler creates a journal handler.
func NewJournalHandler(base *BaseHandler, journal JournalReader) *JournalHandler {
	return &JournalHandler{BaseHandler: base, journal: journal}
}

// History handles GET /journal/:slot. Entries come back newest first
// with snapshots decompressed; an unknown slot yields an empty list.
func (h *JournalHandler) History(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 20)

	entries, err := h.journal.History(c.Request.Context(), c.Param("slot"), limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	if entries == nil {
		entries = []local.JournalEntry{}
	}
	h.OK(c, entries)
}
