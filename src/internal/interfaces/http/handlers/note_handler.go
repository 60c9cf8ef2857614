package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	noteapp "github.com/jackyeh168/qarz_fund/src/internal/application/note"
)

type addNoteRequest struct {
	Month string `json:"month" binding:"required"`
	Text  string `json:"text" binding:"required"`
}

func noteJSON(dto noteapp.NoteDTO) gin.H {
	return gin.H{
		"note_id":     dto.NoteID,
		"member_id":   dto.MemberID,
		"month":       dto.Month,
		"text":        dto.Text,
		"linked_cell": dto.LinkedCell,
		"created_at":  dto.CreatedAt,
	}
}

// addNote POST /api/members/:id/notes
func (h *Handler) addNote(c *gin.Context) {
	var req addNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}
	dto, err := h.uc.AddNote.Execute(noteapp.AddNoteCommand{MemberID: c.Param("id"), Month: req.Month, Text: req.Text})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, noteJSON(*dto))
}

// listNotes GET /api/members/:id/notes?year=1403
func (h *Handler) listNotes(c *gin.Context) {
	dtos, err := h.uc.ListNotes.Execute(noteapp.ListNotesQuery{MemberID: c.Param("id"), Year: c.Query("year")})
	if err != nil {
		h.respondError(c, err)
		return
	}
	notes := make([]gin.H, 0, len(dtos))
	for _, dto := range dtos {
		notes = append(notes, noteJSON(dto))
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// deleteNote DELETE /api/notes/:id
func (h *Handler) deleteNote(c *gin.Context) {
	if err := h.uc.DeleteNote.Execute(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
