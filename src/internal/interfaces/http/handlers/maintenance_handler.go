package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/locale"
)

// backup POST /api/maintenance/backup
func (h *Handler) backup(c *gin.Context) {
	path, err := h.uc.Maintenance.Backup()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"path": path, "file": filepath.Base(path)})
}

// checkIntegrity GET /api/maintenance/integrity
func (h *Handler) checkIntegrity(c *gin.Context) {
	report, err := h.uc.Maintenance.CheckIntegrity()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": report.OK, "messages": report.Messages})
}

// calendarToday GET /api/calendar/today
func (h *Handler) calendarToday(c *gin.Context) {
	now := h.now()
	today := locale.TodayJalali(now)
	c.JSON(http.StatusOK, gin.H{
		"jalali":    today.String(),
		"year":      today.YearString(),
		"month":     today.Month,
		"gregorian": locale.GregorianString(now),
	})
}
