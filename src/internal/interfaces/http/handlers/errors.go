package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/loan"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/note"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence"
)

// errorResponse 錯誤回應格式
type errorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// statusByCode 錯誤代碼 → HTTP 狀態碼；未列出的 DomainError 一律 400
var statusByCode = map[shared.ErrorCode]int{
	member.ErrCodeMemberNotFound:          http.StatusNotFound,
	loan.ErrCodeLoanNotFound:              http.StatusNotFound,
	note.ErrCodeNoteNotFound:              http.StatusNotFound,
	member.ErrCodeMembershipCodeTaken:     http.StatusConflict,
	member.ErrCodeCodeGenerationExhausted: http.StatusConflict,
	loan.ErrCodeAlreadySettled:            http.StatusConflict,
	loan.ErrCodeExceedsCapacity:           http.StatusConflict,
	shared.ErrCodeRepositoryError:         http.StatusInternalServerError,
}

// statusFor 將錯誤映射為 HTTP 狀態碼
func statusFor(err error) int {
	if errors.Is(err, persistence.ErrMaintenanceUnsupported) {
		return http.StatusNotImplemented
	}
	var de *shared.DomainError
	if !errors.As(err, &de) {
		return http.StatusInternalServerError
	}
	if status, ok := statusByCode[de.Code]; ok {
		return status
	}
	return http.StatusBadRequest
}

// respondError 寫出錯誤回應
//
// 500 不回傳內部訊息，只記錄在日誌。
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	entry := h.log.WithError(err).WithField("path", c.FullPath())

	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		entry.Error("request handling failed")
		c.JSON(status, errorResponse{Code: string(shared.ErrCodeRepositoryError), Message: "internal error"})
		return
	}

	resp := errorResponse{Code: "UNSUPPORTED", Message: err.Error()}
	var de *shared.DomainError
	if errors.As(err, &de) {
		resp = errorResponse{Code: string(de.Code), Message: de.Message, Context: de.Context}
	}
	entry.Warn("request rejected by use case")
	c.JSON(status, resp)
}

// respondBindError 請求格式錯誤
func (h *Handler) respondBindError(c *gin.Context, err error) {
	h.log.WithError(err).WithField("path", c.FullPath()).Warn("invalid request body")
	c.JSON(http.StatusBadRequest, errorResponse{
		Code:    string(shared.ErrCodeInvalidInput),
		Message: err.Error(),
	})
}
