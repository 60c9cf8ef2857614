package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	memberapp "github.com/jackyeh168/qarz_fund/src/internal/application/member"
)

// ===========================
// 請求與回應
// ===========================

type registerMemberRequest struct {
	Code          string `json:"code"`
	Name          string `json:"name" binding:"required"`
	PhoneNumber   string `json:"phone_number"`
	AccountNumber string `json:"account_number"`
	JoinDate      string `json:"join_date"`
	Status        string `json:"status"`
}

type updateContactRequest struct {
	Name          string `json:"name"`
	PhoneNumber   string `json:"phone_number"`
	AccountNumber string `json:"account_number"`
	Status        string `json:"status"`
}

type memberResponse struct {
	MemberID      string    `json:"member_id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	PhoneNumber   string    `json:"phone_number"`
	AccountNumber string    `json:"account_number"`
	JoinDate      string    `json:"join_date"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toMemberResponse(dto memberapp.MemberDTO) memberResponse {
	return memberResponse{
		MemberID:      dto.MemberID,
		Code:          dto.Code,
		Name:          dto.Name,
		PhoneNumber:   dto.PhoneNumber,
		AccountNumber: dto.AccountNumber,
		JoinDate:      dto.JoinDate,
		Status:        dto.Status,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	}
}

// ===========================
// Handlers
// ===========================

// registerMember POST /api/members
func (h *Handler) registerMember(c *gin.Context) {
	var req registerMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	result, err := h.uc.RegisterMember.Execute(memberapp.RegisterMemberCommand{
		Code:          req.Code,
		Name:          req.Name,
		PhoneNumber:   req.PhoneNumber,
		AccountNumber: req.AccountNumber,
		JoinDate:      req.JoinDate,
		Status:        req.Status,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"member_id": result.MemberID, "code": result.Code})
}

// nextMembershipCode GET /api/members/next-code?last=M012
func (h *Handler) nextMembershipCode(c *gin.Context) {
	var last *string
	if value, ok := c.GetQuery("last"); ok {
		last = &value
	}
	c.JSON(http.StatusOK, gin.H{"code": h.uc.GenerateCode.Execute(last)})
}

// listMembers GET /api/members?q=keyword 或 ?lookup=codeOrName
func (h *Handler) listMembers(c *gin.Context) {
	if lookup, ok := c.GetQuery("lookup"); ok {
		dto, err := h.uc.FindMember.Execute(lookup)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toMemberResponse(*dto))
		return
	}

	dtos, err := h.uc.ListMembers.Execute(c.Query("q"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	resp := make([]memberResponse, 0, len(dtos))
	for _, dto := range dtos {
		resp = append(resp, toMemberResponse(dto))
	}
	c.JSON(http.StatusOK, gin.H{"members": resp, "count": len(resp)})
}

// getMember GET /api/members/:id
func (h *Handler) getMember(c *gin.Context) {
	dto, err := h.uc.GetMember.Execute(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMemberResponse(*dto))
}

// updateContact PATCH /api/members/:id/contact
func (h *Handler) updateContact(c *gin.Context) {
	var req updateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	dto, err := h.uc.UpdateContact.Execute(memberapp.UpdateMemberContactCommand{
		MemberID:      c.Param("id"),
		Name:          req.Name,
		PhoneNumber:   req.PhoneNumber,
		AccountNumber: req.AccountNumber,
		Status:        req.Status,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMemberResponse(*dto))
}

// removeMember DELETE /api/members/:id
func (h *Handler) removeMember(c *gin.Context) {
	if err := h.uc.RemoveMember.Execute(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
