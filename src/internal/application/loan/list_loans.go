package loan

import (
	"strings"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/loan"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
)

// ListLoansQuery MemberID 與 Status 皆可為空（不過濾）
type ListLoansQuery struct {
	MemberID string
	Status   string
}

// ListLoansUseCase 列出貸款
type ListLoansUseCase struct {
	loanRepo loan.LoanRepository
}

// NewListLoansUseCase 創建 Use Case 實例
func NewListLoansUseCase(loanRepo loan.LoanRepository) *ListLoansUseCase {
	return &ListLoansUseCase{loanRepo: loanRepo}
}

// Execute 依查詢條件列出
func (uc *ListLoansUseCase) Execute(query ListLoansQuery) ([]LoanDTO, error) {
	var status loan.Status
	if s := strings.TrimSpace(query.Status); s != "" {
		parsed, err := loan.ParseStatus(s)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	var (
		loans []*loan.Loan
		err   error
	)
	if strings.TrimSpace(query.MemberID) == "" {
		loans, err = uc.loanRepo.List(nil, status)
	} else {
		memberID, parseErr := member.MemberIDFromString(query.MemberID)
		if parseErr != nil {
			return nil, parseErr
		}
		loans, err = uc.loanRepo.ListByMember(nil, memberID, status)
	}
	if err != nil {
		return nil, err
	}

	dtos := make([]LoanDTO, 0, len(loans))
	for _, l := range loans {
		dtos = append(dtos, toLoanDTO(l))
	}
	return dtos, nil
}
