package loan

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
)

const (
	ErrCodeInvalidPrincipal    shared.ErrorCode = "LOAN_INVALID_PRINCIPAL"
	ErrCodeInvalidInstallments shared.ErrorCode = "LOAN_INVALID_INSTALLMENTS"
	ErrCodeInvalidLoanID       shared.ErrorCode = "LOAN_INVALID_ID"
	ErrCodeLoanNotFound        shared.ErrorCode = "LOAN_NOT_FOUND"
	ErrCodeAlreadySettled      shared.ErrorCode = "LOAN_ALREADY_SETTLED"
	ErrCodeExceedsCapacity     shared.ErrorCode = "LOAN_EXCEEDS_CAPACITY"
	ErrCodeInvalidStatus       shared.ErrorCode = "LOAN_INVALID_STATUS"
)

var (
	// ErrInvalidPrincipal 貸款金額必須大於 0
	ErrInvalidPrincipal = shared.NewDomainError(ErrCodeInvalidPrincipal, "貸款金額必須大於 0")

	// ErrInvalidInstallments 期數必須大於 0
	ErrInvalidInstallments = shared.NewDomainError(ErrCodeInvalidInstallments, "分期期數必須大於 0")

	// ErrInvalidLoanID 貸款 ID 無效
	ErrInvalidLoanID = shared.NewDomainError(ErrCodeInvalidLoanID, "貸款 ID 格式無效")

	// ErrLoanNotFound 貸款不存在
	ErrLoanNotFound = shared.NewDomainError(ErrCodeLoanNotFound, "貸款不存在")

	// ErrAlreadySettled 貸款已結清
	ErrAlreadySettled = shared.NewDomainError(ErrCodeAlreadySettled, "貸款已結清")

	// ErrExceedsCapacity 超過會員可貸額度
	ErrExceedsCapacity = shared.NewDomainError(ErrCodeExceedsCapacity, "貸款金額超過可貸額度")

	// ErrInvalidStatus 未知的貸款狀態
	ErrInvalidStatus = shared.NewDomainError(ErrCodeInvalidStatus, "貸款狀態無效")
)
