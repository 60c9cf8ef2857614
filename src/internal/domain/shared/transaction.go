package shared

// TransactionContext 事務上下文介面
//
// 可選事務參與模式：
// - ctx != nil：在調用者的事務中執行
// - ctx == nil：auto-commit 模式（單一讀操作）
//
// Repository 方法約束：
// - 寫操作（Save / Update / Delete / ReplaceYear）必須在事務中
// - 讀操作可傳入 nil
//
// 範例：
//
//	txManager.InTransaction(func(ctx TransactionContext) error {
//	    if _, err := ledgerRepo.DeleteByMemberAndPrefix(ctx, memberID, "1403/"); err != nil {
//	        return err
//	    }
//	    return ledgerRepo.SaveAll(ctx, txs)
//	})
//
// 標記介面，不暴露任何方法；Infrastructure Layer 負責實作。
type TransactionContext interface {
	// 標記介面：僅用於傳遞上下文，不暴露方法
}

// TransactionManager 事務管理器介面
//
// fn 返回錯誤或 panic 時整個單元回滾；否則提交。
type TransactionManager interface {
	InTransaction(fn func(ctx TransactionContext) error) error
}
