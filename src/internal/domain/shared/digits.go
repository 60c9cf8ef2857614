package shared

import (
	"strings"
)

// ===========================
// 數字字串正規化
// ===========================

// digitReplacer 波斯數字、阿拉伯-印度數字 → ASCII，並移除千分位符號
//
// 支援的分隔符：
// - ٬ (U+066C 阿拉伯千分位)
// - ، (U+060C 阿拉伯逗號)
// - , (ASCII 逗號)
// - 空白
var digitReplacer = strings.NewReplacer(
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	"٫", ".",
	"٬", "", "،", "", ",", "", " ", "",
)

// NormalizeDigits 將使用者輸入的數字字串轉為可解析的 ASCII 形式
//
// 範例：
//
//	NormalizeDigits("۱٬۲۳۴٬۵۶۷") // "1234567"
//	NormalizeDigits(" 2,000,000 ") // "2000000"
func NormalizeDigits(s string) string {
	return digitReplacer.Replace(strings.TrimSpace(s))
}
