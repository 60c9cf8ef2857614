package locale

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ===========================
// 千分位格式化與解析
// ===========================
//
// ParseNumber(FormatNumber(n)) == n 對所有 int64 成立；
// Persian 版本同樣可由 ParseNumber 還原。

// bidiMarks 波斯語數字輸出可能夾帶的方向控制字元
var bidiMarks = strings.NewReplacer(
	"\u200e", "",
	"\u200f", "",
	"\u061c", "",
	"\u2212", "-",
)

// FormatNumber 以逗號分隔千分位，例如 2500000 → "2,500,000"
func FormatNumber(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// FormatPersian 以波斯數字與波斯千分位符號輸出
func FormatPersian(n int64) string {
	return message.NewPrinter(language.Persian).Sprintf("%d", n)
}

// ParseNumber FormatNumber / FormatPersian 的反函數
//
// 接受波斯與阿拉伯數字、各種千分位符號；空字串是錯誤。
func ParseNumber(value string) (int64, error) {
	normalized := shared.NormalizeDigits(bidiMarks.Replace(value))
	if normalized == "" {
		return 0, fmt.Errorf("empty number")
	}
	n, err := strconv.ParseInt(normalized, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse number %q: %w", value, err)
	}
	return n, nil
}

// FormatAmount 格式化金額；整數部分加千分位，小數部分原樣保留
func FormatAmount(d decimal.Decimal) string {
	whole := d.Truncate(0)
	text := FormatNumber(whole.IntPart())
	if whole.IsZero() && d.IsNegative() {
		text = "-" + text
	}

	fraction := d.Sub(whole).Abs()
	if fraction.IsZero() {
		return text
	}
	// "0.25" → ".25"
	return text + strings.TrimPrefix(fraction.String(), "0")
}
