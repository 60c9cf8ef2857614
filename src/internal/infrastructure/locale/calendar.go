package locale

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
)

// ===========================
// 伊朗曆（Jalali）⇄ 西曆
// ===========================
//
// 帳本日期一律以補零的 "YYYY/MM/DD" 伊朗曆字串儲存。
// 換算為算術公式（33 年週期），適用西元 1 年以後的日期。

// JalaliDate 伊朗曆日期
type JalaliDate struct {
	Year  int
	Month int
	Day   int
}

// String 補零的 "YYYY/MM/DD"
func (d JalaliDate) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// YearString 4 位數年份
func (d JalaliDate) YearString() string {
	return fmt.Sprintf("%04d", d.Year)
}

// ToJalali 西曆 → 伊朗曆（只取 t 的年月日）
func ToJalali(t time.Time) JalaliDate {
	gy, gm, gd := t.Year(), int(t.Month()), t.Day()

	cumulative := [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}
	gy2 := gy
	if gm > 2 {
		gy2 = gy + 1
	}
	days := 355666 + 365*gy + (gy2+3)/4 - (gy2+99)/100 + (gy2+399)/400 + gd + cumulative[gm-1]

	jy := -1595 + 33*(days/12053)
	days %= 12053
	jy += 4 * (days / 1461)
	days %= 1461
	if days > 365 {
		jy += (days - 1) / 365
		days = (days - 1) % 365
	}

	var jm, jd int
	if days < 186 {
		jm = 1 + days/31
		jd = 1 + days%31
	} else {
		jm = 7 + (days-186)/30
		jd = 1 + (days-186)%30
	}
	return JalaliDate{Year: jy, Month: jm, Day: jd}
}

// ToGregorian 伊朗曆 → 西曆（UTC 午夜）
//
// 不檢查日期是否存在；需要檢查時使用 ParseJalali。
func ToGregorian(d JalaliDate) time.Time {
	jy := d.Year + 1595
	days := -355668 + 365*jy + (jy/33)*8 + ((jy%33)+3)/4 + d.Day
	if d.Month < 7 {
		days += (d.Month - 1) * 31
	} else {
		days += (d.Month-7)*30 + 186
	}

	gy := 400 * (days / 146097)
	days %= 146097
	if days > 36524 {
		days--
		gy += 100 * (days / 36524)
		days %= 36524
		if days >= 365 {
			days++
		}
	}
	gy += 4 * (days / 1461)
	days %= 1461
	if days > 365 {
		gy += (days - 1) / 365
		days = (days - 1) % 365
	}

	gd := days + 1
	monthDays := [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	if isGregorianLeap(gy) {
		monthDays[2] = 29
	}
	gm := 1
	for gm < 13 && gd > monthDays[gm] {
		gd -= monthDays[gm]
		gm++
	}
	return time.Date(gy, time.Month(gm), gd, 0, 0, 0, 0, time.UTC)
}

// ParseJalali 解析 "YYYY/MM/DD" 伊朗曆日期（接受波斯數字與不補零的月日）
//
// 不存在的日期（例如非閏年的 12/30）返回錯誤。
func ParseJalali(value string) (JalaliDate, error) {
	parts := strings.Split(shared.NormalizeDigits(value), "/")
	if len(parts) != 3 {
		return JalaliDate{}, fmt.Errorf("invalid jalali date %q", value)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			return JalaliDate{}, fmt.Errorf("invalid jalali date %q", value)
		}
		nums[i] = n
	}

	d := JalaliDate{Year: nums[0], Month: nums[1], Day: nums[2]}
	if d.Month > 12 || d.Day > 31 || ToJalali(ToGregorian(d)) != d {
		return JalaliDate{}, fmt.Errorf("jalali date %q does not exist", value)
	}
	return d, nil
}

// TodayJalali 今天的伊朗曆日期
func TodayJalali(now time.Time) JalaliDate {
	return ToJalali(now)
}

// GregorianString 西曆 "YYYY/MM/DD"
func GregorianString(t time.Time) string {
	return t.Format("2006/01/02")
}

func isGregorianLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}
