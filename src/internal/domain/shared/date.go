package shared

import (
	"regexp"
)

// calendarDatePattern YYYY/MM/DD，月與日皆補零
//
// 不檢查該月實際天數：帳本日期屬於顯示曆法（波斯曆），
// 以字串前綴比對月份，不解析為 time.Time。
var calendarDatePattern = regexp.MustCompile(`^\d{4}/(0[1-9]|1[0-2])/(0[1-9]|[12]\d|3[01])$`)

// IsCalendarDate 檢查字串是否為補零的 YYYY/MM/DD
func IsCalendarDate(s string) bool {
	return calendarDatePattern.MatchString(s)
}
