package fund

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettings_Defaults(t *testing.T) {
	s := ParseSettings(nil)

	assert.True(t, s.SharePrice().Equal(decimal.NewFromInt(2000000)))
	assert.True(t, s.MonthlyIncrease().IsZero())
	assert.True(t, s.LoanFactor().Equal(decimal.NewFromInt(2)))
	assert.True(t, s.FundBalance().IsZero())
	assert.True(t, s.BackupEnabled())
	_, ok := s.StartDate()
	assert.False(t, ok)
}

func TestParseSettings_NormalizesPersianDigits(t *testing.T) {
	s := ParseSettings(map[string]string{
		KeySharePrice:          "۳٬۰۰۰٬۰۰۰",
		KeyLoanFactor:          "1.5",
		KeySharePriceStartDate: "۲۰۲۵/۰۱/۰۱",
		KeyFundBalance:         "-1,000",
		KeyBackupEnabled:       "0",
	})

	assert.True(t, s.SharePrice().Equal(decimal.NewFromInt(3000000)))
	assert.True(t, s.LoanFactor().Equal(decimal.RequireFromString("1.5")))
	assert.True(t, s.FundBalance().Equal(decimal.NewFromInt(-1000)))
	assert.False(t, s.BackupEnabled())
	start, ok := s.StartDate()
	require.True(t, ok)
	assert.Equal(t, 2025, start.Year())
}

func TestParseSettings_InvalidValuesFallBack(t *testing.T) {
	s := ParseSettings(map[string]string{
		KeySharePrice:          "-5",
		KeyMonthlyIncrease:     "x",
		KeyLoanFactor:          "0",
		KeySharePriceStartDate: "2025/13/01",
		KeyFundBalance:         "n/a",
	})

	assert.True(t, s.SharePrice().Equal(DefaultSharePrice))
	assert.True(t, s.MonthlyIncrease().IsZero())
	assert.True(t, s.LoanFactor().Equal(DefaultLoanFactor))
	assert.True(t, s.FundBalance().IsZero())
	_, ok := s.StartDate()
	assert.False(t, ok)
}

func TestParseSettings_SharePriceZeroIsKept(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  decimal.Decimal
	}{
		{"0 保留", "0", decimal.Zero},
		{"未滿 1 向下取整為 0", "0.5", decimal.Zero},
		{"小數向下取整", "1500000.9", decimal.NewFromInt(1500000)},
		{"負數使用預設值", "-1", DefaultSharePrice},
		{"無法解析使用預設值", "abc", DefaultSharePrice},
		{"未設定使用預設值", "", DefaultSharePrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ParseSettings(map[string]string{KeySharePrice: tt.value})

			assert.True(t, s.SharePrice().Equal(tt.want), "got %s", s.SharePrice())
		})
	}
}

func TestValidateSettingsUpdate_Success(t *testing.T) {
	today := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

	rows, err := ValidateSettingsUpdate(SettingsUpdate{
		SharePrice:      "2,500,000",
		MonthlyIncrease: "",
		LoanFactor:      "2.5",
		StartDate:       "",
	}, today)

	require.NoError(t, err)
	values := map[string]string{}
	for _, r := range rows {
		values[r.Key] = r.Value
	}
	assert.Equal(t, "2500000", values[KeySharePrice])
	assert.Equal(t, "0", values[KeyMonthlyIncrease])
	assert.Equal(t, "2.5", values[KeyLoanFactor])
	assert.Equal(t, "2025/04/02", values[KeySharePriceStartDate])
}

func TestValidateSettingsUpdate_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		in    SettingsUpdate
		field string
	}{
		{"股價為零", SettingsUpdate{SharePrice: "0"}, KeySharePrice},
		{"股價非數字", SettingsUpdate{SharePrice: "abc"}, KeySharePrice},
		{"漲幅為負", SettingsUpdate{MonthlyIncrease: "-1"}, KeyMonthlyIncrease},
		{"倍數為零", SettingsUpdate{LoanFactor: "0"}, KeyLoanFactor},
		{"日期格式", SettingsUpdate{StartDate: "2025/4/2"}, KeySharePriceStartDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ValidateSettingsUpdate(tt.in, time.Now())

			assert.Nil(t, rows)
			assert.ErrorIs(t, err, ErrInvalidSettings)
		})
	}
}

func TestSettingKeys(t *testing.T) {
	assert.Equal(t, "balance_abc_1403", BalanceSnapshotKey("abc", "1403"))
	assert.Equal(t, "last_year_member_abc", LastYearKey("abc"))
	assert.Len(t, DefaultSettings(), 6)
}

func TestNewBankBalance(t *testing.T) {
	b, err := NewBankBalance(" Melli ", "۱٬۵۰۰٬۰۰۰")
	require.NoError(t, err)
	assert.Equal(t, "Melli", b.BankName())
	assert.True(t, b.Amount().Equal(decimal.NewFromInt(1500000)))

	for _, in := range [][2]string{{"", "100"}, {"Mellat", ""}, {"Mellat", "abc"}} {
		_, err := NewBankBalance(in[0], in[1])
		assert.ErrorIs(t, err, ErrInvalidBankBalance)
	}

	total := TotalBankBalance([]BankBalance{b, ReconstructBankBalance("Saman", decimal.NewFromInt(-500000))})
	assert.True(t, total.Equal(decimal.NewFromInt(1000000)))
}
