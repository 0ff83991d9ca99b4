package models

// 支持的币种，与钱包/交易请求的 oneof 校验保持一致
const (
	CurrencyUSD = "usd"
	CurrencyEUR = "eur"
	CurrencyGBP = "gbp"
	CurrencyPLN = "pln"
)

// GetCurrencies 返回全部支持的币种
func GetCurrencies() []string {
	return []string{CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyPLN}
}

// IsValidCurrency 判断币种是否受支持
func IsValidCurrency(currency string) bool {
	switch currency {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyPLN:
		return true
	}
	return false
}
