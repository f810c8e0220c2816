// Package currencypkg provides common currency related functionality for apps.
package currencypkg

// USD is the only currency the ledger currently supports.
const USD = "USD"

// SupportedCurrencies holds all the supported currencies.
var SupportedCurrencies = []string{
	USD,
}

// IsSupportedCurrency returns true if the currncy is supported.
func IsSupportedCurrency(currency string) bool {
	for _, c := range SupportedCurrencies {
		if c == currency {
			return true
		}
	}

	return false
}
