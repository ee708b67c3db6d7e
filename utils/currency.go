package utils

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type countryInfo struct {
	ISO      string
	Currency string
}

// countries maps lowercase country names to their ISO code and currency.
// Covers the countries the registration form offers.
var countries = map[string]countryInfo{
	"india":                {"IN", "INR"},
	"united states":        {"US", "USD"},
	"united kingdom":       {"GB", "GBP"},
	"canada":               {"CA", "CAD"},
	"australia":            {"AU", "AUD"},
	"germany":              {"DE", "EUR"},
	"france":               {"FR", "EUR"},
	"spain":                {"ES", "EUR"},
	"italy":                {"IT", "EUR"},
	"netherlands":          {"NL", "EUR"},
	"belgium":              {"BE", "EUR"},
	"austria":              {"AT", "EUR"},
	"ireland":              {"IE", "EUR"},
	"portugal":             {"PT", "EUR"},
	"finland":              {"FI", "EUR"},
	"greece":               {"GR", "EUR"},
	"switzerland":          {"CH", "CHF"},
	"sweden":               {"SE", "SEK"},
	"norway":               {"NO", "NOK"},
	"denmark":              {"DK", "DKK"},
	"poland":               {"PL", "PLN"},
	"czech republic":       {"CZ", "CZK"},
	"hungary":              {"HU", "HUF"},
	"romania":              {"RO", "RON"},
	"russia":               {"RU", "RUB"},
	"turkey":               {"TR", "TRY"},
	"israel":               {"IL", "ILS"},
	"united arab emirates": {"AE", "AED"},
	"saudi arabia":         {"SA", "SAR"},
	"qatar":                {"QA", "QAR"},
	"kuwait":               {"KW", "KWD"},
	"pakistan":             {"PK", "PKR"},
	"bangladesh":           {"BD", "BDT"},
	"sri lanka":            {"LK", "LKR"},
	"nepal":                {"NP", "NPR"},
	"china":                {"CN", "CNY"},
	"japan":                {"JP", "JPY"},
	"south korea":          {"KR", "KRW"},
	"singapore":            {"SG", "SGD"},
	"malaysia":             {"MY", "MYR"},
	"thailand":             {"TH", "THB"},
	"indonesia":            {"ID", "IDR"},
	"philippines":          {"PH", "PHP"},
	"vietnam":              {"VN", "VND"},
	"hong kong":            {"HK", "HKD"},
	"new zealand":          {"NZ", "NZD"},
	"south africa":         {"ZA", "ZAR"},
	"nigeria":              {"NG", "NGN"},
	"kenya":                {"KE", "KES"},
	"egypt":                {"EG", "EGP"},
	"brazil":               {"BR", "BRL"},
	"mexico":               {"MX", "MXN"},
	"argentina":            {"AR", "ARS"},
	"chile":                {"CL", "CLP"},
	"colombia":             {"CO", "COP"},
}

// currencySymbols maps ISO currency codes to display symbols.
var currencySymbols = map[string]string{
	"INR": "₹", "USD": "$", "GBP": "£", "CAD": "CA$", "AUD": "A$",
	"EUR": "€", "CHF": "CHF", "SEK": "kr", "NOK": "kr", "DKK": "kr",
	"PLN": "zł", "CZK": "Kč", "HUF": "Ft", "RON": "lei", "RUB": "₽",
	"TRY": "₺", "ILS": "₪", "AED": "د.إ", "SAR": "﷼", "QAR": "﷼",
	"KWD": "د.ك", "PKR": "₨", "BDT": "৳", "LKR": "₨", "NPR": "₨",
	"CNY": "¥", "JPY": "¥", "KRW": "₩", "SGD": "S$", "MYR": "RM",
	"THB": "฿", "IDR": "Rp", "PHP": "₱", "VND": "₫", "HKD": "HK$",
	"NZD": "NZ$", "ZAR": "R", "NGN": "₦", "KES": "KSh", "EGP": "E£",
	"BRL": "R$", "MXN": "MX$", "ARS": "AR$", "CLP": "CLP$", "COP": "CO$",
}

// CurrencySymbolForCountry resolves a country name to its currency symbol,
// defaulting to the rupee sign when the country is unknown.
func CurrencySymbolForCountry(countryName string) string {
	info, ok := countries[strings.ToLower(strings.TrimSpace(countryName))]
	if !ok {
		return "₹"
	}
	if sym, ok := currencySymbols[info.Currency]; ok {
		return sym
	}
	return "₹"
}

func printerForLocale(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	return message.NewPrinter(tag)
}

// FormatAmount renders an amount with the digit grouping of the user's
// country locale, always with two fraction digits. Unknown countries fall
// back to en-US.
func FormatAmount(amount float64, countryName string) string {
	locale := "en-US"
	if info, ok := countries[strings.ToLower(strings.TrimSpace(countryName))]; ok {
		locale = "en-" + info.ISO
	}
	p := printerForLocale(locale)
	return p.Sprintf("%v", number.Decimal(amount,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatAmountWithSymbol formats an amount using the locale implied by a
// currency symbol (reverse lookup), falling back to en-IN. The symbol
// itself is not prepended; callers carry it as a separate column.
func FormatAmountWithSymbol(amount float64, symbol string) string {
	locale := "en-IN"
	if code := currencyCodeForSymbol(symbol); code != "" {
		for _, info := range countries {
			if info.Currency == code {
				locale = "en-" + info.ISO
				break
			}
		}
	}
	p := printerForLocale(locale)
	return p.Sprintf("%v", number.Decimal(amount,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

func currencyCodeForSymbol(symbol string) string {
	for code, sym := range currencySymbols {
		if sym == symbol {
			return code
		}
	}
	return ""
}
