package i18n

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// UpsellNudge renders the volume discount nudge shown next to a cart line
// or a quote. Quantities are kilograms, prices are whole tenge per kilogram.
func UpsellNudge(locale string, remaining, nextUnitPrice decimal.Decimal) string {
	kg := trimQuantity(remaining)
	price := nextUnitPrice.Round(0).String()
	if Normalize(locale) == LocaleEN {
		return fmt.Sprintf("Add %s kg more to get %s ₸/kg", kg, price)
	}
	return fmt.Sprintf("Добавьте ещё %s кг и цена станет %s ₸/кг", kg, price)
}

// PriceAdjustedNotice tells the buyer a cart price was refreshed during
// checkout revalidation.
func PriceAdjustedNotice(locale string) string {
	if Normalize(locale) == LocaleEN {
		return "Prices were updated to the current price list"
	}
	return "Цены обновлены по актуальному прайс-листу"
}

// trimQuantity drops trailing zeros so "3.0000" renders as "3"
func trimQuantity(q decimal.Decimal) string {
	return q.Truncate(3).String()
}
