package payroll

import "strings"

// Префиксы египетских номеров: внутренний "0..." и международный "+20..."
const (
	trunkPrefix = "0"
	countryCode = "+20"
)

// CanonicalPhone приводит номер телефона к международному формату.
// Ровно одна из трёх взаимоисключающих веток, в этом порядке:
// замена внутреннего префикса, без изменений, безусловное добавление кода.
func CanonicalPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	switch {
	case strings.HasPrefix(phone, trunkPrefix):
		return countryCode + phone[len(trunkPrefix):]
	case strings.HasPrefix(phone, countryCode):
		return phone
	default:
		return countryCode + phone
	}
}
