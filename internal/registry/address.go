package registry

import "strings"

// FormatAddress joins the non-empty address lines, locality, region, postal code and
// country with ", " in that fixed order. A nil address formats as "".
func FormatAddress(a *Address) string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, 6)
	for _, v := range []string{
		a.AddressLine1,
		a.AddressLine2,
		a.Locality,
		a.Region,
		a.PostalCode,
		a.Country,
	} {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		parts = append(parts, v)
	}
	return strings.Join(parts, ", ")
}
