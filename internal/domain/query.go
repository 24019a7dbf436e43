package domain

import "strings"

// ParseLocationQuery trims raw and rejects an empty result.
func ParseLocationQuery(raw string) (string, error) {
	city := strings.TrimSpace(raw)
	if city == "" {
		return "", Errorf(KindValidation, "city name is empty")
	}
	return city, nil
}
