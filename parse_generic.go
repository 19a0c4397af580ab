package barwatch

import (
	"regexp"
	"sort"
	"strings"
)

// Generic / fallback parser, used when no named format matches.
//
// It relaxes the anchor requirement: a data row only needs a token that
// resembles a serial number (alphanumeric, contains a digit, length >= 4).
// Weights are located via the same weight-cluster pattern when present, or
// failing that by picking plausible values out of the line's numbers.

// The plausibility windows below are tied to the two known providers'
// bars (roughly 1000 oz London good delivery). Do not widen them without
// evidence from a new provider.
var (
	genericMinBarOz = Oz(100)
	genericMaxBarOz = Oz(1200)
	genericMinFine  = R(0.85)
	genericMaxFine  = R(1.0)
)

var (
	genericSerialRE   = regexp.MustCompile(`[A-Z0-9][A-Z0-9\-/.]{3,}`)
	genericNumberRE   = regexp.MustCompile(`\b\d{2,6}(?:[.,]\d{1,4})?\b`)
	genericFinenessRE = regexp.MustCompile(`\b0\.\d{3,5}\b`)
	multiSpaceRE      = regexp.MustCompile(`\s+`)
)

// genericIgnoreTokens short-circuit obvious header/footer lines.
var genericIgnoreTokens = []string{
	"serial", "refiner", "gross", "fine", "fineness", "bar list",
	"page ", "invesco", "wisdomtree", "isin",
}

func parseGenericLine(line string, page int) (BarRecord, bool) {
	text := multiSpaceRE.ReplaceAllString(strings.TrimSpace(line), " ")
	if text == "" {
		return BarRecord{}, false
	}

	lower := strings.ToLower(text)
	for _, tok := range genericIgnoreTokens {
		if strings.Contains(lower, tok) {
			return BarRecord{}, false
		}
	}

	// A plausible serial: first alphanumeric token that carries a digit.
	var serial string
	for _, candidate := range genericSerialRE.FindAllString(strings.ToUpper(text), -1) {
		if digitRE.MatchString(candidate) {
			serial = candidate
			break
		}
	}
	if serial == "" {
		return BarRecord{}, false
	}

	var gross, fine Ounces
	var fineness Ratio

	if m := weightClusterRE.FindStringSubmatch(line); m != nil {
		gross, _ = ParseOunces(m[1])
		fine, _ = ParseOunces(m[2])
		fineness, _ = ParseRatio(m[3])
	} else {
		// Best effort: numbers within the single-bar weight window.
		var plausible []Ounces
		for _, tok := range genericNumberRE.FindAllString(line, -1) {
			oz, ok := ParseOunces(tok)
			if !ok {
				continue
			}
			if !oz.LessThan(genericMinBarOz) && !genericMaxBarOz.LessThan(oz) {
				plausible = append(plausible, oz)
			}
		}
		if len(plausible) > 0 {
			gross = maxOunces(plausible)
		}
		if len(plausible) >= 2 {
			fine = secondLargestOunces(plausible)
		}
		for _, tok := range genericFinenessRE.FindAllString(line, -1) {
			if r, ok := ParseRatio(tok); ok && r.Between(genericMinFine, genericMaxFine) {
				fineness = r
				break
			}
		}
	}

	return BarRecord{
		SerialNumber: serial,
		GrossOz:      gross,
		FineOz:       fine,
		Fineness:     fineness,
		SourcePage:   page,
		RawLine:      line,
	}, true
}

func maxOunces(values []Ounces) Ounces {
	max := values[0]
	for _, v := range values[1:] {
		if max.LessThan(v) {
			max = v
		}
	}
	return max
}

func secondLargestOunces(values []Ounces) Ounces {
	sorted := make([]Ounces, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	return sorted[len(sorted)-2]
}
