package barwatch

import (
	"regexp"
	"strconv"
	"strings"
)

// Invesco bar-list layout.
//
// Row format (line-aligned text from the extraction service):
//
//	BRAND  BAR_NO  1000 oz  ASSAY  GROSS_OZ  FINE_OZ  VAULT
//
// The "1000 oz" shape field is the unique anchor separating the
// brand/serial prefix from the numeric fields.
//
// Examples:
//
//	Henan Yuguang Gold and Lead Company 20090117K7 1000 oz 9990 962.200 962.200 JPM London B (VLTB)
//	Russian State Refineries 11752 1000 oz 9999 942.100 942.100 JPM London B (VLTB)
//	Norddeutsche Affinerie AG N 60131 A 1000 oz 9990 862.600 862.600 JPM London B (VLTB)
var invescoLineRE = regexp.MustCompile(
	`^(.+?)` + // brand + bar number (non-greedy prefix)
		`\s+1000\s+oz\s+` + // shape anchor
		`(\d{3,4})\s+` + // assay (integer, e.g. 9990)
		`(\d{1,3}(?:,\d{3})*\.\d{3})\s+` + // gross ounces
		`(\d{1,3}(?:,\d{3})*\.\d{3})\s+` + // fine ounces
		`(.+)$`) // vault

// The data regex is specific enough to reject most noise by itself; the
// skip list catches bank boilerplate that happens to contain the anchor.
var invescoSkipRE = regexp.MustCompile(`(?i)` +
	`^brand\s+bar|^running\s+total|^printed\s+on|^page\s+\d|` +
	`total\s+fto|total\s+bars|unit\s+of\s+weight|account\s+no|` +
	`commodity|value\s+date|bullion\s+weightlist|vault\s+copy|` +
	`jpmorgan\s+chase|incorporated|limited\s+liability|` +
	`bank\s+street|e14\s+5jp|london\s+branch|email|telex|tel\s*:|vat\s+reg`)

var (
	invescoTotalBarsRE = regexp.MustCompile(`Total\s+Bars\s*:?\s*([\d,]+)`)
	invescoTotalFtoRE  = regexp.MustCompile(`Total\s+FTO\s*:?\s*([\d,.]+)`)
	invescoValueDateRE = regexp.MustCompile(`value\s+date\s+(\d{4}-\d{2}-\d{2})`)
)

// parseInvescoHeader extracts the declared totals from the first page.
func parseInvescoHeader(firstPage string) HeaderMetadata {
	var meta HeaderMetadata

	if m := invescoTotalBarsRE.FindStringSubmatch(firstPage); m != nil {
		if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
			meta.DeclaredBarCount = &n
		}
	}
	if m := invescoTotalFtoRE.FindStringSubmatch(firstPage); m != nil {
		if oz, ok := ParseOunces(m[1]); ok {
			meta.DeclaredFineOz = &oz
		}
	}
	if m := invescoValueDateRE.FindStringSubmatch(firstPage); m != nil {
		meta.AsOfDate = m[1]
	}
	return meta
}

// splitBrandSerial splits the text before "1000 oz" into (brand, serial).
//
// The brand is the company name on the left: multi-word, digit-free. The
// serial starts at the rightmost digit-bearing region, including adjacent
// single-character tokens (e.g. "N 60131 A", "KPR 3841 .").
func splitBrandSerial(prefix string) (brand, serial string) {
	tokens := strings.Fields(prefix)
	if len(tokens) == 0 {
		return "", ""
	}
	if len(tokens) == 1 {
		return "", tokens[0]
	}

	serialStart := len(tokens)
	for i := len(tokens) - 1; i >= 0; i-- {
		switch {
		case digitRE.MatchString(tokens[i]):
			serialStart = i
		case len(tokens[i]) <= 1:
			// Single character adjacent to a digit token belongs to the serial.
			if serialStart == i+1 {
				serialStart = i
			} else {
				return strings.Join(tokens[:serialStart], " "), strings.Join(tokens[serialStart:], " ")
			}
		default:
			return strings.Join(tokens[:serialStart], " "), strings.Join(tokens[serialStart:], " ")
		}
	}

	if serialStart == 0 {
		// Could not separate. Treat the first token as brand.
		return tokens[0], strings.Join(tokens[1:], " ")
	}
	return strings.Join(tokens[:serialStart], " "), strings.Join(tokens[serialStart:], " ")
}

// parseInvescoLine parses a single data line using "1000 oz" as anchor.
func parseInvescoLine(line string, page int) (BarRecord, bool) {
	if invescoSkipRE.MatchString(line) {
		return BarRecord{}, false
	}

	m := invescoLineRE.FindStringSubmatch(line)
	if m == nil {
		return BarRecord{}, false
	}

	prefix := strings.TrimSpace(m[1])
	if prefix == "" {
		return BarRecord{}, false
	}
	brand, serial := splitBrandSerial(prefix)
	if serial == "" {
		return BarRecord{}, false
	}

	assay, _ := strconv.ParseInt(m[2], 10, 64)
	gross, _ := ParseOunces(m[3])
	fine, _ := ParseOunces(m[4])

	return BarRecord{
		SerialNumber: serial,
		Refiner:      brand,
		GrossOz:      gross,
		FineOz:       fine,
		Fineness:     RatioFromAssay(assay), // 9990 → 0.9990
		Vault:        strings.TrimSpace(m[5]),
		SourcePage:   page,
		RawLine:      line,
	}, true
}
