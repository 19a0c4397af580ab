package barwatch

import (
	"regexp"
	"strconv"
	"strings"
)

// WisdomTree bar-list layout.
//
// Row format (space-delimited text from the extraction service):
//
//	BAR_NUMBER REFINER_NAME... GROSS_WEIGHT FINE_WEIGHT ASSAY [YEAR] VAULT_NAME...
//
// The weight cluster is the unique anchor: three consecutive numeric
// tokens where gross and fine carry exactly 3 decimals (fine is always
// 0.000 in this fund) and the assay is 0.NNNN.

var weightClusterRE = regexp.MustCompile(
	`(\d{1,3}(?:,\d{3})*\.\d{3})` + // gross weight
		`\s+` +
		`(\d{1,3}(?:,\d{3})*\.\d{3})` + // fine weight
		`\s+` +
		`(\d\.\d{4})`) // assay / fineness

// Lines that are headers / footers / metadata. Never data rows.
var wisdomTreeSkipRE = regexp.MustCompile(`(?i)` +
	`bar\s+number|refiner\s+long|gross\s+weight|fine\s+weight|bar\s+assay|` +
	`vault\s+name|client\s+silver|stock\s+holdings|allocated\s+a/c|` +
	`total\s+allocated|end\s+of\s+silver|c\.o\.b|page\s+\d|` +
	`hbeu|law\s+debenture`)

var (
	cobDateRE       = regexp.MustCompile(`C\.O\.B[:\s]+(\d{1,2}\s+\w+\s+\d{4})`)
	totalBarCountRE = regexp.MustCompile(`Total\s+Allocated\s+Bar\s+Count[:\s]+(\d[\d,]*)`)
	totalGrossRE    = regexp.MustCompile(`Total\s+Allocated\s+Gross\s+Weight[:\s]+([\d,]+\.\d+)`)

	// A leading integer in the suffix after the weight cluster: either a
	// manufacture year or a reference number, followed by the vault name.
	suffixNumRE = regexp.MustCompile(`^\s*(\d+)\s+(.+)$`)

	digitRE = regexp.MustCompile(`\d`)
)

// parseWisdomTreeHeader extracts the declared totals from the first page
// header block.
func parseWisdomTreeHeader(firstPage string) HeaderMetadata {
	var meta HeaderMetadata

	if m := cobDateRE.FindStringSubmatch(firstPage); m != nil {
		meta.AsOfDate = m[1]
	}
	if m := totalBarCountRE.FindStringSubmatch(firstPage); m != nil {
		if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
			meta.DeclaredBarCount = &n
		}
	}
	if m := totalGrossRE.FindStringSubmatch(firstPage); m != nil {
		if oz, ok := ParseOunces(m[1]); ok {
			meta.DeclaredGrossOz = &oz
		}
	}
	return meta
}

// splitSerialRefiner splits the text before the weight cluster into
// (serial number, refiner).
//
// Heuristic: starting from the right, consecutive tokens that do NOT
// contain digits form the refiner name. Everything to their left is the
// serial number. This handles multi-part serials like "1E 452-11" followed
// by "STATE REFINERIES".
func splitSerialRefiner(prefix string) (serial, refiner string) {
	tokens := strings.Fields(prefix)
	if len(tokens) == 0 {
		return "", ""
	}
	if len(tokens) == 1 {
		return tokens[0], ""
	}

	// Walk from the right to find where the refiner starts.
	refinerStart := len(tokens)
	for i := len(tokens) - 1; i >= 0; i-- {
		if !digitRE.MatchString(tokens[i]) {
			refinerStart = i
		} else {
			break
		}
	}

	if refinerStart == 0 {
		// Every token is digit-free. Treat the first token as serial.
		return tokens[0], strings.Join(tokens[1:], " ")
	}
	return strings.Join(tokens[:refinerStart], " "), strings.Join(tokens[refinerStart:], " ")
}

// parseWisdomTreeLine parses a single data line using the weight cluster anchor.
func parseWisdomTreeLine(line string, page int) (BarRecord, bool) {
	if wisdomTreeSkipRE.MatchString(line) {
		return BarRecord{}, false
	}

	loc := weightClusterRE.FindStringSubmatchIndex(line)
	if loc == nil {
		return BarRecord{}, false
	}
	groups := weightClusterRE.FindStringSubmatch(line)

	// Everything before the weight cluster is bar number + refiner.
	prefix := strings.TrimSpace(line[:loc[0]])
	if prefix == "" {
		return BarRecord{}, false
	}
	serial, refiner := splitSerialRefiner(prefix)
	if serial == "" {
		return BarRecord{}, false
	}

	gross, _ := ParseOunces(groups[1])
	fine, _ := ParseOunces(groups[2])
	fineness, _ := ParseRatio(groups[3])

	// Everything after the weight cluster is an optional year or reference
	// number, then the vault name.
	suffix := strings.TrimSpace(line[loc[1]:])
	var year int
	var vault string
	if suffix != "" {
		if m := suffixNumRE.FindStringSubmatch(suffix); m != nil {
			num, _ := strconv.Atoi(m[1])
			if num >= 1900 && num <= 2100 {
				year = num
			}
			// Strip the leading number either way: year or reference.
			vault = strings.TrimSpace(m[2])
		} else {
			vault = suffix
		}
	}

	return BarRecord{
		SerialNumber: serial,
		Refiner:      refiner,
		GrossOz:      gross,
		FineOz:       fine,
		Fineness:     fineness,
		Vault:        vault,
		Year:         year,
		SourcePage:   page,
		RawLine:      line,
	}, true
}
