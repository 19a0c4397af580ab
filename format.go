package barwatch

import (
	"fmt"
	"strings"
)

// Format identifies the provider-specific layout of a bar-list document.
// It is a closed set: unknown layouts fall back to FormatGeneric, detection
// never fails.
type Format int

const (
	FormatGeneric Format = iota
	FormatWisdomTree
	FormatInvesco
)

func (f Format) String() string {
	switch f {
	case FormatWisdomTree:
		return "wisdomtree"
	case FormatInvesco:
		return "invesco"
	default:
		return "generic"
	}
}

// ParseFormat parses a string into a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "wisdomtree":
		return FormatWisdomTree, nil
	case "invesco":
		return FormatInvesco, nil
	case "generic":
		return FormatGeneric, nil
	default:
		return 0, fmt.Errorf("unknown bar-list format: %q", s)
	}
}

func (f Format) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

func (f *Format) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// DetectFormat classifies a document by its first-page text, matching
// provider-distinguishing phrases case-insensitively. First match wins.
func DetectFormat(firstPage string) Format {
	lower := strings.ToLower(firstPage)
	if strings.Contains(lower, "client silver stock holdings") ||
		strings.Contains(lower, "wisdomtree") ||
		strings.Contains(lower, "law debenture") {
		return FormatWisdomTree
	}
	if strings.Contains(lower, "invesco") || strings.Contains(lower, "jpmorgan") {
		return FormatInvesco
	}
	return FormatGeneric
}

// parseLine converts one line of page text into zero or one BarRecord,
// using the anchor-token strategy of the detected format. Header, footer
// and page-number lines report ok=false.
func (f Format) parseLine(line string, page int) (BarRecord, bool) {
	switch f {
	case FormatWisdomTree:
		return parseWisdomTreeLine(line, page)
	case FormatInvesco:
		return parseInvescoLine(line, page)
	default:
		return parseGenericLine(line, page)
	}
}

// dedupKey returns the key under which a parsed row is deduplicated.
// Named formats key on the raw line text (repeats only occur across page
// breaks); the generic parser is loose enough that near-duplicate text is
// a real risk, so it keys on bar identity instead.
func (f Format) dedupKey(line string, record BarRecord) string {
	if f == FormatGeneric {
		return record.Key()
	}
	return line
}

// ParseHeader extracts the provider-declared totals and as-of date from
// first-page text. Absent fields stay nil: zero is a meaningfully
// different value from "not declared".
func (f Format) ParseHeader(firstPage string) HeaderMetadata {
	switch f {
	case FormatWisdomTree:
		return parseWisdomTreeHeader(firstPage)
	case FormatInvesco:
		return parseInvescoHeader(firstPage)
	default:
		return HeaderMetadata{}
	}
}
