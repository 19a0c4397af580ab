package barwatch

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
)

// FundMetrics is the flat mapping of externally retrieved fund figures a
// verification needs. Every field is optional: a nil field means the
// retrieval collaborator did not supply it, which is different from a
// supplied zero.
type FundMetrics struct {
	AsOf                    string   `json:"as_of,omitempty"`
	CertificatesOutstanding *float64 `json:"certificates_outstanding,omitempty"`
	EntitlementOzPerCert    *float64 `json:"entitlement_oz_per_certificate,omitempty"`
	TotalAssetsUSD          *float64 `json:"total_assets_usd,omitempty"`
	SilverPriceUSD          *float64 `json:"silver_price_usd,omitempty"`

	// WisdomTreeReportedOz is the issuer's own published ounce figure,
	// used for an independent secondary cross-check only.
	WisdomTreeReportedOz *float64 `json:"wisdomtree_reported_oz,omitempty"`
}

// IsEmpty reports whether no metric was supplied at all.
func (m FundMetrics) IsEmpty() bool {
	return m.CertificatesOutstanding == nil && m.EntitlementOzPerCert == nil &&
		m.TotalAssetsUSD == nil && m.SilverPriceUSD == nil &&
		m.WisdomTreeReportedOz == nil
}

// ParseFundMetrics decodes a flat metrics JSON object.
func ParseFundMetrics(raw []byte) (FundMetrics, error) {
	var m FundMetrics
	if err := json.Unmarshal(raw, &m); err != nil {
		return FundMetrics{}, fmt.Errorf("invalid fund metrics: %w", err)
	}
	return m, nil
}

// LoadFundMetrics reads a per-fund flat metrics file. A missing file is
// not an error: verification then reports insufficient_fund_metrics.
func LoadFundMetrics(path string) (FundMetrics, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return FundMetrics{}, nil
	}
	if err != nil {
		return FundMetrics{}, fmt.Errorf("reading fund metrics %q: %w", path, err)
	}
	return ParseFundMetrics(raw)
}

// MetricPaths maps flat metric keys to jsonpath expressions inside a raw
// provider payload, e.g. {"silver_price_usd": "$.quote.silver.usd"}.
type MetricPaths map[string]string

// ExtractMetrics pulls recognized fund-metric values out of an arbitrary
// provider JSON payload. Paths that match nothing are skipped; a path that
// matches a non-number is an error.
func ExtractMetrics(payload []byte, paths MetricPaths) (FundMetrics, error) {
	var jobj any
	if err := json.Unmarshal(payload, &jobj); err != nil {
		return FundMetrics{}, fmt.Errorf("invalid provider payload: %w", err)
	}

	var m FundMetrics
	for key, path := range paths {
		val, ok, err := jsonNumberAt(jobj, path)
		if err != nil {
			return FundMetrics{}, fmt.Errorf("extracting %q: %w", key, err)
		}
		if !ok {
			continue
		}
		switch key {
		case "certificates_outstanding":
			m.CertificatesOutstanding = &val
		case "entitlement_oz_per_certificate":
			m.EntitlementOzPerCert = &val
		case "total_assets_usd":
			m.TotalAssetsUSD = &val
		case "silver_price_usd":
			m.SilverPriceUSD = &val
		case "wisdomtree_reported_oz":
			m.WisdomTreeReportedOz = &val
		default:
			return FundMetrics{}, fmt.Errorf("unrecognized metric key %q", key)
		}
	}
	return m, nil
}

// jsonNumberAt evaluates a jsonpath expression and coerces the answer to a
// float64.
func jsonNumberAt(jobj any, path string) (float64, bool, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		// jsonpath reports missing members as errors; treat as absent.
		return 0, false, nil
	}
	// jsonpath is never clear about whether it returns a list of one
	// answer or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return 0, false, nil
		}
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, false, fmt.Errorf("path %q: not a number: %v", path, jval)
	}
	return val, true, nil
}
