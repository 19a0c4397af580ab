package barwatch

// Method tags how an expected-holdings figure was derived.
type Method string

const (
	// MethodCertificates is certificates_outstanding × entitlement per
	// certificate, the preferred derivation.
	MethodCertificates Method = "certificates_x_entitlement"
	// MethodAssets is total assets ÷ spot silver price, the fallback.
	MethodAssets Method = "assets_div_silver_price"
)

// ExpectedOunces derives the troy-ounce quantity the fund is contractually
// obligated to hold. Priority order, first available wins:
//
//  1. certificates outstanding × entitlement oz per certificate
//  2. total assets (USD) ÷ silver spot price (USD), price must be positive
//
// When neither precondition holds it reports ok=false, and verification
// must classify the fund as insufficient_fund_metrics rather than compare
// against zero or a guessed value.
func ExpectedOunces(m FundMetrics) (oz Ounces, method Method, ok bool) {
	if m.CertificatesOutstanding != nil && m.EntitlementOzPerCert != nil {
		certs := newDecimal(*m.CertificatesOutstanding)
		entitlement := newDecimal(*m.EntitlementOzPerCert)
		return Oz(certs.Mul(entitlement)), MethodCertificates, true
	}

	if m.TotalAssetsUSD != nil && m.SilverPriceUSD != nil && *m.SilverPriceUSD > 0 {
		assets := USD(*m.TotalAssetsUSD)
		price := USD(*m.SilverPriceUSD)
		return assets.DivPrice(price), MethodAssets, true
	}

	return Ounces{}, "", false
}
