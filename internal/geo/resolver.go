// Package geo resolves the visitor's country from edge-proxy headers.
package geo

import (
	"net/http"
	"regexp"
	"strings"
)

// Result is the outcome of a geo lookup.
type Result struct {
	CountryCode string `json:"country_code"`
	Source      string `json:"source"`
}

// countryCodePattern matches ISO alpha-2/alpha-3 codes after normalization.
var countryCodePattern = regexp.MustCompile(`^[A-Z]{2,3}$`)

// header sources in priority order. The first header carrying a valid code
// wins.
var headerSources = []struct {
	header string
	source string
}{
	{"X-Vercel-IP-Country", "vercel"},
	{"CF-IPCountry", "cloudflare"},
	{"Fly-Client-Country", "fly"},
	{"Fastly-Client-Country", "fastly"},
}

// Resolver inspects request headers set by edge platforms and falls back to a
// configured country when none are present. Resolution never fails.
type Resolver struct {
	fallback string
}

// NewResolver creates a resolver with the given fallback country code.
func NewResolver(fallback string) *Resolver {
	if sanitizeCountryCode(fallback) == "" {
		fallback = "PK"
	}
	return &Resolver{fallback: strings.ToUpper(strings.TrimSpace(fallback))}
}

// Resolve returns the visitor's country code and which header supplied it.
// When no header carries a valid code the configured fallback is returned
// with source "fallback".
func (r *Resolver) Resolve(h http.Header) Result {
	for _, s := range headerSources {
		if cc := sanitizeCountryCode(h.Get(s.header)); cc != "" {
			return Result{CountryCode: cc, Source: s.source}
		}
	}
	return Result{CountryCode: r.fallback, Source: "fallback"}
}

// sanitizeCountryCode trims and uppercases the raw header value and returns
// it only if it looks like a country code.
func sanitizeCountryCode(raw string) string {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if countryCodePattern.MatchString(v) {
		return v
	}
	return ""
}
