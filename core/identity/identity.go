package identity

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

var (
	// ErrInvalidFormat is returned when a trade code has an unsupported length.
	ErrInvalidFormat = errors.New("invalid trade code format")
	// ErrInvalidChecksum is returned when the GS1 check digit does not match.
	ErrInvalidChecksum = errors.New("invalid trade code checksum")
	// ErrEmptySlug is returned when a natural key produces no usable slug.
	ErrEmptySlug = errors.New("natural key produces an empty slug")
)

// TradeCodeLength is the length of a normalized GTIN-14.
const TradeCodeLength = 14

var tradeCodePath = regexp.MustCompile(`/01/(\d{14})`)

// NormalizeTradeCode strips separators, pads the code to 14 digits and
// verifies its check digit.
func NormalizeTradeCode(code string) (string, error) {
	var b strings.Builder
	for _, r := range code {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch len(digits) {
	case 8, 12, 13, 14:
	default:
		return "", fmt.Errorf("%w: %q has %d digits, expected 8, 12, 13 or 14", ErrInvalidFormat, code, len(digits))
	}

	digits = strings.Repeat("0", TradeCodeLength-len(digits)) + digits
	if !ValidCheckDigit(digits) {
		return "", fmt.Errorf("%w: %s", ErrInvalidChecksum, digits)
	}
	return digits, nil
}

// ValidCheckDigit reports whether the last digit of a 14-digit code matches
// the GS1 mod-10 checksum of the preceding digits.
func ValidCheckDigit(code string) bool {
	if len(code) != TradeCodeLength {
		return false
	}
	sum := 0
	// Weights alternate 3,1 starting from the digit left of the check digit.
	for i := TradeCodeLength - 2; i >= 0; i-- {
		d := code[i]
		if d < '0' || d > '9' {
			return false
		}
		w := 1
		if (TradeCodeLength-2-i)%2 == 0 {
			w = 3
		}
		sum += int(d-'0') * w
	}
	last := code[TradeCodeLength-1]
	if last < '0' || last > '9' {
		return false
	}
	return (10-sum%10)%10 == int(last-'0')
}

// BuildProductID returns the Digital Link identifier for a product.
// Serial and lot are optional; empty values are omitted.
func BuildProductID(baseURI, code, serial, lot string) (string, error) {
	gtin, err := NormalizeTradeCode(code)
	if err != nil {
		return "", err
	}

	id := strings.TrimRight(baseURI, "/") + "/01/" + gtin
	if serial != "" {
		id += "/21/" + serial
	}
	if lot != "" {
		id += "/10/" + lot
	}
	return id, nil
}

// Slugify lowercases text and reduces it to [a-z0-9-] with single hyphens
// and no leading or trailing hyphen.
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	lastHyphen := true // suppresses leading hyphens
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsSpace(r) || r == '_' || r == '-':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// BuildEntityID returns {baseURI}/{class}/{slug} with the class lowercased.
func BuildEntityID(baseURI, class, naturalKey string) string {
	return strings.TrimRight(baseURI, "/") + "/" + strings.ToLower(class) + "/" + Slugify(naturalKey)
}

// ExtractTradeCode returns the GTIN-14 embedded in a Digital Link URI.
func ExtractTradeCode(uri string) (string, bool) {
	m := tradeCodePath.FindStringSubmatch(uri)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsProductURI reports whether uri carries a Digital Link trade code segment.
func IsProductURI(uri string) bool {
	_, ok := ExtractTradeCode(uri)
	return ok
}

// IsHTTPIRI reports whether s is an absolute http(s) IRI with a host.
func IsHTTPIRI(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
