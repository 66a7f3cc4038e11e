package dataset

import (
	"math"
	"strconv"
	"strings"
)

// Options controls tokenizing and numeric coercion.
type Options struct {
	// Delimiter for CSV. If 0, ',' is used (tab for TSV uploads).
	Delimiter rune
	// DecimalSeparator for numbers. If 0, auto-detect per value.
	DecimalSeparator rune
	// ThousandsSeparator is optional; if 0, common separators are stripped.
	ThousandsSeparator rune
	// MaxBytes is the upload size limit; 0 means DefaultMaxBytes.
	MaxBytes int64
	// Sheet selects the XLSX sheet by name; empty means the first sheet.
	Sheet string
}

// DefaultOptions returns comma-delimited parsing with a 5 MiB limit.
func DefaultOptions() Options {
	return Options{MaxBytes: DefaultMaxBytes}
}

// parseNumeric coerces a trimmed cell to a finite float. Locale separators
// are honored, a trailing percent sign is ignored.
func parseNumeric(s string, opt Options) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.ReplaceAll(raw, "%", "")
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		switch {
		case cpos >= 0 && dpos >= 0 && cpos > dpos:
			dec, thou = ',', '.'
		case cpos >= 0 && dpos >= 0:
			dec, thou = '.', ','
		case cpos >= 0 && strings.Count(raw, ",") > 1:
			dec, thou = '.', ','
		case cpos >= 0 && len(raw)-cpos-1 == 3:
			// "1,000" reads as a thousand or as one; refuse to guess
			return 0, false
		case cpos >= 0:
			dec = ','
		default:
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
