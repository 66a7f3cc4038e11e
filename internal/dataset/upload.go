package dataset

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// DefaultMaxBytes is the upload size limit (5 MiB).
const DefaultMaxBytes int64 = 5 << 20

// Format identifies how an upload's bytes are tokenized.
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatTSV
	FormatXLSX
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatTSV:
		return "tsv"
	case FormatXLSX:
		return "xlsx"
	}
	return "unknown"
}

const xlsxMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Browsers and OSes disagree on the media type of a CSV file; all of these are
// seen in practice.
var mediaFormats = map[string]Format{
	"text/csv":                    FormatCSV,
	"application/csv":             FormatCSV,
	"text/x-csv":                  FormatCSV,
	"text/comma-separated-values": FormatCSV,
	"application/vnd.ms-excel":    FormatCSV,
	"text/plain":                  FormatCSV,
	"text/tab-separated-values":   FormatTSV,
	xlsxMediaType:                 FormatXLSX,
}

var extMediaTypes = map[string]string{
	".csv":  "text/csv",
	".txt":  "text/plain",
	".tsv":  "text/tab-separated-values",
	".xlsx": xlsxMediaType,
}

// Upload describes an input before any of its bytes are parsed.
type Upload struct {
	Name        string
	ContentType string // declared media type; inferred from Name when empty
	Size        int64
}

// MediaType returns the declared media type without parameters, falling back
// to the one implied by the file extension.
func (u Upload) MediaType() string {
	if ct := strings.TrimSpace(u.ContentType); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err == nil {
			return mt
		}
		return strings.ToLower(ct)
	}
	return extMediaTypes[strings.ToLower(filepath.Ext(u.Name))]
}

// ValidateUpload checks size and content type. limit <= 0 selects
// DefaultMaxBytes.
func ValidateUpload(u Upload, limit int64) (Format, error) {
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	if u.Size < 0 {
		return FormatUnknown, &ValidationError{Name: u.Name, Reason: "unknown size"}
	}
	if u.Size > limit {
		return FormatUnknown, &ValidationError{Name: u.Name, Reason: fmt.Sprintf("file is %d bytes, limit is %d", u.Size, limit)}
	}
	mt := u.MediaType()
	if mt == "" {
		return FormatUnknown, &ValidationError{Name: u.Name, Reason: "content type not declared"}
	}
	f, ok := mediaFormats[mt]
	if !ok {
		return FormatUnknown, &ValidationError{Name: u.Name, Reason: fmt.Sprintf("unsupported content type %q", mt)}
	}
	return f, nil
}
