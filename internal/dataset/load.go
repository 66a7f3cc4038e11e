package dataset

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Load validates and parses the file at path. For regular files size and
// content type are checked before any byte is read; pipes and devices report
// no usable size and go through LoadReader instead.
func Load(path, contentType string, sch Schema, opt Options) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	name := filepath.Base(path)
	if info.IsDir() {
		return nil, &ValidationError{Name: name, Reason: "is a directory"}
	}
	if !info.Mode().IsRegular() {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		return LoadReader(Upload{Name: name, ContentType: contentType}, f, sch, opt)
	}
	format, err := ValidateUpload(Upload{Name: name, ContentType: contentType, Size: info.Size()}, opt.MaxBytes)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return Decode(name, io.LimitReader(f, limitOf(opt)), format, sch, opt)
}

// LoadReader reads an upload of unknown size (e.g. stdin), enforcing the size
// limit while reading.
func LoadReader(u Upload, r io.Reader, sch Schema, opt Options) (*Dataset, error) {
	limit := limitOf(opt)
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	u.Size = int64(len(b))
	format, err := ValidateUpload(u, limit)
	if err != nil {
		return nil, err
	}
	return Decode(u.Name, bytes.NewReader(b), format, sch, opt)
}

// Decode parses already-validated bytes in the given format.
func Decode(name string, r io.Reader, format Format, sch Schema, opt Options) (*Dataset, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(name, r, sch, opt)
	case FormatTSV:
		if opt.Delimiter == 0 {
			opt.Delimiter = '\t'
		}
		return ParseCSV(name, r, sch, opt)
	case FormatXLSX:
		return ParseXLSX(name, r, sch, opt)
	}
	return nil, &ValidationError{Name: name, Reason: fmt.Sprintf("unsupported format %s", format)}
}

func limitOf(opt Options) int64 {
	if opt.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return opt.MaxBytes
}
