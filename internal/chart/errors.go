package chart

import (
	"fmt"
	"strings"
)

// RenderError is any failure while building the plot: bad data, an
// unsupported output format or a drawing backend error.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render chart: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// WriteError is a failure to encode or place the output file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// UnsupportedFormatError is returned for an output extension with no encoder.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return "output path has no extension; use one of " + strings.Join(SupportedExtensions(), ", ")
	}
	return fmt.Sprintf("unsupported output format %q; use one of %s", e.Ext, strings.Join(SupportedExtensions(), ", "))
}
