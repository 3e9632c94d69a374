package chart

import (
	"path/filepath"
	"sort"
	"strings"
)

type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatSVG  Format = "svg"
)

var formatsByExt = map[string]Format{
	".png":  FormatPNG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".gif":  FormatGIF,
	".bmp":  FormatBMP,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".svg":  FormatSVG,
}

// FormatFromPath picks the encoder from the file extension, case-insensitively.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatsByExt[ext]; ok {
		return f, nil
	}
	return "", &UnsupportedFormatError{Ext: ext}
}

// Vector reports whether the format is drawn by the vector backend.
func (f Format) Vector() bool {
	return f == FormatSVG
}

func SupportedExtensions() []string {
	out := make([]string, 0, len(formatsByExt))
	for ext := range formatsByExt {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
