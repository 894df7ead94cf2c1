package registry

import "export-orchestrator/core/models"

// SupportedFormats is the catalog of built-in format descriptors keyed
// by format type
var SupportedFormats = map[models.FormatType]models.ExportFormat{
	models.FormatPDF: {
		Type: models.FormatPDF, Name: "Adobe PDF", Extension: "pdf", MimeType: "application/pdf",
		SupportsLayers: true, SupportsVectors: true, SupportsText: true, SupportsImages: true, SupportsMetadata: true,
		MaxResolution: 2400, ColorDepths: []int{1, 8, 24, 32},
		CompressionOptions: []models.CompressionOption{
			{Name: "Auto", Description: "Automatic compression", Level: 0, Lossless: true, Algorithm: "auto"},
			{Name: "ZIP", Description: "ZIP compression", Level: 1, Lossless: true, Algorithm: "zip"},
			{Name: "JPEG", Description: "JPEG compression", Level: 2, Lossless: false, Algorithm: "jpeg"},
			{Name: "JBIG2", Description: "JBIG2 compression for text", Level: 3, Lossless: true, Algorithm: "jbig2"},
			{Name: "CCITT", Description: "CCITT Group 4 for monochrome", Level: 4, Lossless: true, Algorithm: "ccitt"},
		},
	},
	models.FormatEPS: {
		Type: models.FormatEPS, Name: "Encapsulated PostScript", Extension: "eps", MimeType: "application/postscript",
		SupportsVectors: true, SupportsText: true, SupportsImages: true,
		MaxResolution: 2400, ColorDepths: []int{1, 8, 24},
		CompressionOptions: []models.CompressionOption{
			{Name: "None", Description: "No compression", Level: 0, Lossless: true, Algorithm: "none"},
			{Name: "LZW", Description: "LZW compression", Level: 1, Lossless: true, Algorithm: "lzw"},
		},
	},
	models.FormatAI: {
		Type: models.FormatAI, Name: "Adobe Illustrator", Extension: "ai", MimeType: "application/illustrator",
		SupportsLayers: true, SupportsVectors: true, SupportsText: true, SupportsImages: true, SupportsMetadata: true,
		MaxResolution: 2400, ColorDepths: []int{1, 8, 16, 24, 32, 48},
		CompressionOptions: []models.CompressionOption{
			{Name: "Auto", Description: "Automatic compression", Level: 0, Lossless: true, Algorithm: "auto"},
			{Name: "ZIP", Description: "ZIP compression", Level: 1, Lossless: true, Algorithm: "zip"},
		},
	},
	models.FormatSVG: {
		Type: models.FormatSVG, Name: "Scalable Vector Graphics", Extension: "svg", MimeType: "image/svg+xml",
		SupportsLayers: true, SupportsVectors: true, SupportsText: true, SupportsImages: true, SupportsMetadata: true,
		ColorDepths: []int{1, 8, 24},
		CompressionOptions: []models.CompressionOption{
			{Name: "None", Description: "No compression", Level: 0, Lossless: true, Algorithm: "none"},
			{Name: "GZIP", Description: "GZIP compression", Level: 1, Lossless: true, Algorithm: "gzip"},
		},
	},
	models.FormatPNG: {
		Type: models.FormatPNG, Name: "Portable Network Graphics", Extension: "png", MimeType: "image/png",
		SupportsImages: true, ColorDepths: []int{1, 8, 16, 24, 32},
		CompressionOptions: []models.CompressionOption{
			{Name: "None", Description: "No compression", Level: 0, Lossless: true, Algorithm: "none"},
			{Name: "Deflate", Description: "Deflate compression", Level: 1, Lossless: true, Algorithm: "deflate"},
		},
	},
	models.FormatJPG: {
		Type: models.FormatJPG, Name: "JPEG", Extension: "jpg", MimeType: "image/jpeg",
		SupportsImages: true, ColorDepths: []int{8, 24},
		CompressionOptions: []models.CompressionOption{
			{Name: "Baseline", Description: "Baseline JPEG", Level: 1, Lossless: false, Algorithm: "jpeg"},
			{Name: "Progressive", Description: "Progressive JPEG", Level: 2, Lossless: false, Algorithm: "progressive_jpeg"},
		},
	},
	models.FormatWebP: {
		Type: models.FormatWebP, Name: "WebP", Extension: "webp", MimeType: "image/webp",
		SupportsImages: true, ColorDepths: []int{8, 16, 24},
		CompressionOptions: []models.CompressionOption{
			{Name: "Lossless", Description: "Lossless compression", Level: 0, Lossless: true, Algorithm: "webp_lossless"},
			{Name: "Lossy", Description: "Lossy compression", Level: 1, Lossless: false, Algorithm: "webp_lossy"},
		},
	},
}
