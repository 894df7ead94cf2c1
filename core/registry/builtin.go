package registry

import (
	"time"

	"export-orchestrator/core/models"
)

// BuiltinProfiles returns the factory profiles seeded at startup
func BuiltinProfiles() []*models.ExportProfile {
	return []*models.ExportProfile{
		printReadyPDF(),
		webPNG(),
		socialJPG(),
		mobileWebP(),
		vectorSVG(),
		printEPS(),
	}
}

func printReadyPDF() *models.ExportProfile {
	return &models.ExportProfile{
		ID:          "print_ready_pdf",
		Name:        "Print Ready PDF",
		Description: "High-quality PDF suitable for professional printing",
		Category:    models.CategoryPrint,
		Format:      SupportedFormats[models.FormatPDF],
		QualitySettings: models.QualitySettings{
			CompressionLevel:   "high",
			QualityPercentage:  95,
			AntiAliasing:       true,
			Dithering:          "floyd_steinberg",
			ColorSampling:      "4:4:4",
			ProgressiveJPEG:    true,
			Interlace:          "none",
			IncludeSRGBProfile: true,
		},
		ColorSettings: models.ColorSettings{
			ColorSpace:             "CMYK",
			ICCProfile:             "USWebCoatedSWOP.icc",
			PreserveEmbeddedColors: true,
			ConvertToDestProfile:   true,
			BlackPointCompensation: true,
			RenderIntent:           "relative_colorimetric",
			SpotColors:             []models.SpotColor{},
			OverprintSimulation:    true,
		},
		ResolutionSettings: models.ResolutionSettings{
			DPI:                 300,
			MaintainAspectRatio: true,
			AllowUpscaling:      true,
			Bleed:               &models.BleedSettings{Enabled: true, Top: 3, Right: 3, Bottom: 3, Left: 3, Units: "mm"},
		},
		Optimization: models.OptimizationSettings{
			RemoveUnusedLayers:      true,
			OptimizeVectors:         true,
			CombineSimilarElements:  true,
			RemoveDuplicateElements: true,
			CompressShapes:          true,
			OptimizeImages:          true,
		},
		Metadata:      defaultMetadata(),
		CreatedBy:     "system",
		CreatedAt:     time.Now(),
		UsageContext:  []string{"professional_printing", "commercial_print", "brochures", "posters"},
		Compatibility: defaultCompatibility(),
	}
}

func webPNG() *models.ExportProfile {
	return &models.ExportProfile{
		ID:          "web_png",
		Name:        "Web PNG",
		Description: "Optimized PNG for web use",
		Category:    models.CategoryWeb,
		Format:      SupportedFormats[models.FormatPNG],
		QualitySettings: models.QualitySettings{
			CompressionLevel:   "high",
			QualityPercentage:  90,
			AntiAliasing:       true,
			Dithering:          "none",
			ColorSampling:      "4:4:4",
			Interlace:          "none",
			OptimizeForWeb:     true,
			IncludeSRGBProfile: true,
			StripMetadata:      true,
		},
		ColorSettings: models.ColorSettings{
			ColorSpace:           "sRGB",
			ICCProfile:           "sRGB.icc",
			ConvertToDestProfile: true,
			RenderIntent:         "perceptual",
			SpotColors:           []models.SpotColor{},
		},
		ResolutionSettings: models.ResolutionSettings{
			DPI:                 96,
			MaintainAspectRatio: true,
			MaxWidth:            4096,
			MaxHeight:           4096,
			PaddingColor:        "transparent",
		},
		Optimization: models.OptimizationSettings{
			FileSizeLimit:           1024 * 1024,
			RemoveUnusedLayers:      true,
			FlattenLayers:           true,
			CombineSimilarElements:  true,
			RemoveDuplicateElements: true,
			CompressShapes:          true,
			OptimizeImages:          true,
			LazyLoading:             true,
		},
		Metadata:      defaultMetadata(),
		CreatedBy:     "system",
		CreatedAt:     time.Now(),
		UsageContext:  []string{"web_graphics", "icons", "logos", "ui_elements"},
		Compatibility: defaultCompatibility(),
	}
}

func socialJPG() *models.ExportProfile {
	return &models.ExportProfile{
		ID:          "social_jpg",
		Name:        "Social Media JPG",
		Description: "Optimized JPG for social media platforms",
		Category:    models.CategorySocial,
		Format:      SupportedFormats[models.FormatJPG],
		QualitySettings: models.QualitySettings{
			CompressionLevel:   "medium",
			QualityPercentage:  85,
			AntiAliasing:       true,
			Dithering:          "floyd_steinberg",
			ColorSampling:      "4:2:0",
			ProgressiveJPEG:    true,
			Interlace:          "none",
			OptimizeForWeb:     true,
			IncludeSRGBProfile: true,
			StripMetadata:      true,
		},
		ColorSettings: models.ColorSettings{
			ColorSpace:           "sRGB",
			ICCProfile:           "sRGB.icc",
			ConvertToDestProfile: true,
			RenderIntent:         "perceptual",
			SpotColors:           []models.SpotColor{},
		},
		ResolutionSettings: models.ResolutionSettings{
			DPI:                 72,
			Width:               1080,
			Height:              1080,
			MaintainAspectRatio: true,
			CropToFit:           true,
			PaddingColor:        "white",
		},
		Optimization: models.OptimizationSettings{
			FileSizeLimit:           500 * 1024,
			RemoveUnusedLayers:      true,
			FlattenLayers:           true,
			CombineSimilarElements:  true,
			RemoveDuplicateElements: true,
			OptimizeImages:          true,
		},
		Metadata:      defaultMetadata(),
		CreatedBy:     "system",
		CreatedAt:     time.Now(),
		UsageContext:  []string{"social_media", "instagram", "facebook", "twitter"},
		Compatibility: defaultCompatibility(),
	}
}

func mobileWebP() *models.ExportProfile {
	return &models.ExportProfile{
		ID:          "mobile_webp",
		Name:        "Mobile WebP",
		Description: "Modern WebP format for mobile web",
		Category:    models.CategoryMobile,
		Format:      SupportedFormats[models.FormatWebP],
		QualitySettings: models.QualitySettings{
			CompressionLevel:   "high",
			QualityPercentage:  80,
			AntiAliasing:       true,
			Dithering:          "floyd_steinberg",
			ColorSampling:      "4:2:0",
			Interlace:          "none",
			OptimizeForWeb:     true,
			IncludeSRGBProfile: true,
			StripMetadata:      true,
		},
		ColorSettings: models.ColorSettings{
			ColorSpace:           "sRGB",
			ICCProfile:           "sRGB.icc",
			ConvertToDestProfile: true,
			RenderIntent:         "perceptual",
			SpotColors:           []models.SpotColor{},
		},
		ResolutionSettings: models.ResolutionSettings{
			DPI:                 96,
			Width:               800,
			Height:              600,
			MaintainAspectRatio: true,
			MaxWidth:            2048,
			MaxHeight:           2048,
			CropToFit:           true,
			PaddingColor:        "transparent",
		},
		Optimization: models.OptimizationSettings{
			FileSizeLimit:           256 * 1024,
			RemoveUnusedLayers:      true,
			FlattenLayers:           true,
			CombineSimilarElements:  true,
			RemoveDuplicateElements: true,
			OptimizeImages:          true,
			LazyLoading:             true,
		},
		Metadata:      defaultMetadata(),
		CreatedBy:     "system",
		CreatedAt:     time.Now(),
		UsageContext:  []string{"mobile_web", "app_graphics", "responsive_design"},
		Compatibility: defaultCompatibility(),
	}
}

func vectorSVG() *models.ExportProfile {
	return &models.ExportProfile{
		ID:          "vector_svg",
		Name:        "Vector SVG",
		Description: "Scalable Vector Graphics for web and print",
		Category:    models.CategoryWeb,
		Format:      SupportedFormats[models.FormatSVG],
		QualitySettings: models.QualitySettings{
			CompressionLevel:   "high",
			QualityPercentage:  100,
			AntiAliasing:       true,
			Dithering:          "none",
			ColorSampling:      "4:4:4",
			Interlace:          "none",
			OptimizeForWeb:     true,
			IncludeSRGBProfile: true,
		},
		ColorSettings: models.ColorSettings{
			ColorSpace:             "sRGB",
			ICCProfile:             "sRGB.icc",
			PreserveEmbeddedColors: true,
			ConvertToDestProfile:   true,
			RenderIntent:           "perceptual",
			SpotColors:             []models.SpotColor{},
		},
		ResolutionSettings: models.ResolutionSettings{
			DPI:                 96,
			MaintainAspectRatio: true,
			AllowUpscaling:      true,
		},
		Optimization: models.OptimizationSettings{
			OptimizeVectors:         true,
			CombineSimilarElements:  true,
			RemoveDuplicateElements: true,
			CompressShapes:          true,
			OptimizeImages:          true,
		},
		Metadata:      defaultMetadata(),
		CreatedBy:     "system",
		CreatedAt:     time.Now(),
		UsageContext:  []string{"web_graphics", "icons", "logos", "print_ready_vectors"},
		Compatibility: defaultCompatibility(),
	}
}

func printEPS() *models.ExportProfile {
	return &models.ExportProfile{
		ID:          "print_eps",
		Name:        "Print EPS",
		Description: "Encapsulated PostScript for professional printing",
		Category:    models.CategoryPrint,
		Format:      SupportedFormats[models.FormatEPS],
		QualitySettings: models.QualitySettings{
			CompressionLevel:  "high",
			QualityPercentage: 100,
			AntiAliasing:      true,
			Dithering:         "none",
			ColorSampling:     "4:4:4",
			Interlace:         "none",
			StripMetadata:     true,
		},
		ColorSettings: models.ColorSettings{
			ColorSpace:             "CMYK",
			ICCProfile:             "USWebCoatedSWOP.icc",
			PreserveEmbeddedColors: true,
			ConvertToDestProfile:   true,
			BlackPointCompensation: true,
			RenderIntent:           "relative_colorimetric",
			SpotColors:             []models.SpotColor{},
			OverprintSimulation:    true,
			ProofColors:            true,
		},
		ResolutionSettings: models.ResolutionSettings{
			DPI:                 300,
			MaintainAspectRatio: true,
			AllowUpscaling:      true,
			Bleed:               &models.BleedSettings{Enabled: true, Top: 3, Right: 3, Bottom: 3, Left: 3, Units: "mm"},
		},
		Optimization: models.OptimizationSettings{
			RemoveUnusedLayers:      true,
			FlattenLayers:           true,
			OptimizeVectors:         true,
			CombineSimilarElements:  true,
			RemoveDuplicateElements: true,
			CompressShapes:          true,
			OptimizeImages:          true,
		},
		Metadata:      defaultMetadata(),
		CreatedBy:     "system",
		CreatedAt:     time.Now(),
		UsageContext:  []string{"professional_printing", "commercial_print", "press_ready", "vector_graphics"},
		Compatibility: defaultCompatibility(),
	}
}

func defaultMetadata() models.ExportMetadata {
	return models.ExportMetadata{
		Author:       "Export Orchestrator",
		Application:  "Export Orchestrator",
		Version:      "1.0.0",
		Keywords:     []string{},
		CustomFields: map[string]string{},
		IncludeXMP:   true,
	}
}

func defaultCompatibility() models.CompatibilityMatrix {
	return models.CompatibilityMatrix{
		Tools: map[string]bool{
			"illustrator": true, "photoshop": true, "indesign": true, "acrobat": true,
			"figma": true, "sketch": true, "affinity_designer": true, "canva": true,
			"coreldraw": true, "inkscape": true, "gimp": true,
		},
		WebBrowsers: map[string]bool{
			"chrome": true, "firefox": true, "safari": true, "edge": true,
		},
	}
}

// DefaultQualitySettings returns the fallback quality settings applied
// to custom profiles that do not specify their own
func DefaultQualitySettings() models.QualitySettings {
	return models.QualitySettings{
		CompressionLevel:   "high",
		QualityPercentage:  90,
		AntiAliasing:       true,
		Dithering:          "floyd_steinberg",
		ColorSampling:      "4:4:4",
		Interlace:          "none",
		OptimizeForWeb:     true,
		IncludeSRGBProfile: true,
		StripMetadata:      true,
	}
}

// DefaultColorSettings returns the fallback color settings for custom profiles
func DefaultColorSettings() models.ColorSettings {
	return models.ColorSettings{
		ColorSpace:           "sRGB",
		ICCProfile:           "sRGB.icc",
		ConvertToDestProfile: true,
		RenderIntent:         "perceptual",
		SpotColors:           []models.SpotColor{},
	}
}

// DefaultResolutionSettings returns the fallback resolution settings for
// custom profiles
func DefaultResolutionSettings() models.ResolutionSettings {
	return models.ResolutionSettings{
		DPI:                 96,
		MaintainAspectRatio: true,
		AllowUpscaling:      true,
	}
}

// DefaultOptimizationSettings returns the fallback optimization settings
// for custom profiles
func DefaultOptimizationSettings() models.OptimizationSettings {
	return models.OptimizationSettings{
		RemoveUnusedLayers:      true,
		OptimizeVectors:         true,
		CombineSimilarElements:  true,
		RemoveDuplicateElements: true,
		CompressShapes:          true,
		OptimizeImages:          true,
	}
}

// DefaultMetadata returns the fallback metadata for custom profiles
func DefaultMetadata() models.ExportMetadata { return defaultMetadata() }

// DefaultCompatibility returns the fallback compatibility matrix for
// custom profiles
func DefaultCompatibility() models.CompatibilityMatrix { return defaultCompatibility() }
