package models

import "time"

// ExportProfile is a named bundle of format, quality, color, resolution
// and optimization settings describing one target output variant
type ExportProfile struct {
	ID                 string               `json:"id"`
	Name               string               `json:"name" validate:"required"`
	Description        string               `json:"description"`
	Category           ProfileCategory      `json:"category" validate:"required,oneof=print web mobile social presentation archive"`
	Format             ExportFormat         `json:"format"`
	QualitySettings    QualitySettings      `json:"quality_settings"`
	ColorSettings      ColorSettings        `json:"color_settings"`
	ResolutionSettings ResolutionSettings   `json:"resolution_settings"`
	Optimization       OptimizationSettings `json:"optimization"`
	Metadata           ExportMetadata       `json:"metadata"`
	CreatedBy          string               `json:"created_by"`
	CreatedAt          time.Time            `json:"created_at"`
	UsageContext       []string             `json:"usage_context"`
	Compatibility      CompatibilityMatrix  `json:"compatibility"`
}

// ProfileCategory classifies the intended destination of a profile
type ProfileCategory string

const (
	CategoryPrint        ProfileCategory = "print"
	CategoryWeb          ProfileCategory = "web"
	CategoryMobile       ProfileCategory = "mobile"
	CategorySocial       ProfileCategory = "social"
	CategoryPresentation ProfileCategory = "presentation"
	CategoryArchive      ProfileCategory = "archive"
)

// FormatType identifies an output format
type FormatType string

const (
	FormatPDF  FormatType = "pdf"
	FormatEPS  FormatType = "eps"
	FormatAI   FormatType = "ai"
	FormatSVG  FormatType = "svg"
	FormatPNG  FormatType = "png"
	FormatJPG  FormatType = "jpg"
	FormatWebP FormatType = "webp"
)

// ExportFormat describes an output format and its capabilities.
// Type is immutable after profile creation.
type ExportFormat struct {
	Type               FormatType          `json:"type" validate:"required"`
	Name               string              `json:"name"`
	Extension          string              `json:"extension"`
	MimeType           string              `json:"mime_type"`
	SupportsLayers     bool                `json:"supports_layers"`
	SupportsVectors    bool                `json:"supports_vectors"`
	SupportsText       bool                `json:"supports_text"`
	SupportsImages     bool                `json:"supports_images"`
	SupportsMetadata   bool                `json:"supports_metadata"`
	MaxResolution      int                 `json:"max_resolution"` // dpi, 0 = unlimited
	ColorDepths        []int               `json:"color_depths"`
	CompressionOptions []CompressionOption `json:"compression_options"`
}

// CompressionOption is one compression choice a format offers
type CompressionOption struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       int    `json:"level"`
	Lossless    bool   `json:"lossless"`
	Algorithm   string `json:"algorithm"`
}

// QualitySettings controls output quality and sampling
type QualitySettings struct {
	CompressionLevel   string `json:"compression_level"` // lossless | high | medium | low
	QualityPercentage  int    `json:"quality_percentage" validate:"gte=0,lte=100"`
	AntiAliasing       bool   `json:"anti_aliasing"`
	Dithering          string `json:"dithering"`      // none | floyd_steinberg | ordered | random
	ColorSampling      string `json:"color_sampling"` // 4:4:4 | 4:2:2 | 4:2:0 | grayscale
	ProgressiveJPEG    bool   `json:"progressive_jpeg"`
	Interlace          string `json:"interlace"`
	OptimizeForWeb     bool   `json:"optimize_for_web"`
	IncludeSRGBProfile bool   `json:"include_srgb_profile"`
	StripMetadata      bool   `json:"strip_metadata"`
}

// ColorSettings controls color management for an export
type ColorSettings struct {
	ColorSpace             string      `json:"color_space"` // sRGB | AdobeRGB | ProPhotoRGB | CMYK | Lab | Grayscale
	ICCProfile             string      `json:"icc_profile"`
	PreserveEmbeddedColors bool        `json:"preserve_embedded_colors"`
	ConvertToDestProfile   bool        `json:"convert_to_dest_profile"`
	BlackPointCompensation bool        `json:"black_point_compensation"`
	RenderIntent           string      `json:"render_intent"`
	SpotColors             []SpotColor `json:"spot_colors"`
	OverprintSimulation    bool        `json:"overprint_simulation"`
	ProofColors            bool        `json:"proof_colors"`
}

// SpotColor is a named ink used in print production
type SpotColor struct {
	Name         string             `json:"name"`
	ColorValues  map[string]float64 `json:"color_values"`
	Pantone      string             `json:"pantone,omitempty"`
	Transparency float64            `json:"transparency"`
	Overprint    bool               `json:"overprint"`
}

// ResolutionSettings controls output dimensions and density
type ResolutionSettings struct {
	DPI                 int            `json:"dpi"`
	Width               int            `json:"width"`  // 0 = auto
	Height              int            `json:"height"` // 0 = auto
	MaintainAspectRatio bool           `json:"maintain_aspect_ratio"`
	AllowUpscaling      bool           `json:"allow_upscaling"`
	MaxWidth            int            `json:"max_width,omitempty"`
	MaxHeight           int            `json:"max_height,omitempty"`
	CropToFit           bool           `json:"crop_to_fit"`
	PaddingColor        string         `json:"padding_color,omitempty"`
	Bleed               *BleedSettings `json:"bleed,omitempty"`
}

// BleedSettings describes the print bleed area
type BleedSettings struct {
	Enabled bool    `json:"enabled"`
	Top     float64 `json:"top"`
	Right   float64 `json:"right"`
	Bottom  float64 `json:"bottom"`
	Left    float64 `json:"left"`
	Units   string  `json:"units"` // mm | in | px
}

// OptimizationSettings controls output slimming
type OptimizationSettings struct {
	FileSizeLimit           int64 `json:"file_size_limit"` // bytes, 0 = no limit
	RemoveUnusedLayers      bool  `json:"remove_unused_layers"`
	FlattenLayers           bool  `json:"flatten_layers"`
	OptimizeVectors         bool  `json:"optimize_vectors"`
	RemoveTextOutlines      bool  `json:"remove_text_outlines"`
	CombineSimilarElements  bool  `json:"combine_similar_elements"`
	RemoveDuplicateElements bool  `json:"remove_duplicate_elements"`
	CompressShapes          bool  `json:"compress_shapes"`
	OptimizeImages          bool  `json:"optimize_images"`
	LazyLoading             bool  `json:"lazy_loading"`
}

// ExportMetadata is embedded in produced files where the format allows
type ExportMetadata struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Author       string            `json:"author"`
	Copyright    string            `json:"copyright"`
	Keywords     []string          `json:"keywords"`
	Subject      string            `json:"subject"`
	Application  string            `json:"application"`
	Version      string            `json:"version"`
	CustomFields map[string]string `json:"custom_fields"`
	IncludeXMP   bool              `json:"include_xmp_metadata"`
	IncludeIPTC  bool              `json:"include_iptc_metadata"`
	IncludeEXIF  bool              `json:"include_exif_metadata"`
}

// CompatibilityMatrix records per external tool support flags for a profile
type CompatibilityMatrix struct {
	Tools       map[string]bool `json:"tools"`        // e.g. "illustrator", "figma", "inkscape"
	WebBrowsers map[string]bool `json:"web_browsers"` // e.g. "chrome", "firefox"
}
