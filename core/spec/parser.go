package spec

import (
	"fmt"

	"export-orchestrator/core/models"

	"gopkg.in/yaml.v3"
)

// ProfileSpec represents the YAML export profile specification
type ProfileSpec struct {
	Profile ProfileSpecProfile `yaml:"profile"`
}

// ProfileSpecProfile represents the profile section of the spec
type ProfileSpecProfile struct {
	Name         string                  `yaml:"name"`
	Description  string                  `yaml:"description"`
	Category     string                  `yaml:"category"` // print | web | mobile | social | presentation | archive
	Format       ProfileSpecFormat       `yaml:"format"`
	Quality      ProfileSpecQuality      `yaml:"quality"`
	Color        ProfileSpecColor        `yaml:"color"`
	Resolution   ProfileSpecResolution   `yaml:"resolution"`
	Optimization ProfileSpecOptimization `yaml:"optimization"`
	UsageContext []string                `yaml:"usage_context"`
}

// ProfileSpecFormat represents the output format section
type ProfileSpecFormat struct {
	Type      string `yaml:"type"`
	Extension string `yaml:"extension,omitempty"`
}

// ProfileSpecQuality represents quality settings
type ProfileSpecQuality struct {
	Percentage       int    `yaml:"percentage"`
	CompressionLevel string `yaml:"compression_level"` // lossless | high | medium | low
	AntiAliasing     bool   `yaml:"anti_aliasing"`
	OptimizeForWeb   bool   `yaml:"optimize_for_web"`
	StripMetadata    bool   `yaml:"strip_metadata"`
}

// ProfileSpecColor represents color settings
type ProfileSpecColor struct {
	ColorSpace string `yaml:"color_space"` // sRGB | AdobeRGB | CMYK | Grayscale
	ICCProfile string `yaml:"icc_profile,omitempty"`
}

// ProfileSpecResolution represents resolution settings
type ProfileSpecResolution struct {
	DPI       int               `yaml:"dpi"`
	MaxWidth  int               `yaml:"max_width,omitempty"`
	MaxHeight int               `yaml:"max_height,omitempty"`
	Bleed     *ProfileSpecBleed `yaml:"bleed,omitempty"`
}

// ProfileSpecBleed represents the print bleed section
type ProfileSpecBleed struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
	Units  string  `yaml:"units"` // mm | in | px
}

// ProfileSpecOptimization represents optimization settings
type ProfileSpecOptimization struct {
	FileSizeLimit  int64 `yaml:"file_size_limit"` // bytes, 0 = unlimited
	OptimizeImages bool  `yaml:"optimize_images"`
	FlattenLayers  bool  `yaml:"flatten_layers"`
}

// BatchSpec represents the YAML batch export request specification
type BatchSpec struct {
	Batch BatchSpecBatch `yaml:"batch"`
}

// BatchSpecBatch represents the batch section of the spec
type BatchSpecBatch struct {
	Name       string              `yaml:"name"`
	Sources    []string            `yaml:"sources"`
	Profiles   []string            `yaml:"profiles"`
	OutputDir  string              `yaml:"output_dir"`
	Naming     BatchSpecNaming     `yaml:"naming"`
	Scheduling BatchSpecScheduling `yaml:"scheduling"`
	Quality    BatchSpecQuality    `yaml:"quality"`
	Notify     BatchSpecNotify     `yaml:"notify"`
}

// BatchSpecNaming represents the naming convention section
type BatchSpecNaming struct {
	Variables     []string `yaml:"variables"` // profile_name | date | time | project_name | version
	Separator     string   `yaml:"separator"`
	CaseStyle     string   `yaml:"case_style"` // original | uppercase | lowercase | title_case
	ReplaceSpaces bool     `yaml:"replace_spaces"`
}

// BatchSpecScheduling represents the scheduling section
type BatchSpecScheduling struct {
	Type          string `yaml:"type"` // immediate | delayed
	DelayMinutes  int    `yaml:"delay_minutes,omitempty"`
	MaxConcurrent int    `yaml:"max_concurrent"`
	Priority      string `yaml:"priority,omitempty"`
}

// BatchSpecQuality represents the quality gate section
type BatchSpecQuality struct {
	Enabled            bool `yaml:"enabled"`
	FailOnCritical     bool `yaml:"fail_on_critical"`
	FailOnMajor        bool `yaml:"fail_on_major"`
	AutoRetryOnFailure bool `yaml:"auto_retry_on_failure"`
	MaxRetries         int  `yaml:"max_retries"`
}

// BatchSpecNotify represents the notification section
type BatchSpecNotify struct {
	OnCompletion bool   `yaml:"on_completion"`
	OnFailure    bool   `yaml:"on_failure"`
	WebhookURL   string `yaml:"webhook_url,omitempty"`
}

// ParseProfileSpec parses a YAML profile specification into an ExportProfile
func ParseProfileSpec(specYAML string) (*models.ExportProfile, error) {
	var spec ProfileSpec
	if err := yaml.Unmarshal([]byte(specYAML), &spec); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	p := spec.Profile
	profile := &models.ExportProfile{
		Name:         p.Name,
		Description:  p.Description,
		Category:     models.ProfileCategory(p.Category),
		UsageContext: p.UsageContext,
		Format: models.ExportFormat{
			Type:      models.FormatType(p.Format.Type),
			Extension: p.Format.Extension,
		},
		QualitySettings: models.QualitySettings{
			QualityPercentage: p.Quality.Percentage,
			CompressionLevel:  p.Quality.CompressionLevel,
			AntiAliasing:      p.Quality.AntiAliasing,
			OptimizeForWeb:    p.Quality.OptimizeForWeb,
			StripMetadata:     p.Quality.StripMetadata,
		},
		ColorSettings: models.ColorSettings{
			ColorSpace: p.Color.ColorSpace,
			ICCProfile: p.Color.ICCProfile,
		},
		ResolutionSettings: models.ResolutionSettings{
			DPI:       p.Resolution.DPI,
			MaxWidth:  p.Resolution.MaxWidth,
			MaxHeight: p.Resolution.MaxHeight,
		},
		Optimization: models.OptimizationSettings{
			FileSizeLimit:  p.Optimization.FileSizeLimit,
			OptimizeImages: p.Optimization.OptimizeImages,
			FlattenLayers:  p.Optimization.FlattenLayers,
		},
	}

	if p.Resolution.Bleed != nil {
		units := p.Resolution.Bleed.Units
		if units == "" {
			units = "mm"
		}
		profile.ResolutionSettings.Bleed = &models.BleedSettings{
			Enabled: true,
			Top:     p.Resolution.Bleed.Top,
			Right:   p.Resolution.Bleed.Right,
			Bottom:  p.Resolution.Bleed.Bottom,
			Left:    p.Resolution.Bleed.Left,
			Units:   units,
		}
	}

	// Set defaults
	if profile.Format.Extension == "" {
		profile.Format.Extension = string(profile.Format.Type)
	}
	if profile.ColorSettings.ColorSpace == "" {
		profile.ColorSettings.ColorSpace = "sRGB"
	}
	if profile.ResolutionSettings.DPI == 0 {
		profile.ResolutionSettings.DPI = 72
	}
	if profile.Category == "" {
		profile.Category = models.CategoryWeb
	}

	return profile, nil
}

// ParseBatchSpec parses a YAML batch specification into a BatchExportRequest
func ParseBatchSpec(specYAML string) (*models.BatchExportRequest, error) {
	var spec BatchSpec
	if err := yaml.Unmarshal([]byte(specYAML), &spec); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	b := spec.Batch
	request := &models.BatchExportRequest{
		Name:            b.Name,
		SourceFiles:     b.Sources,
		ExportProfiles:  b.Profiles,
		OutputDirectory: b.OutputDir,
		NamingConvention: models.NamingConvention{
			Separator:     b.Naming.Separator,
			CaseStyle:     models.CaseStyle(b.Naming.CaseStyle),
			ReplaceSpaces: b.Naming.ReplaceSpaces,
		},
		Scheduling: models.ExportScheduling{
			Type:              models.ScheduleType(b.Scheduling.Type),
			DelayMinutes:      b.Scheduling.DelayMinutes,
			MaxConcurrentJobs: b.Scheduling.MaxConcurrent,
			Priority:          b.Scheduling.Priority,
		},
		QualityValidation: models.QualityValidationSettings{
			Enabled:              b.Quality.Enabled,
			FailOnCriticalIssues: b.Quality.FailOnCritical,
			FailOnMajorIssues:    b.Quality.FailOnMajor,
			AutoRetryOnFailure:   b.Quality.AutoRetryOnFailure,
			MaxRetries:           b.Quality.MaxRetries,
		},
		Notifications: models.NotificationSettings{
			Enabled:            b.Notify.OnCompletion || b.Notify.OnFailure,
			NotifyOnCompletion: b.Notify.OnCompletion,
			NotifyOnFailure:    b.Notify.OnFailure,
			WebhookURL:         b.Notify.WebhookURL,
		},
	}

	for _, v := range b.Naming.Variables {
		switch v {
		case "project_name":
			request.NamingConvention.Variables.ProjectName = true
		case "page_number":
			request.NamingConvention.Variables.PageNumber = true
		case "date":
			request.NamingConvention.Variables.Date = true
		case "time":
			request.NamingConvention.Variables.Time = true
		case "profile_name":
			request.NamingConvention.Variables.ProfileName = true
		case "user_name":
			request.NamingConvention.Variables.UserName = true
		case "version":
			request.NamingConvention.Variables.Version = true
		default:
			return nil, fmt.Errorf("unknown naming variable: %s", v)
		}
	}

	// Set defaults
	if request.Scheduling.Type == "" {
		request.Scheduling.Type = models.ScheduleImmediate
	}
	if request.Scheduling.MaxConcurrentJobs == 0 {
		request.Scheduling.MaxConcurrentJobs = 3
	}
	if request.NamingConvention.Separator == "" {
		request.NamingConvention.Separator = "_"
	}
	if request.NamingConvention.CaseStyle == "" {
		request.NamingConvention.CaseStyle = models.CaseOriginal
	}

	return request, nil
}
