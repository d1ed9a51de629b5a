package common

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	EnvPrefix          = "BRIDGEPLANS"
	DefaultProfileName = "title-sheet"

	EngineTesseract = "tesseract"
	EngineGosseract = "gosseract"

	BackendPdftotext = "pdftotext"
	BackendNative    = "native"
)

// Config holds all application configuration
type Config struct {
	Profile  string                     `mapstructure:"profile" yaml:"profile"`
	Profiles map[string]TemplateProfile `mapstructure:"profiles" yaml:"profiles"`
	OCR      OCRConfig                  `mapstructure:"ocr" yaml:"ocr"`
	LLM      LLMConfig                  `mapstructure:"llm" yaml:"llm"`
	Output   OutputConfig               `mapstructure:"output" yaml:"output"`
}

// TemplateProfile describes where the title block sits for one plan-sheet layout.
type TemplateProfile struct {
	Region       []int  `mapstructure:"region" yaml:"region,flow"` // left, top, right, bottom in raster pixels; empty = full page
	DPI          int    `mapstructure:"dpi" yaml:"dpi"`
	MinTextChars int    `mapstructure:"min_text_chars" yaml:"min_text_chars"`
	TextBackend  string `mapstructure:"text_backend" yaml:"text_backend"` // pdftotext | native
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Engine      string `mapstructure:"engine" yaml:"engine"` // tesseract | gosseract
	Pdftotext   string `mapstructure:"pdftotext" yaml:"pdftotext"`
	Pdftoppm    string `mapstructure:"pdftoppm" yaml:"pdftoppm"`
	Tesseract   string `mapstructure:"tesseract" yaml:"tesseract"`
	Lang        string `mapstructure:"lang" yaml:"lang"`
	TessdataDir string `mapstructure:"tessdata_dir" yaml:"tessdata_dir"`
	PSM         int    `mapstructure:"psm" yaml:"psm"`
	OEM         int    `mapstructure:"oem" yaml:"oem"`
}

// LLMConfig holds LLM-related configuration
type LLMConfig struct {
	APIKey      string        `mapstructure:"api_key" yaml:"api_key"`
	BaseURL     string        `mapstructure:"base_url" yaml:"base_url"`
	Model       string        `mapstructure:"model" yaml:"model"`
	Temperature float64       `mapstructure:"temperature" yaml:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// OutputConfig controls where the summary workbook goes.
type OutputConfig struct {
	Path  string `mapstructure:"path" yaml:"path"` // empty = <input dir>/output/bridge_work_summary.xlsx
	Sheet string `mapstructure:"sheet" yaml:"sheet"`
}

// DefaultProfile is the lower-right quadrant of an 11x17 plan sheet scanned at 300 DPI.
func DefaultProfile() TemplateProfile {
	return TemplateProfile{
		Region:       []int{2550, 1650, 5100, 3300},
		DPI:          300,
		MinTextChars: 20,
		TextBackend:  BackendPdftotext,
	}
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Profile:  DefaultProfileName,
		Profiles: map[string]TemplateProfile{DefaultProfileName: DefaultProfile()},
		OCR: OCRConfig{
			Engine:    EngineTesseract,
			Pdftotext: "pdftotext",
			Pdftoppm:  "pdftoppm",
			Tesseract: "tesseract",
			Lang:      "eng",
		},
		LLM: LLMConfig{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4o-mini",
			Temperature: 0,
			Timeout:     60 * time.Second,
		},
		Output: OutputConfig{
			Sheet: "Sheet1",
		},
	}
}

// LoadConfig layers defaults, an optional config file and BRIDGEPLANS_* env vars.
// The API key also falls back to OPENAI_API_KEY.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	def := DefaultConfig()

	v.SetDefault("profile", def.Profile)
	v.SetDefault("ocr.engine", def.OCR.Engine)
	v.SetDefault("ocr.pdftotext", def.OCR.Pdftotext)
	v.SetDefault("ocr.pdftoppm", def.OCR.Pdftoppm)
	v.SetDefault("ocr.tesseract", def.OCR.Tesseract)
	v.SetDefault("ocr.lang", def.OCR.Lang)
	v.SetDefault("ocr.tessdata_dir", "")
	v.SetDefault("ocr.psm", 0)
	v.SetDefault("ocr.oem", 0)
	v.SetDefault("llm.base_url", def.LLM.BaseURL)
	v.SetDefault("llm.model", def.LLM.Model)
	v.SetDefault("llm.temperature", def.LLM.Temperature)
	v.SetDefault("llm.timeout", def.LLM.Timeout)
	v.SetDefault("output.path", "")
	v.SetDefault("output.sheet", def.Output.Sheet)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, NewAppError(CodeConfig, "bind api key env", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("bridgeplans")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.bridgeplans")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, NewAppError(CodeConfig, "read config file", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, NewAppError(CodeConfig, "unmarshal config", err)
	}
	cfg.applyProfileDefaults()
	return &cfg, nil
}

func (c *Config) applyProfileDefaults() {
	if len(c.Profiles) == 0 {
		c.Profiles = map[string]TemplateProfile{DefaultProfileName: DefaultProfile()}
	}
	for name, p := range c.Profiles {
		if p.DPI <= 0 {
			p.DPI = 300
		}
		if p.MinTextChars <= 0 {
			p.MinTextChars = 20
		}
		if p.TextBackend == "" {
			p.TextBackend = BackendPdftotext
		}
		c.Profiles[name] = p
	}
	if c.Profile == "" {
		c.Profile = DefaultProfileName
	}
}

// ActiveProfile returns the profile selected by Config.Profile.
func (c *Config) ActiveProfile() (TemplateProfile, error) {
	p, ok := c.Profiles[c.Profile]
	if !ok {
		return TemplateProfile{}, NewAppError(CodeConfig, fmt.Sprintf("unknown profile %q", c.Profile), ErrConfig)
	}
	return p, nil
}

// Validate checks everything needed to extract text.
func (c *Config) Validate() error {
	v := NewValidator()
	v.Field("profile", c.Profile, Required)
	v.Field("ocr.engine", c.OCR.Engine, Required, OneOf(EngineTesseract, EngineGosseract))
	v.Field("ocr.lang", c.OCR.Lang, Required)
	v.Field("ocr.psm", c.OCR.PSM, NonNegative)
	v.Field("ocr.oem", c.OCR.OEM, NonNegative)

	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	v.Check(slices.Contains(names, c.Profile), "profile", c.Profile, "must name one of: "+strings.Join(names, ", "))

	for _, name := range names {
		p := c.Profiles[name]
		prefix := "profiles." + name + "."
		v.Field(prefix+"dpi", p.DPI, Positive)
		v.Field(prefix+"min_text_chars", p.MinTextChars, NonNegative)
		v.Field(prefix+"text_backend", p.TextBackend, OneOf(BackendPdftotext, BackendNative))
		validateRegion(v, prefix+"region", p.Region)
	}
	return ValidateAndReturnError(v)
}

// ValidateLLM checks the model settings. A missing key fails the run up front
// instead of failing every document the same way.
func (c *Config) ValidateLLM() error {
	v := NewValidator()
	v.Check(c.LLM.APIKey != "", "llm.api_key", "", "is required (set "+EnvPrefix+"_LLM_API_KEY or OPENAI_API_KEY)")
	v.Field("llm.model", c.LLM.Model, Required)
	v.Check(c.LLM.Temperature >= 0 && c.LLM.Temperature <= 2, "llm.temperature", c.LLM.Temperature, "must be within 0..2")
	v.Check(c.LLM.Timeout >= 0, "llm.timeout", c.LLM.Timeout, "must not be negative")
	return ValidateAndReturnError(v)
}

func validateRegion(v *Validator, field string, r []int) {
	if len(r) == 0 {
		return
	}
	if len(r) != 4 {
		v.Check(false, field, r, "must have exactly four values: left, top, right, bottom")
		return
	}
	v.Check(r[0] >= 0 && r[1] >= 0 && r[2] >= 0 && r[3] >= 0, field, r, "coordinates must not be negative")
	v.Check(r[2] > r[0], field, r, "right must be greater than left")
	v.Check(r[3] > r[1], field, r, "bottom must be greater than top")
}

// WriteDefault writes the default configuration to path as YAML.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := []byte(`# bridgeplans configuration
# The API key is read from BRIDGEPLANS_LLM_API_KEY or OPENAI_API_KEY; keep it out of this file.
# Profile regions are pixel rectangles (left, top, right, bottom) on the page raster at the profile DPI.

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}

// Redacted returns a copy with the API key masked.
func (c Config) Redacted() Config {
	if c.LLM.APIKey != "" {
		c.LLM.APIKey = "****"
	}
	return c
}

// YAML renders the configuration in the same layout WriteDefault uses.
func (c Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}
