// Package config loads medref settings from medref.yaml, MEDREF_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/CiaranMcAleer/medref/internal/library"
)

// Config holds every setting the two tools read.
type Config struct {
	Root            string   `mapstructure:"root"`
	Title           string   `mapstructure:"title"`
	IndexFile       string   `mapstructure:"index_file"`
	SkipDirs        []string `mapstructure:"skip_dirs"`
	TopicExtensions []string `mapstructure:"topic_extensions"`
	SizeWarnKB      int64    `mapstructure:"size_warn_kb"`
	Jobs            int      `mapstructure:"jobs"`
	RenderDrafts    bool     `mapstructure:"render_drafts"`
	Categories      []string `mapstructure:"categories"`
}

// Load reads configuration. cfgFile may be empty, in which case medref.yaml is
// looked up in the current directory and silently ignored when absent. Flags
// in fs that the user set override file and environment values.
func Load(cfgFile string, fs *pflag.FlagSet) (*Config, string, error) {
	v := viper.New()

	v.SetDefault("root", ".")
	v.SetDefault("title", library.DefaultLibraryTitle)
	v.SetDefault("index_file", library.DefaultIndexFile)
	v.SetDefault("skip_dirs", library.DefaultSkipDirs)
	v.SetDefault("topic_extensions", library.DefaultTopicExtensions)
	v.SetDefault("size_warn_kb", library.DefaultSizeWarnKB)
	v.SetDefault("jobs", 1)
	v.SetDefault("render_drafts", false)
	v.SetDefault("categories", []string{})

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("medref")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("MEDREF")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return nil, "", err
		}
	}

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return nil, "", fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, used, nil
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"root":          "root",
	"jobs":          "jobs",
	"render-drafts": "render_drafts",
	"size-warn-kb":  "size_warn_kb",
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for flag, key := range flagKeys {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", flag, err)
		}
	}
	return nil
}

// Validate rejects settings the tools cannot work with.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.New("root must not be empty")
	}
	if c.IndexFile == "" || filepath.Base(c.IndexFile) != c.IndexFile {
		return fmt.Errorf("index_file must be a plain file name, got %q", c.IndexFile)
	}
	if len(c.TopicExtensions) == 0 {
		return errors.New("topic_extensions must list at least one extension")
	}
	for i, ext := range c.TopicExtensions {
		if !strings.HasPrefix(ext, ".") {
			c.TopicExtensions[i] = "." + ext
		}
	}
	if c.SizeWarnKB < 0 {
		return fmt.Errorf("size_warn_kb must not be negative, got %d", c.SizeWarnKB)
	}
	if c.Jobs < 1 {
		c.Jobs = 1
	}
	if len(c.Categories) > 0 {
		if err := library.ValidateCategories(c.CategoryList()); err != nil {
			return err
		}
	}
	return nil
}

// CategoryList returns the configured categories, or the built-in list.
func (c *Config) CategoryList() []library.Category {
	if len(c.Categories) == 0 {
		return library.DefaultCategories()
	}
	return library.CategoriesFromNames(c.Categories)
}
