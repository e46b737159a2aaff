package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/residence-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// DefaultProfilesFile is looked up in the home directory when no path is given.
const DefaultProfilesFile = ".residencecfg"

// Registry exposes named schemas, one INI section per profile.
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetSchema(ctx context.Context, profile string) (domain.Schema, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func DefaultProfilesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfilesFile
	}
	return filepath.Join(home, DefaultProfilesFile)
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetSchema(_ context.Context, profile string) (domain.Schema, error) {
	if !cr.cfg.HasSection(profile) {
		return domain.Schema{}, fmt.Errorf("profile %s not found", profile)
	}
	section := cr.cfg.Section(profile)

	defaults := DefaultSchemaConfig()
	startIndex, err := intKey(section, KeyStartIndex, defaults.StartIndex)
	if err != nil {
		return domain.Schema{}, fmt.Errorf("profile %s: %w", profile, err)
	}
	endIndex, err := intKey(section, KeyEndIndex, defaults.EndIndex)
	if err != nil {
		return domain.Schema{}, fmt.Errorf("profile %s: %w", profile, err)
	}

	cfg := SchemaConfig{
		StartIndex:    startIndex,
		EndIndex:      endIndex,
		Delimiter:     section.Key(KeyDelimiter).MustString(defaults.Delimiter),
		DateDelimiter: section.Key(KeyDateDelimiter).MustString(defaults.DateDelimiter),
		PresentToken:  section.Key(KeyPresentToken).MustString(defaults.PresentToken),
		DatePattern:   section.Key(KeyDatePattern).MustString(defaults.DatePattern),
	}

	schema, err := cfg.Schema()
	if err != nil {
		return domain.Schema{}, fmt.Errorf("profile %s: %w", profile, err)
	}
	return schema, nil
}

// intKey falls back to def only when the key is absent; a value that is not an integer is an error.
func intKey(section *ini.Section, name string, def int) (int, error) {
	if !section.HasKey(name) {
		return def, nil
	}
	v, err := section.Key(name).Int()
	if err != nil {
		return 0, &domain.SchemaError{
			Reason: fmt.Sprintf("%s must be an integer, got %q", name, section.Key(name).String()),
		}
	}
	return v, nil
}

// Source says where a schema comes from. A profile and a schema file are mutually exclusive.
type Source struct {
	SchemaFile   string
	ProfilesFile string
	Profile      string
}

func Resolve(ctx context.Context, src Source) (domain.Schema, error) {
	if src.Profile == "" {
		return LoadSchema(src.SchemaFile)
	}
	if src.SchemaFile != "" {
		return domain.Schema{}, &domain.UsageConflictError{First: "--profile", Second: "--schema"}
	}

	path := src.ProfilesFile
	if path == "" {
		path = DefaultProfilesPath()
	}
	registry, err := NewRegistry(path)
	if err != nil {
		return domain.Schema{}, err
	}
	return registry.GetSchema(ctx, src.Profile)
}
