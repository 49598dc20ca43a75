package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"visastay/internal/domain/stay"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var ErrUnknownPreset = errors.New("unknown country preset")

// CountryPreset bundles a country's location codes with its visa-free rules
type CountryPreset struct {
	Key         string
	DisplayName string
	Airports    []string
	Rules       stay.RuleSet
}

// South Korea: 90 days in any 180, at most 60 consecutive
var KoreaPreset = CountryPreset{
	Key:         "korea",
	DisplayName: "South Korea",
	Airports: []string{
		"ICN", // Incheon International
		"GMP", // Gimpo International
		"CJU", // Jeju International
		"PUS", // Gimhae International (Busan)
		"KWJ", // Gwangju
		"TAE", // Daegu International
		"RSU", // Yeosu
		"USN", // Ulsan
		"KUV", // Gunsan
		"KPO", // Pohang
		"WJU", // Wonju
		"HIN", // Sacheon
		"MWX", // Muan International
		"KAG", // Gangneung
	},
	Rules: stay.RuleSet{
		WindowDays:         180,
		MaxDaysInWindow:    90,
		MaxConsecutiveDays: 60,
	},
}

// BuiltinPresets returns the presets compiled into the binary
func BuiltinPresets() map[string]CountryPreset {
	return map[string]CountryPreset{
		KoreaPreset.Key: KoreaPreset,
	}
}

type presetFile struct {
	Countries map[string]presetEntry `mapstructure:"countries"`
}

type presetEntry struct {
	Name               string   `mapstructure:"name"`
	Airports           []string `mapstructure:"airports"`
	WindowDays         int      `mapstructure:"window_days"`
	MaxDays            int      `mapstructure:"max_days"`
	MaxConsecutiveDays int      `mapstructure:"max_consecutive_days"`
}

// LoadPresets returns the built-in presets merged with those defined in the
// YAML file at path. File entries override built-ins with the same key.
// An empty path returns only the built-ins.
//
// Example file:
//
//	countries:
//	  schengen:
//	    name: Schengen Area
//	    airports: [CDG, AMS, FCO, MAD]
//	    window_days: 180
//	    max_days: 90
func LoadPresets(path string) (map[string]CountryPreset, error) {
	presets := BuiltinPresets()
	if path == "" {
		return presets, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read presets file %s: %w", path, err)
	}

	var file presetFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to parse presets file %s: %w", path, err)
	}

	for key, entry := range file.Countries {
		key = strings.ToLower(key)
		preset := CountryPreset{
			Key:         key,
			DisplayName: entry.Name,
			Airports:    entry.Airports,
			Rules: stay.RuleSet{
				WindowDays:         entry.WindowDays,
				MaxDaysInWindow:    entry.MaxDays,
				MaxConsecutiveDays: entry.MaxConsecutiveDays,
			},
		}
		if preset.DisplayName == "" {
			preset.DisplayName = key
		}
		if err := preset.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q in %s: %w", key, path, err)
		}
		presets[key] = preset
	}

	log.Debug().
		Str("path", path).
		Int("file_presets", len(file.Countries)).
		Int("total_presets", len(presets)).
		Msg("Loaded country presets")

	return presets, nil
}

// Validate checks the preset has location codes and consistent rules
func (p CountryPreset) Validate() error {
	if len(stay.NewLocationSet(p.Airports...)) == 0 {
		return fmt.Errorf("%w: no airports configured", stay.ErrInvalidRuleSet)
	}
	return p.Rules.Validate()
}

// LookupPreset finds a preset by key, ignoring case
func LookupPreset(presets map[string]CountryPreset, key string) (CountryPreset, error) {
	preset, ok := presets[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return CountryPreset{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownPreset, key, strings.Join(PresetKeys(presets), ", "))
	}
	return preset, nil
}

// PresetKeys returns the preset keys in sorted order
func PresetKeys(presets map[string]CountryPreset) []string {
	keys := make([]string, 0, len(presets))
	for key := range presets {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
