package configmanager

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// decodeINI parses INI data into a section -> key -> value map suitable for
// viper.MergeConfigMap. Keys of the DEFAULT section are inherited by every
// other section unless overridden.
func decodeINI(data []byte) (map[string]any, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		PreserveSurroundedQuote: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse INI: %w", err)
	}

	defaults := map[string]any{}

	defaultSection, err := file.GetSection(ini.DefaultSection)
	if err == nil {
		for _, key := range defaultSection.Keys() {
			defaults[key.Name()] = key.Value()
		}
	}

	sections := make(map[string]any, len(file.Sections()))

	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}

		values := make(map[string]any, len(defaults)+len(section.Keys()))
		for name, value := range defaults {
			values[name] = value
		}

		for _, key := range section.Keys() {
			values[key.Name()] = key.Value()
		}

		sections[section.Name()] = values
	}

	return sections, nil
}
