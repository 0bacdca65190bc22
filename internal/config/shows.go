package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// ShowEntry is one show row in the shows file. Pattern accepts both
// persisted conventions: the 5-field cron subset and the natural
// "HH:MM:SS on Day, Day" form.
type ShowEntry struct {
	// Name is a human-friendly label; it doubles as the scheduler key.
	Name string `yaml:"name"`
	// Pattern is the raw schedule pattern exactly as persisted.
	Pattern string `yaml:"pattern"`
	// Timezone is an optional IANA zone; empty means the daemon fallback.
	Timezone string `yaml:"timezone,omitempty"`
}

// ShowsFile is the top-level document of the YAML shows file.
type ShowsFile struct {
	Shows []ShowEntry `yaml:"shows"`
}

// LoadShows reads the shows file. A missing file is not an error: the
// daemon starts with an empty lineup and picks shows up on the next load.
func LoadShows(path string) ([]ShowEntry, error) {
	if path == "" {
		return nil, errors.New("shows file path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read shows file: %w", err)
	}

	var doc ShowsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse shows file: %w", err)
	}

	shows := make([]ShowEntry, 0, len(doc.Shows))
	seen := map[string]bool{}
	for _, entry := range doc.Shows {
		if entry.Name == "" || entry.Pattern == "" {
			return nil, fmt.Errorf("show entries need both name and pattern, got %+v", entry)
		}
		if seen[entry.Name] {
			return nil, fmt.Errorf("duplicate show name %q", entry.Name)
		}
		seen[entry.Name] = true
		shows = append(shows, entry)
	}
	return shows, nil
}
