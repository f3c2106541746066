package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"threadview/internal/layout"
)

// Styles is the on-disk style configuration: the per-sender sizing defaults
// plus presentation colors the engine itself never reads.
type Styles struct {
	Sizing layout.Sizing `yaml:"sizing"`

	IncomingBubbleColor string `yaml:"incoming_bubble_color"`
	OutgoingBubbleColor string `yaml:"outgoing_bubble_color"`
	CaptionColor        string `yaml:"caption_color"`
}

// DefaultStyles returns the built-in style configuration.
func DefaultStyles() Styles {
	return Styles{
		Sizing:              layout.DefaultSizing(),
		IncomingBubbleColor: "240",
		OutgoingBubbleColor: "25",
		CaptionColor:        "245",
	}
}

// LoadStyles loads the style file at path. A missing file yields defaults.
func LoadStyles(path string) (Styles, error) {
	styles := DefaultStyles()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return styles, nil
		}
		return styles, fmt.Errorf("failed to read styles: %w", err)
	}

	if err := yaml.Unmarshal(data, &styles); err != nil {
		return styles, fmt.Errorf("failed to parse styles: %w", err)
	}
	return styles, nil
}

// SaveStyles writes the style configuration to path.
func SaveStyles(path string, styles Styles) error {
	data, err := yaml.Marshal(styles)
	if err != nil {
		return fmt.Errorf("failed to encode styles: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write styles: %w", err)
	}
	return nil
}
