// Package button defines the merchant's widget configuration.
package button

import (
	"errors"
	"fmt"

	"github.com/ziadkadry99/toldyou-button/internal/color"
	"github.com/ziadkadry99/toldyou-button/internal/platform"
)

// Position is the corner the widget is anchored to.
type Position string

const (
	BottomLeft  Position = "bottom-left"
	BottomRight Position = "bottom-right"
)

// Valid reports whether p is one of the two supported corners.
func (p Position) Valid() bool {
	return p == BottomLeft || p == BottomRight
}

// DefaultColor is the main button colour used when a stored colour cannot be
// normalised.
const DefaultColor = "#2563eb"

// Platforms holds the raw value entered for each platform. Values are kept
// exactly as submitted and sanitised when rendered.
type Platforms struct {
	LINE      string `json:"line,omitempty"`
	Messenger string `json:"messenger,omitempty"`
	WhatsApp  string `json:"whatsapp,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Get returns the raw value for id.
func (p Platforms) Get(id platform.ID) string {
	switch id {
	case platform.LINE:
		return p.LINE
	case platform.Messenger:
		return p.Messenger
	case platform.WhatsApp:
		return p.WhatsApp
	case platform.Instagram:
		return p.Instagram
	case platform.Phone:
		return p.Phone
	case platform.Email:
		return p.Email
	}
	return ""
}

// Values returns the raw values keyed by platform id, omitting blanks.
func (p Platforms) Values() map[platform.ID]string {
	out := make(map[platform.ID]string)
	for _, id := range platform.All {
		if v := p.Get(id); platform.TrimSpace(v) != "" {
			out[id] = v
		}
	}
	return out
}

// Filled counts the platforms with a non-blank value.
func (p Platforms) Filled() int {
	return len(p.Values())
}

// Config is the widget configuration a merchant submits.
type Config struct {
	Platforms Platforms `json:"platforms"`
	Position  Position  `json:"position"`
	Color     string    `json:"color"`
}

var (
	ErrNoPlatforms     = errors.New("at least one platform must be filled in")
	ErrInvalidPosition = errors.New("position must be bottom-left or bottom-right")
	// ErrUnusableValue is reported for a filled-in platform whose value
	// yields no contact id, such as a link to an unrelated site.
	ErrUnusableValue = errors.New("no usable contact id in value")
)

// Validate checks the invariants that hold for every stored configuration
// and returns all violations joined together.
func (c Config) Validate() error {
	var errs []error
	values := c.Platforms.Values()
	if len(values) == 0 {
		errs = append(errs, ErrNoPlatforms)
	}
	for _, id := range platform.All {
		if v, ok := values[id]; ok && platform.Sanitize(id, v) == "" {
			errs = append(errs, fmt.Errorf("platforms.%s: %w", id, ErrUnusableValue))
		}
	}
	if !c.Position.Valid() {
		errs = append(errs, ErrInvalidPosition)
	}
	if _, err := color.Normalize(c.Color); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// MainColor returns the normalised main button colour, or DefaultColor.
func (c Config) MainColor() string {
	return color.OrDefault(c.Color, DefaultColor)
}

// Buttons resolves the platform buttons in render order.
func (c Config) Buttons(label func(platform.ID) string) []platform.Button {
	return platform.Resolve(c.Platforms.Values(), label)
}
