package sim

import (
	"github.com/BurntSushi/toml"
	defaults "github.com/mcuadros/go-defaults"
)

// Profile shapes the simulated sensor
type Profile struct {
	Devices      int    `toml:"devices" default:"1"`
	Width        int    `toml:"width" default:"300"`
	Height       int    `toml:"height" default:"400"`
	Finger       string `toml:"finger" default:"right-index"`
	TemplateSize int    `toml:"template_size" default:"1024"`

	// MissEvery makes every Nth capture attempt report an empty glass, 0 disables
	MissEvery int `toml:"miss_every" default:"0"`

	// Jitter is how many template bytes differ between two reads of one finger
	Jitter int   `toml:"jitter" default:"16"`
	Seed   int64 `toml:"seed" default:"1"`
}

// DefaultProfile returns a profile with every default applied
func DefaultProfile() Profile {
	var p Profile
	defaults.SetDefaults(&p)
	return p
}

// LoadProfile reads a TOML profile from path, empty path yields DefaultProfile
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()
	if path == "" {
		return p, nil
	}
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return Profile{}, err
	}
	return p.normalize(), nil
}

func (p Profile) normalize() Profile {
	d := DefaultProfile()
	if p.Width <= 0 {
		p.Width = d.Width
	}
	if p.Height <= 0 {
		p.Height = d.Height
	}
	if p.TemplateSize < headerLen+1 || p.TemplateSize > 2048 {
		p.TemplateSize = d.TemplateSize
	}
	if p.Jitter < 0 {
		p.Jitter = 0
	}
	return p
}
