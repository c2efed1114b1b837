package audio

import (
	"fmt"
	"sort"
	"strings"
)

// SoundEffect is a named, categorised parameter set.
type SoundEffect struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`     // Lookup key, lower-case with dashes
	Category    string `json:"category"` // Shoot, Hit, Pickup, UI, Explosion, Ambient
	Description string `json:"description"`
	Settings    string `json:"settings"` // jsfxr settings string
	Params      Params `json:"params"`
}

// Generate renders the effect with cfg.
func (s *SoundEffect) Generate(cfg Config) (*Sound, error) {
	return (&Synth{Params: s.Params, Config: cfg}).Generate()
}

// newSoundEffect parses a library entry. Library strings are fixed, so a
// parse failure is a programming error.
func newSoundEffect(id int, name, category, desc, settings string) *SoundEffect {
	p, err := ParseSettings(settings, DefaultParams())
	if err != nil {
		panic(fmt.Sprintf("sound effect %q: %v", name, err))
	}
	return &SoundEffect{
		ID:          id,
		Name:        name,
		Category:    category,
		Description: desc,
		Settings:    settings,
		Params:      p,
	}
}

// GetSoundEffect returns a sound effect by ID
func GetSoundEffect(id int) *SoundEffect {
	if id >= 0 && id < len(SoundEffectLibrary) {
		return SoundEffectLibrary[id]
	}
	return nil
}

// LookupSoundEffect finds a library entry by name, ignoring case.
func LookupSoundEffect(name string) (*SoundEffect, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, sfx := range SoundEffectLibrary {
		if sfx.Name == name {
			return sfx, true
		}
	}
	return nil, false
}

// GetSoundEffectsByCategory returns all sound effects in a category
func GetSoundEffectsByCategory(category string) []*SoundEffect {
	var result []*SoundEffect
	for _, sfx := range SoundEffectLibrary {
		if strings.EqualFold(sfx.Category, category) {
			result = append(result, sfx)
		}
	}
	return result
}

// SoundEffectNames returns the library names sorted alphabetically.
func SoundEffectNames() []string {
	names := make([]string, 0, len(SoundEffectLibrary))
	for _, sfx := range SoundEffectLibrary {
		names = append(names, sfx.Name)
	}
	sort.Strings(names)
	return names
}
