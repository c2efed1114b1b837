package audio

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSettings parses a comma-separated jsfxr settings string. Empty fields
// are zero, as jsfxr writes them; fields missing from the end of the string
// keep their value from defaults.
func ParseSettings(s string, defaults Params) (Params, error) {
	p := defaults
	s = strings.TrimSpace(s)
	if s == "" {
		return p, fmt.Errorf("%w: empty", ErrBadSettings)
	}

	values := strings.Split(s, ",")
	if len(values) > numFloatFields+1 {
		return p, fmt.Errorf("%w: %d fields, want at most %d", ErrBadSettings, len(values), numFloatFields+1)
	}

	parseFloat := func(idx int) (float64, error) {
		v := strings.TrimSpace(values[idx])
		if v == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: field %d: %q", ErrBadSettings, idx, v)
		}
		return f, nil
	}

	shape, err := parseFloat(0)
	if err != nil {
		return p, err
	}
	p.WaveType = WaveType(int(shape))
	if float64(p.WaveType) != shape || !p.WaveType.Valid() {
		return p, fmt.Errorf("%w: %v", ErrInvalidWaveType, shape)
	}

	fields := p.floatFields()
	for i := 1; i < len(values); i++ {
		f, err := parseFloat(i)
		if err != nil {
			return p, err
		}
		*fields[i-1] = f
	}
	return p, nil
}

// SettingsString converts p back to a jsfxr settings string. Zero values are
// left empty.
func (p Params) SettingsString() string {
	formatFloat := func(f float64) string {
		if f == 0 {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	parts := make([]string, 0, numFloatFields+1)
	parts = append(parts, strconv.Itoa(int(p.WaveType)))
	for _, f := range p.floatFields() {
		parts = append(parts, formatFloat(*f))
	}
	return strings.Join(parts, ",")
}

// GenerateFloat32 renders a jsfxr settings string as float32 samples for
// Web Audio style consumers.
func GenerateFloat32(settings string) ([]float32, error) {
	p, err := ParseSettings(settings, DefaultParams())
	if err != nil {
		return nil, err
	}
	snd, err := Generate(p)
	if err != nil {
		return nil, err
	}
	return Float32(snd.Samples), nil
}
