package audio

// WaveType represents the oscillator waveform.
type WaveType int

const (
	WaveSquare   WaveType = 0
	WaveSawtooth WaveType = 1
	WaveSine     WaveType = 2
	WaveNoise    WaveType = 3
)

func (w WaveType) String() string {
	switch w {
	case WaveSquare:
		return "Square"
	case WaveSawtooth:
		return "Sawtooth"
	case WaveSine:
		return "Sine"
	case WaveNoise:
		return "Noise"
	default:
		return "Unknown"
	}
}

// Valid reports whether w names one of the four oscillator shapes.
func (w WaveType) Valid() bool {
	return w >= WaveSquare && w <= WaveNoise
}

// Params holds all configurable parameters for sound synthesis.
// Values are on [0,1] unless marked signed, in which case they are on [-1,1].
type Params struct {
	WaveType WaveType `json:"waveType"` // 0=square, 1=sawtooth, 2=sine, 3=noise

	// Envelope
	AttackTime   float64 `json:"attackTime"`   // Time for volume to ramp up
	SustainTime  float64 `json:"sustainTime"`  // Time at full volume
	SustainPunch float64 `json:"sustainPunch"` // Extra volume at sustain start
	DecayTime    float64 `json:"decayTime"`    // Time for volume to fade out

	// Tone
	StartFrequency float64 `json:"startFrequency"` // Base frequency of the sound
	MinFrequency   float64 `json:"minFrequency"`   // Frequency floor, ends the sound when reached
	Slide          float64 `json:"slide"`          // Frequency slide (signed)
	DeltaSlide     float64 `json:"deltaSlide"`     // Acceleration of frequency slide (signed)

	// Vibrato
	VibratoDepth float64 `json:"vibratoDepth"`
	VibratoSpeed float64 `json:"vibratoSpeed"`

	// Arpeggio
	ChangeAmount float64 `json:"changeAmount"` // One-shot pitch jump (signed)
	ChangeSpeed  float64 `json:"changeSpeed"`  // When to apply the pitch jump

	// Square wave duty (proportion of time signal is high vs. low)
	SquareDuty float64 `json:"squareDuty"`
	DutySweep  float64 `json:"dutySweep"` // signed

	RepeatSpeed float64 `json:"repeatSpeed"`

	// Flanger
	FlangerOffset float64 `json:"flangerOffset"` // signed
	FlangerSweep  float64 `json:"flangerSweep"`  // signed

	// Filters
	LpFilterCutoff      float64 `json:"lpFilterCutoff"`
	LpFilterCutoffSweep float64 `json:"lpFilterCutoffSweep"` // signed
	LpFilterResonance   float64 `json:"lpFilterResonance"`
	HpFilterCutoff      float64 `json:"hpFilterCutoff"`
	HpFilterCutoffSweep float64 `json:"hpFilterCutoffSweep"` // signed

	MasterVolume float64 `json:"masterVolume"`
}

// DefaultParams returns the neutral parameter set: a short square tone with
// the low-pass filter open.
func DefaultParams() Params {
	return Params{
		WaveType:       WaveSquare,
		SustainTime:    0.3,
		DecayTime:      0.4,
		StartFrequency: 0.3,
		LpFilterCutoff: 1,
		MasterVolume:   0.5,
	}
}

// numFloatFields is the number of float fields following WaveType in the
// settings string and binary layouts.
const numFloatFields = 23

// floatFields returns pointers to the float fields in serialization order.
func (p *Params) floatFields() [numFloatFields]*float64 {
	return [numFloatFields]*float64{
		&p.AttackTime,
		&p.SustainTime,
		&p.SustainPunch,
		&p.DecayTime,
		&p.StartFrequency,
		&p.MinFrequency,
		&p.Slide,
		&p.DeltaSlide,
		&p.VibratoDepth,
		&p.VibratoSpeed,
		&p.ChangeAmount,
		&p.ChangeSpeed,
		&p.SquareDuty,
		&p.DutySweep,
		&p.RepeatSpeed,
		&p.FlangerOffset,
		&p.FlangerSweep,
		&p.LpFilterCutoff,
		&p.LpFilterCutoffSweep,
		&p.LpFilterResonance,
		&p.HpFilterCutoff,
		&p.HpFilterCutoffSweep,
		&p.MasterVolume,
	}
}

// fieldNames lists the field keys accepted by Set, in serialization order.
var fieldNames = [numFloatFields]string{
	"attack",
	"sustain",
	"punch",
	"decay",
	"freq",
	"freqLimit",
	"slide",
	"deltaSlide",
	"vibDepth",
	"vibSpeed",
	"arpMod",
	"arpSpeed",
	"duty",
	"dutySweep",
	"repeatSpeed",
	"flangerOffset",
	"flangerSweep",
	"lpf",
	"lpfSweep",
	"lpfResonance",
	"hpf",
	"hpfSweep",
	"vol",
}

// FieldNames returns the settable parameter keys, "shape" first.
func FieldNames() []string {
	names := make([]string, 0, numFloatFields+1)
	names = append(names, "shape")
	return append(names, fieldNames[:]...)
}

// Set assigns a single parameter by key. Keys are those from FieldNames.
func (p *Params) Set(key string, value float64) error {
	if key == "shape" {
		w := WaveType(int(value))
		if !w.Valid() || float64(w) != value {
			return invalidWaveType(w)
		}
		p.WaveType = w
		return nil
	}
	fields := p.floatFields()
	for i, name := range fieldNames {
		if name == key {
			*fields[i] = value
			return nil
		}
	}
	return &UnknownFieldError{Key: key}
}

// Get returns a single parameter by key.
func (p *Params) Get(key string) (float64, error) {
	if key == "shape" {
		return float64(p.WaveType), nil
	}
	fields := p.floatFields()
	for i, name := range fieldNames {
		if name == key {
			return *fields[i], nil
		}
	}
	return 0, &UnknownFieldError{Key: key}
}
