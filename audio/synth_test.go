package audio

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/simukka/fxz/common"
)

func floatNear(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func allFinite(samples []float64) bool {
	for _, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func TestGenerate_DefaultParams(t *testing.T) {
	snd, err := Generate(DefaultParams())
	if err != nil {
		t.Fatalf("Generate: unexpected error %v", err)
	}

	// attack 0, sustain 9000, decay 16000, plus one sample per stage change
	if len(snd.Samples) != 25002 {
		t.Errorf("Length: expected 25002, got %d", len(snd.Samples))
	}
	if snd.End != EndEnvelope {
		t.Errorf("End: expected %v, got %v", EndEnvelope, snd.End)
	}
	if !allFinite(snd.Samples) {
		t.Error("Default params should produce finite samples")
	}
	if snd.Peak() == 0 {
		t.Error("Default params should produce audible samples")
	}
}

func TestGenerate_WaveTypes(t *testing.T) {
	tests := []struct {
		name string
		wave WaveType
	}{
		{"Square", WaveSquare},
		{"Sawtooth", WaveSawtooth},
		{"Sine", WaveSine},
		{"Noise", WaveNoise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			p.WaveType = tt.wave

			snd, err := Generate(p)
			if err != nil {
				t.Fatalf("Generate: unexpected error %v", err)
			}
			if len(snd.Samples) == 0 {
				t.Fatalf("%s wave should produce samples", tt.name)
			}
			if !allFinite(snd.Samples) {
				t.Errorf("%s wave produced non-finite samples", tt.name)
			}
			if snd.Peak() == 0 {
				t.Errorf("%s wave should produce non-zero samples", tt.name)
			}
		})
	}
}

func TestGenerate_InvalidWaveType(t *testing.T) {
	for _, w := range []WaveType{-1, 4, 99} {
		p := DefaultParams()
		p.WaveType = w

		snd, err := Generate(p)
		if !errors.Is(err, ErrInvalidWaveType) {
			t.Errorf("WaveType %d: expected ErrInvalidWaveType, got %v", w, err)
		}
		if snd != nil {
			t.Errorf("WaveType %d: expected no sound on error", w)
		}
	}
}

func TestGenerate_EndsOnEnvelope(t *testing.T) {
	p := DefaultParams()
	p.AttackTime = 0.2
	p.SustainTime = 0.3
	p.DecayTime = 0.4
	p.Slide = 0.2 // pitch rises, never reaching the floor

	snd, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: unexpected error %v", err)
	}
	if snd.End != EndEnvelope {
		t.Errorf("End: expected %v, got %v", EndEnvelope, snd.End)
	}
	want := 4000 + 9000 + 16000 + 2
	if len(snd.Samples) != want {
		t.Errorf("Length: expected %d, got %d", want, len(snd.Samples))
	}
}

func TestGenerate_EndsOnFrequencyCutoff(t *testing.T) {
	p := DefaultParams()
	p.StartFrequency = 0.5
	p.MinFrequency = 0.3
	p.Slide = -0.5 // period grows by 0.125% per sample

	snd, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: unexpected error %v", err)
	}
	if snd.End != EndFrequencyCutoff {
		t.Errorf("End: expected %v, got %v", EndFrequencyCutoff, snd.End)
	}
	// ln(1098.9/398.4) / ln(1.00125) ~= 812
	if len(snd.Samples) < 800 || len(snd.Samples) > 820 {
		t.Errorf("Length: expected about 812, got %d", len(snd.Samples))
	}
}

func TestGenerate_MinimumOneSample(t *testing.T) {
	p := DefaultParams()
	p.StartFrequency = 0.1
	p.MinFrequency = 0.5 // starts below the floor

	snd, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: unexpected error %v", err)
	}
	if len(snd.Samples) != 1 || snd.Samples[0] != 0 {
		t.Errorf("Expected a single silent sample, got %v", snd.Samples)
	}
	if snd.End != EndFrequencyCutoff {
		t.Errorf("End: expected %v, got %v", EndFrequencyCutoff, snd.End)
	}
}

func TestGenerate_SampleLimit(t *testing.T) {
	synth := NewSynth(DefaultParams())
	synth.Config.MaxSamples = 1000

	snd, err := synth.Generate()
	if !errors.Is(err, ErrSampleLimit) {
		t.Fatalf("Expected ErrSampleLimit, got %v", err)
	}
	if snd != nil {
		t.Error("Expected no partial sound when the limit is hit")
	}

	// A sound exactly at the limit is fine.
	synth.Config.MaxSamples = 25002
	if _, err := synth.Generate(); err != nil {
		t.Errorf("Expected success at the limit, got %v", err)
	}
}

func TestGenerate_DeterministicNoise(t *testing.T) {
	p := DefaultParams()
	p.WaveType = WaveNoise

	render := func(seed uint32) []float64 {
		s := NewSynth(p)
		s.Config.Seed = seed
		snd, err := s.Generate()
		if err != nil {
			t.Fatalf("Generate: unexpected error %v", err)
		}
		return snd.Samples
	}

	a, b, c := render(1), render(1), render(2)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Sample %d: same seed gave %f and %f", i, a[i], b[i])
		}
	}
	differs := false
	for i := range a {
		if a[i] != c[i] {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("Different seeds should produce different noise")
	}
}

func TestGenerate_InjectedNoiseSource(t *testing.T) {
	p := DefaultParams()
	p.WaveType = WaveNoise

	s := NewSynth(p)
	s.Config.Noise = common.NewSeededRNG(77)
	a, err := s.Generate()
	if err != nil {
		t.Fatalf("Generate: unexpected error %v", err)
	}

	s.Config.Noise = nil
	s.Config.Seed = 77
	b, err := s.Generate()
	if err != nil {
		t.Fatalf("Generate: unexpected error %v", err)
	}
	for i := range a.Samples {
		if a.Samples[i] != b.Samples[i] {
			t.Fatalf("Sample %d: injected source and seed disagree", i)
		}
	}
}

func TestGenerate_GainScalesSamples(t *testing.T) {
	quiet := DefaultParams()
	quiet.MasterVolume = 0.5
	loud := quiet
	loud.MasterVolume = 1

	a, err := Generate(quiet)
	if err != nil {
		t.Fatalf("Generate: unexpected error %v", err)
	}
	b, err := Generate(loud)
	if err != nil {
		t.Fatalf("Generate: unexpected error %v", err)
	}
	if len(a.Samples) != len(b.Samples) {
		t.Fatalf("Length: expected equal lengths, got %d and %d", len(a.Samples), len(b.Samples))
	}

	ratio := (math.Pow(2, 1) - 1) / (math.Pow(2, 0.5) - 1)
	for i := range a.Samples {
		if !floatNear(b.Samples[i], a.Samples[i]*ratio, 1e-12) {
			t.Fatalf("Sample %d: expected %g, got %g", i, a.Samples[i]*ratio, b.Samples[i])
		}
	}
}

func TestGenerate_Concurrent(t *testing.T) {
	p := DefaultParams()
	p.WaveType = WaveNoise
	p.FlangerOffset = 0.3
	p.LpFilterCutoff = 0.4

	want, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: unexpected error %v", err)
	}

	var wg sync.WaitGroup
	results := make([]*Sound, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Generate(p)
		}(i)
	}
	wg.Wait()

	for n, got := range results {
		if got == nil || len(got.Samples) != len(want.Samples) {
			t.Fatalf("Render %d: unexpected result", n)
		}
		for i := range want.Samples {
			if got.Samples[i] != want.Samples[i] {
				t.Fatalf("Render %d sample %d: expected %f, got %f", n, i, want.Samples[i], got.Samples[i])
			}
		}
	}
}

func TestGenerate_Library(t *testing.T) {
	for _, sfx := range SoundEffectLibrary {
		t.Run(sfx.Name, func(t *testing.T) {
			snd, err := sfx.Generate(DefaultConfig)
			if err != nil {
				t.Fatalf("Generate: unexpected error %v", err)
			}
			if len(snd.Samples) == 0 {
				t.Fatal("Expected samples")
			}
			if !allFinite(snd.Samples) {
				t.Error("Expected finite samples")
			}
		})
	}
}

func TestVoice_DutyStaysInRange(t *testing.T) {
	tests := []struct {
		name  string
		duty  float64
		sweep float64
	}{
		{"SweepUp", 0, -1},
		{"SweepDown", 1, 1},
		{"OutOfRangeDuty", -3, 0},
		{"HugeSweep", 0.5, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			p.SquareDuty = tt.duty
			p.DutySweep = tt.sweep

			v, err := newVoice(p, common.NewSeededRNG(1))
			if err != nil {
				t.Fatalf("newVoice: unexpected error %v", err)
			}
			for i := 0; i < 20000; i++ {
				if _, ok := v.next(i); !ok {
					break
				}
				if d := v.pitch.squareDuty; d < 0 || d > 0.5 {
					t.Fatalf("Sample %d: duty %f outside [0, 0.5]", i, d)
				}
			}
		})
	}
}

func TestVoice_ArpeggioFiresOnce(t *testing.T) {
	p := DefaultParams()
	p.ChangeAmount = 0.5
	p.ChangeSpeed = 0.5 // fires at sample 5032

	v, err := newVoice(p, common.NewSeededRNG(1))
	if err != nil {
		t.Fatalf("newVoice: unexpected error %v", err)
	}
	start := v.pitch.period
	if v.pitch.changeTime != 5032 {
		t.Fatalf("changeTime: expected 5032, got %d", v.pitch.changeTime)
	}

	for i := 0; i < 5032; i++ {
		v.next(i)
	}
	if v.pitch.period != start {
		t.Errorf("Period before arpeggio: expected %f, got %f", start, v.pitch.period)
	}

	v.next(5032)
	want := start * (1 - 0.25*0.9)
	if !floatNear(v.pitch.period, want, 1e-9) {
		t.Errorf("Period after arpeggio: expected %f, got %f", want, v.pitch.period)
	}
	if v.pitch.changeTime != 0 {
		t.Errorf("changeTime: expected 0 after firing, got %d", v.pitch.changeTime)
	}
}

func TestVoice_NegativeArpeggioRaisesPeriod(t *testing.T) {
	var ps pitch
	p := DefaultParams()
	p.ChangeAmount = -0.5
	ps.reset(&p)

	if !floatNear(ps.changeAmount, 1+0.25*10, 1e-12) {
		t.Errorf("changeAmount: expected 3.5, got %f", ps.changeAmount)
	}

	p.ChangeSpeed = 1
	ps.reset(&p)
	if ps.changeTime != 0 {
		t.Errorf("changeTime: expected 0 for full speed, got %d", ps.changeTime)
	}
}

func TestVoice_RepeatRestoresPitch(t *testing.T) {
	p := DefaultParams()
	p.Slide = 0.3
	p.RepeatSpeed = 0.5 // repeats every 5032 samples

	v, err := newVoice(p, common.NewSeededRNG(1))
	if err != nil {
		t.Fatalf("newVoice: unexpected error %v", err)
	}
	if v.repeatLimit != 5032 {
		t.Fatalf("repeatLimit: expected 5032, got %d", v.repeatLimit)
	}

	v.next(0)
	first := v.pitch.period
	for i := 1; i < 5031; i++ {
		v.next(i)
	}
	if v.pitch.period == first {
		t.Fatal("Period should have slid before the repeat")
	}

	v.next(5031)
	if !floatNear(v.pitch.period, first, 1e-9) {
		t.Errorf("Period after repeat: expected %f, got %f", first, v.pitch.period)
	}
}

func TestEnvelope_PunchZeroIsContinuous(t *testing.T) {
	e := envelope{length: [3]int{100, 100, 100}}

	var vols []float64
	for {
		vol, ok := e.advance()
		if !ok {
			break
		}
		vols = append(vols, vol)
	}

	if len(vols) != e.total() {
		t.Fatalf("Length: expected %d, got %d", e.total(), len(vols))
	}
	// attack ends at index 99, sustain runs 100..200, decay starts at 201
	checks := map[int]float64{
		0:   0.01,
		99:  1,
		100: 1,
		200: 1,
		201: 1,
		301: 0,
	}
	for i, want := range checks {
		if !floatNear(vols[i], want, 1e-12) {
			t.Errorf("Volume %d: expected %f, got %f", i, want, vols[i])
		}
	}
	if e.stage != stageDone {
		t.Errorf("Stage: expected %d, got %d", stageDone, e.stage)
	}
}

func TestEnvelope_Punch(t *testing.T) {
	e := envelope{length: [3]int{0, 10, 10}, punch: 0.5}

	vol, _ := e.advance()
	if e.stage != stageSustain {
		t.Fatalf("Zero-length attack should be skipped, stage %d", e.stage)
	}
	if !floatNear(vol, 2, 1e-12) {
		t.Errorf("Sustain start: expected 2, got %f", vol)
	}
}

func TestEnvelope_ZeroLengthStagesStayFinite(t *testing.T) {
	e := envelope{}
	count := 0
	for {
		vol, ok := e.advance()
		if !ok {
			break
		}
		if math.IsNaN(vol) {
			t.Fatalf("Volume %d is NaN", count)
		}
		count++
	}
	if count != 2 {
		t.Errorf("Length: expected 2, got %d", count)
	}
}

func TestLowPass_DisabledTracksInput(t *testing.T) {
	f := lowPass{on: false, cutoff: 0.1, deltaCutoff: 1}
	rng := common.NewSeededRNG(3)

	for i := 0; i < 1000; i++ {
		x := rng.Signed()
		if got := f.filter(x); got != x {
			t.Fatalf("Step %d: expected %f, got %f", i, x, got)
		}
		if f.deltaPos != 0 {
			t.Fatalf("Step %d: delta should stay 0, got %f", i, f.deltaPos)
		}
	}
}

func TestLowPass_EnabledSmooths(t *testing.T) {
	f := lowPass{on: true, cutoff: 0.01, deltaCutoff: 1, damping: 0.1}
	out := f.filter(1)
	if out <= 0 || out >= 1 {
		t.Errorf("First step: expected a value in (0,1), got %f", out)
	}
}

func TestLowPass_CutoffClamp(t *testing.T) {
	f := lowPass{on: true, cutoff: 0.09, deltaCutoff: 2}
	f.filter(0)
	if f.cutoff != 0.1 {
		t.Errorf("Cutoff: expected 0.1, got %f", f.cutoff)
	}

	f = lowPass{on: true, cutoff: 0.05, deltaCutoff: -1}
	f.filter(0)
	if f.cutoff != 0 {
		t.Errorf("Cutoff: expected 0, got %f", f.cutoff)
	}
}

func TestHighPass_SweepClamp(t *testing.T) {
	f := highPass{cutoff: 0, deltaCutoff: 1}
	f.sweep()
	if f.cutoff != 0.00001 {
		t.Errorf("Cutoff: expected 0.00001, got %f", f.cutoff)
	}

	f = highPass{cutoff: 0.1, deltaCutoff: 1.5}
	f.sweep()
	if f.cutoff != 0.1 {
		t.Errorf("Cutoff: expected 0.1, got %f", f.cutoff)
	}

	f = highPass{cutoff: 0.05, deltaCutoff: 0}
	f.sweep()
	if f.cutoff != 0.05 {
		t.Errorf("Zero sweep should leave cutoff alone, got %f", f.cutoff)
	}
}

func TestFlanger_ZeroOffsetDoubles(t *testing.T) {
	var f flanger
	rng := common.NewSeededRNG(5)

	for i := 0; i < 2*flangerSize; i++ {
		f.step()
		x := rng.Signed()
		if got := f.process(x); got != 2*x {
			t.Fatalf("Step %d: expected %f, got %f", i, 2*x, got)
		}
	}
}

func TestFlanger_Lag(t *testing.T) {
	tests := []struct {
		offset float64
		want   int
	}{
		{0, 0},
		{3.7, 3},
		{-3.5, 4},
		{1020, 1020},
		{5000, 1023},
		{-5000, 1023},
	}

	for _, tt := range tests {
		f := flanger{offset: tt.offset}
		f.step()
		if f.lag != tt.want {
			t.Errorf("Offset %f: expected lag %d, got %d", tt.offset, tt.want, f.lag)
		}
	}
}

func TestFlanger_DelayedEcho(t *testing.T) {
	f := flanger{offset: 2}
	f.step()

	got := []float64{f.process(1), f.process(0), f.process(0), f.process(0)}
	want := []float64{1, 0, 1, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Step %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestOscillator_Shapes(t *testing.T) {
	o := oscillator{wave: WaveSquare, period: 8}
	if got := o.next(0.5); got != 0.5 {
		t.Errorf("Square high half: expected 0.5, got %f", got)
	}
	o.phase = 4
	if got := o.next(0.5); got != -0.5 {
		t.Errorf("Square low half: expected -0.5, got %f", got)
	}

	o = oscillator{wave: WaveSawtooth, period: 8, phase: -1}
	if got := o.next(0.5); got != -1 {
		t.Errorf("Sawtooth start: expected -1, got %f", got)
	}
	o.phase = 3
	if got := o.next(0.5); got != 1 {
		t.Errorf("Sawtooth peak: expected 1, got %f", got)
	}

	o = oscillator{wave: WaveSine, period: 8, phase: 1}
	if got := o.next(0.5); !floatNear(got, 1, 1e-12) {
		t.Errorf("Sine quarter: expected 1, got %f", got)
	}
}

func TestOscillator_NoiseRefreshOnWrap(t *testing.T) {
	o := oscillator{wave: WaveNoise, period: 8, rng: common.NewSeededRNG(9)}
	o.refill()
	before := o.noise

	for i := 0; i < 7; i++ {
		o.next(0.5)
	}
	if o.noise != before {
		t.Fatal("Noise should not change before the period wraps")
	}
	o.next(0.5)
	if o.noise == before {
		t.Error("Noise should be refreshed when the period wraps")
	}
	for _, v := range o.noise {
		if v < -1 || v >= 1 {
			t.Errorf("Noise value %f outside [-1,1)", v)
		}
	}
}

func TestIntPeriod(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{100.9, 100},
		{8, 8},
		{3.2, 8},
		{-50, 8},
		{math.NaN(), 8},
	}
	for _, tt := range tests {
		if got := intPeriod(tt.in); got != tt.want {
			t.Errorf("intPeriod(%f): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestDerivedConstants(t *testing.T) {
	p := DefaultParams()
	p.LpFilterCutoff = 0.5
	p.LpFilterResonance = 0.5
	p.HpFilterCutoff = 0.5
	p.VibratoDepth = 0.4
	p.VibratoSpeed = 0.5
	p.FlangerOffset = -0.5
	p.FlangerSweep = -0.5
	p.RepeatSpeed = 0.5

	v, err := newVoice(p, common.NewSeededRNG(1))
	if err != nil {
		t.Fatalf("newVoice: unexpected error %v", err)
	}

	checks := []struct {
		name      string
		got, want float64
	}{
		{"lp.cutoff", v.lp.cutoff, 0.0125},
		{"lp.damping", v.lp.damping, 5 / 6.0 * 0.0225},
		{"hp.cutoff", v.hp.cutoff, 0.025},
		{"vibratoSpeed", v.vibratoSpeed, 0.0025},
		{"vibratoAmplitude", v.vibratoAmplitude, 0.2},
		{"flanger.offset", v.flg.offset, -255},
		{"flanger.sweep", v.flg.sweep, -0.25},
		{"gain", v.gain, math.Sqrt2 - 1},
		{"repeatLimit", float64(v.repeatLimit), 5032},
		{"sustainLength", float64(v.env.length[1]), 9000},
	}
	for _, c := range checks {
		if !floatNear(c.got, c.want, 1e-12) {
			t.Errorf("%s: expected %g, got %g", c.name, c.want, c.got)
		}
	}
	if !v.lp.on {
		t.Error("Low-pass should be on below cutoff 1")
	}
}

func TestSound_Duration(t *testing.T) {
	snd := &Sound{Samples: make([]float64, SampleRate/2)}
	if got := snd.Duration().Milliseconds(); got != 500 {
		t.Errorf("Duration: expected 500ms, got %dms", got)
	}
}
