package audio

import (
	"fmt"
	"math"
	"time"
)

const (
	// SampleRate is the fixed output rate of every render.
	SampleRate = 44100

	oversampling = 8
	flangerSize  = 1024
	noiseSize    = 32
)

// Envelope stages.
const (
	stageAttack = iota
	stageSustain
	stageDecay
	stageDone
)

// EndReason tells how a render finished.
type EndReason int

const (
	// EndEnvelope means the decay stage ran out.
	EndEnvelope EndReason = iota
	// EndFrequencyCutoff means the pitch fell to MinFrequency.
	EndFrequencyCutoff
)

func (r EndReason) String() string {
	switch r {
	case EndEnvelope:
		return "envelope"
	case EndFrequencyCutoff:
		return "frequency-cutoff"
	default:
		return "unknown"
	}
}

// Sound is a finished mono render at SampleRate.
type Sound struct {
	Samples []float64
	End     EndReason
}

// Duration returns the playing time of the sound.
func (s *Sound) Duration() time.Duration {
	return time.Duration(len(s.Samples)) * time.Second / SampleRate
}

// Peak returns the largest absolute sample value.
func (s *Sound) Peak() float64 {
	peak := 0.0
	for _, v := range s.Samples {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// Synth is the sound synthesizer engine. It holds only inputs; every call to
// Generate builds fresh state, so a Synth may be used from several goroutines.
type Synth struct {
	Params Params
	Config Config
}

// NewSynth creates a synthesizer for p using DefaultConfig.
func NewSynth(p Params) *Synth {
	return &Synth{Params: p, Config: DefaultConfig}
}

// Generate renders the whole sound.
func (s *Synth) Generate() (*Sound, error) {
	v, err := newVoice(s.Params, s.Config.noise())
	if err != nil {
		return nil, err
	}
	return v.run(s.Config.maxSamples())
}

// Generate renders p with DefaultConfig.
func Generate(p Params) (*Sound, error) {
	return NewSynth(p).Generate()
}

// pitch is the part of the voice that is re-derived on every repeat.
type pitch struct {
	elapsed int // samples since last repeat

	period     float64
	maxPeriod  float64
	cutoff     bool
	slide      float64
	deltaSlide float64

	squareDuty float64
	dutySweep  float64

	changeAmount float64
	changeTime   int // output index at which the arpeggio fires, 0 = never
}

func (ps *pitch) reset(p *Params) {
	ps.elapsed = 0

	ps.period = 100 / (p.StartFrequency*p.StartFrequency + 0.001)
	ps.maxPeriod = 100 / (p.MinFrequency*p.MinFrequency + 0.001)
	ps.cutoff = p.MinFrequency > 0
	ps.slide = 1 - math.Pow(p.Slide, 3)*0.01
	ps.deltaSlide = -math.Pow(p.DeltaSlide, 3) * 0.000001

	ps.squareDuty = 0.5 - p.SquareDuty*0.5
	ps.dutySweep = -p.DutySweep * 0.00005

	if p.ChangeAmount >= 0 {
		ps.changeAmount = 1 - p.ChangeAmount*p.ChangeAmount*0.9
	} else {
		ps.changeAmount = 1 + p.ChangeAmount*p.ChangeAmount*10
	}
	ps.changeTime = int(math.Floor((1-p.ChangeSpeed)*(1-p.ChangeSpeed)*20000 + 32))
	if p.ChangeSpeed == 1 {
		ps.changeTime = 0
	}
}

// envelope is the attack/sustain/decay stage machine.
type envelope struct {
	length  [3]int
	punch   float64
	stage   int
	elapsed int
}

// advance moves one sample forward and returns the volume for it. ok is
// false once the decay stage has finished.
func (e *envelope) advance() (vol float64, ok bool) {
	e.elapsed++
	if e.elapsed > e.length[e.stage] {
		e.elapsed = 0
		e.stage++
		if e.stage > stageDecay {
			e.stage = stageDone
			return 0, false
		}
	}

	f := 0.0
	if n := e.length[e.stage]; n > 0 {
		f = float64(e.elapsed) / float64(n)
	}
	switch e.stage {
	case stageAttack:
		return f, true
	case stageSustain:
		return 1 + (1-f)*2*e.punch, true
	default:
		return 1 - f, true
	}
}

// total returns the number of samples the envelope produces when nothing else
// ends the sound first.
func (e *envelope) total() int {
	return e.length[0] + e.length[1] + e.length[2] + 2
}

type lowPass struct {
	on          bool
	cutoff      float64
	deltaCutoff float64
	damping     float64

	pos      float64
	deltaPos float64
}

func (f *lowPass) filter(x float64) float64 {
	f.cutoff *= f.deltaCutoff
	if f.cutoff < 0 {
		f.cutoff = 0
	}
	if f.cutoff > 0.1 {
		f.cutoff = 0.1
	}

	if f.on {
		f.deltaPos += (x - f.pos) * f.cutoff
		f.deltaPos -= f.deltaPos * f.damping
	} else {
		f.pos = x
		f.deltaPos = 0
	}
	f.pos += f.deltaPos
	return f.pos
}

type highPass struct {
	cutoff      float64
	deltaCutoff float64
	pos         float64
}

// sweep runs once per output sample.
func (f *highPass) sweep() {
	if f.deltaCutoff == 0 {
		return
	}
	f.cutoff *= f.deltaCutoff
	if f.cutoff < 0.00001 {
		f.cutoff = 0.00001
	}
	if f.cutoff > 0.1 {
		f.cutoff = 0.1
	}
}

// filter takes the change in the low-pass output since the last sub-sample.
func (f *highPass) filter(delta float64) float64 {
	f.pos += delta
	f.pos -= f.pos * f.cutoff
	return f.pos
}

type flanger struct {
	offset float64
	sweep  float64
	lag    int
	buf    [flangerSize]float64
	pos    int
}

// step runs once per output sample.
func (f *flanger) step() {
	f.offset += f.sweep
	lag := math.Abs(math.Floor(f.offset))
	if !(lag <= flangerSize-1) {
		lag = flangerSize - 1
	}
	f.lag = int(lag)
}

func (f *flanger) process(x float64) float64 {
	f.buf[f.pos] = x
	x += f.buf[(f.pos-f.lag+flangerSize)&(flangerSize-1)]
	f.pos = (f.pos + 1) & (flangerSize - 1)
	return x
}

type oscillator struct {
	wave   WaveType
	phase  int
	period int
	noise  [noiseSize]float64
	rng    NoiseSource
}

func (o *oscillator) refill() {
	for i := range o.noise {
		o.noise[i] = o.rng.Random()*2 - 1
	}
}

func (o *oscillator) next(duty float64) float64 {
	o.phase++
	if o.phase >= o.period {
		o.phase %= o.period
		if o.wave == WaveNoise {
			o.refill()
		}
	}

	fp := float64(o.phase) / float64(o.period)
	switch o.wave {
	case WaveSquare:
		if fp < duty {
			return 0.5
		}
		return -0.5
	case WaveSawtooth:
		if fp < duty {
			return -1 + 2*fp/duty
		}
		return 1 - 2*(fp-duty)/(1-duty)
	case WaveSine:
		return math.Sin(fp * 2 * math.Pi)
	default:
		return o.noise[o.phase*noiseSize/o.period]
	}
}

// intPeriod floors a period to whole sub-samples, never below the
// oversampling factor.
func intPeriod(period float64) int {
	if !(period >= oversampling) {
		return oversampling
	}
	if period > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(period)
}

// voice is the mutable state of one render.
type voice struct {
	params Params
	pitch  pitch

	repeatLimit int

	vibratoPhase     float64
	vibratoSpeed     float64
	vibratoAmplitude float64

	env  envelope
	osc  oscillator
	lp   lowPass
	hp   highPass
	flg  flanger
	gain float64

	end EndReason
}

// newVoice derives every working constant from p.
func newVoice(p Params, rng NoiseSource) (*voice, error) {
	if !p.WaveType.Valid() {
		return nil, invalidWaveType(p.WaveType)
	}

	v := &voice{params: p}
	v.pitch.reset(&v.params)

	// Filters
	v.lp.cutoff = math.Pow(p.LpFilterCutoff, 3) * 0.1
	v.lp.on = p.LpFilterCutoff != 1
	v.lp.deltaCutoff = 1 + p.LpFilterCutoffSweep*0.0001
	v.lp.damping = 5 / (1 + p.LpFilterResonance*p.LpFilterResonance*20) * (0.01 + v.lp.cutoff)
	if v.lp.damping > 0.8 {
		v.lp.damping = 0.8
	}
	v.hp.cutoff = p.HpFilterCutoff * p.HpFilterCutoff * 0.1
	v.hp.deltaCutoff = 1 + p.HpFilterCutoffSweep*0.0003

	// Vibrato
	v.vibratoSpeed = p.VibratoSpeed * p.VibratoSpeed * 0.01
	v.vibratoAmplitude = p.VibratoDepth * 0.5

	// Envelope
	v.env.length = [3]int{
		int(math.Floor(p.AttackTime * p.AttackTime * 100000)),
		int(math.Floor(p.SustainTime * p.SustainTime * 100000)),
		int(math.Floor(p.DecayTime * p.DecayTime * 100000)),
	}
	v.env.punch = p.SustainPunch

	// Flanger
	v.flg.offset = p.FlangerOffset * p.FlangerOffset * 1020
	if p.FlangerOffset < 0 {
		v.flg.offset = -v.flg.offset
	}
	v.flg.sweep = p.FlangerSweep * p.FlangerSweep
	if p.FlangerSweep < 0 {
		v.flg.sweep = -v.flg.sweep
	}

	// Repeat
	if p.RepeatSpeed != 0 {
		v.repeatLimit = int(math.Floor((1-p.RepeatSpeed)*(1-p.RepeatSpeed)*20000 + 32))
	}

	v.gain = math.Pow(2, p.MasterVolume) - 1

	v.osc.wave = p.WaveType
	v.osc.period = oversampling
	v.osc.rng = rng
	v.osc.refill()

	return v, nil
}

// next renders output sample t. ok is false once the sound has ended, in
// which case v.end tells why.
func (v *voice) next(t int) (sample float64, ok bool) {
	ps := &v.pitch

	// Repeats
	if v.repeatLimit != 0 {
		ps.elapsed++
		if ps.elapsed >= v.repeatLimit {
			ps.reset(&v.params)
		}
	}

	// Arpeggio (single)
	if ps.changeTime != 0 && t >= ps.changeTime {
		ps.changeTime = 0
		ps.period *= ps.changeAmount
	}

	// Frequency slide, and slide of the slide
	ps.slide += ps.deltaSlide
	ps.period *= ps.slide
	if ps.period > ps.maxPeriod {
		ps.period = ps.maxPeriod
		if ps.cutoff {
			v.end = EndFrequencyCutoff
			return 0, false
		}
	}

	// Vibrato
	period := ps.period
	if v.vibratoAmplitude > 0 {
		v.vibratoPhase += v.vibratoSpeed
		period = ps.period * (1 + math.Sin(v.vibratoPhase)*v.vibratoAmplitude)
	}
	v.osc.period = intPeriod(period)

	// Square wave duty cycle
	ps.squareDuty += ps.dutySweep
	if ps.squareDuty < 0 {
		ps.squareDuty = 0
	}
	if ps.squareDuty > 0.5 {
		ps.squareDuty = 0.5
	}

	// Volume envelope
	envVol, ok := v.env.advance()
	if !ok {
		v.end = EndEnvelope
		return 0, false
	}

	v.flg.step()
	v.hp.sweep()

	// 8x oversampling
	for i := 0; i < oversampling; i++ {
		x := v.osc.next(ps.squareDuty)

		prev := v.lp.pos
		x = v.hp.filter(v.lp.filter(x) - prev)
		x = v.flg.process(x)

		sample += x * envVol
	}

	return sample / oversampling * v.gain, true
}

// run renders until the sound ends or limit samples have been produced.
func (v *voice) run(limit int) (*Sound, error) {
	size := v.env.total()
	if size > limit {
		size = limit
	}
	out := make([]float64, 0, size)
	for t := 0; ; t++ {
		sample, ok := v.next(t)
		if !ok {
			break
		}
		if len(out) >= limit {
			return nil, fmt.Errorf("%w: still playing after %d samples", ErrSampleLimit, limit)
		}
		out = append(out, sample)
	}

	// Sinks need at least one frame.
	if len(out) == 0 {
		out = append(out, 0)
	}
	return &Sound{Samples: out, End: v.end}, nil
}
