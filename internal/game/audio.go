package game

import (
	"errors"
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"racer/internal/config"
	"racer/internal/log"
)

const (
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)

	// MaxVoices caps overlapping one-shot sounds; more clip the speakers.
	MaxVoices = 4

	engineIdleHz     = 38.0
	engineHzPerSpeed = 9.0
	engineMaxHz      = 180.0
	engineGain       = 0.35
)

var ErrSampleRate = errors.New("audio: invalid sample rate")

// SoundKind identifies a one-shot sound effect.
type SoundKind int

const (
	SoundImpact SoundKind = iota
	SoundStart
	SoundPause
	soundKinds
)

func (k SoundKind) String() string {
	switch k {
	case SoundImpact:
		return "impact"
	case SoundStart:
		return "start"
	case SoundPause:
		return "pause"
	}
	return "unknown"
}

// SoundBank holds pre-rendered stereo float32 samples per kind.
type SoundBank struct {
	SampleRate int
	samples    [soundKinds][]byte
}

func (b *SoundBank) Samples(k SoundKind) []byte {
	if b == nil || k < 0 || k >= soundKinds {
		return nil
	}
	return b.samples[k]
}

// SynthesizeBank renders every sound effect at sampleRate.
func SynthesizeBank(sampleRate int) (*SoundBank, error) {
	if sampleRate <= 0 {
		return nil, ErrSampleRate
	}
	sr := float64(sampleRate)
	b := &SoundBank{SampleRate: sampleRate}
	b.samples[SoundImpact] = genImpact(sr)
	b.samples[SoundStart] = genStart(sr)
	b.samples[SoundPause] = genPause(sr)
	return b, nil
}

// Audio plays procedural sounds through oto. A nil *Audio is silent, so
// callers need not check whether audio was enabled.
type Audio struct {
	ctx    *oto.Context
	ready  chan struct{}
	bank   *SoundBank
	volume float64
	logger log.Log

	active atomic.Int32
	engine *engineReader
	player oto.Player
}

// NewAudio opens the output device. It returns nil, nil when audio is
// disabled in cfg.
func NewAudio(cfg config.AudioConfig, bank *SoundBank, logger log.Log) (*Audio, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if bank == nil || bank.SampleRate != cfg.SampleRate {
		return nil, ErrSampleRate
	}
	ctx, ready, err := oto.NewContext(cfg.SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	return &Audio{
		ctx:    ctx,
		ready:  ready,
		bank:   bank,
		volume: cfg.Volume,
		logger: logger.Named("audio"),
		engine: newEngineReader(float64(cfg.SampleRate)),
	}, nil
}

func (a *Audio) isReady() bool {
	select {
	case <-a.ready:
		return true
	default:
		return false
	}
}

// Play starts a one-shot sound. gain is clamped to [0, 1]. Sounds are
// dropped while the device is warming up or MaxVoices are playing.
func (a *Audio) Play(kind SoundKind, gain float64) {
	if a == nil || gain <= 0 || !a.isReady() {
		return
	}
	samples := a.bank.Samples(kind)
	if len(samples) == 0 {
		return
	}
	if a.active.Add(1) > MaxVoices {
		a.active.Add(-1)
		return
	}
	go func() {
		defer a.active.Add(-1)
		player := a.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(a.volume * clampF(gain, 0, 1))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			a.logger.Warn("close player", log.String("sound", kind.String()), log.Error(err))
		}
	}()
}

// SetEngine retunes the engine loop to the vehicle speed in pixels per
// frame. The loop starts on first use once the device is ready.
func (a *Audio) SetEngine(speed float64) {
	if a == nil {
		return
	}
	a.engine.setTarget(clampF(engineIdleHz+speed*engineHzPerSpeed, engineIdleHz, engineMaxHz))
	if a.player == nil && a.isReady() {
		a.player = a.ctx.NewPlayer(a.engine)
		a.player.SetVolume(a.volume * engineGain)
		a.player.Play()
	}
}

// Mute silences the engine loop without releasing it.
func (a *Audio) Mute(muted bool) {
	if a == nil || a.player == nil {
		return
	}
	if muted {
		a.player.Pause()
	} else {
		a.player.Play()
	}
}

func (a *Audio) Close() {
	if a == nil || a.player == nil {
		return
	}
	if err := a.player.Close(); err != nil {
		a.logger.Warn("close engine", log.Error(err))
	}
	a.player = nil
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// engineReader streams an endless engine drone. The frame loop writes the
// target pitch; the audio goroutine glides towards it.
type engineReader struct {
	sampleRate float64
	target     atomic.Uint64 // float64 bits, Hz
	freq       float64
	phase      float64
	lp         float64
	seed       uint64
}

func newEngineReader(sampleRate float64) *engineReader {
	r := &engineReader{sampleRate: sampleRate, freq: engineIdleHz, seed: 0x9e3779b97f4a7c15}
	r.setTarget(engineIdleHz)
	return r
}

func (r *engineReader) setTarget(hz float64) { r.target.Store(math.Float64bits(hz)) }

func (r *engineReader) Read(p []byte) (int, error) {
	n := len(p) / 8
	target := math.Float64frombits(r.target.Load())
	slew := 240.0 / r.sampleRate // Hz per sample
	for i := 0; i < n; i++ {
		r.freq = approach(r.freq, target, slew)
		r.phase += r.freq / r.sampleRate
		r.phase -= math.Floor(r.phase)

		// Two-cylinder pulse: a saw with a sub-octave and filtered rumble.
		saw := 2*r.phase - 1
		sub := math.Sin(2 * math.Pi * r.phase * 0.5)
		r.lp = r.lp*0.97 + lcg(&r.seed)*0.03
		s := saw*0.35 + sub*0.45 + r.lp*0.6
		putStereoF32(p, i, softSat(s*0.7))
	}
	return n * 8, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation, output stays in [-1, 1].
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
// carrier: base frequency, modRatio: modulator/carrier ratio, modIdx: modulation depth.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// genImpact: metallic thud. A falling sine body, a noise crack and a
// short inharmonic FM ring for the panel.
func genImpact(sr float64) []byte {
	n := int(0.22 * sr)
	buf := makeBuf(n)
	seed := uint64(0x1badb002)
	lp := 0.0
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		t := float64(i) / sr

		freq := 120.0 * math.Pow(45.0/120.0, p)
		phase += 2 * math.Pi * freq / sr
		body := math.Sin(phase) * math.Exp(-p*6) * 0.7

		crack := 0.0
		if p < 0.04 {
			crack = lcg(&seed) * (1 - p/0.04) * 0.6
		}
		lp = lp*0.85 + lcg(&seed)*0.15
		grit := lp * math.Exp(-p*9) * 0.35

		ring := fm(t, 410, 1.41, 2.2*math.Exp(-p*12)) * math.Exp(-p*14) * 0.18

		putStereoF32(buf, i, softSat(body+crack+grit+ring))
	}
	return buf
}

// genStart: two rising FM blips, played when the race begins.
func genStart(sr float64) []byte {
	freqs := []float64{440, 880} // A4 A5
	noteLen := int(0.09 * sr)
	tail := int(0.12 * sr)
	total := len(freqs)*noteLen + tail
	mix := make([]float64, total)

	for fi, freq := range freqs {
		start := fi * noteLen
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / sr
			env := adsr(float64(j)/float64(dur), 0.01, 0.4, 0.1, 0.4)
			mix[start+j] += fm(t, freq, 2.0, 1.5*env) * env * 0.4
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genPause: soft descending blip.
func genPause(sr float64) []byte {
	n := int(0.12 * sr)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		t := float64(i) / sr
		freq := 660 - 220*p
		env := adsr(p, 0.02, 0.3, 0.4, 0.5)
		putStereoF32(buf, i, softSat(math.Sin(2*math.Pi*freq*t)*env*0.4))
	}
	return buf
}
