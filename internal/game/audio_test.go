package game

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racer/internal/config"
	"racer/internal/log"
)

// requireStereoInRange checks that buf holds identical stereo float32
// frames inside [-1, 1].
func requireStereoInRange(t *testing.T, buf []byte) {
	t.Helper()
	require.Zero(t, len(buf)%8)
	for i := 0; i < len(buf); i += 8 {
		l := math.Float32frombits(binary.LittleEndian.Uint32(buf[i:]))
		r := math.Float32frombits(binary.LittleEndian.Uint32(buf[i+4:]))
		require.Equal(t, l, r, "frame %d", i/8)
		require.False(t, math.IsNaN(float64(l)), "frame %d", i/8)
		require.LessOrEqual(t, math.Abs(float64(l)), 1.0, "frame %d", i/8)
	}
}

func TestSynthesizeBank(t *testing.T) {
	const rate = 8000
	bank, err := SynthesizeBank(rate)
	require.NoError(t, err)
	assert.Equal(t, rate, bank.SampleRate)

	assert.Len(t, bank.Samples(SoundImpact), int(0.22*rate)*8)
	assert.Len(t, bank.Samples(SoundPause), int(0.12*rate)*8)
	for k := SoundImpact; k < soundKinds; k++ {
		s := bank.Samples(k)
		require.NotEmpty(t, s, k.String())
		requireStereoInRange(t, s)
	}
	assert.Nil(t, bank.Samples(soundKinds))
	assert.Equal(t, "unknown", soundKinds.String())
}

func TestSynthesizeBankRejectsRate(t *testing.T) {
	_, err := SynthesizeBank(0)
	assert.ErrorIs(t, err, ErrSampleRate)
}

func TestEngineReaderGlides(t *testing.T) {
	r := newEngineReader(8000)
	r.setTarget(100)

	buf := make([]byte, 100*8)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.InDelta(t, engineIdleHz+100*240.0/8000, r.freq, 1e-9)
	requireStereoInRange(t, buf)

	// The pitch settles on the target and stays there.
	for i := 0; i < 40; i++ {
		_, err = r.Read(buf)
		require.NoError(t, err)
	}
	assert.Equal(t, 100.0, r.freq)
}

func TestSoundReaderDrains(t *testing.T) {
	r := &soundReader{data: []byte{1, 2, 3, 4, 5}}
	buf := make([]byte, 4)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	n, err = r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = r.Read(buf)
	assert.Error(t, err)
}

func TestNewAudioDisabled(t *testing.T) {
	a, err := NewAudio(config.AudioConfig{Enabled: false}, nil, log.NewNop())
	require.NoError(t, err)
	assert.Nil(t, a)

	// A nil Audio is silent.
	a.Play(SoundImpact, 1)
	a.SetEngine(3)
	a.Mute(true)
	a.Close()
}

func TestNewAudioBankMismatch(t *testing.T) {
	bank, err := SynthesizeBank(8000)
	require.NoError(t, err)
	_, err = NewAudio(config.AudioConfig{Enabled: true, SampleRate: 44100, Volume: 1}, bank, log.NewNop())
	assert.ErrorIs(t, err, ErrSampleRate)
}
