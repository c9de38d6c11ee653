package sound

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingSink struct {
	loops    []string
	oneShots []string
}

func (r *recordingSink) PlayLoop(clip string)    { r.loops = append(r.loops, clip) }
func (r *recordingSink) PlayOneShot(clip string) { r.oneShots = append(r.oneShots, clip) }

func TestEasterEggClipIsSelectable(t *testing.T) {
	sink := &recordingSink{}
	NewManager(DefaultClips(true), sink).Play(EasterEgg)
	NewManager(DefaultClips(false), sink).Play(EasterEgg)

	assert.Equal(t, []string{"game_start", "easter_egg"}, sink.oneShots)
}

func TestManagerPlaysClips(t *testing.T) {
	sink := &recordingSink{}
	m := NewManager(DefaultClips(false), sink)

	m.PlayMainTheme()
	m.Play(CorrectAnswer)
	m.Play(Sound(42))

	assert.Equal(t, []string{"main_theme"}, sink.loops)
	assert.Equal(t, []string{"correct_answer"}, sink.oneShots)
}
