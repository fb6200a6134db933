package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/ootris/loop"
)

// keyByName resolves an ebiten key name such as "ArrowLeft" or "Space",
// ignoring case.
func keyByName(name string) (ebiten.Key, bool) {
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, true
		}
	}
	return 0, false
}

func resolveKeys(bindings map[string]loop.Intent) (map[loop.Intent][]ebiten.Key, error) {
	keys := make(map[loop.Intent][]ebiten.Key)
	for name, intent := range bindings {
		k, ok := keyByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown key %q bound to %s", name, intent)
		}
		keys[intent] = append(keys[intent], k)
	}
	return keys, nil
}

// inputState turns keyboard state into intents, applying auto-shift to
// the movement intents.
type inputState struct {
	keys    map[loop.Intent][]ebiten.Key
	repeats map[loop.Intent]*loop.KeyRepeat
}

func newInputState(keys map[loop.Intent][]ebiten.Key) *inputState {
	return &inputState{keys: keys, repeats: loop.DefaultRepeats()}
}

func (s *inputState) poll(dt float64, push func(loop.Intent)) {
	for _, intent := range loop.Intents() {
		pressed, down := false, false
		for _, k := range s.keys[intent] {
			pressed = pressed || inpututil.IsKeyJustPressed(k)
			down = down || ebiten.IsKeyPressed(k)
		}

		if r, ok := s.repeats[intent]; ok {
			if r.Update(pressed, down, dt) {
				push(intent)
			}
			continue
		}
		if pressed {
			push(intent)
		}
	}
}

// reset clears the repeat timers, e.g. while the inspector owns the keyboard.
func (s *inputState) reset() {
	for _, r := range s.repeats {
		r.Update(false, false, 0)
	}
}
