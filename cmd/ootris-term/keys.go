package main

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/ootris/loop"
)

// termKey identifies a key press: a special key, or KeyRune with a
// lower-cased rune.
type termKey struct {
	key tcell.Key
	r   rune
}

var namedKeys = map[string]tcell.Key{
	"arrowleft":  tcell.KeyLeft,
	"arrowright": tcell.KeyRight,
	"arrowup":    tcell.KeyUp,
	"arrowdown":  tcell.KeyDown,
	"enter":      tcell.KeyEnter,
	"escape":     tcell.KeyEscape,
	"tab":        tcell.KeyTab,
	"backspace":  tcell.KeyBackspace2,
	"home":       tcell.KeyHome,
	"end":        tcell.KeyEnd,
	"pageup":     tcell.KeyPgUp,
	"pagedown":   tcell.KeyPgDn,
	"insert":     tcell.KeyInsert,
	"delete":     tcell.KeyDelete,
}

// termBinding translates a configured key name into a terminal key.
func termBinding(name string) (termKey, bool) {
	lower := strings.ToLower(name)
	if k, ok := namedKeys[lower]; ok {
		return termKey{key: k}, true
	}

	switch {
	case lower == "space":
		return termKey{key: tcell.KeyRune, r: ' '}, true
	case strings.HasPrefix(lower, "digit") && len(lower) == len("digit")+1:
		return termKey{key: tcell.KeyRune, r: rune(lower[len(lower)-1])}, true
	case len(lower) >= 2 && lower[0] == 'f':
		var n int
		for _, c := range lower[1:] {
			if c < '0' || c > '9' {
				return termKey{}, false
			}
			n = n*10 + int(c-'0')
		}
		if n >= 1 && n <= 12 {
			return termKey{key: tcell.KeyF1 + tcell.Key(n-1)}, true
		}
		return termKey{}, false
	}

	if utf8.RuneCountInString(lower) == 1 {
		r, _ := utf8.DecodeRuneInString(lower)
		return termKey{key: tcell.KeyRune, r: r}, true
	}
	return termKey{}, false
}

func resolveKeys(bindings map[string]loop.Intent, logger *slog.Logger) map[termKey]loop.Intent {
	keys := make(map[termKey]loop.Intent)
	for name, intent := range bindings {
		k, ok := termBinding(name)
		if !ok {
			logger.Warn("Key has no terminal equivalent.", "key", name, "intent", intent.String())
			continue
		}
		keys[k] = intent
	}
	return keys
}

func keyOf(ev *tcell.EventKey) termKey {
	if ev.Key() == tcell.KeyRune {
		return termKey{key: tcell.KeyRune, r: unicode.ToLower(ev.Rune())}
	}
	return termKey{key: ev.Key()}
}
