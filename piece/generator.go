package piece

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// ErrUnknownPolicy is returned when a generation policy name is not recognised.
var ErrUnknownPolicy = errors.New("unknown generation policy")

// Generator produces the sequence of pieces for a game. Next never fails.
type Generator interface {
	Next() Piece
}

// Policy selects how a Generator picks pieces.
type Policy string

const (
	// PolicyBag deals every kind exactly once per shuffled bag of seven.
	PolicyBag Policy = "bag"
	// PolicyUniform picks each piece independently and uniformly.
	PolicyUniform Policy = "uniform"
)

// ParsePolicy converts a configuration string into a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(name))) {
	case PolicyBag, "":
		return PolicyBag, nil
	case PolicyUniform:
		return PolicyUniform, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// NewGenerator builds a seeded generator for the given policy.
func NewGenerator(policy Policy, seed uint64) (Generator, error) {
	rng := newRand(seed)
	switch policy {
	case PolicyBag, "":
		return NewBag(rng), nil
	case PolicyUniform:
		return NewUniform(rng), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Bag is a shuffle-bag generator. Each refill is a random permutation of all
// seven kinds, so any aligned run of seven draws contains every kind once and
// the same kind never repeats more than twelve draws apart.
type Bag struct {
	rng   *rand.Rand
	queue []Kind
}

// NewBag creates a bag generator drawing randomness from rng.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{rng: rng, queue: make([]Kind, 0, NumKinds)}
}

func (b *Bag) Next() Piece {
	if len(b.queue) == 0 {
		b.refill()
	}

	kind := b.queue[0]
	b.queue = b.queue[1:]
	return New(kind)
}

// Remaining returns how many pieces are left before the next reshuffle.
func (b *Bag) Remaining() int {
	return len(b.queue)
}

func (b *Bag) refill() {
	b.queue = append(b.queue[:0], Kinds()...)
	b.rng.Shuffle(len(b.queue), func(i, j int) {
		b.queue[i], b.queue[j] = b.queue[j], b.queue[i]
	})
}

// Uniform picks every piece independently from the seven kinds.
type Uniform struct {
	rng *rand.Rand
}

// NewUniform creates a uniform-random generator drawing randomness from rng.
func NewUniform(rng *rand.Rand) *Uniform {
	return &Uniform{rng: rng}
}

func (u *Uniform) Next() Piece {
	return New(Kind(u.rng.IntN(NumKinds)))
}

// Sequence replays a fixed list of kinds, cycling when exhausted. It is
// meant for tests and scripted demos.
type Sequence struct {
	kinds []Kind
	pos   int
}

// NewSequence returns a generator that deals kinds in order.
func NewSequence(kinds ...Kind) *Sequence {
	if len(kinds) == 0 {
		panic("piece: sequence requires at least one kind")
	}
	return &Sequence{kinds: kinds}
}

func (s *Sequence) Next() Piece {
	kind := s.kinds[s.pos%len(s.kinds)]
	s.pos++
	return New(kind)
}
