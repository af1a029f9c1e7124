package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nsentity "tend_backend/internal/feature/northstar/domain/entity"
	relentity "tend_backend/internal/feature/relationships/domain/entity"
)

// fakeGenerator returns a canned answer and records the prompt it was given.
type fakeGenerator struct {
	answer string
	err    error
	got    Prompt
	calls  int
}

func (f *fakeGenerator) Generate(_ context.Context, p Prompt) (string, error) {
	f.calls++
	f.got = p
	return f.answer, f.err
}

type fakeNorthStars struct {
	ns  *nsentity.NorthStar
	err error
}

func (f fakeNorthStars) Get(context.Context, string) (*nsentity.NorthStar, error) { return f.ns, f.err }

type fakeRelationships struct {
	rels []relentity.Relationship
	err  error
}

func (f fakeRelationships) List(context.Context, string) ([]relentity.Relationship, error) {
	return f.rels, f.err
}

func TestStructurer_MapConnection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		answer  string
		genErr  error
		wantErr error
		check   func(t *testing.T, name, desc, status, plus, delta, arrow string)
	}{
		{
			name:   "complete answer passes through",
			text:   "Sam is my oldest friend",
			answer: `{"name":"Sam","description":"🎸🍕","status":"strained","details":{"+":"jokes","∆":"distance","→":"visit"}}`,
			check: func(t *testing.T, name, desc, status, plus, delta, arrow string) {
				assert.Equal(t, "Sam", name)
				assert.Equal(t, "🎸🍕", desc)
				assert.Equal(t, "strained", status)
				assert.Equal(t, "jokes", plus)
			},
		},
		{
			name:   "missing fields get defaults",
			text:   "someone",
			answer: "```json\n{\"status\":\"unknown\"}\n```",
			check: func(t *testing.T, name, desc, status, plus, delta, arrow string) {
				assert.Equal(t, defaultName, name)
				assert.Equal(t, defaultDescription, desc)
				assert.Equal(t, "on track", status)
				assert.Equal(t, defaultStrengths, plus)
				assert.Equal(t, defaultStruggles, delta)
				assert.Equal(t, defaultHopes, arrow)
			},
		},
		{name: "empty text", text: "   ", wantErr: ErrMissingText},
		{name: "upstream failure", text: "x", genErr: errors.New("503"), wantErr: ErrUpstream},
		{name: "not json", text: "x", answer: "I think Sam is great", wantErr: ErrInvalidOutput},
		{name: "wrong types", text: "x", answer: `{"name":42}`, wantErr: ErrInvalidOutput},
		{name: "fails validation", text: "x", answer: `{"name":"` + strings.Repeat("a", 101) + `"}`, wantErr: ErrInvalidOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gen := &fakeGenerator{answer: tt.answer, err: tt.genErr}
			d, err := NewStructurer(gen, nil, nil).MapConnection(context.Background(), tt.text)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, d)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, 1.5, gen.got.Temperature, 0.001)
			assert.Contains(t, gen.got.User, tt.text)
			tt.check(t, d.Name, d.Description, d.Status, d.Details.Strengths, d.Details.Struggles, d.Details.Hopes)
		})
	}
}

func TestStructurer_MapConnection_TruncatesInput(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{answer: `{}`}
	_, err := NewStructurer(gen, nil, nil).MapConnection(context.Background(), strings.Repeat("é", MaxConnectionText+50))
	require.NoError(t, err)

	text := gen.got.User[strings.Index(gen.got.User, "Text:\n")+len("Text:\n"):]
	assert.Equal(t, MaxConnectionText, utf8.RuneCountInString(text))
}

func TestStructurer_CreateNorthStar(t *testing.T) {
	t.Parallel()

	t.Run("backfills directions and items", func(t *testing.T) {
		t.Parallel()
		gen := &fakeGenerator{answer: `{"north":[{"emoji":"🌟"},{"phrase":"be present"}],"east":[],"south":null}`}
		d, err := NewStructurer(gen, nil, nil).CreateNorthStar(context.Background(), "closer family", "busy")
		require.NoError(t, err)

		assert.Equal(t, defaultHaiku, d.Haiku)
		assert.Equal(t, []nsentity.Direction{{Emoji: "🌟", Phrase: defaultPhrase}, {Emoji: defaultEmoji, Phrase: "be present"}}, d.North)
		for _, dir := range [][]nsentity.Direction{d.East, d.South, d.West} {
			assert.Equal(t, []nsentity.Direction{{Emoji: defaultEmoji, Phrase: defaultMissingPhrase}}, dir)
		}
		assert.Contains(t, gen.got.User, "Vision: closer family")
		assert.Contains(t, gen.got.User, "Current State: busy")
	})

	t.Run("needs both texts", func(t *testing.T) {
		t.Parallel()
		gen := &fakeGenerator{answer: `{}`}
		_, err := NewStructurer(gen, nil, nil).CreateNorthStar(context.Background(), "vision", "")
		assert.ErrorIs(t, err, ErrMissingText)
		assert.Zero(t, gen.calls, "the model is not called for invalid input")
	})

	t.Run("directions must be arrays", func(t *testing.T) {
		t.Parallel()
		gen := &fakeGenerator{answer: `{"north":"up"}`}
		_, err := NewStructurer(gen, nil, nil).CreateNorthStar(context.Background(), "v", "c")
		assert.ErrorIs(t, err, ErrInvalidOutput)
	})
}

func TestStructurer_DesignExperiment(t *testing.T) {
	t.Parallel()

	ns := &nsentity.NorthStar{
		Haiku: "Connection flows",
		North: []nsentity.Direction{{Emoji: "🌱", Phrase: "grow"}},
		East:  []nsentity.Direction{},
		South: []nsentity.Direction{},
		West:  []nsentity.Direction{},
	}
	rels := []relentity.Relationship{
		{Name: "Sam", Description: "🎸", Status: relentity.StatusOnTrack, Details: relentity.Details{Strengths: "jokes", Hopes: "visit"}},
		{Name: "Kim", Description: "🌧", Status: relentity.StatusStrained},
	}

	t.Run("adds personal context for an owner", func(t *testing.T) {
		t.Parallel()
		gen := &fakeGenerator{answer: `{"challenge":"c","hypothesis":"If x, then y","intervention":"i","measure":"m"}`}
		s := NewStructurer(gen, fakeNorthStars{ns: ns}, fakeRelationships{rels: rels})

		d, err := s.DesignExperiment(context.Background(), "I snap at my sister", "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "If x, then y", d.Hypothesis)

		assert.InDelta(t, 0.3, gen.got.Temperature, 0.001)
		assert.Contains(t, gen.got.User, "User's North Star:\nHaiku: Connection flows\n")
		assert.Contains(t, gen.got.User, `North: [{"emoji":"🌱","phrase":"grow"}]`)
		assert.Contains(t, gen.got.User, "User's Relationships:\n1. Sam (on track)\n   Description: 🎸\n   Strengths: jokes\n   Next steps: visit\n")
		assert.Contains(t, gen.got.User, "2. Kim (strained)\n")
		assert.NotContains(t, gen.got.User, "Changes needed")
	})

	t.Run("no owner means no context", func(t *testing.T) {
		t.Parallel()
		gen := &fakeGenerator{answer: `{}`}
		s := NewStructurer(gen, fakeNorthStars{ns: ns}, fakeRelationships{rels: rels})

		d, err := s.DesignExperiment(context.Background(), "text", "")
		require.NoError(t, err)
		assert.NotContains(t, gen.got.User, "North Star")
		assert.Equal(t, "Need more info to define the challenge", d.Challenge)
		assert.Equal(t, "Need more info to define the measure", d.Measure)
	})

	t.Run("context lookup failures are tolerated", func(t *testing.T) {
		t.Parallel()
		gen := &fakeGenerator{answer: `{}`}
		s := NewStructurer(gen, fakeNorthStars{err: errors.New("db")}, fakeRelationships{err: errors.New("db")})

		_, err := s.DesignExperiment(context.Background(), "text", "alice@example.com")
		assert.NoError(t, err)
	})
}

func TestStripFences(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(" {\"a\":1} "))
	assert.Equal(t, `{}`, stripFences("```\n{}```"))
}
