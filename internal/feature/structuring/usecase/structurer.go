// Package usecase turns free text into validated drafts with a language model.
//
// Model output is untrusted: it is decoded into fixed structs, missing fields
// are backfilled with defaults, and the result must pass validation before it
// is returned.
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	nsentity "tend_backend/internal/feature/northstar/domain/entity"
	relentity "tend_backend/internal/feature/relationships/domain/entity"
	"tend_backend/internal/feature/structuring/domain/entity"
)

// Input limits, in characters.
const (
	MaxConnectionText = 2000
	MaxNorthStarText  = 1500
	MaxExperimentText = 2000
)

// Sampling temperatures per task.
const (
	mapConnectionTemperature    = 1.5
	northStarTemperature        = 1.5
	designExperimentTemperature = 0.3
)

const (
	defaultName        = "Name?"
	defaultDescription = "🤝"
	defaultStrengths   = "Need more info to summarize what's going well."
	defaultStruggles   = "Need more info to summarize struggles / challenges."
	defaultHopes       = "Need more info to summarize where your hopes for this connection."

	defaultHaiku         = "Connection flows\nThrough authentic presence\nHearts open to growth"
	defaultEmoji         = "🤔"
	defaultPhrase        = "Need more info"
	defaultMissingPhrase = "Need more clarity here"
)

var (
	// ErrMissingText is returned when a required text input is empty.
	ErrMissingText = errors.New("missing text")
	// ErrUpstream is returned when the language model could not be reached or refused.
	ErrUpstream = errors.New("language model request failed")
	// ErrInvalidOutput is returned when the model's answer cannot be turned into a valid draft.
	ErrInvalidOutput = errors.New("invalid model output")
	// ErrNotConfigured is returned when the deployment has no model credentials.
	ErrNotConfigured = errors.New("language model is not configured")
)

// Prompt is one completion request.
type Prompt struct {
	System      string
	User        string
	Temperature float32
}

// Generator sends a prompt to a language model and returns its raw text answer.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// NotConfigured stands in for a Generator when no model credentials are set.
// Every drafting call then fails with ErrNotConfigured while the rest of the
// service keeps working.
type NotConfigured struct{}

// Generate always fails with ErrNotConfigured.
func (NotConfigured) Generate(context.Context, Prompt) (string, error) {
	return "", ErrNotConfigured
}

// NorthStarReader loads a user's north star; nil means none.
type NorthStarReader interface {
	Get(ctx context.Context, ownerEmail string) (*nsentity.NorthStar, error)
}

// RelationshipLister loads a user's relationships, newest first.
type RelationshipLister interface {
	List(ctx context.Context, ownerEmail string) ([]relentity.Relationship, error)
}

// Structurer produces drafts from free text.
type Structurer struct {
	gen           Generator
	northStars    NorthStarReader
	relationships RelationshipLister
	validate      *validator.Validate
}

// NewStructurer creates a Structurer. northStars and relationships may be nil,
// in which case experiments are designed without personal context.
func NewStructurer(gen Generator, northStars NorthStarReader, relationships RelationshipLister) *Structurer {
	return &Structurer{
		gen:           gen,
		northStars:    northStars,
		relationships: relationships,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
	}
}

// MapConnection drafts a relationship from a description of one person.
func (s *Structurer) MapConnection(ctx context.Context, text string) (*entity.RelationshipDraft, error) {
	text = truncate(text, MaxConnectionText)
	if strings.TrimSpace(text) == "" {
		return nil, ErrMissingText
	}

	var d entity.RelationshipDraft
	err := s.run(ctx, Prompt{
		System:      mapConnectionSystem,
		User:        mapConnectionContract + "\n\nText:\n" + text,
		Temperature: mapConnectionTemperature,
	}, &d)
	if err != nil {
		return nil, err
	}

	d.Name = orDefault(d.Name, defaultName)
	d.Description = orDefault(d.Description, defaultDescription)
	if _, ok := relentity.ParseStatus(d.Status); !ok {
		d.Status = string(relentity.StatusOnTrack)
	}
	d.Details.Strengths = orDefault(d.Details.Strengths, defaultStrengths)
	d.Details.Struggles = orDefault(d.Details.Struggles, defaultStruggles)
	d.Details.Hopes = orDefault(d.Details.Hopes, defaultHopes)

	if err := s.check(d); err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateNorthStar drafts a north star from where the user wants to be and where they are.
func (s *Structurer) CreateNorthStar(ctx context.Context, visionText, currentText string) (*entity.NorthStarDraft, error) {
	visionText = truncate(visionText, MaxNorthStarText)
	currentText = truncate(currentText, MaxNorthStarText)
	if strings.TrimSpace(visionText) == "" || strings.TrimSpace(currentText) == "" {
		return nil, ErrMissingText
	}

	var d entity.NorthStarDraft
	err := s.run(ctx, Prompt{
		System:      northStarSystem,
		User:        northStarContract + "\n\nVision: " + visionText + "\n\nCurrent State: " + currentText,
		Temperature: northStarTemperature,
	}, &d)
	if err != nil {
		return nil, err
	}

	d.Haiku = orDefault(d.Haiku, defaultHaiku)
	for _, dir := range []*[]nsentity.Direction{&d.North, &d.East, &d.South, &d.West} {
		*dir = backfillDirections(*dir)
	}

	if err := s.check(d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DesignExperiment drafts an experiment for a described challenge. When ownerEmail
// is set, the owner's north star and relationships are added to the prompt; the
// caller must have authorized access to ownerEmail.
func (s *Structurer) DesignExperiment(ctx context.Context, text, ownerEmail string) (*entity.ExperimentDraft, error) {
	text = truncate(text, MaxExperimentText)
	if strings.TrimSpace(text) == "" {
		return nil, ErrMissingText
	}

	user := designExperimentContract + "\n\nText:\n" + text
	if ownerEmail != "" {
		user += s.personalContext(ctx, ownerEmail)
	}

	var d entity.ExperimentDraft
	err := s.run(ctx, Prompt{
		System:      designExperimentSystem,
		User:        user,
		Temperature: designExperimentTemperature,
	}, &d)
	if err != nil {
		return nil, err
	}

	d.Challenge = orDefault(d.Challenge, "Need more info to define the challenge")
	d.Hypothesis = orDefault(d.Hypothesis, "Need more info to define the hypothesis")
	d.Intervention = orDefault(d.Intervention, "Need more info to define the intervention")
	d.Measure = orDefault(d.Measure, "Need more info to define the measure")

	if err := s.check(d); err != nil {
		return nil, err
	}
	return &d, nil
}

// personalContext renders the owner's north star and relationships for the prompt.
// Lookup failures only cost the context, never the request.
func (s *Structurer) personalContext(ctx context.Context, ownerEmail string) string {
	var b strings.Builder

	if s.northStars != nil {
		ns, err := s.northStars.Get(ctx, ownerEmail)
		if err != nil {
			slog.Warn("loading north star for experiment context failed", "error", err)
		}
		if ns != nil {
			b.WriteString("\n\nUser's North Star:\n")
			fmt.Fprintf(&b, "Haiku: %s\n", ns.Haiku)
			fmt.Fprintf(&b, "North: %s\n", directionsJSON(ns.North))
			fmt.Fprintf(&b, "East: %s\n", directionsJSON(ns.East))
			fmt.Fprintf(&b, "South: %s\n", directionsJSON(ns.South))
			fmt.Fprintf(&b, "West: %s\n", directionsJSON(ns.West))
		}
	}

	if s.relationships != nil {
		rels, err := s.relationships.List(ctx, ownerEmail)
		if err != nil {
			slog.Warn("loading relationships for experiment context failed", "error", err)
		}
		if len(rels) > 0 {
			b.WriteString("\n\nUser's Relationships:\n")
			for i, r := range rels {
				fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, r.Name, r.Status)
				fmt.Fprintf(&b, "   Description: %s\n", r.Description)
				if r.Details.Strengths != "" {
					fmt.Fprintf(&b, "   Strengths: %s\n", r.Details.Strengths)
				}
				if r.Details.Struggles != "" {
					fmt.Fprintf(&b, "   Changes needed: %s\n", r.Details.Struggles)
				}
				if r.Details.Hopes != "" {
					fmt.Fprintf(&b, "   Next steps: %s\n", r.Details.Hopes)
				}
			}
		}
	}
	return b.String()
}

// run asks the model and decodes its JSON answer into out.
func (s *Structurer) run(ctx context.Context, p Prompt, out any) error {
	raw, err := s.gen.Generate(ctx, p)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	raw = stripFences(raw)
	if raw == "" {
		raw = "{}"
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOutput, err)
	}
	return nil
}

func (s *Structurer) check(draft any) error {
	if err := s.validate.Struct(draft); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOutput, err)
	}
	return nil
}

func backfillDirections(in []nsentity.Direction) []nsentity.Direction {
	if len(in) == 0 {
		return []nsentity.Direction{{Emoji: defaultEmoji, Phrase: defaultMissingPhrase}}
	}
	out := make([]nsentity.Direction, len(in))
	for i, d := range in {
		out[i] = nsentity.Direction{
			Emoji:  orDefault(d.Emoji, defaultEmoji),
			Phrase: orDefault(d.Phrase, defaultPhrase),
		}
	}
	return out
}

func directionsJSON(d []nsentity.Direction) string {
	b, err := json.Marshal(d)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// truncate keeps at most n characters of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// stripFences removes a Markdown code fence around a JSON answer.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
