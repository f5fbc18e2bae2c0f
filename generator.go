package studyquiz

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// Generator produces a quiz from normalized material. Implementations
// must return exactly ClampQuestionCount(count) questions or one of the
// user-correctable errors; partial quizzes are never returned.
type Generator interface {
	Generate(ctx context.Context, material string, count int) (*Quiz, error)
}

// Engine is the boundary the web and CLI layers call into. It owns
// material extraction and strategy selection.
type Engine struct {
	cfg Config
	gen Generator
}

// NewEngine builds an engine for the configured strategy. A remote
// strategy without an API key degrades to local generation.
func NewEngine(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	rng := cfg.newRand()
	local := &LocalGenerator{asm: NewAssembler(rng)}

	var gen Generator
	switch cfg.Strategy {
	case StrategyTemplated:
		gen = TemplatedGenerator{}
	case StrategyRemote:
		if cfg.APIKey == "" {
			log.Printf("remote generation requested without an API key, using local generation")
			gen = local
		} else {
			gen = NewRemoteGenerator(cfg, local)
		}
	default:
		gen = local
	}
	return &Engine{cfg: cfg, gen: gen}
}

// Generate runs one full request: extract material from the pasted text
// and optional document, clamp the question count, generate.
func (e *Engine) Generate(ctx context.Context, req GenerationRequest) (*Quiz, error) {
	material, err := ExtractMaterial(req.PastedText, req.Filename, req.FileData)
	if err != nil {
		return nil, err
	}
	count := ClampQuestionCount(req.NumQuestions)
	return e.gen.Generate(ctx, material, count)
}

// LocalGenerator builds fill-in-the-blank quizzes from the material
// itself, no network involved.
type LocalGenerator struct {
	asm *Assembler
}

// Generate implements Generator.
func (g *LocalGenerator) Generate(_ context.Context, material string, count int) (*Quiz, error) {
	return g.asm.Assemble(material, count)
}

// TemplatedGenerator emits placeholder questions regardless of material.
// It is the degenerate strategy the first version of the app shipped
// with, kept for demos and as the padding source of last resort.
type TemplatedGenerator struct{}

// Generate implements Generator.
func (TemplatedGenerator) Generate(_ context.Context, _ string, count int) (*Quiz, error) {
	count = ClampQuestionCount(count)
	questions := make([]Question, count)
	for i := range questions {
		questions[i] = sampleQuestion(i + 1)
	}
	return &Quiz{
		ID:        uuid.NewString(),
		Questions: questions,
		CreatedAt: time.Now(),
	}, nil
}
