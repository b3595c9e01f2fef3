package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/aeo-snapshot/aeo-cli/internal/analyzer"
	"github.com/aeo-snapshot/aeo-cli/internal/campaign"
	"github.com/aeo-snapshot/aeo-cli/internal/store"
	"github.com/aeo-snapshot/aeo-cli/pkg/claude"
	"github.com/aeo-snapshot/aeo-cli/pkg/gemini"
	"github.com/aeo-snapshot/aeo-cli/pkg/openai"
	"github.com/aeo-snapshot/aeo-cli/pkg/perplexity"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "aeo.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initOpenAI returns the OpenAI client, or nil when no key is
// configured.
func initOpenAI() openai.Client {
	if cfg.OpenAI.Key == "" {
		return nil
	}
	opts := []openai.Option{openai.WithModel(cfg.OpenAI.Model)}
	if cfg.OpenAI.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.OpenAI.BaseURL))
	}
	return openai.NewClient(cfg.OpenAI.Key, opts...)
}

// initAnalyzers builds one analyzer per provider in the fixed query
// order. Providers without credentials still get an analyzer; their
// results degrade to error placeholders at run time.
func initAnalyzers(openaiClient openai.Client) []analyzer.Analyzer {
	var claudeClient claude.Client
	if cfg.Claude.Key != "" {
		claudeClient = claude.NewClient(cfg.Claude.Key, claude.WithModel(cfg.Claude.Model))
	}

	var geminiClient gemini.Client
	if cfg.Gemini.Key != "" {
		opts := []gemini.Option{gemini.WithModel(cfg.Gemini.Model)}
		if cfg.Gemini.BaseURL != "" {
			opts = append(opts, gemini.WithBaseURL(cfg.Gemini.BaseURL))
		}
		geminiClient = gemini.NewClient(cfg.Gemini.Key, opts...)
	}

	var perplexityClient perplexity.Client
	if cfg.Perplexity.Key != "" {
		opts := []perplexity.Option{perplexity.WithModel(cfg.Perplexity.Model)}
		if cfg.Perplexity.BaseURL != "" {
			opts = append(opts, perplexity.WithBaseURL(cfg.Perplexity.BaseURL))
		}
		perplexityClient = perplexity.NewClient(cfg.Perplexity.Key, opts...)
	}

	return []analyzer.Analyzer{
		analyzer.NewOpenAI(openaiClient),
		analyzer.NewClaude(claudeClient),
		analyzer.NewGemini(geminiClient),
		analyzer.NewPerplexity(perplexityClient),
	}
}

// initService assembles the campaign service from config.
func initService() (*campaign.Service, error) {
	if cfg.OpenAI.Key == "" {
		return nil, eris.New("openai API key is required (AEO_OPENAI_KEY)")
	}

	openaiClient := initOpenAI()
	orch := analyzer.NewOrchestrator(initAnalyzers(openaiClient)...)
	runner := campaign.NewRunner(orch, time.Duration(cfg.Campaign.QuestionDelayMS)*time.Millisecond)
	return campaign.NewService(runner, openaiClient), nil
}
