package factory

import (
	"github.com/mikey/snooker/internal/config"
	"github.com/mikey/snooker/pkg/snooker"
	"go.uber.org/zap"
)

// ScorerFactory creates comment scorers from the rule configuration
type ScorerFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewScorerFactory creates a new scorer factory
func NewScorerFactory(cfg *config.Config, logger *zap.Logger) *ScorerFactory {
	return &ScorerFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateScorer creates a rule evaluator
func (f *ScorerFactory) CreateScorer() *snooker.Evaluator {
	e := snooker.NewEvaluator(f.cfg.GetRules())
	rc := e.Config()

	f.logger.Info("Initialized rule evaluator",
		zap.Strings("rules", snooker.RuleNames()),
		zap.Int("spam_keywords", len(rc.SpamKeywords)),
		zap.Int("spam_phrases", len(rc.SpamPhrases)),
		zap.Int("spam_leading_words", len(rc.SpamLeadingWords)),
		zap.Strings("spam_tlds", rc.SpamTLDs),
		zap.Int("history_cap", rc.HistoryCap))

	return e
}
