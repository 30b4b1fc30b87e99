package factory

import (
	"github.com/mikey/snooker/internal/config"
	"github.com/mikey/snooker/internal/core"
	"github.com/mikey/snooker/internal/utils"
	"github.com/mikey/snooker/internal/whitelist"
	"go.uber.org/zap"
)

// ServiceFactory creates the comment filter service and its helpers
type ServiceFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewServiceFactory creates a new ServiceFactory
func NewServiceFactory(cfg *config.Config, logger *zap.Logger) *ServiceFactory {
	return &ServiceFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateTextProcessor creates a new TextProcessor
func (f *ServiceFactory) CreateTextProcessor() *utils.TextProcessor {
	return utils.NewTextProcessor(f.logger)
}

// CreateWhitelist creates the trusted commenter checker
func (f *ServiceFactory) CreateWhitelist() *whitelist.Checker {
	return whitelist.NewChecker(f.cfg.GetTrustedDomains(), f.logger)
}

// ServiceOptions returns the service options from the configuration
func (f *ServiceFactory) ServiceOptions() (core.ServiceOptions, error) {
	hc, err := f.cfg.GetHistory()
	if err != nil {
		return core.ServiceOptions{}, err
	}
	return core.ServiceOptions{
		HistoryEnabled: hc.Enabled,
		RecordHistory:  hc.Record,
		MaxBodySize:    f.cfg.GetInt("server.max_body_size"),
	}, nil
}

// CreateService creates the comment filter service. history may be nil.
func (f *ServiceFactory) CreateService(scorer core.CommentScorer, history core.HistoryRepository) (*core.CommentFilterService, error) {
	opts, err := f.ServiceOptions()
	if err != nil {
		return nil, err
	}
	return core.NewCommentFilterService(
		scorer,
		history,
		f.CreateWhitelist(),
		f.CreateTextProcessor(),
		f.logger,
		opts,
	), nil
}
