package factory

import (
	"fmt"
	"io"
	"os"

	"github.com/mikey/snooker/internal/adapters/filter"
	"github.com/mikey/snooker/internal/config"
	"github.com/mikey/snooker/internal/core"
	"github.com/mikey/snooker/internal/ports"
	"go.uber.org/zap"
)

// FilterFactory creates comment filters based on configuration
type FilterFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.CommentFilterService
	out     io.Writer
}

// NewFilterFactory creates a new filter factory
func NewFilterFactory(cfg *config.Config, logger *zap.Logger, service *core.CommentFilterService) *FilterFactory {
	return &FilterFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
		out:     os.Stdout,
	}
}

// SetOutput sets where the CLI filter writes its reports
func (f *FilterFactory) SetOutput(w io.Writer) {
	f.out = w
}

// CreateCommentFilter creates a comment filter based on the configuration
func (f *FilterFactory) CreateCommentFilter() (ports.CommentFilter, error) {
	server, err := f.cfg.GetServer()
	if err != nil {
		return nil, err
	}

	switch server.FilterType {
	case "http":
		return filter.NewHTTPFilter(f.service, f.logger, server), nil
	case "cli":
		return filter.NewCliFilter(
			f.service,
			f.logger,
			f.cfg.GetBool("cli.verbose"),
			f.cfg.GetString("cli.format"),
			f.out,
		)
	default:
		return nil, fmt.Errorf("unsupported filter type: %s", server.FilterType)
	}
}
