package di

import (
	"go.uber.org/dig"

	"github.com/mikey/snooker/internal/config"
	"github.com/mikey/snooker/internal/core"
	"github.com/mikey/snooker/internal/factory"
	"github.com/mikey/snooker/internal/logging"
	"github.com/mikey/snooker/internal/ports"
	"github.com/mikey/snooker/pkg/snooker"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	if err := provideCommon(container); err != nil {
		return nil, err
	}

	return container, nil
}

// provideCommon registers everything below the configuration and logger
func provideCommon(container *dig.Container) error {
	// Register factories
	if err := container.Provide(factory.NewScorerFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewHistoryFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewServiceFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewFilterFactory); err != nil {
		return err
	}

	// Register rule evaluator
	if err := container.Provide(func(f *factory.ScorerFactory) *snooker.Evaluator {
		return f.CreateScorer()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(e *snooker.Evaluator) core.CommentScorer {
		return e
	}); err != nil {
		return err
	}

	// Register history repository
	if err := container.Provide(func(f *factory.HistoryFactory) (core.HistoryRepository, error) {
		return f.CreateHistoryRepository()
	}); err != nil {
		return err
	}

	// Register comment filter service
	if err := container.Provide(func(f *factory.ServiceFactory, scorer core.CommentScorer, history core.HistoryRepository) (*core.CommentFilterService, error) {
		return f.CreateService(scorer, history)
	}); err != nil {
		return err
	}

	// Register comment filter
	if err := container.Provide(func(f *factory.FilterFactory) (ports.CommentFilter, error) {
		return f.CreateCommentFilter()
	}); err != nil {
		return err
	}

	return nil
}
