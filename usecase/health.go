package usecase

import (
	"context"

	"github.com/flowgrade/flowgrade/core/config"
	domainHealth "github.com/flowgrade/flowgrade/domains/health"
	"gorm.io/gorm"
)

type healthService struct {
	db *gorm.DB
}

func NewHealthService(db *gorm.DB) domainHealth.IHealthUsecase {
	return &healthService{db: db}
}

func (s *healthService) GetStatus(ctx context.Context) (domainHealth.Status, error) {
	status := domainHealth.Status{
		Version:  config.Global.App.Version,
		Database: "ok",
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		status.Database = "unavailable"
		return status, nil
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		status.Database = "unavailable"
	}

	return status, nil
}
