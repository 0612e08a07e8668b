package health

import "context"

type Status struct {
	Version  string `json:"version"`
	Database string `json:"database"`
}

type IHealthUsecase interface {
	GetStatus(ctx context.Context) (Status, error)
}
