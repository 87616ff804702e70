package interfaces

import (
	"context"

	"agency_quotes/internal/domain/entities"
)

// IProjectRepository abstracts the project records owned by the CRUD side.
//
//go:generate mockgen -source=project_repository_interface.go -destination=mocks/project_repository_mock.go -package=mock_interfaces
type IProjectRepository interface {
	Create(ctx context.Context, p entities.Project) (entities.Project, error)
	GetByID(ctx context.Context, id string) (entities.Project, error)
}
