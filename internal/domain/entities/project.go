package entities

import "time"

type ProjectStatus string

const (
	ProjectStatusOnboarding ProjectStatus = "onboarding"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusDelivered  ProjectStatus = "delivered"
)

// Project is owned by the CRUD side of the platform; the quote lifecycle only
// reads it, except for the standalone quote path which creates one.
type Project struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	OwnerID   string        `json:"owner_id"`
	Status    ProjectStatus `json:"status"`
	Progress  int           `json:"progress"`
	CreatedAt time.Time     `json:"created_at"`
}
