// Package mazeapi provides the request and response bodies of the maze routes.
package mazeapi

import (
	"github.com/google/uuid"
)

// RunResponse is returned when a run has been started.
type RunResponse struct {
	RunID uuid.UUID `json:"run_id"`
}

// SettingsResponse represents the current animation settings.
type SettingsResponse struct {
	GenerationSpeed  int `json:"generation_speed"`
	PathfindingSpeed int `json:"pathfinding_speed"`
	ExtraGates       int `json:"extra_gates"`
	MaxSpeed         int `json:"max_speed"`
}

// SettingsRequest changes some of the settings. Omitted fields are left as they are.
type SettingsRequest struct {
	GenerationSpeed  *int `json:"generation_speed" binding:"omitempty,min=0"`
	PathfindingSpeed *int `json:"pathfinding_speed" binding:"omitempty,min=0"`
	ExtraGates       *int `json:"extra_gates" binding:"omitempty,min=0,max=100"`
}
