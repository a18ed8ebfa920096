package models

import (
	"strings"

	id "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain"
)

// UnassignedTeam groups people whose team is blank.
const UnassignedTeam = "Unassigned"

// Person is an employee as supplied by the directory collaborator.
// The engine never mutates it.
type Person struct {
	ID       id.PersonID `json:"id"`
	Name     string      `json:"name"`
	JobTitle string      `json:"job_title,omitempty"`
	Team     string      `json:"team,omitempty"`
}

// TeamOrDefault returns the trimmed team name, or UnassignedTeam when blank.
func (p Person) TeamOrDefault() string {
	if t := strings.TrimSpace(p.Team); t != "" {
		return t
	}
	return UnassignedTeam
}
