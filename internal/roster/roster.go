// Package roster supplies the read-only member list the engine resolves
// assignee ids against. The engine never mutates or persists members.
package roster

import (
	"fmt"
	"os"

	yaml "go.yaml.in/yaml/v3"

	"dutyboard/internal/schedule"
)

type memberRecord struct {
	ID       string `yaml:"id"`
	FullName string `yaml:"full_name"`
	Email    string `yaml:"email"`
	Role     string `yaml:"role"`
	Avatar   string `yaml:"avatar"`
	Team     string `yaml:"team"`
}

type rosterFile struct {
	Members []memberRecord `yaml:"members"`
}

// Roster is an immutable member list with id and email lookups.
type Roster struct {
	members []schedule.Member
	byID    map[string]schedule.Member
	byEmail map[string]schedule.Member
}

// Load reads a YAML roster file. Unlike schedule blobs a broken roster is
// surfaced: without members the engine resolves nothing useful.
func Load(path string) (*Roster, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return Parse(b)
}

// Parse decodes roster YAML from a byte buffer.
func Parse(b []byte) (*Roster, error) {
	var f rosterFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("unmarshal roster: %w", err)
	}
	members := make([]schedule.Member, 0, len(f.Members))
	for _, r := range f.Members {
		if r.ID == "" {
			return nil, fmt.Errorf("roster member %q has no id", r.FullName)
		}
		members = append(members, schedule.Member{
			ID:       r.ID,
			FullName: r.FullName,
			Email:    r.Email,
			Role:     r.Role,
			Avatar:   r.Avatar,
			Team:     r.Team,
		})
	}
	return New(members), nil
}

// New builds a roster from an already-assembled member list.
func New(members []schedule.Member) *Roster {
	return &Roster{
		members: append([]schedule.Member(nil), members...),
		byID:    schedule.MembersByID(members),
		byEmail: schedule.MembersByEmail(members),
	}
}

func (r *Roster) Members() []schedule.Member {
	return append([]schedule.Member(nil), r.members...)
}

func (r *Roster) ByID() map[string]schedule.Member    { return r.byID }
func (r *Roster) ByEmail() map[string]schedule.Member { return r.byEmail }
