package models

import "slices"

// User represents a member of the network
type User struct {
	ID              string   `json:"_id"`
	Name            string   `json:"name"`
	Number          string   `json:"number"` // unique mobile number
	Connections     []string `json:"connections"`
	CommunityGroups []string `json:"communityGroups"`
}

// UserResponse is a user with every reference expanded for display
type UserResponse struct {
	ID              string             `json:"_id"`
	Name            string             `json:"name"`
	Number          string             `json:"number"`
	Connections     []User             `json:"connections"`
	Groups          []GroupWithMembers `json:"groups"`
	CommunityGroups []CommunityGroup   `json:"communityGroups"`
	Requests        []DisplayRequest   `json:"requests"`
}

// HasConnection reports whether id is one of the user's connections
func (u *User) HasConnection(id string) bool {
	return containsID(u.Connections, id)
}

// HasCommunityGroup reports whether the user joined the community group
func (u *User) HasCommunityGroup(id string) bool {
	return containsID(u.CommunityGroups, id)
}

func containsID(ids []string, id string) bool {
	return slices.Contains(ids, id)
}

// withoutID returns ids with every occurrence of id removed
func withoutID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}

// WithoutConnection returns the connection list minus id
func (u *User) WithoutConnection(id string) []string {
	return withoutID(u.Connections, id)
}

// WithoutCommunityGroup returns the community group list minus id
func (u *User) WithoutCommunityGroup(id string) []string {
	return withoutID(u.CommunityGroups, id)
}
