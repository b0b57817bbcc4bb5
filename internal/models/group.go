package models

// Group represents a personal group owned by a user
type Group struct {
	ID      string   `json:"_id"`
	UserID  string   `json:"user_id"` // owner
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// GroupWithMembers includes member information
type GroupWithMembers struct {
	ID      string `json:"_id"`
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Members []User `json:"members"`
}

// HasMember reports whether userID is in the member list
func (g *Group) HasMember(userID string) bool {
	return containsID(g.Members, userID)
}

// WithoutMember returns the member list minus userID
func (g *Group) WithoutMember(userID string) []string {
	return withoutID(g.Members, userID)
}

// Location is a point on the map
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CommunityGroup is a location-based group users can join
type CommunityGroup struct {
	ID       string   `json:"_id"`
	Name     string   `json:"name"`
	Location Location `json:"location"`
}

// NearbyCommunityGroup carries the computed distance and address of a community group
type NearbyCommunityGroup struct {
	CommunityGroup
	Distance string `json:"distance"` // miles, one decimal place
	Address  string `json:"address"`
}
