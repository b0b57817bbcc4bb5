package models

import (
	"slices"
	"time"
)

// Recipient headers used by clients to tag network entries
const (
	HeaderConnections     = "Connections"
	HeaderGroups          = "My Groups"
	HeaderCommunityGroups = "My Community Groups"
)

// NetworkReference names the part of the author's network a request is addressed to
type NetworkReference struct {
	Connections     []string `json:"connections"`
	Groups          []string `json:"groups"`
	CommunityGroups []string `json:"communityGroups"`
}

// Request represents a favor posted by a user
type Request struct {
	ID           string           `json:"_id"`
	UserID       string           `json:"user_id"` // author
	Date         time.Time        `json:"date"`
	Description  string           `json:"description"`
	Duration     string           `json:"duration"`
	Location     string           `json:"location"`
	CreationDate time.Time        `json:"creationDate"`
	Network      NetworkReference `json:"network"`
	AcceptedID   *string          `json:"accepted_id,omitempty"` // nil while open
}

// IsAccepted reports whether somebody already took the request
func (r *Request) IsAccepted() bool {
	return r.AcceptedID != nil
}

// Equal compares every field of two requests
func (r Request) Equal(other Request) bool {
	if r.ID != other.ID || r.UserID != other.UserID ||
		r.Description != other.Description || r.Duration != other.Duration ||
		r.Location != other.Location {
		return false
	}
	if !r.Date.Equal(other.Date) || !r.CreationDate.Equal(other.CreationDate) {
		return false
	}
	if !slices.Equal(r.Network.Connections, other.Network.Connections) ||
		!slices.Equal(r.Network.Groups, other.Network.Groups) ||
		!slices.Equal(r.Network.CommunityGroups, other.Network.CommunityGroups) {
		return false
	}
	switch {
	case r.AcceptedID == nil && other.AcceptedID == nil:
		return true
	case r.AcceptedID == nil || other.AcceptedID == nil:
		return false
	default:
		return *r.AcceptedID == *other.AcceptedID
	}
}

// Recipient is one expanded network entry. Data holds a User for
// HeaderConnections and a GroupWithMembers for HeaderGroups.
type Recipient struct {
	Header string `json:"header"`
	Data   any    `json:"data"`
}

// DisplayRequest is a request whose network has been expanded for display
type DisplayRequest struct {
	ID           string      `json:"_id"`
	UserID       string      `json:"user_id"`
	Date         time.Time   `json:"date"`
	Description  string      `json:"description"`
	Duration     string      `json:"duration"`
	Location     string      `json:"location"`
	CreationDate time.Time   `json:"creationDate"`
	Network      []Recipient `json:"network"`
	AcceptedID   *string     `json:"accepted_id,omitempty"`
}

// InboxRequest is a request annotated with its author's name
type InboxRequest struct {
	Request
	UserName string `json:"user_name"`
}

// NetworkEntry is a recipient as submitted by clients
type NetworkEntry struct {
	Header string `json:"header"`
	Data   struct {
		ID string `json:"_id"`
	} `json:"data"`
}

// RequestInput carries the client-editable fields of a request
type RequestInput struct {
	Date        string         `json:"date"`
	Description string         `json:"description"`
	Duration    string         `json:"duration"`
	Location    string         `json:"location"`
	Network     []NetworkEntry `json:"network"`
}
