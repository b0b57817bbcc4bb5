package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"favornet/server/internal/models"
	"favornet/server/internal/repository"
	"favornet/server/internal/utils"
)

func normalizeNumber(field, number string) (string, error) {
	if number == "" {
		return "", validationError("%s is a required property", field)
	}
	normalized := utils.NormalizeNumber(number)
	if !utils.ValidateNumber(normalized) {
		return "", validationError("%s must contain between 7 and 15 digits", field)
	}
	return normalized, nil
}

// Signup registers a user under a mobile number not used by anyone else
func (s *Service) Signup(ctx context.Context, mobileNumber, fullName string) (*models.User, error) {
	number, err := normalizeNumber("mobileNumber", mobileNumber)
	if err != nil {
		return nil, err
	}
	if fullName == "" {
		return nil, validationError("fullName is a required property")
	}

	duplicate := conflictError(fmt.Sprintf("Invalid request. User with number: %s already exists.", number))

	_, err = s.store.GetUserByNumber(ctx, number)
	if err == nil {
		return nil, duplicate
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup number: %w", err)
	}

	user := &models.User{
		Name:            fullName,
		Number:          number,
		Connections:     []string{},
		CommunityGroups: []string{},
	}
	err = s.store.CreateUser(ctx, user)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, duplicate
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	slog.Info("User signed up", "user_id", user.ID)
	return user, nil
}

// Signin looks a user up by mobile number. There is no credential check.
func (s *Service) Signin(ctx context.Context, mobileNumber string) (*models.UserResponse, error) {
	number, err := normalizeNumber("mobileNumber", mobileNumber)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByNumber(ctx, number)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFoundMessage(fmt.Sprintf("No user with number: %s found.", number))
	}
	if err != nil {
		return nil, fmt.Errorf("lookup number: %w", err)
	}

	return s.FormatUser(ctx, user)
}

// GetUser returns the formatted user
func (s *Service) GetUser(ctx context.Context, userID string) (*models.UserResponse, error) {
	if userID == "" {
		return nil, validationError("id must be sent in the request params")
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.FormatUser(ctx, user)
}

// UpdateUser replaces the name and number of a user
func (s *Service) UpdateUser(ctx context.Context, userID, updatedName, updatedNumber string) (*models.UserResponse, error) {
	if userID == "" {
		return nil, validationError("userId is a required property")
	}
	if updatedName == "" {
		return nil, validationError("updatedName is a required property")
	}
	number, err := normalizeNumber("updatedNumber", updatedNumber)
	if err != nil {
		return nil, err
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.store.UpdateProfile(ctx, user.ID, updatedName, number)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, conflictError(fmt.Sprintf("Invalid request. User with number: %s already exists.", number))
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFoundError("user", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", userID, err)
	}

	user.Name = updatedName
	user.Number = number
	return s.FormatUser(ctx, user)
}

// AddConnection connects userID to the user owning connectionNumber
func (s *Service) AddConnection(ctx context.Context, userID, connectionName, connectionNumber string) (*models.UserResponse, error) {
	if userID == "" {
		return nil, validationError("userId is a required property")
	}
	if connectionName == "" {
		return nil, validationError("connectionName is a required property")
	}
	number, err := normalizeNumber("connectionNumber", connectionNumber)
	if err != nil {
		return nil, err
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	connection, err := s.store.GetUserByNumber(ctx, number)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFoundMessage(fmt.Sprintf("No user with name: %s and number: %s found.", connectionName, number))
	}
	if err != nil {
		return nil, fmt.Errorf("lookup number: %w", err)
	}

	if user.HasConnection(connection.ID) {
		return nil, conflictError("User has already added this connection.")
	}
	if user.ID == connection.ID {
		return nil, conflictError("User cannot add themselves as a connection")
	}

	connections := append(user.Connections, connection.ID)
	if err := s.store.SetConnections(ctx, user.ID, connections); err != nil {
		return nil, fmt.Errorf("add connection: %w", err)
	}
	user.Connections = connections

	slog.Info("Connection added", "user_id", user.ID, "connection_id", connection.ID)
	return s.FormatUser(ctx, user)
}

// RemoveConnection disconnects connectionID from userID and drops it from
// every group userID owns. The group updates are not transactional.
func (s *Service) RemoveConnection(ctx context.Context, userID, connectionID string) (*models.UserResponse, error) {
	if userID == "" {
		return nil, validationError("userId is a required property")
	}
	if connectionID == "" {
		return nil, validationError("connectionId is a required property")
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	connection, err := s.getUser(ctx, connectionID)
	if err != nil {
		return nil, err
	}

	if !user.HasConnection(connection.ID) {
		return nil, conflictError("No Existing Connection. Add Connection between users before attempting to remove")
	}

	connections := user.WithoutConnection(connection.ID)
	if err := s.store.SetConnections(ctx, user.ID, connections); err != nil {
		return nil, fmt.Errorf("remove connection: %w", err)
	}
	user.Connections = connections

	owned, err := s.store.GroupsByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list groups of %s: %w", user.ID, err)
	}
	for _, group := range owned {
		if !group.HasMember(connection.ID) {
			continue
		}
		if err := s.store.SetGroupMembers(ctx, group.ID, group.WithoutMember(connection.ID)); err != nil {
			return nil, fmt.Errorf("remove %s from group %s: %w", connection.ID, group.ID, err)
		}
	}

	slog.Info("Connection removed", "user_id", user.ID, "connection_id", connection.ID)
	return s.FormatUser(ctx, user)
}

// AddCommunityGroup joins userID to a community group
func (s *Service) AddCommunityGroup(ctx context.Context, userID, groupID string) (*models.UserResponse, error) {
	user, group, err := s.userAndCommunityGroup(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	if user.HasCommunityGroup(group.ID) {
		return nil, conflictError("Community Group has already been added.")
	}

	groups := append(user.CommunityGroups, group.ID)
	if err := s.store.SetCommunityGroups(ctx, user.ID, groups); err != nil {
		return nil, fmt.Errorf("add community group: %w", err)
	}
	user.CommunityGroups = groups

	return s.FormatUser(ctx, user)
}

// RemoveCommunityGroup removes userID from a community group
func (s *Service) RemoveCommunityGroup(ctx context.Context, userID, groupID string) (*models.UserResponse, error) {
	user, group, err := s.userAndCommunityGroup(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	if !user.HasCommunityGroup(group.ID) {
		return nil, conflictError("Community Group has not been added.")
	}

	groups := user.WithoutCommunityGroup(group.ID)
	if err := s.store.SetCommunityGroups(ctx, user.ID, groups); err != nil {
		return nil, fmt.Errorf("remove community group: %w", err)
	}
	user.CommunityGroups = groups

	return s.FormatUser(ctx, user)
}

func (s *Service) userAndCommunityGroup(ctx context.Context, userID, groupID string) (*models.User, *models.CommunityGroup, error) {
	if userID == "" {
		return nil, nil, validationError("userId is a required property")
	}
	if groupID == "" {
		return nil, nil, validationError("groupId is a required property")
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	group, err := s.getCommunityGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	return user, group, nil
}
