package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"favornet/server/internal/metrics"
	"favornet/server/internal/repository"
)

// Accept marks requestID as taken by accepterID. An already accepted
// request is reported before eligibility is checked. The final write is
// conditional on the request still being open, so concurrent callers
// cannot both succeed.
func (s *Service) Accept(ctx context.Context, requestID, accepterID string) error {
	if accepterID == "" {
		return validationError("acceptId is a required property")
	}
	if requestID == "" {
		return validationError("requestId is a required property")
	}

	accepter, err := s.getUser(ctx, accepterID)
	if err != nil {
		return err
	}

	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return err
	}

	if request.IsAccepted() {
		s.metrics.Acceptance(metrics.OutcomeAlreadyAccepted)
		return conflictError("Request has already been accepted")
	}

	if request.UserID == accepter.ID {
		s.metrics.Acceptance(metrics.OutcomeNotEligible)
		return notEligibleError("Accepter id: %s invalid. Authors cannot accept their own request", accepter.ID)
	}

	member, err := s.network.IsMember(ctx, request.Network, accepter.ID)
	if err != nil {
		return fmt.Errorf("check network of request %s: %w", request.ID, err)
	}
	if !member {
		s.metrics.Acceptance(metrics.OutcomeNotEligible)
		slog.Warn("Accept rejected, accepter outside network", "request_id", request.ID, "accepter_id", accepter.ID)
		return notEligibleError("Accepter id: %s invalid. Accepter is not in request's network", accepter.ID)
	}

	won, err := s.store.AcceptRequest(ctx, request.ID, accepter.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return notFoundError("request", request.ID)
	}
	if err != nil {
		return fmt.Errorf("accept request %s: %w", request.ID, err)
	}
	if !won {
		s.metrics.Acceptance(metrics.OutcomeLostRace)
		return conflictError("Request has already been accepted")
	}

	s.metrics.Acceptance(metrics.OutcomeAccepted)
	slog.Info("Request accepted", "request_id", request.ID, "accepter_id", accepter.ID)
	return nil
}

// CheckRequest returns the accepter of requestID, or nil while it is open
func (s *Service) CheckRequest(ctx context.Context, requestID string) (*string, error) {
	if requestID == "" {
		return nil, validationError("requestId is a required property")
	}

	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return request.AcceptedID, nil
}
