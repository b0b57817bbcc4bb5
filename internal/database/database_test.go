package database

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"favornet/server/internal/models"
	"favornet/server/internal/repository"
)

// openTestStore connects to TEST_DATABASE_URL and empties every table
func openTestStore(t *testing.T) *Store {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	store, err := Connect(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if _, err := store.pool.Exec(ctx, `TRUNCATE users, groups, community_groups, requests`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return store
}

func TestConnectRequiresURL(t *testing.T) {
	if _, err := Connect(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty DATABASE_URL")
	}
}

func TestStoreUsers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	alice := &models.User{Name: "alice", Number: "5550100"}
	if err := s.CreateUser(ctx, alice); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.CreateUser(ctx, &models.User{Name: "dup", Number: "5550100"}); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	if err := s.SetConnections(ctx, alice.ID, []string{"b", "c"}); err != nil {
		t.Fatalf("SetConnections: %v", err)
	}
	got, err := s.GetUserByNumber(ctx, "5550100")
	if err != nil {
		t.Fatalf("GetUserByNumber: %v", err)
	}
	if got.ID != alice.ID || len(got.Connections) != 2 || len(got.CommunityGroups) != 0 {
		t.Errorf("unexpected user: %+v", got)
	}

	if _, err := s.GetUser(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.UpdateProfile(ctx, "missing", "x", "5550199"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreGroupContainment(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	g1 := &models.Group{UserID: "owner", Name: "one", Members: []string{"x", "y"}}
	g2 := &models.Group{UserID: "other", Name: "two", Members: []string{"y"}}
	for _, g := range []*models.Group{g1, g2} {
		if err := s.CreateGroup(ctx, g); err != nil {
			t.Fatalf("CreateGroup: %v", err)
		}
	}

	withY, err := s.GroupsWithMember(ctx, "y")
	if err != nil {
		t.Fatalf("GroupsWithMember: %v", err)
	}
	if len(withY) != 2 || withY[0].ID != g1.ID {
		t.Errorf("GroupsWithMember = %+v", withY)
	}

	if err := s.DeleteGroup(ctx, g1.ID); err != nil {
		t.Fatalf("DeleteGroup: %v", err)
	}
	if err := s.DeleteGroup(ctx, g1.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreRequests(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	r := &models.Request{
		UserID:       "author",
		Date:         now.Add(24 * time.Hour),
		Description:  "walk the dog",
		Duration:     "1 hour",
		Location:     "Elm St",
		CreationDate: now,
		Network:      models.NetworkReference{Connections: []string{"b"}, Groups: []string{"g"}},
	}
	if err := s.CreateRequest(ctx, r); err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	withB, err := s.RequestsWithConnection(ctx, "b")
	if err != nil || len(withB) != 1 {
		t.Fatalf("RequestsWithConnection = %+v, %v", withB, err)
	}
	withG, err := s.RequestsWithGroup(ctx, "g")
	if err != nil || len(withG) != 1 {
		t.Fatalf("RequestsWithGroup = %+v, %v", withG, err)
	}
	if !withB[0].Equal(withG[0]) {
		t.Error("same request decoded differently by two queries")
	}

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for _, id := range []string{"b", "c", "d", "e", "f"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			won, err := s.AcceptRequest(ctx, r.ID, id)
			if err != nil {
				t.Errorf("AcceptRequest: %v", err)
			}
			if won {
				wins.Add(1)
			}
		}(id)
	}
	wg.Wait()
	if wins.Load() != 1 {
		t.Errorf("expected one winner, got %d", wins.Load())
	}

	if _, err := s.AcceptRequest(ctx, "missing", "b"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	r.Description = "walk two dogs"
	r.UserID = "intruder"
	if err := s.UpdateRequest(ctx, r); err != nil {
		t.Fatalf("UpdateRequest: %v", err)
	}
	got, err := s.GetRequest(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetRequest: %v", err)
	}
	if got.Description != "walk two dogs" || got.UserID != "author" || got.AcceptedID == nil {
		t.Errorf("unexpected request after update: %+v", got)
	}
}

func TestStoreCommunityGroups(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	cg := &models.CommunityGroup{Name: "Garden", Location: models.Location{Lat: 39.78, Lng: -89.65}}
	if err := s.AddCommunityGroup(ctx, cg); err != nil {
		t.Fatalf("AddCommunityGroup: %v", err)
	}

	all, err := s.ListCommunityGroups(ctx)
	if err != nil {
		t.Fatalf("ListCommunityGroups: %v", err)
	}
	if len(all) != 1 || all[0].Location != cg.Location {
		t.Errorf("ListCommunityGroups = %+v", all)
	}
}
