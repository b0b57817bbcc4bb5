package service

import (
	"context"
	"testing"

	"favornet/server/internal/models"
)

func descriptions(inbox []models.InboxRequest) []string {
	out := make([]string, 0, len(inbox))
	for _, r := range inbox {
		out = append(out, r.Description)
	}
	return out
}

func TestInboxDirectBeforeGroup(t *testing.T) {
	f := newFixture(t, "alice", "bob", "carol")
	f.connect(t, "alice", "bob")
	g := f.group(t, "carol", "Block", "bob")

	f.post(t, "carol", "shovel snow", entry(models.HeaderGroups, g.ID))
	f.post(t, "alice", "lend a drill", entry(models.HeaderConnections, f.id("bob")))

	inbox, err := f.svc.Inbox(context.Background(), f.id("bob"))
	if err != nil {
		t.Fatalf("Inbox failed: %v", err)
	}

	got := descriptions(inbox)
	want := []string{"lend a drill", "shovel snow"}
	if len(got) != len(want) {
		t.Fatalf("inbox = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("inbox[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if inbox[0].UserName != "alice" || inbox[1].UserName != "carol" {
		t.Errorf("authors = %q, %q", inbox[0].UserName, inbox[1].UserName)
	}
}

func TestInboxDeduplicates(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	f.connect(t, "alice", "bob")
	g := f.group(t, "alice", "Close friends", "bob")

	f.post(t, "alice", "airport ride",
		entry(models.HeaderConnections, f.id("bob")),
		entry(models.HeaderGroups, g.ID))

	inbox, err := f.svc.Inbox(context.Background(), f.id("bob"))
	if err != nil {
		t.Fatalf("Inbox failed: %v", err)
	}
	if len(inbox) != 1 {
		t.Fatalf("expected 1 request, got %v", descriptions(inbox))
	}
}

func TestInboxExcludesOthers(t *testing.T) {
	f := newFixture(t, "alice", "bob", "carol")
	f.connect(t, "alice", "bob")
	f.post(t, "alice", "fix a bike", entry(models.HeaderConnections, f.id("bob")))

	inbox, err := f.svc.Inbox(context.Background(), f.id("carol"))
	if err != nil {
		t.Fatalf("Inbox failed: %v", err)
	}
	if len(inbox) != 0 {
		t.Errorf("expected empty inbox, got %v", descriptions(inbox))
	}
}

func TestInboxUnknownAuthor(t *testing.T) {
	f := newFixture(t, "bob")
	ctx := context.Background()

	orphan := &models.Request{
		UserID:       "deleted-user",
		Description:  "return a book",
		CreationDate: testNow,
		Network: models.NetworkReference{
			Connections:     []string{f.id("bob")},
			Groups:          []string{},
			CommunityGroups: []string{},
		},
	}
	if err := f.store.CreateRequest(ctx, orphan); err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}

	inbox, err := f.svc.Inbox(ctx, f.id("bob"))
	if err != nil {
		t.Fatalf("Inbox failed: %v", err)
	}
	if len(inbox) != 1 {
		t.Fatalf("expected 1 request, got %d", len(inbox))
	}
	if inbox[0].UserName != UnknownUserName {
		t.Errorf("user_name = %q, want %q", inbox[0].UserName, UnknownUserName)
	}
}

func TestInboxErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Inbox(context.Background(), "")
	assertKind(t, err, KindValidation)

	_, err = f.svc.Inbox(context.Background(), "missing")
	assertKind(t, err, KindNotFound)
}

func TestDedupeKeepsFirst(t *testing.T) {
	accepted := "bob"
	a := models.Request{ID: "1", Description: "a", Date: testNow}
	b := models.Request{ID: "2", Description: "b"}
	aAccepted := a
	aAccepted.AcceptedID = &accepted

	got := dedupe([]models.Request{a, b, a, aAccepted})
	if len(got) != 3 {
		t.Fatalf("dedupe kept %d requests, want 3", len(got))
	}
	if got[0].ID != "1" || got[1].ID != "2" || got[2].AcceptedID == nil {
		t.Errorf("unexpected order: %+v", got)
	}
}
