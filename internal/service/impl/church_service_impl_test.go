package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"churchapp/internal/domain"
	"churchapp/internal/dto"
	"churchapp/internal/store"

	"github.com/google/uuid"
)

func staffActor() *domain.UserProfile {
	return &domain.UserProfile{ID: uuid.New(), Role: domain.RoleStaff}
}

func memberActor() *domain.UserProfile {
	return &domain.UserProfile{ID: uuid.New(), Role: domain.RoleMember}
}

func TestBranchCRUD(t *testing.T) {
	svc := NewChurchService(testStore(t))
	ctx := context.Background()

	br, err := svc.CreateBranch(ctx, dto.BranchRequest{Name: "East Legon", Address: "12 Lagos Ave"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetBranch(ctx, br.ID)
	if err != nil || got.Name != "East Legon" {
		t.Fatalf("get = (%+v, %v)", got, err)
	}

	if _, err := svc.CreateBranch(ctx, dto.BranchRequest{Name: "", Address: "x"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("empty name err = %v", err)
	}

	if _, err := svc.CreateBranch(ctx, dto.BranchRequest{Name: "Osu", Address: "Oxford St"}); err != nil {
		t.Fatal(err)
	}
	page, err := svc.ListBranches(ctx, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if page.Count != 2 || len(page.Results) != 2 {
		t.Fatalf("list = count %d, %d rows", page.Count, len(page.Results))
	}
	// Ordered by name.
	if page.Results[0].Name != "East Legon" {
		t.Errorf("order: %q first", page.Results[0].Name)
	}

	upd, err := svc.UpdateBranch(ctx, br.ID, dto.BranchRequest{Name: "East Legon Central", Address: "  14 Lagos Ave  "})
	if err != nil || upd.Name != "East Legon Central" {
		t.Fatalf("update = (%+v, %v)", upd, err)
	}
	if upd.Address != "14 Lagos Ave" {
		t.Errorf("address not trimmed: %q", upd.Address)
	}

	if err := svc.DeleteBranch(ctx, br.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteBranch(ctx, br.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
	if _, err := svc.GetBranch(ctx, br.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get deleted err = %v", err)
	}
}

func TestEventLifecycle(t *testing.T) {
	svc := NewChurchService(testStore(t))
	ctx := context.Background()
	organizer := memberActor()

	ev, err := svc.CreateEvent(ctx, organizer.ID, dto.EventRequest{
		Title:    "Harvest Service",
		Date:     time.Now().Add(48 * time.Hour),
		Location: "Main Auditorium",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ev.Status != domain.EventUpcoming {
		t.Errorf("default status = %q", ev.Status)
	}

	if _, err := svc.CreateEvent(ctx, organizer.ID, dto.EventRequest{Title: "x", Date: time.Now(), Location: "y", Status: "CANCELLED"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("bad status err = %v", err)
	}

	// The organizer may update their own event.
	upd, err := svc.UpdateEvent(ctx, ev.ID, organizer, dto.EventRequest{Status: domain.EventOngoing})
	if err != nil || upd.Status != domain.EventOngoing {
		t.Fatalf("organizer update = (%+v, %v)", upd, err)
	}
	// Staff may update anyone's event.
	if _, err := svc.UpdateEvent(ctx, ev.ID, staffActor(), dto.EventRequest{Status: domain.EventCompleted}); err != nil {
		t.Fatalf("staff update: %v", err)
	}
	// Unrelated members may not.
	if _, err := svc.UpdateEvent(ctx, ev.ID, memberActor(), dto.EventRequest{Title: "Hijack"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("stranger update err = %v", err)
	}
	if err := svc.DeleteEvent(ctx, ev.ID, memberActor()); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("stranger delete err = %v", err)
	}

	page, err := svc.ListEvents(ctx, store.EventFilter{Status: domain.EventCompleted})
	if err != nil || page.Count != 1 {
		t.Fatalf("filtered list = (%+v, %v)", page, err)
	}
	page, err = svc.ListEvents(ctx, store.EventFilter{Search: "Harvest"})
	if err != nil || page.Count != 1 {
		t.Fatalf("search list = (%+v, %v)", page, err)
	}
	if _, err := svc.ListEvents(ctx, store.EventFilter{Status: "CANCELLED"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("bad filter err = %v", err)
	}

	if err := svc.DeleteEvent(ctx, ev.ID, organizer); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetEvent(ctx, ev.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get deleted err = %v", err)
	}
}

func TestSermonLifecycle(t *testing.T) {
	svc := NewChurchService(testStore(t))
	ctx := context.Background()
	speaker := memberActor()

	sm, err := svc.CreateSermon(ctx, speaker.ID, dto.SermonRequest{
		Title:       "On Grace",
		Date:        time.Now().Add(-24 * time.Hour),
		SeriesTitle: "Foundations",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateSermon(ctx, speaker.ID, dto.SermonRequest{
		Title:       "On Hope",
		Date:        time.Now(),
		SeriesTitle: "Foundations",
	}); err != nil {
		t.Fatal(err)
	}

	page, err := svc.ListSermons(ctx, store.SermonFilter{Series: "Foundations"})
	if err != nil || page.Count != 2 {
		t.Fatalf("series list = (%+v, %v)", page, err)
	}
	// Newest first.
	if page.Results[0].Title != "On Hope" {
		t.Errorf("order: %q first", page.Results[0].Title)
	}

	if _, err := svc.CreateSermon(ctx, speaker.ID, dto.SermonRequest{
		Title:    "Bad Media",
		Date:     time.Now(),
		AudioURL: "https://cdn.example.org/talk.exe",
	}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("bad audio ext err = %v", err)
	}

	if _, err := svc.UpdateSermon(ctx, sm.ID, memberActor(), dto.SermonRequest{Title: "Hijack"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("stranger update err = %v", err)
	}
	upd, err := svc.UpdateSermon(ctx, sm.ID, speaker, dto.SermonRequest{AudioURL: "https://cdn.example.org/grace.mp3"})
	if err != nil || upd.AudioURL == "" {
		t.Fatalf("speaker update = (%+v, %v)", upd, err)
	}

	if err := svc.DeleteSermon(ctx, sm.ID, staffActor()); err != nil {
		t.Fatalf("staff delete: %v", err)
	}
	if _, err := svc.GetSermon(ctx, sm.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get deleted err = %v", err)
	}
}
