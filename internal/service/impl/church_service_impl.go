package impl

import (
	"context"
	"errors"
	"strings"
	"time"

	"churchapp/internal/domain"
	"churchapp/internal/dto"
	"churchapp/internal/store"

	"github.com/google/uuid"
)

type ChurchServiceImpl struct {
	store *store.Store
}

func NewChurchService(st *store.Store) *ChurchServiceImpl {
	return &ChurchServiceImpl{store: st}
}

func (c *ChurchServiceImpl) CreateBranch(ctx context.Context, r dto.BranchRequest) (*domain.ChurchBranch, error) {
	name := strings.TrimSpace(r.Name)
	addr := strings.TrimSpace(r.Address)
	if name == "" || addr == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	br := &domain.ChurchBranch{
		ID:        uuid.New(),
		Name:      name,
		Address:   addr,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.store.Branches().Create(ctx, br); err != nil {
		return nil, err
	}
	return br, nil
}

func (c *ChurchServiceImpl) GetBranch(ctx context.Context, id domain.BranchID) (*domain.ChurchBranch, error) {
	br, err := c.store.Branches().GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return br, nil
}

func (c *ChurchServiceImpl) ListBranches(ctx context.Context, limit, offset int) (*dto.Page[domain.ChurchBranch], error) {
	limit = clampLimit(limit)
	items, total, err := c.store.Branches().List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.Page[domain.ChurchBranch]{Count: total, Results: items}, nil
}

func (c *ChurchServiceImpl) UpdateBranch(ctx context.Context, id domain.BranchID, r dto.BranchRequest) (*domain.ChurchBranch, error) {
	br, err := c.store.Branches().GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if name := strings.TrimSpace(r.Name); name != "" {
		br.Name = name
	}
	if addr := strings.TrimSpace(r.Address); addr != "" {
		br.Address = addr
	}
	if err := c.store.Branches().Update(ctx, br); err != nil {
		return nil, err
	}
	return br, nil
}

func (c *ChurchServiceImpl) DeleteBranch(ctx context.Context, id domain.BranchID) error {
	rows, err := c.store.Branches().Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c *ChurchServiceImpl) CreateEvent(ctx context.Context, organizer domain.UserID, r dto.EventRequest) (*domain.Event, error) {
	if strings.TrimSpace(r.Title) == "" || r.Date.IsZero() || strings.TrimSpace(r.Location) == "" {
		return nil, domain.ErrInvalidInput
	}
	status := r.Status
	if status == "" {
		status = domain.EventUpcoming
	}
	if !domain.ValidEventStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	ev := &domain.Event{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Date:        r.Date,
		Location:    r.Location,
		OrganizerID: organizer,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.store.Events().Create(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (c *ChurchServiceImpl) GetEvent(ctx context.Context, id domain.EventID) (*domain.Event, error) {
	ev, err := c.store.Events().GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return ev, nil
}

func (c *ChurchServiceImpl) ListEvents(ctx context.Context, f store.EventFilter) (*dto.Page[domain.Event], error) {
	if f.Status != "" && !domain.ValidEventStatus(f.Status) {
		return nil, domain.ErrInvalidInput
	}
	f.Limit = clampLimit(f.Limit)
	items, total, err := c.store.Events().List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.Page[domain.Event]{Count: total, Results: items}, nil
}

func (c *ChurchServiceImpl) UpdateEvent(ctx context.Context, id domain.EventID, actor *domain.UserProfile, r dto.EventRequest) (*domain.Event, error) {
	ev, err := c.store.Events().GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !canManage(actor, ev.OrganizerID) {
		return nil, domain.ErrForbidden
	}
	if title := strings.TrimSpace(r.Title); title != "" {
		ev.Title = title
	}
	if r.Description != "" {
		ev.Description = r.Description
	}
	if !r.Date.IsZero() {
		ev.Date = r.Date
	}
	if r.Location != "" {
		ev.Location = r.Location
	}
	if r.Status != "" {
		if !domain.ValidEventStatus(r.Status) {
			return nil, domain.ErrInvalidInput
		}
		ev.Status = r.Status
	}
	if err := c.store.Events().Update(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (c *ChurchServiceImpl) DeleteEvent(ctx context.Context, id domain.EventID, actor *domain.UserProfile) error {
	ev, err := c.store.Events().GetByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}
	if !canManage(actor, ev.OrganizerID) {
		return domain.ErrForbidden
	}
	_, err = c.store.Events().Delete(ctx, id)
	return err
}

var (
	audioExts = []string{".mp3", ".wav", ".m4a", ".aac", ".ogg"}
	videoExts = []string{".mp4", ".mov", ".avi", ".mkv", ".webm"}
)

// validMediaURL accepts empty values; set URLs must end in a known
// extension, query string aside.
func validMediaURL(raw string, exts []string) bool {
	if raw == "" {
		return true
	}
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.ToLower(raw)
	for _, ext := range exts {
		if strings.HasSuffix(raw, ext) {
			return true
		}
	}
	return false
}

func (c *ChurchServiceImpl) CreateSermon(ctx context.Context, speaker domain.UserID, r dto.SermonRequest) (*domain.Sermon, error) {
	if strings.TrimSpace(r.Title) == "" || r.Date.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !validMediaURL(r.AudioURL, audioExts) || !validMediaURL(r.VideoURL, videoExts) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	sm := &domain.Sermon{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Date:        r.Date,
		SpeakerID:   speaker,
		SeriesTitle: r.SeriesTitle,
		AudioURL:    r.AudioURL,
		VideoURL:    r.VideoURL,
		Transcript:  r.Transcript,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.store.Sermons().Create(ctx, sm); err != nil {
		return nil, err
	}
	return sm, nil
}

func (c *ChurchServiceImpl) GetSermon(ctx context.Context, id domain.SermonID) (*domain.Sermon, error) {
	sm, err := c.store.Sermons().GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return sm, nil
}

func (c *ChurchServiceImpl) ListSermons(ctx context.Context, f store.SermonFilter) (*dto.Page[domain.Sermon], error) {
	f.Limit = clampLimit(f.Limit)
	items, total, err := c.store.Sermons().List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.Page[domain.Sermon]{Count: total, Results: items}, nil
}

func (c *ChurchServiceImpl) UpdateSermon(ctx context.Context, id domain.SermonID, actor *domain.UserProfile, r dto.SermonRequest) (*domain.Sermon, error) {
	sm, err := c.store.Sermons().GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !canManage(actor, sm.SpeakerID) {
		return nil, domain.ErrForbidden
	}
	if !validMediaURL(r.AudioURL, audioExts) || !validMediaURL(r.VideoURL, videoExts) {
		return nil, domain.ErrInvalidInput
	}
	if title := strings.TrimSpace(r.Title); title != "" {
		sm.Title = title
	}
	if r.Description != "" {
		sm.Description = r.Description
	}
	if !r.Date.IsZero() {
		sm.Date = r.Date
	}
	if r.SeriesTitle != "" {
		sm.SeriesTitle = r.SeriesTitle
	}
	if r.AudioURL != "" {
		sm.AudioURL = r.AudioURL
	}
	if r.VideoURL != "" {
		sm.VideoURL = r.VideoURL
	}
	if r.Transcript != "" {
		sm.Transcript = r.Transcript
	}
	if err := c.store.Sermons().Update(ctx, sm); err != nil {
		return nil, err
	}
	return sm, nil
}

func (c *ChurchServiceImpl) DeleteSermon(ctx context.Context, id domain.SermonID, actor *domain.UserProfile) error {
	sm, err := c.store.Sermons().GetByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}
	if !canManage(actor, sm.SpeakerID) {
		return domain.ErrForbidden
	}
	_, err = c.store.Sermons().Delete(ctx, id)
	return err
}

// canManage allows the owning user plus any staff-level role.
func canManage(actor *domain.UserProfile, owner domain.UserID) bool {
	if actor == nil {
		return false
	}
	return actor.ID == owner || staffRole(actor.Role)
}

func staffRole(role string) bool {
	switch role {
	case domain.RoleStaff, domain.RolePastor, domain.RoleAdmin:
		return true
	}
	return false
}

func mapNotFound(err error) error {
	if errors.Is(err, store.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func clampLimit(limit int) int {
	const def, max = 20, 100
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
