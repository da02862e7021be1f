package services

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/pkg/apperrors"
	"github.com/eee-uofk/coursehub/internal/pkg/cache"
	"github.com/eee-uofk/coursehub/internal/pkg/filestorage"
)

// memStore is an in-memory stand-in for the database shared by the fake repositories
type memStore struct {
	mu            sync.Mutex
	nextID        int64
	subjects      map[int64]*models.Subject
	resources     map[int64]*models.Resource
	questions     map[int64]*models.Question
	stats         map[int64]*models.SubjectStatistics
	announcements map[int64]*models.Announcement
	reactions     map[int64]map[models.ReactionType]int
	users         map[int64]*models.User

	failTypesFor map[int64]error
	failTotals   error
	failOrderFor map[int64]error
	upserts      int
}

func newMemStore() *memStore {
	return &memStore{
		subjects:      map[int64]*models.Subject{},
		resources:     map[int64]*models.Resource{},
		questions:     map[int64]*models.Question{},
		stats:         map[int64]*models.SubjectStatistics{},
		announcements: map[int64]*models.Announcement{},
		reactions:     map[int64]map[models.ReactionType]int{},
		users:         map[int64]*models.User{},
		failTypesFor:  map[int64]error{},
		failOrderFor:  map[int64]error{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) addSubject(code string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	m.subjects[id] = &models.Subject{ID: id, Code: code, NameAr: code, NameEn: code, Semester: 1}
	return id
}

func (m *memStore) addResource(subjectID int64, rawType string, orderIndex *int, createdAt time.Time) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	m.resources[id] = &models.Resource{
		ID: id, SubjectID: subjectID, Type: models.ResourceType(rawType),
		TitleAr: "t", TitleEn: "t", OrderIndex: orderIndex, CreatedAt: createdAt,
	}
	return id
}

func (m *memStore) addQuestion(subjectID int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	sid := subjectID
	m.questions[id] = &models.Question{ID: id, SubjectID: &sid, QuestionTextAr: "q", QuestionTextEn: "q"}
	return id
}

func intPtr(v int) *int { return &v }

// subject repository

type fakeSubjectRepo struct{ m *memStore }

func (f fakeSubjectRepo) Create(_ context.Context, s *models.Subject) (int64, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	for _, existing := range f.m.subjects {
		if existing.Code == s.Code {
			return 0, apperrors.ErrSubjectCodeExists
		}
	}
	s.ID = f.m.id()
	cp := *s
	f.m.subjects[s.ID] = &cp
	f.m.stats[s.ID] = &models.SubjectStatistics{SubjectID: s.ID}
	return s.ID, nil
}

func (f fakeSubjectRepo) GetByID(_ context.Context, id int64) (*models.Subject, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	s, ok := f.m.subjects[id]
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	cp := *s
	return &cp, nil
}

func (f fakeSubjectRepo) List(_ context.Context) ([]models.SubjectSummary, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []models.SubjectSummary
	for _, s := range f.m.subjects {
		summary := models.SubjectSummary{Subject: *s}
		if st, ok := f.m.stats[s.ID]; ok {
			summary.StatisticsCounters = st.StatisticsCounters
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (f fakeSubjectRepo) ListIDs(_ context.Context) ([]int64, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var ids []int64
	for id := range f.m.subjects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f fakeSubjectRepo) Update(_ context.Context, s *models.Subject) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if _, ok := f.m.subjects[s.ID]; !ok {
		return apperrors.ErrSubjectNotFound
	}
	cp := *s
	f.m.subjects[s.ID] = &cp
	return nil
}

func (f fakeSubjectRepo) Delete(_ context.Context, id int64) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if _, ok := f.m.subjects[id]; !ok {
		return apperrors.ErrSubjectNotFound
	}
	for _, r := range f.m.resources {
		if r.SubjectID == id {
			return apperrors.ErrSubjectHasContent
		}
	}
	for _, q := range f.m.questions {
		if q.SubjectID != nil && *q.SubjectID == id {
			return apperrors.ErrSubjectHasContent
		}
	}
	delete(f.m.subjects, id)
	delete(f.m.stats, id)
	return nil
}

func (f fakeSubjectRepo) Count(_ context.Context) (int64, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	return int64(len(f.m.subjects)), nil
}

// resource repository

type fakeResourceRepo struct{ m *memStore }

func (f fakeResourceRepo) Create(_ context.Context, r *models.Resource) (int64, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if _, ok := f.m.subjects[r.SubjectID]; !ok {
		return 0, apperrors.ErrSubjectNotFound
	}
	r.ID = f.m.id()
	r.CreatedAt = time.Now()
	cp := *r
	f.m.resources[r.ID] = &cp
	return r.ID, nil
}

func (f fakeResourceRepo) GetByID(_ context.Context, id int64) (*models.Resource, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	r, ok := f.m.resources[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	cp := *r
	return &cp, nil
}

func (f fakeResourceRepo) List(_ context.Context, filter models.ResourceFilter) ([]models.Resource, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []models.Resource
	for _, r := range f.m.resources {
		if filter.SubjectID != nil && r.SubjectID != *filter.SubjectID {
			continue
		}
		if filter.Type != nil && r.Type != *filter.Type {
			continue
		}
		out = append(out, *r)
	}
	models.SortResources(out)
	return out, nil
}

func (f fakeResourceRepo) Latest(ctx context.Context, limit int) ([]models.Resource, error) {
	all, _ := f.List(ctx, models.ResourceFilter{})
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f fakeResourceRepo) Update(_ context.Context, r *models.Resource) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if _, ok := f.m.resources[r.ID]; !ok {
		return apperrors.ErrResourceNotFound
	}
	cp := *r
	f.m.resources[r.ID] = &cp
	return nil
}

func (f fakeResourceRepo) Delete(_ context.Context, id int64) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if _, ok := f.m.resources[id]; !ok {
		return apperrors.ErrResourceNotFound
	}
	delete(f.m.resources, id)
	return nil
}

func (f fakeResourceRepo) ListTypesBySubject(_ context.Context, subjectID int64) ([]string, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if err := f.m.failTypesFor[subjectID]; err != nil {
		return nil, err
	}
	var types []string
	for _, r := range f.m.resources {
		if r.SubjectID == subjectID {
			types = append(types, string(r.Type))
		}
	}
	return types, nil
}

func (f fakeResourceRepo) UpdateOrderIndex(_ context.Context, id int64, orderIndex int) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if err := f.m.failOrderFor[id]; err != nil {
		return err
	}
	r, ok := f.m.resources[id]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	idx := orderIndex
	r.OrderIndex = &idx
	return nil
}

// question repository

type fakeQuestionRepo struct{ m *memStore }

func (f fakeQuestionRepo) Create(_ context.Context, q *models.Question) (int64, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	q.ID = f.m.id()
	cp := *q
	f.m.questions[q.ID] = &cp
	return q.ID, nil
}

func (f fakeQuestionRepo) GetByID(_ context.Context, id int64) (*models.Question, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	q, ok := f.m.questions[id]
	if !ok {
		return nil, apperrors.ErrQuestionNotFound
	}
	cp := *q
	return &cp, nil
}

func (f fakeQuestionRepo) List(_ context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []models.Question
	for _, q := range f.m.questions {
		if filter.SubjectID != nil && (q.SubjectID == nil || *q.SubjectID != *filter.SubjectID) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(q.QuestionTextEn), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *q)
	}
	return out, nil
}

func (f fakeQuestionRepo) Update(_ context.Context, q *models.Question) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if _, ok := f.m.questions[q.ID]; !ok {
		return apperrors.ErrQuestionNotFound
	}
	cp := *q
	f.m.questions[q.ID] = &cp
	return nil
}

func (f fakeQuestionRepo) Delete(_ context.Context, id int64) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if _, ok := f.m.questions[id]; !ok {
		return apperrors.ErrQuestionNotFound
	}
	delete(f.m.questions, id)
	return nil
}

func (f fakeQuestionRepo) CountBySubject(_ context.Context, subjectID int64) (int, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	n := 0
	for _, q := range f.m.questions {
		if q.SubjectID != nil && *q.SubjectID == subjectID {
			n++
		}
	}
	return n, nil
}

// statistics repository

type fakeStatsRepo struct{ m *memStore }

func (f fakeStatsRepo) GetBySubjectID(_ context.Context, subjectID int64) (*models.SubjectStatistics, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	st, ok := f.m.stats[subjectID]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (f fakeStatsRepo) Upsert(_ context.Context, subjectID int64, counters models.StatisticsCounters) (*models.SubjectStatistics, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	now := time.Now()
	f.m.upserts++
	st := &models.SubjectStatistics{SubjectID: subjectID, StatisticsCounters: counters, UpdatedAt: &now}
	f.m.stats[subjectID] = st
	cp := *st
	return &cp, nil
}

func (f fakeStatsRepo) UpsertCounted(_ context.Context, subjectID int64, counters models.StatisticsCounters) (*models.SubjectStatistics, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	now := time.Now()
	f.m.upserts++
	if existing, ok := f.m.stats[subjectID]; ok {
		counters.TotalLabs = existing.TotalLabs
		counters.TotalPracticals = existing.TotalPracticals
		counters.TotalTutorials = existing.TotalTutorials
	}
	st := &models.SubjectStatistics{SubjectID: subjectID, StatisticsCounters: counters, UpdatedAt: &now}
	f.m.stats[subjectID] = st
	cp := *st
	return &cp, nil
}

func (f fakeStatsRepo) Totals(_ context.Context) (models.StatisticsCounters, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var t models.StatisticsCounters
	if f.m.failTotals != nil {
		return t, f.m.failTotals
	}
	for _, st := range f.m.stats {
		t.TotalLectures += st.TotalLectures
		t.TotalAssignments += st.TotalAssignments
		t.TotalExams += st.TotalExams
		t.TotalSheets += st.TotalSheets
		t.TotalReferences += st.TotalReferences
		t.TotalImportantQuestions += st.TotalImportantQuestions
		t.TotalQuestions += st.TotalQuestions
		t.TotalLabs += st.TotalLabs
		t.TotalPracticals += st.TotalPracticals
		t.TotalTutorials += st.TotalTutorials
	}
	return t, nil
}

func (f fakeStatsRepo) ListWithSubjects(_ context.Context) ([]models.SubjectStatisticsView, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []models.SubjectStatisticsView
	for _, s := range f.m.subjects {
		v := models.SubjectStatisticsView{SubjectID: s.ID, Code: s.Code}
		if st, ok := f.m.stats[s.ID]; ok {
			v.StatisticsCounters = st.StatisticsCounters
		}
		out = append(out, v)
	}
	return out, nil
}

// announcement and reaction repositories

type fakeAnnouncementRepo struct{ m *memStore }

func (f fakeAnnouncementRepo) Create(_ context.Context, a *models.Announcement) (int64, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	a.ID = f.m.id()
	cp := *a
	f.m.announcements[a.ID] = &cp
	return a.ID, nil
}

func (f fakeAnnouncementRepo) GetByID(_ context.Context, id int64) (*models.Announcement, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	a, ok := f.m.announcements[id]
	if !ok {
		return nil, apperrors.ErrAnnouncementNotFound
	}
	cp := *a
	return &cp, nil
}

func (f fakeAnnouncementRepo) List(_ context.Context, filter models.AnnouncementFilter) ([]models.Announcement, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []models.Announcement
	for _, a := range f.m.announcements {
		if filter.ActiveOnly && !a.IsActive {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f fakeAnnouncementRepo) Update(_ context.Context, a *models.Announcement) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if _, ok := f.m.announcements[a.ID]; !ok {
		return apperrors.ErrAnnouncementNotFound
	}
	cp := *a
	f.m.announcements[a.ID] = &cp
	return nil
}

func (f fakeAnnouncementRepo) Delete(_ context.Context, id int64) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if _, ok := f.m.announcements[id]; !ok {
		return apperrors.ErrAnnouncementNotFound
	}
	delete(f.m.announcements, id)
	return nil
}

func (f fakeAnnouncementRepo) Exists(_ context.Context, id int64) (bool, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	_, ok := f.m.announcements[id]
	return ok, nil
}

type fakeReactionRepo struct{ m *memStore }

func (f fakeReactionRepo) Increment(_ context.Context, announcementID int64, reaction models.ReactionType) (int, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if f.m.reactions[announcementID] == nil {
		f.m.reactions[announcementID] = map[models.ReactionType]int{}
	}
	f.m.reactions[announcementID][reaction]++
	return f.m.reactions[announcementID][reaction], nil
}

func (f fakeReactionRepo) ListByAnnouncement(_ context.Context, announcementID int64) ([]models.AnnouncementReaction, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []models.AnnouncementReaction
	for t, c := range f.m.reactions[announcementID] {
		out = append(out, models.AnnouncementReaction{AnnouncementID: announcementID, ReactionType: t, Count: c})
	}
	return out, nil
}

// user repository

type fakeUserRepo struct{ m *memStore }

func (f fakeUserRepo) Create(_ context.Context, u *models.User) (int64, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	u.ID = f.m.id()
	cp := *u
	f.m.users[u.ID] = &cp
	return u.ID, nil
}

func (f fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	u, ok := f.m.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	for _, u := range f.m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	return err == nil, nil
}

func (f fakeUserRepo) UpdateLastLogin(_ context.Context, userID int64, at time.Time) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	u, ok := f.m.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.LastLoginAt = &at
	return nil
}

// collaborators

type memCache struct {
	mu      sync.Mutex
	values  map[string][]byte
	deletes int
}

func newMemCache() *memCache { return &memCache{values: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string, dst interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = raw
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
	}
	c.deletes++
	return nil
}

type fakeLocker struct{ held bool }

func (l *fakeLocker) Acquire(_ context.Context, _ string) (func(context.Context) error, error) {
	if l.held {
		return nil, cache.ErrLockHeld
	}
	l.held = true
	return func(context.Context) error { l.held = false; return nil }, nil
}

type fakeStorage struct {
	mu      sync.Mutex
	saved   []string
	deleted []string
	failErr error
}

func (s *fakeStorage) Save(_ context.Context, fh *multipart.FileHeader, folder string) (*filestorage.StoredFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	key := folder + "/" + filestorage.SanitizeFilename(fh.Filename)
	s.saved = append(s.saved, key)
	return &filestorage.StoredFile{Path: key, URL: "/uploads/" + key, Size: fh.Size, ContentType: "application/pdf", OriginalName: fh.Filename}, nil
}

func (s *fakeStorage) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, path)
	return nil
}

var errBoom = errors.New("boom")
