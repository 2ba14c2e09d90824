package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"io.winapps.traveljournal/internal/apperr"
	"io.winapps.traveljournal/internal/auth"
	"io.winapps.traveljournal/internal/middleware"
	models "io.winapps.traveljournal/internal/models/account"
)

// In-memory store fakes backing the handler tests.

type fakeUserStore struct {
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (s *fakeUserStore) CreateUser(_ context.Context, username, email, passwordHash string) (int64, error) {
	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return 0, apperr.New(apperr.Conflict, "Username or email already registered")
		}
	}
	s.nextID++
	s.users[s.nextID] = &models.User{
		ID:           s.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	return s.nextID, nil
}

func (s *fakeUserStore) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "User not found")
}

func (s *fakeUserStore) FindUserByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	copied := *u
	return &copied, nil
}

type fakeEntryStore struct {
	nextID  int64
	entries map[int64]*models.Entry
}

func newFakeEntryStore() *fakeEntryStore {
	return &fakeEntryStore{entries: make(map[int64]*models.Entry)}
}

func (s *fakeEntryStore) FindEntries(_ context.Context) ([]models.Entry, error) {
	ids := make([]int64, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]models.Entry, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.entries[id])
	}
	return out, nil
}

func (s *fakeEntryStore) FindEntryByID(_ context.Context, id int64) (*models.Entry, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "Entry not found")
	}
	copied := *e
	return &copied, nil
}

func (s *fakeEntryStore) CreateEntry(_ context.Context, location string, date time.Time, description string, userID *int64) (int64, error) {
	s.nextID++
	s.entries[s.nextID] = &models.Entry{
		ID:          s.nextID,
		Location:    location,
		Date:        date,
		Description: description,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}
	return s.nextID, nil
}

func (s *fakeEntryStore) UpdateEntry(_ context.Context, entry *models.Entry) error {
	if _, ok := s.entries[entry.ID]; !ok {
		return apperr.New(apperr.NotFound, "Entry not found")
	}
	copied := *entry
	s.entries[entry.ID] = &copied
	return nil
}

func (s *fakeEntryStore) DeleteEntry(_ context.Context, id int64) error {
	if _, ok := s.entries[id]; !ok {
		return apperr.New(apperr.NotFound, "Entry not found")
	}
	delete(s.entries, id)
	return nil
}

type fakePhotoStore struct {
	nextID    int64
	photos    map[int64]*models.Photo
	createErr error
}

func newFakePhotoStore() *fakePhotoStore {
	return &fakePhotoStore{photos: make(map[int64]*models.Photo)}
}

func (s *fakePhotoStore) FindPhotosByEntry(_ context.Context, entryID int64) ([]models.Photo, error) {
	ids := make([]int64, 0, len(s.photos))
	for id, p := range s.photos {
		if p.EntryID == entryID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]models.Photo, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.photos[id])
	}
	return out, nil
}

func (s *fakePhotoStore) CreatePhoto(_ context.Context, entryID int64, url string) (*models.Photo, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.nextID++
	photo := &models.Photo{ID: s.nextID, URL: url, EntryID: entryID, UploadedAt: time.Now()}
	s.photos[s.nextID] = photo
	copied := *photo
	return &copied, nil
}

func (s *fakePhotoStore) DeletePhoto(_ context.Context, entryID, photoID int64) error {
	p, ok := s.photos[photoID]
	if !ok || p.EntryID != entryID {
		return apperr.New(apperr.NotFound, "Photo not found")
	}
	delete(s.photos, photoID)
	return nil
}

type tagPair struct {
	entryID int64
	tagID   int64
}

type fakeTagStore struct {
	nextID int64
	tags   map[int64]*models.Tag
	pairs  map[tagPair]bool
}

func newFakeTagStore() *fakeTagStore {
	return &fakeTagStore{tags: make(map[int64]*models.Tag), pairs: make(map[tagPair]bool)}
}

func (s *fakeTagStore) FindTags(_ context.Context) ([]models.Tag, error) {
	ids := make([]int64, 0, len(s.tags))
	for id := range s.tags {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]models.Tag, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.tags[id])
	}
	return out, nil
}

func (s *fakeTagStore) FindTagsByEntry(_ context.Context, entryID int64) ([]models.Tag, error) {
	ids := make([]int64, 0)
	for pair := range s.pairs {
		if pair.entryID == entryID {
			ids = append(ids, pair.tagID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]models.Tag, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.tags[id])
	}
	return out, nil
}

func (s *fakeTagStore) FindTagByID(_ context.Context, id int64) (*models.Tag, error) {
	t, ok := s.tags[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "Tag not found")
	}
	copied := *t
	return &copied, nil
}

func (s *fakeTagStore) CreateTag(_ context.Context, name string) (int64, error) {
	for _, t := range s.tags {
		if t.Name == name {
			return 0, apperr.New(apperr.Conflict, "Tag already exists")
		}
	}
	s.nextID++
	s.tags[s.nextID] = &models.Tag{ID: s.nextID, Name: name, CreatedAt: time.Now()}
	return s.nextID, nil
}

func (s *fakeTagStore) DeleteTag(_ context.Context, id int64) error {
	if _, ok := s.tags[id]; !ok {
		return apperr.New(apperr.NotFound, "Tag not found")
	}
	delete(s.tags, id)
	for pair := range s.pairs {
		if pair.tagID == id {
			delete(s.pairs, pair)
		}
	}
	return nil
}

func (s *fakeTagStore) AttachTag(_ context.Context, entryID, tagID int64) error {
	s.pairs[tagPair{entryID, tagID}] = true
	return nil
}

func (s *fakeTagStore) DetachTag(_ context.Context, entryID, tagID int64) error {
	pair := tagPair{entryID, tagID}
	if !s.pairs[pair] {
		return apperr.New(apperr.NotFound, "Tag is not attached to this entry")
	}
	delete(s.pairs, pair)
	return nil
}

// testEnv wires the full route table against fakes, mirroring cmd/api/main.go.
type testEnv struct {
	router  *gin.Engine
	tokens  *auth.TokenManager
	users   *fakeUserStore
	entries *fakeEntryStore
	photos  *fakePhotoStore
	tags    *fakeTagStore
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		tokens:  auth.NewTokenManager("test-secret", time.Hour),
		users:   newFakeUserStore(),
		entries: newFakeEntryStore(),
		photos:  newFakePhotoStore(),
		tags:    newFakeTagStore(),
	}

	authHandler := NewAuthHandler(env.users, env.tokens, nil, nil)
	entryHandler := NewEntryHandler(env.entries, nil, nil)
	photoHandler := NewPhotoHandler(env.entries, env.photos, nil)
	tagHandler := NewTagHandler(env.entries, env.tags, nil)

	requireAuth := middleware.RequireAuth(env.tokens)
	optionalAuth := middleware.OptionalAuth(env.tokens)

	router := gin.New()
	api := router.Group("/api")
	{
		usersGroup := api.Group("/users")
		{
			usersGroup.POST("/register", authHandler.Register)
			usersGroup.POST("/login", authHandler.Login)
			usersGroup.POST("/reset-password", authHandler.ResetPassword)
			usersGroup.GET("/profile", requireAuth, authHandler.Profile)
		}

		entriesGroup := api.Group("/entries")
		{
			entriesGroup.GET("", optionalAuth, entryHandler.ListEntries)
			entriesGroup.POST("", optionalAuth, entryHandler.CreateEntry)
			entriesGroup.GET("/:id", optionalAuth, entryHandler.GetEntry)
			entriesGroup.PUT("/:id", optionalAuth, entryHandler.UpdateEntry)
			entriesGroup.DELETE("/:id", optionalAuth, entryHandler.DeleteEntry)

			entriesGroup.GET("/:id/photos", requireAuth, photoHandler.ListPhotos)
			entriesGroup.POST("/:id/photos", requireAuth, photoHandler.AddPhoto)
			entriesGroup.DELETE("/:id/photos/:photo_id", requireAuth, photoHandler.DeletePhoto)

			entriesGroup.GET("/:id/tags", optionalAuth, tagHandler.ListEntryTags)
			entriesGroup.POST("/:id/tags", requireAuth, tagHandler.AttachTag)
			entriesGroup.DELETE("/:id/tags/:tag_id", requireAuth, tagHandler.DetachTag)
		}

		tagsGroup := api.Group("/tags")
		{
			tagsGroup.GET("", optionalAuth, tagHandler.ListTags)
			tagsGroup.POST("", requireAuth, tagHandler.CreateTag)
			tagsGroup.DELETE("/:id", requireAuth, tagHandler.DeleteTag)
		}
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	env.router = router
	return env
}
