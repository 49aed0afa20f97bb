package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/meetly/sync-client/internal/client"
	"github.com/meetly/sync-client/internal/models"
)

// Snapshot is the current in-memory view of the workspace. It is replaced
// wholesale by a full refresh and edited in place by local patches; readers
// get a value copy and must treat the slices as read-only.
type Snapshot struct {
	Projects []models.Project
	Users    []models.User
	Tasks    []models.Task
	Meetings []models.Meeting
}

// SessionStore is the slice of the session layer the synchronizer needs:
// the cached profile for resume, and Clear on logout.
type SessionStore interface {
	SaveProfile(user models.User) error
	Profile() (*models.User, error)
	Clear() error
}

// SyncService owns the snapshot and the active-project selection. All
// mutations go through it; the rendering layer only reads.
type SyncService struct {
	api      client.WorkspaceAPI
	sessions SessionStore
	log      *zap.Logger

	mu            sync.RWMutex
	snapshot      Snapshot
	currentUser   *models.User
	activeProject string

	pending sync.WaitGroup
}

func NewSyncService(api client.WorkspaceAPI, sessions SessionStore, log *zap.Logger) *SyncService {
	return &SyncService{
		api:      api,
		sessions: sessions,
		log:      log,
	}
}

// Login authenticates against the backend and loads the whole workspace.
func (s *SyncService) Login(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.api.Login(ctx, username, password)
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	s.currentUser = &user
	s.mu.Unlock()

	if err := s.FullRefresh(ctx); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Resume restores the session from the cached profile without re-login.
// Returns false when no profile is stored.
func (s *SyncService) Resume(ctx context.Context) (bool, error) {
	profile, err := s.sessions.Profile()
	if err != nil {
		return false, err
	}
	if profile == nil {
		return false, nil
	}

	s.mu.Lock()
	s.currentUser = profile
	s.mu.Unlock()

	if err := s.FullRefresh(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Logout clears the snapshot, the active selection and the persisted
// session in one motion.
func (s *SyncService) Logout() error {
	s.mu.Lock()
	s.snapshot = Snapshot{}
	s.currentUser = nil
	s.activeProject = ""
	s.mu.Unlock()

	if err := s.sessions.Clear(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// CurrentUser returns the authenticated user, or false when logged out.
func (s *SyncService) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentUser == nil {
		return models.User{}, false
	}
	return *s.currentUser, true
}

// Snapshot returns the current workspace view.
func (s *SyncService) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// FullRefresh re-fetches everything: projects and their member-derived user
// set, then one task fetch and one meeting fetch per project, concurrently.
// The new snapshot is published only after every fetch succeeded; on any
// failure the previous snapshot is retained untouched.
func (s *SyncService) FullRefresh(ctx context.Context) error {
	s.mu.RLock()
	user := s.currentUser
	s.mu.RUnlock()
	if user == nil {
		return fmt.Errorf("full refresh: no authenticated user")
	}

	projects, fetchedUsers, err := s.api.InitialData(ctx)
	if err != nil {
		s.log.Error("full refresh aborted, keeping previous snapshot", zap.Error(err))
		return fmt.Errorf("full refresh: %w", err)
	}

	// The authenticated user always leads the user set, even when project
	// membership omits them. A backend duplicate refreshes the profile data
	// but keeps the first position.
	users := []models.User{*user}
	index := map[string]int{user.ID: 0}
	for _, u := range fetchedUsers {
		if i, dup := index[u.ID]; dup {
			users[i] = u
			continue
		}
		index[u.ID] = len(users)
		users = append(users, u)
	}

	tasksPerProject := make([][]models.Task, len(projects))
	meetingsPerProject := make([][]models.Meeting, len(projects))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range projects {
		g.Go(func() error {
			tasks, err := s.api.TasksByProject(gctx, p.ID, "")
			if err != nil {
				return fmt.Errorf("tasks for project %s: %w", p.ID, err)
			}
			tasksPerProject[i] = tasks
			return nil
		})
		g.Go(func() error {
			meetings, err := s.api.MeetingsByProject(gctx, p.ID)
			if err != nil {
				return fmt.Errorf("meetings for project %s: %w", p.ID, err)
			}
			meetingsPerProject[i] = meetings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error("full refresh aborted, keeping previous snapshot", zap.Error(err))
		return fmt.Errorf("full refresh: %w", err)
	}

	// Fetches ran concurrently; flattening in project order keeps the
	// aggregate deterministic.
	var tasks []models.Task
	for _, ts := range tasksPerProject {
		tasks = append(tasks, ts...)
	}
	var meetings []models.Meeting
	for _, ms := range meetingsPerProject {
		meetings = append(meetings, ms...)
	}

	s.mu.Lock()
	s.snapshot = Snapshot{
		Projects: projects,
		Users:    users,
		Tasks:    tasks,
		Meetings: meetings,
	}
	s.mu.Unlock()

	s.log.Info("snapshot published",
		zap.Int("projects", len(projects)),
		zap.Int("users", len(users)),
		zap.Int("tasks", len(tasks)),
		zap.Int("meetings", len(meetings)),
	)
	return nil
}
