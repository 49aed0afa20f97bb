package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meetly/sync-client/internal/models"
)

// fakeAPI implements client.WorkspaceAPI with overridable behavior per
// method. Unset methods return zero values.
type fakeAPI struct {
	mu sync.Mutex

	loginFn        func(username, password string) (models.User, error)
	initialDataFn  func() ([]models.Project, []models.User, error)
	tasksFn        func(projectID string) ([]models.Task, error)
	meetingsFn     func(projectID string) ([]models.Meeting, error)
	updateStatusFn func(taskID string, status models.TaskStatus) (models.Task, error)
	updateTaskFn   func(taskID string, updates models.TaskUpdate) (models.Task, error)
	createTaskFn   func(newTask models.NewTask, authorID string) (models.Task, error)

	statusCalls []string
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (models.User, error) {
	if f.loginFn != nil {
		return f.loginFn(username, password)
	}
	return models.User{}, nil
}

func (f *fakeAPI) CurrentUser(ctx context.Context) (models.User, error) {
	return models.User{}, nil
}

func (f *fakeAPI) InitialData(ctx context.Context) ([]models.Project, []models.User, error) {
	if f.initialDataFn != nil {
		return f.initialDataFn()
	}
	return nil, nil, nil
}

func (f *fakeAPI) CreateProject(ctx context.Context, data models.ProjectCreate, ownerID string) (models.Project, error) {
	return models.Project{ID: "p-new", Name: data.Name, OwnerID: ownerID, Members: data.MemberIDs}, nil
}

func (f *fakeAPI) AddMember(ctx context.Context, projectID, email string) (models.User, error) {
	return models.User{ID: "u-invited", Name: "Invited", Email: email, Role: "Member"}, nil
}

func (f *fakeAPI) DeleteProject(ctx context.Context, projectID string) error { return nil }

func (f *fakeAPI) RemoveMember(ctx context.Context, projectID, userID string) error { return nil }

func (f *fakeAPI) TasksByProject(ctx context.Context, projectID, statusFilter string) ([]models.Task, error) {
	if f.tasksFn != nil {
		return f.tasksFn(projectID)
	}
	return nil, nil
}

func (f *fakeAPI) CreateTask(ctx context.Context, newTask models.NewTask, authorID string) (models.Task, error) {
	if f.createTaskFn != nil {
		return f.createTaskFn(newTask, authorID)
	}
	return models.Task{ID: "t-new", Title: newTask.Title, AuthorID: authorID, ProjectID: newTask.ProjectID}, nil
}

func (f *fakeAPI) UpdateTaskStatus(ctx context.Context, taskID string, newStatus models.TaskStatus) (models.Task, error) {
	f.mu.Lock()
	f.statusCalls = append(f.statusCalls, taskID+":"+string(newStatus))
	f.mu.Unlock()
	if f.updateStatusFn != nil {
		return f.updateStatusFn(taskID, newStatus)
	}
	return models.Task{ID: taskID, Status: newStatus}, nil
}

func (f *fakeAPI) UpdateTask(ctx context.Context, taskID string, updates models.TaskUpdate) (models.Task, error) {
	if f.updateTaskFn != nil {
		return f.updateTaskFn(taskID, updates)
	}
	return models.Task{ID: taskID}, nil
}

func (f *fakeAPI) DeleteTask(ctx context.Context, taskID string) error { return nil }

func (f *fakeAPI) MeetingsByProject(ctx context.Context, projectID string) ([]models.Meeting, error) {
	if f.meetingsFn != nil {
		return f.meetingsFn(projectID)
	}
	return nil, nil
}

func (f *fakeAPI) CreateMeeting(ctx context.Context, data models.MeetingCreate, projectID string) (models.Meeting, error) {
	return models.Meeting{ID: "m-new", Title: data.Title, ProjectID: projectID}, nil
}

func (f *fakeAPI) DeleteMeeting(ctx context.Context, meetingID string) error { return nil }

type memSessions struct {
	profile *models.User
	cleared bool
}

func (m *memSessions) SaveProfile(u models.User) error { m.profile = &u; return nil }
func (m *memSessions) Profile() (*models.User, error)  { return m.profile, nil }
func (m *memSessions) Clear() error                    { m.profile = nil; m.cleared = true; return nil }

func twoProjectAPI() *fakeAPI {
	return &fakeAPI{
		initialDataFn: func() ([]models.Project, []models.User, error) {
			return []models.Project{
					{ID: "pA", Name: "Alpha", OwnerID: "u1", Members: []string{"u1", "u2"}},
					{ID: "pB", Name: "Beta", OwnerID: "u2", Members: []string{"u2"}},
				}, []models.User{
					{ID: "u1", Name: "Alice"},
					{ID: "u2", Name: "Bob"},
				}, nil
		},
		tasksFn: func(projectID string) ([]models.Task, error) {
			switch projectID {
			case "pA":
				return []models.Task{{ID: "tA1", ProjectID: "pA"}, {ID: "tA2", ProjectID: "pA"}}, nil
			case "pB":
				return []models.Task{{ID: "tB1", ProjectID: "pB"}}, nil
			}
			return nil, nil
		},
		meetingsFn: func(projectID string) ([]models.Meeting, error) {
			if projectID == "pA" {
				return []models.Meeting{{ID: "mA1", ProjectID: "pA"}}, nil
			}
			return nil, nil
		},
	}
}

func newTestService(api *fakeAPI) (*SyncService, *memSessions) {
	sessions := &memSessions{}
	return NewSyncService(api, sessions, zap.NewNop()), sessions
}

func loggedIn(t *testing.T, api *fakeAPI) (*SyncService, *memSessions) {
	t.Helper()
	api.loginFn = func(username, password string) (models.User, error) {
		return models.User{ID: "u1", Name: "Alice", Username: username}, nil
	}
	svc, sessions := newTestService(api)
	_, err := svc.Login(context.Background(), "alice", "x")
	require.NoError(t, err)
	return svc, sessions
}

func TestSyncService_FullRefresh_FlattensInProjectOrder(t *testing.T) {
	svc, _ := loggedIn(t, twoProjectAPI())

	snap := svc.Snapshot()
	require.Len(t, snap.Projects, 2)
	assert.Equal(t, []string{"tA1", "tA2", "tB1"}, []string{snap.Tasks[0].ID, snap.Tasks[1].ID, snap.Tasks[2].ID})
	require.Len(t, snap.Meetings, 1)
}

func TestSyncService_FullRefresh_CurrentUserLeadsUserSet(t *testing.T) {
	api := twoProjectAPI()
	svc, _ := loggedIn(t, api)

	snap := svc.Snapshot()
	require.Len(t, snap.Users, 2)
	assert.Equal(t, "u1", snap.Users[0].ID)
	// The backend's duplicate of the current user refreshes the data but
	// keeps the first position.
	assert.Equal(t, "Alice", snap.Users[0].Name)
	assert.Equal(t, "u2", snap.Users[1].ID)
}

func TestSyncService_FullRefresh_IncludesUserOmittedByMembership(t *testing.T) {
	api := twoProjectAPI()
	api.initialDataFn = func() ([]models.Project, []models.User, error) {
		return []models.Project{{ID: "pA", Name: "Alpha", OwnerID: "u9"}},
			[]models.User{{ID: "u2", Name: "Bob"}}, nil
	}
	api.tasksFn = nil
	api.meetingsFn = nil
	svc, _ := loggedIn(t, api)

	snap := svc.Snapshot()
	require.Len(t, snap.Users, 2)
	assert.Equal(t, "u1", snap.Users[0].ID, "authenticated user is forced into the set")
}

func TestSyncService_FullRefresh_AtomicOnPartialFailure(t *testing.T) {
	api := twoProjectAPI()
	svc, _ := loggedIn(t, api)
	before := svc.Snapshot()
	require.Len(t, before.Tasks, 3)

	api.tasksFn = func(projectID string) ([]models.Task, error) {
		if projectID == "pB" {
			return nil, errors.New("backend down")
		}
		return []models.Task{{ID: "tA1-v2", ProjectID: "pA"}}, nil
	}

	err := svc.FullRefresh(context.Background())
	require.Error(t, err)

	after := svc.Snapshot()
	assert.Equal(t, before, after, "failed refresh must not publish partial results")
}

func TestSyncService_FullRefresh_RequiresAuthentication(t *testing.T) {
	svc, _ := newTestService(twoProjectAPI())
	err := svc.FullRefresh(context.Background())
	require.Error(t, err)
}

func TestSyncService_Resume_FromCachedProfile(t *testing.T) {
	api := twoProjectAPI()
	sessions := &memSessions{profile: &models.User{ID: "u1", Name: "Alice"}}
	svc := NewSyncService(api, sessions, zap.NewNop())

	resumed, err := svc.Resume(context.Background())
	require.NoError(t, err)
	assert.True(t, resumed)

	user, ok := svc.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "u1", user.ID)
	assert.Len(t, svc.Snapshot().Projects, 2)
}

func TestSyncService_Resume_NoStoredSession(t *testing.T) {
	svc, _ := newTestService(twoProjectAPI())
	resumed, err := svc.Resume(context.Background())
	require.NoError(t, err)
	assert.False(t, resumed)
}

func TestSyncService_SelectAndDeleteProject(t *testing.T) {
	svc, _ := loggedIn(t, twoProjectAPI())

	require.NoError(t, svc.SelectProject("pA"))
	active, ok := svc.ActiveProject()
	require.True(t, ok)
	assert.Equal(t, "pA", active.ID)

	require.Error(t, svc.SelectProject("nope"))

	// Deleting a non-active project keeps the selection.
	require.NoError(t, svc.DeleteProject(context.Background(), "pB"))
	_, ok = svc.ActiveProject()
	assert.True(t, ok)

	// Deleting the active project clears it.
	require.NoError(t, svc.DeleteProject(context.Background(), "pA"))
	_, ok = svc.ActiveProject()
	assert.False(t, ok)
	assert.Empty(t, svc.Snapshot().Projects)
}

func TestSyncService_DeleteProject_LeavesTasksDangling(t *testing.T) {
	svc, _ := loggedIn(t, twoProjectAPI())

	require.NoError(t, svc.DeleteProject(context.Background(), "pA"))
	snap := svc.Snapshot()
	// Orphaned tasks stay; equality filters in the views just never match.
	assert.Len(t, snap.Tasks, 3)
}

func TestSyncService_Logout_ClearsEverything(t *testing.T) {
	svc, sessions := loggedIn(t, twoProjectAPI())
	require.NoError(t, svc.SelectProject("pA"))

	require.NoError(t, svc.Logout())

	snap := svc.Snapshot()
	assert.Empty(t, snap.Projects)
	assert.Empty(t, snap.Users)
	assert.Empty(t, snap.Tasks)
	assert.Empty(t, snap.Meetings)
	_, ok := svc.ActiveProject()
	assert.False(t, ok)
	_, ok = svc.CurrentUser()
	assert.False(t, ok)
	assert.True(t, sessions.cleared)
}

func TestSyncService_MoveTask_OptimisticPatch(t *testing.T) {
	api := twoProjectAPI()
	svc, _ := loggedIn(t, api)

	svc.MoveTask("tA1", models.StatusDone)

	// Local state is patched before the network call settles.
	for _, task := range svc.Snapshot().Tasks {
		if task.ID == "tA1" {
			assert.Equal(t, models.StatusDone, task.Status)
		}
	}

	svc.Flush()
	assert.Equal(t, []string{"tA1:Done"}, api.statusCalls)
}

func TestSyncService_MoveTask_NoRollbackOnFailure(t *testing.T) {
	api := twoProjectAPI()
	api.updateStatusFn = func(taskID string, status models.TaskStatus) (models.Task, error) {
		return models.Task{}, errors.New("backend down")
	}
	svc, _ := loggedIn(t, api)

	svc.MoveTask("tA1", models.StatusReview)
	svc.Flush()

	for _, task := range svc.Snapshot().Tasks {
		if task.ID == "tA1" {
			assert.Equal(t, models.StatusReview, task.Status,
				"failed call leaves local state as-is until the next full refresh")
		}
	}
}

func TestSyncService_AddAndRemoveMember(t *testing.T) {
	svc, _ := loggedIn(t, twoProjectAPI())

	member, err := svc.AddMember(context.Background(), "pA", "invited@x.com")
	require.NoError(t, err)

	snap := svc.Snapshot()
	assert.Equal(t, []string{"u1", "u2", "u-invited"}, snap.Projects[0].Members)
	assert.Equal(t, "u-invited", snap.Users[len(snap.Users)-1].ID)

	// Adding the same user again appends to members but not to users.
	_, err = svc.AddMember(context.Background(), "pB", "invited@x.com")
	require.NoError(t, err)
	usersAfter := svc.Snapshot().Users
	count := 0
	for _, u := range usersAfter {
		if u.ID == member.ID {
			count++
		}
	}
	assert.Equal(t, 1, count)

	require.NoError(t, svc.RemoveMember(context.Background(), "pA", "u-invited"))
	snap = svc.Snapshot()
	assert.Equal(t, []string{"u1", "u2"}, snap.Projects[0].Members)
	// The user remains known; they may belong to other projects.
	found := false
	for _, u := range snap.Users {
		if u.ID == "u-invited" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSyncService_CreateProject_AppendsAndSelects(t *testing.T) {
	svc, _ := loggedIn(t, twoProjectAPI())

	project, err := svc.CreateProject(context.Background(), models.ProjectCreate{Name: "Gamma"})
	require.NoError(t, err)

	snap := svc.Snapshot()
	assert.Equal(t, project.ID, snap.Projects[len(snap.Projects)-1].ID)
	active, ok := svc.ActiveProject()
	require.True(t, ok)
	assert.Equal(t, project.ID, active.ID)
	assert.Equal(t, "u1", project.OwnerID, "owner is the current user")
}

func TestSyncService_CreateTask_Appends(t *testing.T) {
	svc, _ := loggedIn(t, twoProjectAPI())

	task, err := svc.CreateTask(context.Background(), models.NewTask{Title: "New", ProjectID: "pA"})
	require.NoError(t, err)
	assert.Equal(t, "u1", task.AuthorID)

	snap := svc.Snapshot()
	assert.Equal(t, "t-new", snap.Tasks[len(snap.Tasks)-1].ID)
}

func TestSyncService_UpdateTask_ReplacesInPosition(t *testing.T) {
	api := twoProjectAPI()
	api.updateTaskFn = func(taskID string, updates models.TaskUpdate) (models.Task, error) {
		return models.Task{ID: taskID, Title: "Renamed", ProjectID: "pA"}, nil
	}
	svc, _ := loggedIn(t, api)

	title := "Renamed"
	_, err := svc.UpdateTask(context.Background(), "tA2", models.TaskUpdate{Title: &title})
	require.NoError(t, err)

	snap := svc.Snapshot()
	assert.Equal(t, "tA2", snap.Tasks[1].ID, "position preserved")
	assert.Equal(t, "Renamed", snap.Tasks[1].Title)
}

func TestSyncService_CreateMeeting_RequiresActiveProject(t *testing.T) {
	svc, _ := loggedIn(t, twoProjectAPI())

	_, err := svc.CreateMeeting(context.Background(), models.MeetingCreate{Title: "Kickoff"})
	require.Error(t, err)

	require.NoError(t, svc.SelectProject("pB"))
	meeting, err := svc.CreateMeeting(context.Background(), models.MeetingCreate{Title: "Kickoff"})
	require.NoError(t, err)
	assert.Equal(t, "pB", meeting.ProjectID)

	snap := svc.Snapshot()
	assert.Equal(t, "m-new", snap.Meetings[len(snap.Meetings)-1].ID)
}

func TestSyncService_DeleteTaskAndMeeting(t *testing.T) {
	svc, _ := loggedIn(t, twoProjectAPI())

	require.NoError(t, svc.DeleteTask(context.Background(), "tA2"))
	snap := svc.Snapshot()
	require.Len(t, snap.Tasks, 2)
	assert.Equal(t, "tA1", snap.Tasks[0].ID)
	assert.Equal(t, "tB1", snap.Tasks[1].ID)

	require.NoError(t, svc.DeleteMeeting(context.Background(), "mA1"))
	assert.Empty(t, svc.Snapshot().Meetings)
}
