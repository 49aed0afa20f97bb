package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/meetly/sync-client/internal/models"
)

// Local patches: deterministic, order-preserving edits of the in-memory
// collections after a successful gateway call, so common mutations don't
// pay for a full refresh. Every patch builds fresh slices instead of
// editing in place, because snapshot copies handed to readers share the
// old backing arrays.

// SelectProject moves the active selection to the given project.
func (s *SyncService) SelectProject(projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.snapshot.Projects {
		if p.ID == projectID {
			s.activeProject = projectID
			return nil
		}
	}
	return fmt.Errorf("select project: unknown project %s", projectID)
}

// ActiveProject returns the selected project, or false when none is
// selected.
func (s *SyncService) ActiveProject() (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeProject == "" {
		return models.Project{}, false
	}
	for _, p := range s.snapshot.Projects {
		if p.ID == s.activeProject {
			return p, true
		}
	}
	return models.Project{}, false
}

// CreateProject creates the project owned by the current user, appends it
// and makes it the active selection.
func (s *SyncService) CreateProject(ctx context.Context, data models.ProjectCreate) (models.Project, error) {
	user, ok := s.CurrentUser()
	if !ok {
		return models.Project{}, fmt.Errorf("create project: no authenticated user")
	}

	project, err := s.api.CreateProject(ctx, data, user.ID)
	if err != nil {
		return models.Project{}, err
	}

	s.mu.Lock()
	s.snapshot.Projects = appendProject(s.snapshot.Projects, project)
	s.activeProject = project.ID
	s.mu.Unlock()
	return project, nil
}

// AddMember invites by email, appends the member id to the project and
// inserts the user into the user set if unseen.
func (s *SyncService) AddMember(ctx context.Context, projectID, email string) (models.User, error) {
	member, err := s.api.AddMember(ctx, projectID, email)
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	projects := make([]models.Project, len(s.snapshot.Projects))
	for i, p := range s.snapshot.Projects {
		if p.ID == projectID {
			members := make([]string, 0, len(p.Members)+1)
			members = append(members, p.Members...)
			p.Members = append(members, member.ID)
		}
		projects[i] = p
	}
	s.snapshot.Projects = projects

	known := false
	for _, u := range s.snapshot.Users {
		if u.ID == member.ID {
			known = true
			break
		}
	}
	if !known {
		users := make([]models.User, 0, len(s.snapshot.Users)+1)
		users = append(users, s.snapshot.Users...)
		s.snapshot.Users = append(users, member)
	}
	s.mu.Unlock()
	return member, nil
}

// RemoveMember drops every occurrence of the user from the project's member
// list. The user stays in the user set: they may belong to other projects.
func (s *SyncService) RemoveMember(ctx context.Context, projectID, userID string) error {
	if err := s.api.RemoveMember(ctx, projectID, userID); err != nil {
		return err
	}

	s.mu.Lock()
	projects := make([]models.Project, len(s.snapshot.Projects))
	for i, p := range s.snapshot.Projects {
		if p.ID == projectID {
			members := make([]string, 0, len(p.Members))
			for _, id := range p.Members {
				if id != userID {
					members = append(members, id)
				}
			}
			p.Members = members
		}
		projects[i] = p
	}
	s.snapshot.Projects = projects
	s.mu.Unlock()
	return nil
}

// DeleteProject removes the project and clears the active selection when it
// was the deleted one. Tasks and meetings of the project are left in place;
// their dangling project references simply never render.
func (s *SyncService) DeleteProject(ctx context.Context, projectID string) error {
	if err := s.api.DeleteProject(ctx, projectID); err != nil {
		return err
	}

	s.mu.Lock()
	projects := make([]models.Project, 0, len(s.snapshot.Projects))
	for _, p := range s.snapshot.Projects {
		if p.ID != projectID {
			projects = append(projects, p)
		}
	}
	s.snapshot.Projects = projects
	if s.activeProject == projectID {
		s.activeProject = ""
	}
	s.mu.Unlock()
	return nil
}

// CreateTask creates a task authored by the current user and appends it.
func (s *SyncService) CreateTask(ctx context.Context, newTask models.NewTask) (models.Task, error) {
	user, ok := s.CurrentUser()
	if !ok {
		return models.Task{}, fmt.Errorf("create task: no authenticated user")
	}

	task, err := s.api.CreateTask(ctx, newTask, user.ID)
	if err != nil {
		return models.Task{}, err
	}

	s.mu.Lock()
	s.snapshot.Tasks = appendTask(s.snapshot.Tasks, task)
	s.mu.Unlock()
	return task, nil
}

// MoveTask is the drag-and-drop mutation: the local collection is patched
// immediately and the network call fires without awaiting. No rollback on
// failure; the next full refresh reconciles local state with the backend.
func (s *SyncService) MoveTask(taskID string, newStatus models.TaskStatus) {
	s.mu.Lock()
	s.snapshot.Tasks = replaceTask(s.snapshot.Tasks, taskID, func(t models.Task) models.Task {
		t.Status = newStatus
		return t
	})
	s.mu.Unlock()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if _, err := s.api.UpdateTaskStatus(context.Background(), taskID, newStatus); err != nil {
			s.log.Warn("optimistic status update failed, awaiting next full refresh",
				zap.String("task_id", taskID),
				zap.String("status", string(newStatus)),
				zap.Error(err),
			)
		}
	}()
}

// Flush blocks until every fired-without-awaiting status call has settled.
// Called on shutdown so no mutation is lost mid-flight.
func (s *SyncService) Flush() {
	s.pending.Wait()
}

// UpdateTask sends a partial update and replaces the local task with the
// server's authoritative result, in position.
func (s *SyncService) UpdateTask(ctx context.Context, taskID string, updates models.TaskUpdate) (models.Task, error) {
	task, err := s.api.UpdateTask(ctx, taskID, updates)
	if err != nil {
		return models.Task{}, err
	}

	s.mu.Lock()
	s.snapshot.Tasks = replaceTask(s.snapshot.Tasks, taskID, func(old models.Task) models.Task {
		task.Seq = old.Seq
		return task
	})
	s.mu.Unlock()
	return task, nil
}

func (s *SyncService) DeleteTask(ctx context.Context, taskID string) error {
	if err := s.api.DeleteTask(ctx, taskID); err != nil {
		return err
	}

	s.mu.Lock()
	tasks := make([]models.Task, 0, len(s.snapshot.Tasks))
	for _, t := range s.snapshot.Tasks {
		if t.ID != taskID {
			tasks = append(tasks, t)
		}
	}
	s.snapshot.Tasks = tasks
	s.mu.Unlock()
	return nil
}

// CreateMeeting schedules a meeting in the active project and appends it.
func (s *SyncService) CreateMeeting(ctx context.Context, data models.MeetingCreate) (models.Meeting, error) {
	active, ok := s.ActiveProject()
	if !ok {
		return models.Meeting{}, fmt.Errorf("create meeting: no project selected")
	}

	meeting, err := s.api.CreateMeeting(ctx, data, active.ID)
	if err != nil {
		return models.Meeting{}, err
	}

	s.mu.Lock()
	meetings := make([]models.Meeting, 0, len(s.snapshot.Meetings)+1)
	meetings = append(meetings, s.snapshot.Meetings...)
	s.snapshot.Meetings = append(meetings, meeting)
	s.mu.Unlock()
	return meeting, nil
}

func (s *SyncService) DeleteMeeting(ctx context.Context, meetingID string) error {
	if err := s.api.DeleteMeeting(ctx, meetingID); err != nil {
		return err
	}

	s.mu.Lock()
	meetings := make([]models.Meeting, 0, len(s.snapshot.Meetings))
	for _, m := range s.snapshot.Meetings {
		if m.ID != meetingID {
			meetings = append(meetings, m)
		}
	}
	s.snapshot.Meetings = meetings
	s.mu.Unlock()
	return nil
}

func appendProject(projects []models.Project, p models.Project) []models.Project {
	out := make([]models.Project, 0, len(projects)+1)
	out = append(out, projects...)
	return append(out, p)
}

func appendTask(tasks []models.Task, t models.Task) []models.Task {
	out := make([]models.Task, 0, len(tasks)+1)
	out = append(out, tasks...)
	return append(out, t)
}

func replaceTask(tasks []models.Task, taskID string, patch func(models.Task) models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		if t.ID == taskID {
			t = patch(t)
		}
		out[i] = t
	}
	return out
}
