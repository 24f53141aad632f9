package services

import (
	"context"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/models"
)

// RoadmapService assembles the client portal roadmap from cached milestone and task lists
type RoadmapService struct {
	projects   *ProjectService
	milestones *MilestoneService
	tasks      *TaskService
}

func NewRoadmapService(projects *ProjectService, milestones *MilestoneService, tasks *TaskService) *RoadmapService {
	return &RoadmapService{projects: projects, milestones: milestones, tasks: tasks}
}

// Get returns the caller's project with its milestones in order, each carrying its tasks.
// An empty projectID selects the caller's most recent project.
func (s *RoadmapService) Get(ctx context.Context, p dto.Principal, projectID string) (dto.RoadmapResponse, error) {
	project, err := s.projects.Resolve(ctx, p, projectID)
	if err != nil {
		return dto.RoadmapResponse{}, err
	}
	milestones, err := s.milestones.List(ctx, project.ID)
	if err != nil {
		return dto.RoadmapResponse{}, err
	}
	tasks, err := s.tasks.List(ctx, project.ID, dto.TaskFilter{})
	if err != nil {
		return dto.RoadmapResponse{}, err
	}

	byMilestone := make(map[string][]models.Task, len(milestones))
	unplanned := []models.Task{}
	for _, task := range tasks {
		if task.MilestoneID == nil {
			unplanned = append(unplanned, task)
			continue
		}
		byMilestone[*task.MilestoneID] = append(byMilestone[*task.MilestoneID], task)
	}

	resp := dto.RoadmapResponse{
		Project:    project,
		Milestones: make([]dto.RoadmapMilestone, 0, len(milestones)),
		Unplanned:  unplanned,
	}
	for _, m := range milestones {
		items := byMilestone[m.ID]
		if items == nil {
			items = []models.Task{}
		}
		resp.Milestones = append(resp.Milestones, dto.RoadmapMilestone{Milestone: m, Tasks: items})
	}
	return resp, nil
}
