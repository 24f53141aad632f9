package dto

import "github.com/agency-portal/models"

// CommentQuery selects the task or the milestone whose comments are listed; exactly one is set
type CommentQuery struct {
	TaskID      string `form:"task_id"`
	MilestoneID string `form:"milestone_id"`
}

type CommentRequest struct {
	TaskID      string `json:"task_id"`
	MilestoneID string `json:"milestone_id"`
	Contenu     string `json:"contenu" binding:"required"`
}

type ReviewRequest struct {
	Note        int    `json:"note" binding:"required,min=1,max=5"`
	Commentaire string `json:"commentaire"`
}

// ReviewStatus lets the portal disable the form once the client has reviewed the project
type ReviewStatus struct {
	Review    *models.Review `json:"review"`
	CanSubmit bool           `json:"can_submit"`
}

type NotificationQuery struct {
	Unread bool `form:"unread"`
	Limit  int  `form:"limit" binding:"omitempty,min=1,max=200"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
