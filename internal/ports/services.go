package ports

import (
	"github.com/teamboard/core/internal/domain/entities"
)

// Request/Response Types

// Member related types
type CreateMemberRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Role string `json:"role" validate:"omitempty,max=100"`
}

type SetCurrentMemberRequest struct {
	Name string `json:"name" validate:"required"`
}

type CurrentMemberResponse struct {
	ClientID string   `json:"clientId"`
	Name     string   `json:"name"`
	Known    []string `json:"known"`
}

// Task related types
type CreateTaskRequest struct {
	Title         string                  `json:"title" validate:"required,max=500"`
	Description   string                  `json:"description" validate:"omitempty,max=5000"`
	Assignee      string                  `json:"assignee" validate:"required,max=100"`
	Category      entities.Category       `json:"category" validate:"required,oneof=instagram offline-store online-store youtube other"`
	Priority      entities.Priority       `json:"priority" validate:"omitempty,oneof=urgent high normal low"`
	Status        entities.TaskStatus     `json:"status" validate:"omitempty,oneof=todo in_progress done"`
	DueDate       string                  `json:"dueDate" validate:"required,datetime=2006-01-02"`
	IsRecurring   bool                    `json:"isRecurring"`
	RecurringType *entities.RecurringType `json:"recurringType" validate:"omitempty,oneof=weekly monthly"`
	RecurringDay  *int                    `json:"recurringDay" validate:"omitempty,min=0,max=31"`
}

type UpdateTaskRequest struct {
	Title         *string                 `json:"title" validate:"omitempty,max=500"`
	Description   *string                 `json:"description" validate:"omitempty,max=5000"`
	Assignee      *string                 `json:"assignee" validate:"omitempty,max=100"`
	Category      *entities.Category      `json:"category" validate:"omitempty,oneof=instagram offline-store online-store youtube other"`
	Priority      *entities.Priority      `json:"priority" validate:"omitempty,oneof=urgent high normal low"`
	Status        *entities.TaskStatus    `json:"status" validate:"omitempty,oneof=todo in_progress done"`
	DueDate       *string                 `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	IsRecurring   *bool                   `json:"isRecurring"`
	RecurringType *entities.RecurringType `json:"recurringType" validate:"omitempty,oneof=weekly monthly"`
	RecurringDay  *int                    `json:"recurringDay" validate:"omitempty,min=0,max=31"`
}

type UpdateTaskStatusRequest struct {
	Status entities.TaskStatus `json:"status" validate:"required,oneof=todo in_progress done"`
}

type AddCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// KPI related types
type CreateKPIRequest struct {
	Title        string           `json:"title" validate:"required,max=200"`
	TargetValue  float64          `json:"targetValue" validate:"min=0"`
	CurrentValue float64          `json:"currentValue" validate:"min=0"`
	Unit         string           `json:"unit" validate:"omitempty,max=20"`
	Quarter      entities.Quarter `json:"quarter" validate:"required,oneof=Q1 Q2 Q3 Q4"`
	Year         int              `json:"year" validate:"required,min=2000,max=2100"`
	Assignee     string           `json:"assignee" validate:"required,max=100"`
}

type UpdateKPIRequest struct {
	Title        *string           `json:"title" validate:"omitempty,max=200"`
	TargetValue  *float64          `json:"targetValue" validate:"omitempty,min=0"`
	CurrentValue *float64          `json:"currentValue" validate:"omitempty,min=0"`
	Unit         *string           `json:"unit" validate:"omitempty,max=20"`
	Quarter      *entities.Quarter `json:"quarter" validate:"omitempty,oneof=Q1 Q2 Q3 Q4"`
	Year         *int              `json:"year" validate:"omitempty,min=2000,max=2100"`
	Assignee     *string           `json:"assignee" validate:"omitempty,max=100"`
}

// Reel related types
type CreateReelRequest struct {
	Title    string `json:"title" validate:"required,max=300"`
	PostDate string `json:"postDate" validate:"required,datetime=2006-01-02"`
	Views    int64  `json:"views" validate:"min=0"`
	Shares   int64  `json:"shares" validate:"min=0"`
	Comments int64  `json:"comments" validate:"min=0"`
	URL      string `json:"url" validate:"omitempty,url"`
}

type UpdateReelRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=300"`
	PostDate *string `json:"postDate" validate:"omitempty,datetime=2006-01-02"`
	Views    *int64  `json:"views" validate:"omitempty,min=0"`
	Shares   *int64  `json:"shares" validate:"omitempty,min=0"`
	Comments *int64  `json:"comments" validate:"omitempty,min=0"`
	URL      *string `json:"url" validate:"omitempty,url"`
}

// Meeting related types
type CreateMinutesRequest struct {
	MeetingDate string   `json:"meetingDate" validate:"required,datetime=2006-01-02"`
	Title       string   `json:"title" validate:"required,max=300"`
	Content     string   `json:"content" validate:"omitempty,max=20000"`
	Attendees   []string `json:"attendees"`
}

type UpdateMinutesRequest struct {
	MeetingDate *string   `json:"meetingDate" validate:"omitempty,datetime=2006-01-02"`
	Title       *string   `json:"title" validate:"omitempty,max=300"`
	Content     *string   `json:"content" validate:"omitempty,max=20000"`
	Attendees   *[]string `json:"attendees"`
}

type AgendaItemInput struct {
	Title  string `json:"title" validate:"max=300"`
	Detail string `json:"detail" validate:"max=2000"`
}

type CreateAgendaRequest struct {
	WeekDate string            `json:"weekDate" validate:"required,datetime=2006-01-02"`
	Items    []AgendaItemInput `json:"items" validate:"dive"`
}

type UpdateAgendaRequest struct {
	WeekDate *string            `json:"weekDate" validate:"omitempty,datetime=2006-01-02"`
	Items    *[]AgendaItemInput `json:"items"`
}

// CurrentAgendaResponse is this week's meeting anchor with its agenda, if one exists.
type CurrentAgendaResponse struct {
	WeekDate    string                  `json:"weekDate"`
	Countdown   string                  `json:"countdown"`
	NextMeeting string                  `json:"nextMeeting"`
	Agenda      *entities.MeetingAgenda `json:"agenda"`
}

// Idea related types
type CreateIdeaRequest struct {
	Topic       string `json:"topic" validate:"required,max=300"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,max=2000"`
	LinkURL     string `json:"linkUrl" validate:"omitempty,url"`
}

type UpdateIdeaRequest struct {
	Topic       *string `json:"topic" validate:"omitempty,max=300"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,max=2000"`
	LinkURL     *string `json:"linkUrl" validate:"omitempty,url"`
}

// Response types for lists and common structures
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Data: items, Total: len(items)}
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}
