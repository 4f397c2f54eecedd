package entities

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrRecordNotFound       = errors.New("record not found")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidPriority      = errors.New("invalid priority")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrInvalidQuarter       = errors.New("invalid quarter")
	ErrInvalidDate          = errors.New("invalid date, expected YYYY-MM-DD")
	ErrValidation           = errors.New("validation failed")
	ErrForbidden            = errors.New("forbidden")
	ErrUnknownMember        = errors.New("unknown member")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrEmptyAgenda          = errors.New("agenda needs at least one item with a title")
	ErrNegativeCounter      = errors.New("engagement counters must not be negative")
)

// Collection names used by the record store.
const (
	CollectionMembers        = "members"
	CollectionTasks          = "tasks"
	CollectionComments       = "comments"
	CollectionActivityLogs   = "activityLogs"
	CollectionKPIs           = "kpis"
	CollectionInstagramReels = "instagramReels"
	CollectionMeetingMinutes = "meetingMinutes"
	CollectionMeetingAgendas = "meetingAgendas"
	CollectionIdeas          = "ideas"
	CollectionIdeaComments   = "ideaComments"
)

// Enums and types
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

type Category string

const (
	CategoryInstagram    Category = "instagram"
	CategoryOfflineStore Category = "offline-store"
	CategoryOnlineStore  Category = "online-store"
	CategoryYouTube      Category = "youtube"
	CategoryOther        Category = "other"
)

type Quarter string

const (
	Q1 Quarter = "Q1"
	Q2 Quarter = "Q2"
	Q3 Quarter = "Q3"
	Q4 Quarter = "Q4"
)

type RecurringType string

const (
	RecurringWeekly  RecurringType = "weekly"
	RecurringMonthly RecurringType = "monthly"
)

// Meta holds the store-owned fields every record carries.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Stamp copies store-assigned identity and timestamps onto the record.
func (m *Meta) Stamp(id string, createdAt, updatedAt time.Time) {
	m.ID = id
	m.CreatedAt = createdAt
	m.UpdatedAt = updatedAt
}

// Member is a team member; tasks and KPIs refer to members by name.
type Member struct {
	Meta
	Name string `json:"name"`
	Role string `json:"role"`
}

// Attachment is an uploaded file referenced from a task.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Task represents a unit of team work
type Task struct {
	Meta
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Assignee      string         `json:"assignee"`
	Category      Category       `json:"category"`
	Priority      Priority       `json:"priority"`
	Status        TaskStatus     `json:"status"`
	DueDate       string         `json:"dueDate"`
	IsRecurring   bool           `json:"isRecurring"`
	RecurringType *RecurringType `json:"recurringType,omitempty"`
	RecurringDay  *int           `json:"recurringDay,omitempty"`
	Files         []Attachment   `json:"files"`
}

// Comment is a note left on a task.
type Comment struct {
	Meta
	TaskID  string `json:"taskId"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

// ActivityLog records an action taken on a task.
type ActivityLog struct {
	Meta
	TaskID  string `json:"taskId"`
	Author  string `json:"author"`
	Action  string `json:"action"`
	Details string `json:"details"`
}

// KPI is a quarterly target tracked for an assignee
type KPI struct {
	Meta
	Title        string  `json:"title"`
	TargetValue  float64 `json:"targetValue"`
	CurrentValue float64 `json:"currentValue"`
	Unit         string  `json:"unit"`
	Quarter      Quarter `json:"quarter"`
	Year         int     `json:"year"`
	Assignee     string  `json:"assignee"`
}

// InstagramReel is one engagement record in the social-media log.
type InstagramReel struct {
	Meta
	Title    string `json:"title"`
	PostDate string `json:"postDate"`
	Views    int64  `json:"views"`
	Shares   int64  `json:"shares"`
	Comments int64  `json:"comments"`
	URL      string `json:"url,omitempty"`
}

// MeetingMinutes records one meeting occurrence.
type MeetingMinutes struct {
	Meta
	MeetingDate string   `json:"meetingDate"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Attendees   []string `json:"attendees"`
	Author      string   `json:"author"`
}

type AgendaItem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// MeetingAgenda lists the ordered items for the weekly meeting on WeekDate.
type MeetingAgenda struct {
	Meta
	WeekDate string       `json:"weekDate"`
	Items    []AgendaItem `json:"items"`
	Author   string       `json:"author"`
}

// Idea is a post on the idea board
type Idea struct {
	Meta
	Date        string `json:"date"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	LinkURL     string `json:"linkUrl"`
	Author      string `json:"author"`
}

type IdeaComment struct {
	Meta
	IdeaID  string `json:"ideaId"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

// Business logic methods for Task
func (t *Task) IsDone() bool {
	return t.Status == TaskStatusDone
}

// IsOverdue reports whether the task is past due on the given day. Due today is not overdue.
func (t *Task) IsOverdue(today string) bool {
	return t.DueDate < today && !t.IsDone()
}

// Business logic methods for KPI
func (k *KPI) IsAchieved() bool {
	return k.TargetValue > 0 && k.CurrentValue >= k.TargetValue
}

// Ratio is current/target, 0 when there is no positive target.
func (k *KPI) Ratio() float64 {
	if k.TargetValue <= 0 {
		return 0
	}
	return k.CurrentValue / k.TargetValue
}

func (r *InstagramReel) Validate() error {
	if r.Views < 0 || r.Shares < 0 || r.Comments < 0 {
		return ErrNegativeCounter
	}
	return nil
}

// Utility methods
func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityNormal, PriorityLow:
		return true
	default:
		return false
	}
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryInstagram, CategoryOfflineStore, CategoryOnlineStore, CategoryYouTube, CategoryOther:
		return true
	default:
		return false
	}
}

func (q Quarter) IsValid() bool {
	switch q {
	case Q1, Q2, Q3, Q4:
		return true
	default:
		return false
	}
}

func (rt RecurringType) IsValid() bool {
	return rt == RecurringWeekly || rt == RecurringMonthly
}
