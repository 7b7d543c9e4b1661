package entities

import (
	"time"

	"gorm.io/gorm"
)

type GoalType string

const (
	GoalTypeMedia    GoalType = "media"
	GoalTypeTravel   GoalType = "travel"
	GoalTypeLearning GoalType = "learning"
	GoalTypeFitness  GoalType = "fitness"
	GoalTypeCooking  GoalType = "cooking"
	GoalTypeWork     GoalType = "work"
	GoalTypeReading  GoalType = "reading"
	GoalTypeGaming   GoalType = "gaming"
)

type BoardType string

const (
	BoardTypeAnime    BoardType = "anime"
	BoardTypeMovies   BoardType = "movies"
	BoardTypeTVShows  BoardType = "tvshows"
	BoardTypeMedia    BoardType = "media" // generic media board
	BoardTypeStandard BoardType = "standard"
)

type ContentKind string

const (
	ContentKindTVSeries ContentKind = "tv_series"
	ContentKindMovie    ContentKind = "movie"
	ContentKindAnime    ContentKind = "anime"
	ContentKindBook     ContentKind = "book"
	ContentKindGame     ContentKind = "game"
	ContentKindMusic    ContentKind = "music"
	ContentKindUnknown  ContentKind = "unknown"
)

type ShowStatus string

const (
	ShowStatusOngoing  ShowStatus = "ongoing"
	ShowStatusEnded    ShowStatus = "ended"
	ShowStatusUpcoming ShowStatus = "upcoming"
)

// LinkSource identifies where on the source card a link was found.
type LinkSource string

const (
	LinkSourceName          LinkSource = "name"
	LinkSourceDescription   LinkSource = "description"
	LinkSourceAttachment    LinkSource = "attachment"
	LinkSourceComment       LinkSource = "comment"
	LinkSourceChecklistItem LinkSource = "checklist_item"
)

type Goal struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Title           string         `gorm:"index;size:512" json:"title"`
	GoalType        GoalType       `gorm:"size:32;default:'media'" json:"goal_type"`
	BoardType       BoardType      `gorm:"size:32;default:'standard'" json:"board_type"`
	BackgroundImage string         `gorm:"size:2048" json:"background_image,omitempty"`
	SourceName      string         `gorm:"size:50" json:"source_name,omitempty"` // e.g. "trello"
	SourceURL       string         `gorm:"size:2048" json:"source_url,omitempty"`
	Tasks           []Task         `gorm:"foreignKey:GoalID" json:"tasks,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type Task struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	GoalID      uint    `gorm:"index" json:"goal_id"`
	ExternalID  string  `gorm:"size:64" json:"external_id,omitempty"` // source card id
	Text        string  `gorm:"size:1024" json:"text"`
	Checked     bool    `gorm:"default:false" json:"checked"`
	Category    string  `gorm:"index;size:128" json:"category"` // derived from the owning list name
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Position    float64 `json:"position"`

	DueDate   *time.Time `json:"due_date,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`

	Labels    []string `gorm:"serializer:json" json:"labels,omitempty"`
	Assignees []string `gorm:"serializer:json" json:"assignees,omitempty"`

	CoverColor string `gorm:"size:32" json:"cover_color,omitempty"`
	CoverImage string `gorm:"size:2048" json:"cover_image,omitempty"`

	Checklists       []Checklist `gorm:"foreignKey:TaskID" json:"checklists,omitempty"`
	ChecklistTotal   int         `json:"checklist_total"`
	ChecklistChecked int         `json:"checklist_checked"`

	Links    []ExtractedLink `gorm:"foreignKey:TaskID" json:"links,omitempty"`
	Comments []TaskComment   `gorm:"foreignKey:TaskID" json:"comments,omitempty"`

	// Classification and enrichment. Populated by the import pipeline,
	// absent until a task has passed the corresponding stage.
	ContentKind   ContentKind      `gorm:"size:20;default:'unknown'" json:"content_kind,omitempty"`
	Confidence    int              `json:"confidence,omitempty"` // 0-100
	Enrichment    *EnrichmentCache `gorm:"serializer:json" json:"enrichment,omitempty"`
	HasNewContent bool             `gorm:"default:false" json:"has_new_content"`
	ShowStatus    ShowStatus       `gorm:"size:20" json:"show_status,omitempty"`
	UpcomingTitle string           `gorm:"size:512" json:"upcoming_title,omitempty"`
	UpcomingDate  string           `gorm:"size:32" json:"upcoming_date,omitempty"` // ISO date

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type Checklist struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	TaskID     uint            `gorm:"index" json:"task_id"`
	ExternalID string          `gorm:"size:64" json:"external_id,omitempty"`
	Name       string          `gorm:"size:512" json:"name"`
	Position   float64         `json:"position"`
	Items      []ChecklistItem `gorm:"foreignKey:ChecklistID" json:"items,omitempty"`
}

type ChecklistItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	ChecklistID uint    `gorm:"index" json:"checklist_id"`
	Text        string  `gorm:"size:1024" json:"text"`
	Checked     bool    `gorm:"default:false" json:"checked"`
	Position    float64 `json:"position"`
}

// ExtractedLink is a hyperlink pulled out of a task's text sources.
// Links are unique by URL within one task; the first source scanned wins.
type ExtractedLink struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	TaskID        uint       `gorm:"index" json:"task_id"`
	URL           string     `gorm:"size:2048" json:"url"`
	Text          string     `gorm:"size:512" json:"text,omitempty"`
	Source        LinkSource `gorm:"size:20" json:"source"`
	CardName      string     `gorm:"size:512" json:"card_name,omitempty"`
	ChecklistName string     `gorm:"size:512" json:"checklist_name,omitempty"`
}

type TaskComment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TaskID      uint      `gorm:"index" json:"task_id"`
	Author      string    `gorm:"size:256" json:"author,omitempty"`
	Text        string    `gorm:"type:text" json:"text"`
	CommentedAt time.Time `json:"commented_at,omitempty"`
}

// EnrichmentCache is the metadata payload fetched from the external provider,
// cached on the task together with the fetch timestamp.
type EnrichmentCache struct {
	ProviderID       int       `json:"provider_id,omitempty"`
	Title            string    `json:"title,omitempty"`
	TotalSeasons     int       `json:"total_seasons,omitempty"`
	TotalEpisodes    int       `json:"total_episodes,omitempty"`
	Status           string    `json:"status,omitempty"` // provider's own status string
	Premiered        string    `json:"premiered,omitempty"`
	NextEpisodeTitle string    `json:"next_episode_title,omitempty"`
	NextEpisodeDate  string    `json:"next_episode_date,omitempty"` // ISO date
	Rating           float64   `json:"rating,omitempty"`
	ImageURL         string    `json:"image_url,omitempty"`
	SiteURL          string    `json:"site_url,omitempty"`
	FetchedAt        time.Time `json:"fetched_at"`
}

func (Goal) TableName() string {
	return "goals"
}

func (Task) TableName() string {
	return "tasks"
}

func (Checklist) TableName() string {
	return "checklists"
}

func (ChecklistItem) TableName() string {
	return "checklist_items"
}

func (ExtractedLink) TableName() string {
	return "extracted_links"
}

func (TaskComment) TableName() string {
	return "task_comments"
}
