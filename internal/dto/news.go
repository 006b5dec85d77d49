package dto

import "time"

// AddSubmissionRequest is the POST /news/add payload.
type AddSubmissionRequest struct {
	Title       string `json:"title" validate:"required,max=256"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location" validate:"required,max=100"`
	Name        string `json:"name" validate:"required,max=100"`
	Phone       string `json:"phone" validate:"omitempty,max=15"`
	Category    string `json:"category" validate:"omitempty,max=50"`
	ImageURL    string `json:"imageUrl"`
	EventDate   string `json:"eventDate"`
}

// NewsItem is the client view of a stored submission.
type NewsItem struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Author      string    `json:"author"`
	Photo       string    `json:"photo"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	HoursAgo    int64     `json:"hoursAgo"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type AddSubmissionResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type DuplicateResponse struct {
	Success         bool    `json:"success"`
	Message         string  `json:"message"`
	SimilarityScore float64 `json:"similarityScore"`
}

type SyncFormResponse struct {
	Success bool       `json:"success"`
	Data    [][]string `json:"data,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// SubmissionCreatedMessage is published on the broker after an insert.
type SubmissionCreatedMessage struct {
	Type         string    `json:"type"`
	SubmissionID uint      `json:"submissionId"`
	Title        string    `json:"title"`
	Location     string    `json:"location"`
	Category     *string   `json:"category,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
