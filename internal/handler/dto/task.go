package dto

// TaskRequest represents the request body for creating or replacing a task.
// Every field is required.
type TaskRequest struct {
	Name        string `json:"taskName"`
	Description string `json:"taskDescription"`
	Status      string `json:"taskStatus"`
	Priority    string `json:"taskPriority"`
	StartDate   string `json:"taskStartDate"`
	DueDate     string `json:"taskDueDate"`
}
