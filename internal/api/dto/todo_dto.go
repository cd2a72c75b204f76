package dto

// AddTodoRequest payload for creating a todo.
type AddTodoRequest struct {
	Title string `json:"title"`
}

// ToggleTodoRequest payload for the completed-flag toggle.
type ToggleTodoRequest struct {
	Completed bool `json:"completed"`
}

// TodoResponse is one todo record.
type TodoResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	UserID    string `json:"userId"`
}
