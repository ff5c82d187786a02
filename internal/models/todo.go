package models

// Todo is one user-owned item. (userId, todoId) is the storage key; todoId
// alone is globally unique.
type Todo struct {
	UserID string `dynamodbav:"userId" json:"userId"`
	TodoID string `dynamodbav:"todoId" json:"todoId"`

	Name    string `dynamodbav:"name" json:"name"`
	DueDate string `dynamodbav:"dueDate" json:"dueDate"`
	Done    bool   `dynamodbav:"done" json:"done"`

	// CreatedAt is an ISO-8601 timestamp, set once at creation.
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`

	// AttachmentURL points at the object-store location keyed by todoId.
	// It is written at creation time as a placeholder; nothing guarantees
	// an object exists there until the client actually uploads one.
	AttachmentURL string `dynamodbav:"attachmentUrl" json:"attachmentUrl"`
}

// TodoUpdate is the mutable subset of a Todo.
type TodoUpdate struct {
	Name    string `json:"name"`
	DueDate string `json:"dueDate"`
	Done    bool   `json:"done"`
}
