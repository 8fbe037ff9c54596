package activity

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	ProjectID    string
	RunID        *string
	TaskID       *int64
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
