package constants

const (
	MsgEventNotFound    = "Event not found"
	MsgTrainingNotFound = "Training session not found"
	MsgInvalidJSON      = "Invalid JSON payload"
	MsgDBError          = "Database error"
)
