package cancel_lesson

// CancelLessonRequest HTTP request model отмены урока
type CancelLessonRequest struct {
	Reason *string `json:"reason,omitempty"`
}
