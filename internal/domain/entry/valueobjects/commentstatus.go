package valueobjects

type CommentStatus string

const (
	CommentStatusApproved    CommentStatus = "APPROVED"
	CommentStatusPending     CommentStatus = "PENDING"
	CommentStatusSpam        CommentStatus = "SPAM"
	CommentStatusDisapproved CommentStatus = "DISAPPROVED"
)

var validCommentStatuses = map[CommentStatus]bool{
	CommentStatusApproved:    true,
	CommentStatusPending:     true,
	CommentStatusSpam:        true,
	CommentStatusDisapproved: true,
}

func (s CommentStatus) String() string {
	return string(s)
}

func (s CommentStatus) IsValid() bool {
	return validCommentStatuses[s]
}
