package usecases

import (
	"context"

	"github.com/rollerweb/roller/internal/application/entry/dto"
	domain "github.com/rollerweb/roller/internal/domain/entry"
	"github.com/rollerweb/roller/internal/domain/weblog"
	"github.com/rollerweb/roller/internal/shared/errors"
	"github.com/rollerweb/roller/internal/shared/logger"
)

type ModerateCommentUseCase struct {
	weblogs     WeblogRepository
	permissions PermissionRepository
	entries     EntryRepository
	comments    CommentRepository
	logger      logger.Interface
}

func NewModerateCommentUseCase(
	weblogs WeblogRepository,
	permissions PermissionRepository,
	entries EntryRepository,
	comments CommentRepository,
	logger logger.Interface,
) *ModerateCommentUseCase {
	return &ModerateCommentUseCase{
		weblogs:     weblogs,
		permissions: permissions,
		entries:     entries,
		comments:    comments,
		logger:      logger,
	}
}

// Execute approves, disapproves or marks a comment as spam. The caller needs
// post permission on the weblog, and the comment must belong to one of its
// entries; a comment of another weblog is reported as not found.
func (uc *ModerateCommentUseCase) Execute(ctx context.Context, req dto.ModerateCommentRequest) (*dto.CommentStatusResponse, error) {
	uc.logger.Infow("executing moderate comment use case",
		"weblog", req.Weblog,
		"comment", req.CommentID,
		"status", req.Status,
		"user_id", req.UserID,
	)

	w, err := uc.weblogs.GetByHandle(ctx, req.Weblog)
	if err != nil {
		uc.logger.Errorw("failed to load weblog", "weblog", req.Weblog, "error", err)
		return nil, err
	}

	allowed, err := uc.canModerate(ctx, req.UserID, w.ID())
	if err != nil {
		return nil, err
	}
	if !allowed {
		uc.logger.Warnw("comment moderation denied", "weblog", req.Weblog, "user_id", req.UserID)
		return nil, errors.NewForbiddenError("post permission on the weblog is required")
	}

	c, err := uc.comments.GetByID(ctx, req.CommentID)
	if err != nil {
		uc.logger.Errorw("failed to load comment", "comment", req.CommentID, "error", err)
		return nil, err
	}
	e, err := uc.entries.GetByID(ctx, c.EntryID())
	if err != nil {
		uc.logger.Errorw("failed to load comment entry", "entry", c.EntryID(), "error", err)
		return nil, err
	}
	if e.WeblogID() != w.ID() {
		return nil, errors.NewNotFoundError("comment not found", req.CommentID)
	}

	if err := applyModeration(c, req.Status); err != nil {
		return nil, err
	}
	if err := uc.comments.Update(ctx, c); err != nil {
		uc.logger.Errorw("failed to save comment status", "comment", c.ID(), "error", err)
		return nil, err
	}

	uc.logger.Infow("comment moderated", "comment", c.ID(), "status", c.Status().String())
	return &dto.CommentStatusResponse{ID: c.ID(), EntryID: c.EntryID(), Status: c.Status().String()}, nil
}

func (uc *ModerateCommentUseCase) canModerate(ctx context.Context, userID, weblogID string) (bool, error) {
	perms, err := uc.permissions.ListByUser(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to load weblog permissions", "user_id", userID, "error", err)
		return false, err
	}
	for _, p := range perms {
		if p.WeblogID() == weblogID && p.Has(weblog.ActionPost) {
			return true, nil
		}
	}
	return false, nil
}

func applyModeration(c *domain.Comment, status string) error {
	switch status {
	case "approved":
		c.Approve()
	case "spam":
		c.MarkSpam()
	case "disapproved":
		c.Disapprove()
	default:
		return errors.NewValidationError("unknown comment status", status)
	}
	return nil
}
