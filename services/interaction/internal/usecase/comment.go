package usecase

import (
	"fmt"

	"fitsocial/pkg/apperror"
	"fitsocial/pkg/queue"
	"fitsocial/pkg/ranking"
	"fitsocial/services/interaction/internal/entity"
)

// GetComments returns the post's top-level comments ranked for display, each
// carrying its replies oldest first.
func (uc *interactionUseCase) GetComments(postID, userID string) ([]*entity.Comment, error) {
	if _, err := uc.postOwner(postID); err != nil {
		return nil, err
	}

	all, err := uc.commentRepo.ListByPost(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	ids := make([]string, len(all))
	for i, c := range all {
		ids[i] = c.ID
	}
	liked, err := uc.likeRepo.LikedCommentIDs(userID, ids)
	if err != nil {
		uc.logger.Warn("Failed to load comment likes for user %s: %v", userID, err)
		liked = map[string]bool{}
	}

	return ranking.RankComments(buildThreads(all, liked), uc.now(), entity.CommentSignals), nil
}

// buildThreads groups replies under their top-level comment. Input order is kept
// at both levels; replies whose parent is gone are dropped.
func buildThreads(all []*entity.Comment, liked map[string]bool) []*entity.Comment {
	byID := make(map[string]*entity.Comment, len(all))
	top := make([]*entity.Comment, 0, len(all))
	for _, c := range all {
		c.IsLiked = liked[c.ID]
		c.Replies = nil
		if !c.IsReply() {
			byID[c.ID] = c
			top = append(top, c)
		}
	}

	for _, c := range all {
		if !c.IsReply() {
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, c)
		}
	}
	return top
}

func (uc *interactionUseCase) AddComment(userID, postID, text string, parentID *string) (*entity.Comment, error) {
	text, err := normalizeText(text)
	if err != nil {
		return nil, err
	}

	ownerID, err := uc.postOwner(postID)
	if err != nil {
		return nil, err
	}

	task := queue.Task{
		Type:        queue.TaskComment,
		RecipientID: ownerID,
		ActorID:     userID,
		PostID:      postID,
		Priority:    5,
	}

	if parentID != nil && *parentID != "" {
		parent, err := uc.commentRepo.GetByID(*parentID)
		if err != nil {
			return nil, fmt.Errorf("parent comment %s: %w", *parentID, apperror.NotFoundOr(err))
		}
		if parent.PostID != postID {
			return nil, fmt.Errorf("%w: parent comment belongs to another post", apperror.ErrInvalidInput)
		}

		// Threads are two levels deep: a reply to a reply joins the top-level thread.
		topID := parent.ID
		if parent.IsReply() {
			topID = *parent.ParentID
		}
		parentID = &topID

		task.Type = queue.TaskReply
		task.RecipientID = parent.UserID
	} else {
		parentID = nil
	}

	comment := &entity.Comment{
		PostID:   postID,
		UserID:   userID,
		ParentID: parentID,
		Text:     text,
	}
	if err := uc.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	task.CommentID = comment.ID
	queue.Notify(uc.publisher, uc.logger, task)

	return comment, nil
}

// authorize loads the comment and checks that userID may change it.
// Authors and post owners may edit or delete; only post owners may pin.
func (uc *interactionUseCase) authorize(userID, commentID string, ownerOnly bool) (*entity.Comment, error) {
	comment, err := uc.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, fmt.Errorf("comment %s: %w", commentID, apperror.NotFoundOr(err))
	}

	ownerID, err := uc.postOwner(comment.PostID)
	if err != nil {
		return nil, err
	}

	if userID == ownerID || (!ownerOnly && userID == comment.UserID) {
		return comment, nil
	}
	return nil, fmt.Errorf("%w: not allowed to modify this comment", apperror.ErrForbidden)
}

func (uc *interactionUseCase) EditComment(userID, commentID, text string) (*entity.Comment, error) {
	text, err := normalizeText(text)
	if err != nil {
		return nil, err
	}

	comment, err := uc.authorize(userID, commentID, false)
	if err != nil {
		return nil, err
	}

	if err := uc.commentRepo.UpdateText(commentID, text); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	comment.Text = text
	comment.UpdatedAt = uc.now()
	return comment, nil
}

func (uc *interactionUseCase) DeleteComment(userID, commentID string) error {
	comment, err := uc.authorize(userID, commentID, false)
	if err != nil {
		return err
	}

	removed, err := uc.commentRepo.Delete(comment)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	uc.logger.Info("Deleted comment %s with %d replies", commentID, removed-1)
	return nil
}

func (uc *interactionUseCase) SetCommentPinned(userID, commentID string, pinned bool) (*entity.Comment, error) {
	comment, err := uc.authorize(userID, commentID, true)
	if err != nil {
		return nil, err
	}
	if comment.IsReply() {
		return nil, fmt.Errorf("%w: replies cannot be pinned", apperror.ErrInvalidInput)
	}

	if err := uc.commentRepo.SetPinned(commentID, pinned); err != nil {
		return nil, fmt.Errorf("failed to update pin: %w", err)
	}

	comment.Pinned = pinned
	comment.PinnedAt = nil
	if pinned {
		at := uc.now()
		comment.PinnedAt = &at
	}
	return comment, nil
}
