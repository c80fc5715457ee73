package jobs

import (
	"context"

	"github.com/adilzhan-b/lingualink/internal/services"
	"github.com/sirupsen/logrus"
)

// FriendReconciler repairs the denormalized friend lists. Accepted requests
// are the source of truth; the two per-user friend sets are re-derived from
// them so a crash between the two insertions of an accept heals itself.
type FriendReconciler struct {
	FriendService *services.FriendService
}

// NewFriendReconciler creates a new instance of FriendReconciler.
func NewFriendReconciler(friendService *services.FriendService) *FriendReconciler {
	return &FriendReconciler{FriendService: friendService}
}

// Run re-applies both friend-set insertions for every accepted request.
func (j *FriendReconciler) Run(ctx context.Context) error {
	repaired, err := j.FriendService.ReconcileFriendLists(ctx)
	if err != nil {
		return err
	}
	logrus.Infof("Friend list reconciliation completed: %d pairs verified", repaired)
	return nil
}
