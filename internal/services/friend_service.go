package services

import (
	"context"
	"fmt"

	"github.com/adilzhan-b/lingualink/internal/models"
	"github.com/adilzhan-b/lingualink/pkg/apperrors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FriendService implements the friend-request state machine. A pair of users
// moves from no request, to one pending request, to an accepted friendship;
// acceptance is terminal and there is no decline or withdraw path.
type FriendService struct {
	requests FriendRequestStore
	users    UserStore
}

// NewFriendService creates a new FriendService.
func NewFriendService(requests FriendRequestStore, users UserStore) *FriendService {
	return &FriendService{
		requests: requests,
		users:    users,
	}
}

// SendFriendRequest creates a new pending request from sender to recipient.
// All rule checks run before any write, so a rejected send leaves no trace.
func (s *FriendService) SendFriendRequest(ctx context.Context, senderID, recipientID primitive.ObjectID) (*models.FriendRequest, error) {
	if senderID == recipientID {
		return nil, apperrors.ErrSelfRequest
	}

	recipient, err := s.users.GetUserByID(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	if recipient.HasFriend(senderID) {
		return nil, apperrors.ErrAlreadyFriends
	}

	// Fast path for a friendly error; the unique pair_key index is what
	// actually guarantees at most one request per pair under concurrency.
	existing, err := s.requests.FindByPair(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateRequest
	}

	request := &models.FriendRequest{
		SenderID:    senderID,
		RecipientID: recipientID,
	}

	created, err := s.requests.CreateRequest(ctx, request)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"senderID":    senderID.Hex(),
		"recipientID": recipientID.Hex(),
	}).Info("Friend request sent")
	return created, nil
}

// AcceptFriendRequest marks the request accepted and links both users. Only
// the recipient may accept. The status flip is committed before the two
// friend-set insertions; both insertions are idempotent set-additions, so a
// crash between them is repaired by simply accepting again (or by the
// reconciliation job). Re-accepting an already-accepted request succeeds
// without changing anything.
func (s *FriendService) AcceptFriendRequest(ctx context.Context, actorID, requestID primitive.ObjectID) error {
	request, err := s.requests.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}

	if request.RecipientID != actorID {
		return apperrors.ErrForbidden
	}

	if err := s.requests.AcceptRequest(ctx, requestID); err != nil {
		return err
	}

	if err := s.users.AddFriend(ctx, request.SenderID, request.RecipientID); err != nil {
		return fmt.Errorf("failed to add friend to sender: %v", err)
	}
	if err := s.users.AddFriend(ctx, request.RecipientID, request.SenderID); err != nil {
		return fmt.Errorf("failed to add friend to recipient: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"requestID": requestID.Hex(),
		"actorID":   actorID.Hex(),
	}).Info("Friend request accepted")
	return nil
}

// GetFriendRequests returns the user's incoming pending requests and the
// requests they sent that were accepted, each annotated with the other
// side's profile fields.
func (s *FriendService) GetFriendRequests(ctx context.Context, userID primitive.ObjectID) (*models.FriendRequestsOverview, error) {
	incoming, err := s.requests.GetPendingByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}

	accepted, err := s.requests.GetAcceptedBySender(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(incoming)+len(accepted))
	for _, req := range incoming {
		ids = append(ids, req.SenderID)
	}
	for _, req := range accepted {
		ids = append(ids, req.RecipientID)
	}

	infos, err := s.friendInfoByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	overview := &models.FriendRequestsOverview{
		Incoming:         make([]models.IncomingFriendRequest, 0, len(incoming)),
		AcceptedOutgoing: make([]models.OutgoingFriendRequest, 0, len(accepted)),
	}
	for _, req := range incoming {
		overview.Incoming = append(overview.Incoming, models.IncomingFriendRequest{
			FriendRequest: req,
			Sender:        infos[req.SenderID],
		})
	}
	for _, req := range accepted {
		overview.AcceptedOutgoing = append(overview.AcceptedOutgoing, models.OutgoingFriendRequest{
			FriendRequest: req,
			Recipient:     infos[req.RecipientID],
		})
	}

	return overview, nil
}

// GetOutgoingPending returns the unanswered requests the user sent, annotated
// with recipient profile fields.
func (s *FriendService) GetOutgoingPending(ctx context.Context, userID primitive.ObjectID) ([]models.OutgoingFriendRequest, error) {
	pending, err := s.requests.GetPendingBySender(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(pending))
	for _, req := range pending {
		ids = append(ids, req.RecipientID)
	}

	infos, err := s.friendInfoByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	outgoing := make([]models.OutgoingFriendRequest, 0, len(pending))
	for _, req := range pending {
		outgoing = append(outgoing, models.OutgoingFriendRequest{
			FriendRequest: req,
			Recipient:     infos[req.RecipientID],
		})
	}
	return outgoing, nil
}

// ReconcileFriendLists recomputes both friend sets from accepted requests.
// The friend lists are a materialized projection of accepted requests, stored
// twice for read speed; this is the repair procedure for partial failures
// between the two insertions of an accept.
func (s *FriendService) ReconcileFriendLists(ctx context.Context) (int, error) {
	accepted, err := s.requests.GetAllAccepted(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	failed := 0
	for _, req := range accepted {
		if err := s.users.AddFriend(ctx, req.SenderID, req.RecipientID); err != nil {
			logrus.WithError(err).Warnf("Reconcile: failed to link %s -> %s", req.SenderID.Hex(), req.RecipientID.Hex())
			failed++
			continue
		}
		if err := s.users.AddFriend(ctx, req.RecipientID, req.SenderID); err != nil {
			logrus.WithError(err).Warnf("Reconcile: failed to link %s -> %s", req.RecipientID.Hex(), req.SenderID.Hex())
			failed++
			continue
		}
		repaired++
	}

	if failed > 0 {
		return repaired, fmt.Errorf("reconciliation incomplete: %d of %d pairs failed", failed, len(accepted))
	}
	return repaired, nil
}

func (s *FriendService) friendInfoByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.FriendInfo, error) {
	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load request profiles: %v", err)
	}

	infos := make(map[primitive.ObjectID]models.FriendInfo, len(users))
	for i := range users {
		infos[users[i].ID] = users[i].ToFriendInfo()
	}
	return infos, nil
}
