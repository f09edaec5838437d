package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/iliyamo/music-request-api/internal/database/dbtest"
	"github.com/iliyamo/music-request-api/internal/queue"
	"github.com/iliyamo/music-request-api/internal/repository"
	"github.com/iliyamo/music-request-api/internal/service/mocks"
)

type ServiceSuite struct {
	suite.Suite
	ctx       context.Context
	ctrl      *gomock.Controller
	publisher *mocks.MockEventPublisher
	db        *sql.DB

	users    *UserService
	sessions *SessionService
	requests *RequestService
	comments *CommentService
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.publisher = mocks.NewMockEventPublisher(s.ctrl)

	db := dbtest.Open(s.T())
	s.db = db
	userRepo := repository.NewUserRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	requestRepo := repository.NewRequestRepo(db)
	commentRepo := repository.NewCommentRepo(db)

	s.users = NewUserService(userRepo)
	s.sessions = NewSessionService(userRepo, sessionRepo, s.publisher)
	s.requests = NewRequestService(s.sessions, requestRepo, s.publisher)
	s.comments = NewCommentService(sessionRepo, requestRepo, commentRepo, s.publisher)
}

// expectEvent records the next published event into *got.
func (s *ServiceSuite) expectEvent(got *queue.ActivityEvent) {
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev queue.ActivityEvent) error {
			*got = ev
			return nil
		})
}

func (s *ServiceSuite) count(table string) int {
	var n int
	s.Require().NoError(s.db.QueryRowContext(s.ctx, "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }

func (s *ServiceSuite) TestUsers() {
	all, err := s.users.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 4)

	_, err = s.users.Get(s.ctx, 42)
	s.ErrorIs(err, repository.ErrUserNotFound)
}

func (s *ServiceSuite) TestLiveSessionPreconditions() {
	live, err := s.sessions.GetLive(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(uint64(1), live.ID)

	_, err = s.sessions.GetLive(s.ctx, 999)
	s.ErrorIs(err, repository.ErrUserNotFound)
	_, err = s.sessions.GetLive(s.ctx, 2)
	s.ErrorIs(err, repository.ErrNoLiveSession)

	list, err := s.requests.ListForLiveSession(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(list, 5)

	_, err = s.requests.ListForLiveSession(s.ctx, 999)
	s.ErrorIs(err, repository.ErrUserNotFound)
	_, err = s.requests.ListForLiveSession(s.ctx, 2)
	s.ErrorIs(err, repository.ErrNoLiveSession)
	_, err = s.requests.ListForLiveSession(s.ctx, 3)
	s.ErrorIs(err, repository.ErrSessionHasNoRequests)
}

func (s *ServiceSuite) TestListBySessionChecksSessionFirst() {
	_, err := s.requests.ListBySession(s.ctx, 999)
	s.ErrorIs(err, repository.ErrSessionNotFound)
	_, err = s.requests.ListBySession(s.ctx, 4)
	s.ErrorIs(err, repository.ErrSessionHasNoRequests)

	_, err = s.sessions.ListByUser(s.ctx, 4)
	s.ErrorIs(err, repository.ErrUserNotFound)
}

func (s *ServiceSuite) TestCreateRequestValidatesBeforeStore() {
	// the session does not exist either; validation wins
	_, err := s.requests.Create(s.ctx, 999, CreateRequestInput{Title: "", Artist: "Queen", RequestorName: "a"})
	s.ErrorIs(err, ErrInvalidRequestBody)

	_, err = s.requests.Create(s.ctx, 999, CreateRequestInput{Title: "Song", Artist: "Band", RequestorName: "a"})
	s.ErrorIs(err, repository.ErrSessionNotFound)
	s.Equal(7, s.count("requests"), "rejected creates insert nothing")
}

func (s *ServiceSuite) TestCreateRequestDefaults() {
	var ev queue.ActivityEvent
	s.expectEvent(&ev)

	rq, err := s.requests.Create(s.ctx, 4, CreateRequestInput{Title: "Song 2", Artist: "Blur", RequestorName: "dani"})
	s.Require().NoError(err)
	s.Equal("pending", rq.Status)
	s.Zero(rq.Votes)
	s.Nil(rq.ApproveRejectReason)

	s.Equal(queue.EventRequestCreated, ev.Type)
	s.Equal(uint64(4), ev.SessionID)
	s.Equal(rq.ID, ev.RequestID)
}

func (s *ServiceSuite) TestCreateRequestWithOptionalFields() {
	var ev queue.ActivityEvent
	s.expectEvent(&ev)

	rq, err := s.requests.Create(s.ctx, 1, CreateRequestInput{
		Title: "Africa", Artist: "Toto", RequestorName: "bo",
		Status: strPtr("approved"), ApproveRejectReason: strPtr("DJ's choice"), Votes: intPtr(3),
	})
	s.Require().NoError(err)
	s.Equal("approved", rq.Status)
	s.Equal("DJ's choice", *rq.ApproveRejectReason)
	s.Equal(3, rq.Votes)
}

func (s *ServiceSuite) TestUpdateStatus() {
	_, err := s.requests.UpdateStatus(s.ctx, 1, UpdateStatusInput{})
	s.ErrorIs(err, ErrInvalidStatusUpdate)
	_, err = s.requests.UpdateStatus(s.ctx, 999, UpdateStatusInput{Status: strPtr("")})
	s.ErrorIs(err, ErrInvalidStatusUpdate)
	_, err = s.requests.UpdateStatus(s.ctx, 999, UpdateStatusInput{Status: strPtr("approved")})
	s.ErrorIs(err, repository.ErrRequestNotFound)

	var ev queue.ActivityEvent
	s.expectEvent(&ev)
	rq, err := s.requests.UpdateStatus(s.ctx, 2, UpdateStatusInput{Status: strPtr("rejected"), ApproveRejectReason: strPtr("")})
	s.Require().NoError(err)
	s.Equal("rejected", rq.Status)
	s.Nil(rq.ApproveRejectReason, "empty reason clears the column")
	s.Equal(queue.EventRequestStatusUpdated, ev.Type)
}

func (s *ServiceSuite) TestUpdateVotes() {
	_, err := s.requests.UpdateVotes(s.ctx, 5, UpdateVotesInput{})
	s.ErrorIs(err, ErrInvalidVoteIncrement)
	_, err = s.requests.UpdateVotes(s.ctx, 999, UpdateVotesInput{IncVotes: intPtr(1)})
	s.ErrorIs(err, repository.ErrRequestNotFound)

	var ev queue.ActivityEvent
	s.expectEvent(&ev)
	rq, err := s.requests.UpdateVotes(s.ctx, 5, UpdateVotesInput{IncVotes: intPtr(2)})
	s.Require().NoError(err)
	s.Equal(6, rq.Votes)
	s.Equal(uint64(5), ev.RequestID)
}

func (s *ServiceSuite) TestPublishFailureDoesNotFailMutation() {
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	rq, err := s.requests.UpdateVotes(s.ctx, 1, UpdateVotesInput{IncVotes: intPtr(-1)})
	s.Require().NoError(err)
	s.Equal(3, rq.Votes)
}

func (s *ServiceSuite) TestDeleteSessionTwice() {
	var ev queue.ActivityEvent
	s.expectEvent(&ev)

	deleted, err := s.sessions.Delete(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(uint64(1), deleted.ID)
	s.Equal(queue.EventSessionDeleted, ev.Type)

	_, err = s.sessions.Delete(s.ctx, 1)
	s.ErrorIs(err, repository.ErrSessionNotFound)
	_, err = s.requests.ListBySession(s.ctx, 1)
	s.ErrorIs(err, repository.ErrSessionNotFound)
}

func (s *ServiceSuite) TestDeleteRequests() {
	_, err := s.requests.DeleteAllInSession(s.ctx, 999)
	s.ErrorIs(err, repository.ErrSessionNotFound)
	_, err = s.requests.DeleteAllInSession(s.ctx, 4)
	s.ErrorIs(err, repository.ErrSessionHasNoRequests)

	var ev queue.ActivityEvent
	s.expectEvent(&ev)
	deleted, err := s.requests.DeleteAllInSession(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(deleted, 5)
	s.Equal(queue.EventSessionRequestsClear, ev.Type)

	_, err = s.comments.ListBySession(s.ctx, 1)
	s.ErrorIs(err, repository.ErrSessionHasNoComments)

	s.expectEvent(&ev)
	_, err = s.requests.Delete(s.ctx, 6)
	s.Require().NoError(err)
	_, err = s.comments.ListByRequest(s.ctx, 6)
	s.ErrorIs(err, repository.ErrRequestNotFound)
}

func (s *ServiceSuite) TestCommentListings() {
	_, err := s.comments.ListBySession(s.ctx, 999)
	s.ErrorIs(err, repository.ErrSessionNotFound)
	_, err = s.comments.ListBySession(s.ctx, 3)
	s.ErrorIs(err, repository.ErrSessionHasNoComments)

	_, err = s.comments.ListByRequest(s.ctx, 999)
	s.ErrorIs(err, repository.ErrRequestNotFound)
	_, err = s.comments.ListByRequest(s.ctx, 3)
	s.ErrorIs(err, repository.ErrRequestHasNoComments)

	list, err := s.comments.ListByRequest(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(list, 2)
}

func (s *ServiceSuite) TestCreateComment() {
	_, err := s.comments.Create(s.ctx, 999, CreateCommentInput{Comment: "hi"})
	s.ErrorIs(err, ErrInvalidCommentBody)
	_, err = s.comments.Create(s.ctx, 999, CreateCommentInput{Comment: "hi", Author: "me"})
	s.ErrorIs(err, repository.ErrRequestNotFound)
	for _, raw := range []string{"null", `"true"`, "1"} {
		_, err = s.comments.Create(s.ctx, 3, CreateCommentInput{Comment: "hi", Author: "me", Pinned: json.RawMessage(raw)})
		s.ErrorIs(err, ErrInvalidCommentBody, raw)
	}
	s.Equal(5, s.count("comments"), "rejected creates insert nothing")

	var ev queue.ActivityEvent
	s.expectEvent(&ev)
	c, err := s.comments.Create(s.ctx, 3, CreateCommentInput{Comment: "hi", Author: "me"})
	s.Require().NoError(err)
	s.Equal("user", c.Role)
	s.False(c.Pinned)
	s.Equal(uint64(1), ev.SessionID)
	s.Equal(c.ID, ev.CommentID)

	s.expectEvent(&ev)
	c, err = s.comments.Create(s.ctx, 3, CreateCommentInput{Comment: "next up", Author: "dj_marco", Role: strPtr("dj"), Pinned: json.RawMessage("true")})
	s.Require().NoError(err)
	s.Equal("dj", c.Role)
	s.True(c.Pinned)
}

func (s *ServiceSuite) TestPinAndDeleteComment() {
	_, err := s.comments.UpdatePinned(s.ctx, 1, UpdatePinnedInput{})
	s.ErrorIs(err, ErrInvalidPinnedUpdate)
	_, err = s.comments.UpdatePinned(s.ctx, 999, UpdatePinnedInput{Pinned: boolPtr(true)})
	s.ErrorIs(err, repository.ErrCommentNotFound)

	var ev queue.ActivityEvent
	s.expectEvent(&ev)
	c, err := s.comments.UpdatePinned(s.ctx, 1, UpdatePinnedInput{Pinned: boolPtr(true)})
	s.Require().NoError(err)
	s.True(c.Pinned)
	s.Equal(queue.EventCommentPinned, ev.Type)

	s.expectEvent(&ev)
	_, err = s.comments.Delete(s.ctx, 1)
	s.Require().NoError(err)
	_, err = s.comments.Delete(s.ctx, 1)
	s.ErrorIs(err, repository.ErrCommentNotFound)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func TestNilPublisherIsNoop(t *testing.T) {
	db := dbtest.Open(t)
	sessions := NewSessionService(repository.NewUserRepo(db), repository.NewSessionRepo(db), nil)
	if _, err := sessions.Delete(context.Background(), 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
