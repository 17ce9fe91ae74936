package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
	"yatube/internal/db/dbtest"
	"yatube/internal/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingInvalidator struct {
	mu      sync.Mutex
	reasons []string
}

func (r *recordingInvalidator) Invalidate(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reasons = append(r.reasons, reason)
}

func (r *recordingInvalidator) Reasons() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.reasons...)
}

type testEnv struct {
	db       *gorm.DB
	users    *UserService
	follows  *FollowService
	feed     *FeedService
	posts    *PostService
	comments *CommentService
	groups   *GroupService
	inval    *recordingInvalidator
}

func newTestEnv(t *testing.T, pageSize int) *testEnv {
	t.Helper()
	conn := dbtest.Open(t)
	log := zap.NewNop()
	inval := &recordingInvalidator{}

	users := NewUserService(conn, log)
	follows := NewFollowService(NewSQLFollowGraph(conn), users, log)
	comments := NewCommentService(conn, log)
	return &testEnv{
		db:       conn,
		users:    users,
		follows:  follows,
		feed:     NewFeedService(conn, follows, pageSize, log),
		posts:    NewPostService(conn, comments, inval, log),
		comments: comments,
		groups:   NewGroupService(conn, inval, log),
		inval:    inval,
	}
}

func (e *testEnv) user(t *testing.T, username string) *models.User {
	t.Helper()
	u := models.User{Username: username, Password: "hash"}
	require.NoError(t, e.db.Create(&u).Error)
	return &u
}

func (e *testEnv) group(t *testing.T, slug string) *models.Group {
	t.Helper()
	g := models.Group{Title: "Group " + slug, Slug: slug, Description: "about " + slug}
	require.NoError(t, e.db.Create(&g).Error)
	return &g
}

// postAt 直接写库创建帖子，用于控制创建时间
func (e *testEnv) postAt(t *testing.T, author *models.User, group *models.Group, text string, at time.Time) *models.Post {
	t.Helper()
	p := models.Post{Text: text, UserID: author.ID, CreatedAt: at}
	if group != nil {
		p.GroupID = &group.ID
	}
	require.NoError(t, e.db.Create(&p).Error)
	return &p
}

// posts 创建 n 篇时间递增的帖子，返回按创建顺序排列的结果
func (e *testEnv) manyPosts(t *testing.T, author *models.User, group *models.Group, n int) []*models.Post {
	t.Helper()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	out := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, e.postAt(t, author, group, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute)))
	}
	return out
}

func postIDs(posts []models.Post) []uint {
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

var ctx = context.Background()
