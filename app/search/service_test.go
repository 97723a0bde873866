package search

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"gatherly/app/models"
	"gatherly/core/app/users"
	"gatherly/core/logger"
	"gatherly/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*SearchService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "search.db")), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&users.User{},
		&storage.Attachment{},
		&models.Meeting{},
		&models.Attendance{},
		&models.Post{},
		&models.Comment{},
		&models.SearchQuery{},
	))

	log, err := logger.NewLogger(logger.Config{Level: "error"})
	require.NoError(t, err)

	return NewSearchService(db, log), db
}

func seedUser(t *testing.T, db *gorm.DB, firstName, lastName, email string) *users.User {
	t.Helper()
	user := &users.User{
		FirstName: firstName,
		LastName:  lastName,
		Username:  email,
		Email:     email,
		Password:  "secret",
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedMeeting(t *testing.T, db *gorm.DB, organizerId uint, title, description string) *models.Meeting {
	t.Helper()
	meeting := &models.Meeting{
		Title:       title,
		Slug:        fmt.Sprintf("%s-%d", title, time.Now().UnixNano()),
		Description: description,
		StartTime:   time.Now().Add(24 * time.Hour),
		IsActive:    true,
		OrganizerId: organizerId,
	}
	require.NoError(t, db.Create(meeting).Error)
	return meeting
}

func seedPost(t *testing.T, db *gorm.DB, authorId uint, title, content string) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:    title,
		Content:  content,
		AuthorId: authorId,
		IsActive: true,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func seedComment(t *testing.T, db *gorm.DB, postId, authorId uint, content string) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		Content:  content,
		PostId:   postId,
		AuthorId: authorId,
		IsActive: true,
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func deactivate(t *testing.T, db *gorm.DB, model any, id uint) {
	t.Helper()
	require.NoError(t, db.Model(model).Where("id = ?", id).Update("is_active", false).Error)
}

func TestGlobalSearchRoutesSelectedTypes(t *testing.T) {
	svc, db := newTestService(t)
	author := seedUser(t, db, "Ada", "Lovelace", "ada@example.com")
	seedMeeting(t, db, author.Id, "Team Meeting", "weekly sync")
	post := seedPost(t, db, author.Id, "Team update", "progress on the team roadmap")
	seedComment(t, db, post.Id, author.Id, "team looks good")

	filters := DefaultFilters()
	filters.Types = []SearchType{SearchTypeMeeting}

	page, err := svc.GlobalSearch(context.Background(), "team", filters, 1, 20)
	require.NoError(t, err)

	assert.Equal(t, 1, page.TotalCount)
	require.Len(t, page.Results, 1)
	assert.Equal(t, SearchTypeMeeting, page.Results[0].Type)
	assert.Equal(t, 1, page.CountsByType[SearchTypeMeeting])
	assert.NotContains(t, page.CountsByType, SearchTypePost)
}

func TestGlobalSearchDefaultsToAllTypes(t *testing.T) {
	svc, db := newTestService(t)
	author := seedUser(t, db, "Team", "Lead", "lead@example.com")
	seedMeeting(t, db, author.Id, "Team Meeting", "weekly sync")
	post := seedPost(t, db, author.Id, "Team update", "notes")
	seedComment(t, db, post.Id, author.Id, "the team agrees")

	page, err := svc.GlobalSearch(context.Background(), "team", DefaultFilters(), 1, 20)
	require.NoError(t, err)

	assert.Equal(t, 4, page.TotalCount)
	assert.Equal(t, 1, page.CountsByType[SearchTypeMeeting])
	assert.Equal(t, 1, page.CountsByType[SearchTypePost])
	assert.Equal(t, 1, page.CountsByType[SearchTypeComment])
	assert.Equal(t, 1, page.CountsByType[SearchTypeUser])
}

func TestGlobalSearchCountsBeforePagination(t *testing.T) {
	svc, db := newTestService(t)
	author := seedUser(t, db, "Ada", "Lovelace", "ada@example.com")
	for i := 0; i < 3; i++ {
		seedMeeting(t, db, author.Id, fmt.Sprintf("Planning session %d", i), "roadmap")
	}

	page, err := svc.GlobalSearch(context.Background(), "planning", DefaultFilters(), 1, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, page.TotalCount)
	assert.Len(t, page.Results, 2)
	assert.Equal(t, 3, page.CountsByType[SearchTypeMeeting])

	next, err := svc.GlobalSearch(context.Background(), "planning", DefaultFilters(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, next.TotalCount)
	assert.Len(t, next.Results, 1)
}

func TestGlobalSearchRanksByRelevanceThenDate(t *testing.T) {
	svc, db := newTestService(t)
	author := seedUser(t, db, "Ada", "Lovelace", "ada@example.com")

	// Whole-word match outranks a bare substring match.
	substringHit := seedMeeting(t, db, author.Id, "teammeetingroom", "")
	wholeWordHit := seedMeeting(t, db, author.Id, "Team Meeting", "")

	page, err := svc.GlobalSearch(context.Background(), "meeting", DefaultFilters(), 1, 20)
	require.NoError(t, err)

	require.Len(t, page.Results, 2)
	assert.Equal(t, wholeWordHit.Id, page.Results[0].Id)
	assert.Equal(t, substringHit.Id, page.Results[1].Id)
	assert.Greater(t, page.Results[0].Relevance, page.Results[1].Relevance)
}

func TestGlobalSearchEqualRelevanceBreaksTiesByDate(t *testing.T) {
	svc, db := newTestService(t)
	author := seedUser(t, db, "Ada", "Lovelace", "ada@example.com")

	older := seedMeeting(t, db, author.Id, "Budget Meeting", "")
	require.NoError(t, db.Model(&models.Meeting{}).Where("id = ?", older.Id).
		Update("created_at", time.Now().Add(-48*time.Hour)).Error)
	newer := seedMeeting(t, db, author.Id, "Design Meeting", "")

	page, err := svc.GlobalSearch(context.Background(), "meeting", DefaultFilters(), 1, 20)
	require.NoError(t, err)

	require.Len(t, page.Results, 2)
	assert.Equal(t, newer.Id, page.Results[0].Id)
	assert.Equal(t, older.Id, page.Results[1].Id)
}

func TestGlobalSearchSortByDateAscending(t *testing.T) {
	svc, db := newTestService(t)
	author := seedUser(t, db, "Ada", "Lovelace", "ada@example.com")

	older := seedMeeting(t, db, author.Id, "Budget Meeting", "")
	require.NoError(t, db.Model(&models.Meeting{}).Where("id = ?", older.Id).
		Update("created_at", time.Now().Add(-48*time.Hour)).Error)
	newer := seedMeeting(t, db, author.Id, "Design Meeting", "")

	filters := DefaultFilters()
	filters.SortBy = "date"
	filters.SortDirection = "asc"

	page, err := svc.GlobalSearch(context.Background(), "meeting", filters, 1, 20)
	require.NoError(t, err)

	require.Len(t, page.Results, 2)
	assert.Equal(t, older.Id, page.Results[0].Id)
	assert.Equal(t, newer.Id, page.Results[1].Id)
}

func TestGlobalSearchActiveOnly(t *testing.T) {
	svc, db := newTestService(t)
	author := seedUser(t, db, "Ada", "Lovelace", "ada@example.com")

	active := seedMeeting(t, db, author.Id, "Weekly Team Meeting", "")
	cancelled := seedMeeting(t, db, author.Id, "Team Meeting", "")
	deactivate(t, db, &models.Meeting{}, cancelled.Id)

	page, err := svc.GlobalSearch(context.Background(), "team meeting", DefaultFilters(), 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, active.Id, page.Results[0].Id)

	all, err := svc.GlobalSearch(context.Background(), "team meeting", &SearchFilters{}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, all.Results, 2)
}

func TestGlobalSearchEmptyTermsMatchNothing(t *testing.T) {
	svc, db := newTestService(t)
	author := seedUser(t, db, "Ada", "Lovelace", "ada@example.com")
	seedMeeting(t, db, author.Id, "Team Meeting", "")

	for _, query := range []string{"", "   ", "a b c"} {
		page, err := svc.GlobalSearch(context.Background(), query, DefaultFilters(), 1, 20)
		require.NoError(t, err)
		assert.Zero(t, page.TotalCount, "query %q", query)
		assert.Empty(t, page.Results, "query %q", query)
	}
}

func TestGlobalSearchNormalizesPaging(t *testing.T) {
	svc, _ := newTestService(t)

	page, err := svc.GlobalSearch(context.Background(), "team", DefaultFilters(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, defaultPageSize, page.PageSize)

	page, err = svc.GlobalSearch(context.Background(), "team", DefaultFilters(), -3, 500)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, maxPageSize, page.PageSize)
}

func TestSearchMeetingsDateRangeUsesStartTime(t *testing.T) {
	svc, db := newTestService(t)
	author := seedUser(t, db, "Ada", "Lovelace", "ada@example.com")

	inRange := seedMeeting(t, db, author.Id, "Planning Meeting", "")
	outOfRange := seedMeeting(t, db, author.Id, "Planning Review", "")
	require.NoError(t, db.Model(&models.Meeting{}).Where("id = ?", outOfRange.Id).
		Update("start_time", time.Now().Add(30*24*time.Hour)).Error)

	from := time.Now()
	to := time.Now().Add(7 * 24 * time.Hour)
	filters := DefaultFilters()
	filters.FromDate = &from
	filters.ToDate = &to

	results, err := svc.SearchMeetings(context.Background(), "planning", filters, 1, 20)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, inRange.Id, results[0].Id)
}

func TestSearchMeetingsAuthorFilter(t *testing.T) {
	svc, db := newTestService(t)
	ada := seedUser(t, db, "Ada", "Lovelace", "ada@example.com")
	grace := seedUser(t, db, "Grace", "Hopper", "grace@example.com")
	seedMeeting(t, db, ada.Id, "Planning Meeting", "")
	target := seedMeeting(t, db, grace.Id, "Planning Workshop", "")

	filters := DefaultFilters()
	filters.Authors = []uint{grace.Id}

	results, err := svc.SearchMeetings(context.Background(), "planning", filters, 1, 20)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, target.Id, results[0].Id)
	assert.Equal(t, "Grace Hopper", results[0].OrganizerName)
}

func TestSearchMeetingsWrapsFailure(t *testing.T) {
	svc, db := newTestService(t)
	require.NoError(t, db.Migrator().DropTable("meetings"))

	_, err := svc.SearchMeetings(context.Background(), "planning", DefaultFilters(), 1, 20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meeting search failed")
}

func TestSearchPostsMatchesTitleAndContent(t *testing.T) {
	svc, db := newTestService(t)
	author := seedUser(t, db, "Ada", "Lovelace", "ada@example.com")
	byTitle := seedPost(t, db, author.Id, "Roadmap update", "nothing else")
	byContent := seedPost(t, db, author.Id, "Status", "the roadmap slipped")
	seedPost(t, db, author.Id, "Unrelated", "weather report")

	results, err := svc.SearchPosts(context.Background(), "roadmap", DefaultFilters(), 1, 20)
	require.NoError(t, err)
	require.Len(t, results, 2)

	ids := []uint{results[0].Id, results[1].Id}
	assert.Contains(t, ids, byTitle.Id)
	assert.Contains(t, ids, byContent.Id)
}

func TestSearchCommentsMatchesContentOnly(t *testing.T) {
	svc, db := newTestService(t)
	author := seedUser(t, db, "Ada", "Lovelace", "ada@example.com")
	post := seedPost(t, db, author.Id, "Agenda draft", "items")
	match := seedComment(t, db, post.Id, author.Id, "add the agenda item")
	seedComment(t, db, post.Id, author.Id, "looks fine")

	results, err := svc.SearchComments(context.Background(), "agenda", DefaultFilters(), 1, 20)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, match.Id, results[0].Id)
	assert.Equal(t, post.Id, results[0].PostId)
	assert.Equal(t, "Agenda draft", results[0].PostTitle)
}

func TestSearchUsersDefaultsToAscendingDate(t *testing.T) {
	svc, db := newTestService(t)

	first := seedUser(t, db, "Ada", "Lovelace", "ada@example.com")
	require.NoError(t, db.Model(&users.User{}).Where("id = ?", first.Id).
		Update("created_at", time.Now().Add(-48*time.Hour)).Error)
	second := seedUser(t, db, "Adam", "Smith", "adam@example.com")

	results, err := svc.SearchUsers(context.Background(), "ada", DefaultFilters(), 1, 20)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, first.Id, results[0].Id)
	assert.Equal(t, second.Id, results[1].Id)
	assert.Equal(t, "Ada Lovelace", results[0].FullName)
}

func TestSearchUsersMatchesEmail(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db, "Grace", "Hopper", "grace@navy.example.com")
	seedUser(t, db, "Ada", "Lovelace", "ada@example.com")

	results, err := svc.SearchUsers(context.Background(), "navy", DefaultFilters(), 1, 20)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Grace Hopper", results[0].FullName)
}

func TestSearchRecordsAuditRow(t *testing.T) {
	svc, db := newTestService(t)
	author := seedUser(t, db, "Ada", "Lovelace", "ada@example.com")
	seedMeeting(t, db, author.Id, "Team Meeting", "")

	userId := author.Id
	ctx := WithRequestInfo(context.Background(), RequestInfo{
		UserId:    &userId,
		IpAddress: "127.0.0.1",
		UserAgent: "test-agent",
	})

	_, err := svc.GlobalSearch(ctx, "  team  ", DefaultFilters(), 1, 20)
	require.NoError(t, err)

	// Recording is detached from the request, so poll for the row.
	var row models.SearchQuery
	require.Eventually(t, func() bool {
		return db.Where("search_type = ?", "global").First(&row).Error == nil
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, "team", row.Query)
	assert.Equal(t, 1, row.ResultCount)
	require.NotNil(t, row.UserId)
	assert.Equal(t, author.Id, *row.UserId)
	assert.Equal(t, "127.0.0.1", row.IpAddress)
	assert.Equal(t, "test-agent", row.UserAgent)
}

func TestSearchSucceedsWhenAuditWriteFails(t *testing.T) {
	svc, db := newTestService(t)
	author := seedUser(t, db, "Ada", "Lovelace", "ada@example.com")
	seedMeeting(t, db, author.Id, "Team Meeting", "")
	require.NoError(t, db.Migrator().DropTable("search_queries"))

	page, err := svc.GlobalSearch(context.Background(), "team", DefaultFilters(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
}
