package affiliate

import (
	"context"
	"database/sql"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futureagent/pkg/models"
)

const testSchema = `
CREATE TABLE affiliate_links (
	slug TEXT PRIMARY KEY,
	tool_id TEXT NOT NULL,
	target_url TEXT NOT NULL
);
CREATE TABLE affiliate_clicks (
	id TEXT PRIMARY KEY,
	tool_id TEXT NOT NULL,
	slug TEXT NOT NULL,
	ip TEXT,
	user_agent TEXT,
	referrer TEXT,
	at TIMESTAMP NOT NULL
);
`

func newTestHandler(t *testing.T) (*Handler, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	repo := NewRepo(db, sq.StatementBuilder.PlaceholderFormat(sq.Question))
	return NewHandler(repo, nil, log.New(io.Discard, "", 0)), db
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r.Group("/go"))
	return r
}

func TestRedirectKnownSlug(t *testing.T) {
	h, db := newTestHandler(t)
	require.NoError(t, h.Repo.UpsertLink(context.Background(), models.AffiliateLink{
		Slug: "jasper", ToolID: "t1", TargetURL: "https://jasper.ai/?aff=1",
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/go/jasper", nil)
	newTestRouter(h).ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://jasper.ai/?aff=1", w.Header().Get("Location"))

	// the click record lands shortly after the redirect
	require.Eventually(t, func() bool {
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM affiliate_clicks WHERE slug = ?", "jasper").Scan(&n); err != nil {
			return false
		}
		return n == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRedirectUnknownSlug(t *testing.T) {
	h, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/go/nope", nil)
	newTestRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRedirectSurvivesClickLogFailure(t *testing.T) {
	h, db := newTestHandler(t)
	require.NoError(t, h.Repo.UpsertLink(context.Background(), models.AffiliateLink{
		Slug: "jasper", ToolID: "t1", TargetURL: "https://jasper.ai",
	}))

	// break only the click insert, not the link lookup
	_, err := db.Exec("DROP TABLE affiliate_clicks")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/go/jasper", nil)
	newTestRouter(h).ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://jasper.ai", w.Header().Get("Location"))
}

func TestUpsertLinkReplaces(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()

	require.NoError(t, h.Repo.UpsertLink(ctx, models.AffiliateLink{Slug: "jasper", ToolID: "t1", TargetURL: "https://old.example"}))
	require.NoError(t, h.Repo.UpsertLink(ctx, models.AffiliateLink{Slug: "jasper", ToolID: "t1", TargetURL: "https://new.example"}))

	link, err := h.Repo.GetLink(ctx, "jasper")
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, "https://new.example", link.TargetURL)
}

func TestLinkForToolMissing(t *testing.T) {
	h, _ := newTestHandler(t)

	link, err := h.Repo.LinkForTool(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, link)
}
