package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zy091/iwishneed-sub001/config"
	"github.com/zy091/iwishneed-sub001/internal/handler"
	"github.com/zy091/iwishneed-sub001/internal/model"
	"github.com/zy091/iwishneed-sub001/internal/repository"
	"github.com/zy091/iwishneed-sub001/internal/security"
	"github.com/zy091/iwishneed-sub001/internal/service"
)

const (
	validToken    = "valid-token"
	allowedOrigin = "https://app.example.com"
)

type MockS3Storage struct{ mock.Mock }

func (m *MockS3Storage) CreateSignedUploadURL(ctx context.Context, key string, expire time.Duration) (*model.UploadTicket, error) {
	args := m.Called(ctx, key, expire)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadTicket), args.Error(1)
}

func (m *MockS3Storage) CreateSignedDownloadURL(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

type gateway struct {
	router        *chi.Mux
	db            sqlmock.Sqlmock
	storage       *MockS3Storage
	providerCalls *int32
}

// newGateway : настоящие сервисы и проверка токена, БД через sqlmock,
// провайдер идентификации через httptest
func newGateway(t *testing.T) *gateway {
	t.Helper()

	var calls int32
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.Header.Get("Authorization") != "Bearer "+validToken {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"u1","email":"u1@example.com","app_metadata":{"roleId":2}}`))
	}))
	t.Cleanup(provider.Close)

	rawDB, dbMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rawDB.Close() })
	db := sqlx.NewDb(rawDB, "sqlmock")

	storage := new(MockS3Storage)

	verifier := security.NewMainAuthVerifier(&config.MainAuthConfig{URL: provider.URL, APIKey: "anon"}, nil)
	commentService := service.NewCommentService(db, repository.NewCommentRepository(), repository.NewAttachmentRepository(), 1)
	attachmentService := service.NewAttachmentService(storage, 2*time.Hour, 10*time.Minute)

	basePolicy := security.NewOriginPolicy([]string{allowedOrigin})
	uploadPolicy, err := basePolicy.WithUploadRules([]string{`^https://[a-z0-9-]+\.vercel\.app$`}, "iwishneed")
	require.NoError(t, err)

	router := chi.NewRouter()
	handler.SetupGatewayRoutes(router,
		handler.NewCommentHandler(commentService),
		handler.NewAttachmentHandler(attachmentService),
		verifier, basePolicy, uploadPolicy)

	return &gateway{router: router, db: dbMock, storage: storage, providerCalls: &calls}
}

func (g *gateway) do(method, target, origin, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if token != "" {
		req.Header.Set(security.MainTokenHeader, token)
	}
	rec := httptest.NewRecorder()
	g.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAddComment_EndToEnd(t *testing.T) {
	g := newGateway(t)

	g.db.ExpectQuery(`INSERT\s+INTO\s+comments`).
		WithArgs("req-1", "hello", "u1", "u1@example.com", nil, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("c-1"))
	g.db.ExpectQuery(`FROM\s+comments_public`).
		WithArgs("c-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "requirement_id", "content", "author_email", "parent_id", "attachments_count", "created_at"}).
			AddRow("c-1", "req-1", "hello", "u***@example.com", nil, 0, time.Now()))

	rec := g.do(http.MethodPost, "/functions/v1/comments-add", allowedOrigin, validToken, map[string]any{
		"requirement_id": "req-1",
		"content":        "hello",
		"attachments":    []any{},
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(0), data["attachments_count"])
	assert.NotContains(t, data, "author_external_id")
	assert.Equal(t, allowedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NoError(t, g.db.ExpectationsWereMet())
}

func TestAddComment_IgnoresClientSuppliedAuthor(t *testing.T) {
	g := newGateway(t)

	g.db.ExpectQuery(`INSERT\s+INTO\s+comments`).
		WithArgs("req-1", "hello", "u1", "u1@example.com", nil, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("c-1"))
	g.db.ExpectQuery(`FROM\s+comments_public`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "requirement_id", "content", "author_email", "parent_id", "attachments_count", "created_at"}).
			AddRow("c-1", "req-1", "hello", nil, nil, 0, time.Now()))

	rec := g.do(http.MethodPost, "/functions/v1/comments-add", allowedOrigin, validToken, map[string]any{
		"requirement_id":     "req-1",
		"content":            "hello",
		"author_external_id": "attacker",
		"author_email":       "attacker@example.com",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NoError(t, g.db.ExpectationsWereMet())
}

func TestAddComment_SecondAttachmentFails(t *testing.T) {
	g := newGateway(t)

	g.db.ExpectQuery(`INSERT\s+INTO\s+comments`).
		WithArgs("req-1", "files", "u1", "u1@example.com", nil, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("c-9"))
	g.db.ExpectExec(`INSERT\s+INTO\s+comment_attachments`).
		WithArgs("c-9", "req-1/a_one.png", "one.png", "image/png", int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	g.db.ExpectExec(`INSERT\s+INTO\s+comment_attachments`).
		WithArgs("c-9", "req-1/b_two.pdf", "two.pdf", "application/pdf", int64(20)).
		WillReturnError(assert.AnError)
	g.db.ExpectQuery(`FROM\s+comments_public`).
		WithArgs("c-9").
		WillReturnRows(sqlmock.NewRows([]string{"id", "requirement_id", "content", "author_email", "parent_id", "attachments_count", "created_at"}).
			AddRow("c-9", "req-1", "files", nil, nil, 2, time.Now()))

	rec := g.do(http.MethodPost, "/functions/v1/comments-add", allowedOrigin, validToken, map[string]any{
		"requirement_id": "req-1",
		"content":        "files",
		"attachments": []map[string]any{
			{"path": "req-1/a_one.png", "name": "one.png", "type": "image/png", "size": 10},
			{"path": "req-1/b_two.pdf", "name": "two.pdf", "type": "application/pdf", "size": 20},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, float64(2), data["attachments_count"])
	assert.NoError(t, g.db.ExpectationsWereMet())
}

func TestAddComment_ProjectionFailureIs500(t *testing.T) {
	g := newGateway(t)

	g.db.ExpectQuery(`INSERT\s+INTO\s+comments`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("c-1"))
	g.db.ExpectQuery(`FROM\s+comments_public`).WillReturnError(assert.AnError)

	rec := g.do(http.MethodPost, "/functions/v1/comments-add", allowedOrigin, validToken, map[string]any{
		"requirement_id": "req-1",
		"content":        "hello",
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.NotContains(t, body["error"], assert.AnError.Error())
}

func TestAddComment_ValidationIs400(t *testing.T) {
	g := newGateway(t)

	rec := g.do(http.MethodPost, "/functions/v1/comments-add", allowedOrigin, validToken, map[string]any{
		"requirement_id": "req-1",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "отсутствует content", decode(t, rec)["error"])
	assert.NoError(t, g.db.ExpectationsWereMet())
}

func TestAddComment_MalformedBodyIs400(t *testing.T) {
	g := newGateway(t)

	req := httptest.NewRequest(http.MethodPost, "/functions/v1/comments-add", strings.NewReader("{not json"))
	req.Header.Set("Origin", allowedOrigin)
	req.Header.Set(security.MainTokenHeader, validToken)
	rec := httptest.NewRecorder()
	g.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvalidToken_401WithoutWrites(t *testing.T) {
	requests := []struct {
		method string
		target string
		body   any
	}{
		{http.MethodPost, "/functions/v1/comments-add", map[string]any{"requirement_id": "req-1", "content": "hello"}},
		{http.MethodPost, "/functions/v1/comments-upload-url", map[string]any{"requirement_id": "req-1", "files": []map[string]any{{"name": "a.txt", "type": "text/plain", "size": 1}}}},
		{http.MethodGet, "/functions/v1/comments-file-url?path=req-1/a.txt", nil},
	}

	for _, tt := range requests {
		for _, token := range []string{"", "expired-token"} {
			t.Run(tt.target+"/"+token, func(t *testing.T) {
				g := newGateway(t)

				rec := g.do(tt.method, tt.target, allowedOrigin, token, tt.body)

				assert.Equal(t, http.StatusUnauthorized, rec.Code)
				assert.NotEmpty(t, decode(t, rec)["error"])
				assert.Equal(t, allowedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
				assert.NoError(t, g.db.ExpectationsWereMet())
				g.storage.AssertNotCalled(t, "CreateSignedUploadURL", mock.Anything, mock.Anything, mock.Anything)
				g.storage.AssertNotCalled(t, "CreateSignedDownloadURL", mock.Anything, mock.Anything, mock.Anything)
			})
		}
	}
}

func TestForbiddenOrigin_403BeforeTokenVerification(t *testing.T) {
	targets := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/functions/v1/comments-add"},
		{http.MethodPost, "/functions/v1/comments-upload-url"},
		{http.MethodGet, "/functions/v1/comments-file-url?path=a"},
	}

	for _, tt := range targets {
		t.Run(tt.target, func(t *testing.T) {
			g := newGateway(t)

			rec := g.do(tt.method, tt.target, "https://evil.example", validToken, map[string]any{})

			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.NotEmpty(t, decode(t, rec)["error"])
			assert.Equal(t, int32(0), atomic.LoadInt32(g.providerCalls))
		})
	}
}

func TestUploadPolicy_AllowsDynamicOrigins(t *testing.T) {
	for _, origin := range []string{"http://localhost:5173", "https://preview-1.vercel.app", "https://beta.iwishneed.com"} {
		t.Run(origin, func(t *testing.T) {
			g := newGateway(t)

			addRec := g.do(http.MethodPost, "/functions/v1/comments-add", origin, validToken, map[string]any{})
			assert.Equal(t, http.StatusForbidden, addRec.Code)

			g.storage.On("CreateSignedUploadURL", mock.Anything, mock.Anything, 2*time.Hour).
				Return(&model.UploadTicket{Path: "p", Token: "t", SignedURL: "u"}, nil)

			rec := g.do(http.MethodPost, "/functions/v1/comments-upload-url", origin, validToken, map[string]any{
				"requirement_id": "req-1",
				"files":          []map[string]any{{"name": "a.txt", "type": "text/plain", "size": 1}},
			})
			assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		})
	}
}

func TestPreflight(t *testing.T) {
	g := newGateway(t)

	rec := g.do(http.MethodOptions, "/functions/v1/comments-file-url", allowedOrigin, "", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, allowedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, int32(0), atomic.LoadInt32(g.providerCalls))
}

func TestWrongMethod_405(t *testing.T) {
	g := newGateway(t)

	rec := g.do(http.MethodGet, "/functions/v1/comments-add", allowedOrigin, validToken, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["error"])

	rec = g.do(http.MethodPost, "/functions/v1/comments-file-url?path=a", allowedOrigin, validToken, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	assert.Equal(t, int32(0), atomic.LoadInt32(g.providerCalls))
}

func TestUploadURL_Success(t *testing.T) {
	g := newGateway(t)

	g.storage.On("CreateSignedUploadURL", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.HasPrefix(p, "req-1/") && strings.HasSuffix(p, "_my_photo.png")
	}), 2*time.Hour).Return(&model.UploadTicket{Path: "req-1/x_my_photo.png", Token: "sig1", SignedURL: "https://s3/1"}, nil).Once()
	g.storage.On("CreateSignedUploadURL", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.HasPrefix(p, "req-1/") && strings.HasSuffix(p, "_doc.pdf")
	}), 2*time.Hour).Return(&model.UploadTicket{Path: "req-1/y_doc.pdf", Token: "sig2", SignedURL: "https://s3/2"}, nil).Once()

	rec := g.do(http.MethodPost, "/functions/v1/comments-upload-url", allowedOrigin, validToken, map[string]any{
		"requirement_id": "req-1",
		"files": []map[string]any{
			{"name": "my photo.png", "type": "image/png", "size": 1024},
			{"name": "doc.pdf", "type": "application/pdf", "size": 2048},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	uploads := body["uploads"].([]any)
	require.Len(t, uploads, 2)
	assert.Equal(t, map[string]any{"path": "req-1/x_my_photo.png", "token": "sig1", "signedUrl": "https://s3/1"}, uploads[0])
	assert.Equal(t, "req-1/y_doc.pdf", uploads[1].(map[string]any)["path"])
	g.storage.AssertExpectations(t)
}

func TestUploadURL_OversizedFileIs400WithoutPresign(t *testing.T) {
	g := newGateway(t)

	rec := g.do(http.MethodPost, "/functions/v1/comments-upload-url", allowedOrigin, validToken, map[string]any{
		"requirement_id": "req-1",
		"files": []map[string]any{
			{"name": "small.txt", "type": "text/plain", "size": 1},
			{"name": "big.jpg", "type": "image/jpeg", "size": 6 << 20},
		},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "big.jpg")
	g.storage.AssertNotCalled(t, "CreateSignedUploadURL", mock.Anything, mock.Anything, mock.Anything)
}

func TestFileURL_EmptyPathIs400WithoutStorageCall(t *testing.T) {
	g := newGateway(t)

	rec := g.do(http.MethodGet, "/functions/v1/comments-file-url?path=", allowedOrigin, validToken, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "отсутствует параметр path", decode(t, rec)["error"])
	g.storage.AssertNotCalled(t, "CreateSignedDownloadURL", mock.Anything, mock.Anything, mock.Anything)
}

func TestFileURL_TwoCallsTwoURLs(t *testing.T) {
	g := newGateway(t)

	g.storage.On("CreateSignedDownloadURL", mock.Anything, "req-1/a.txt", 10*time.Minute).Return("https://s3/a?sig=1", nil).Once()
	g.storage.On("CreateSignedDownloadURL", mock.Anything, "req-1/a.txt", 10*time.Minute).Return("https://s3/a?sig=2", nil).Once()

	first := g.do(http.MethodGet, "/functions/v1/comments-file-url?path=req-1/a.txt", allowedOrigin, validToken, nil)
	second := g.do(http.MethodGet, "/functions/v1/comments-file-url?path=req-1/a.txt", allowedOrigin, validToken, nil)

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	firstBody, secondBody := decode(t, first), decode(t, second)
	assert.Equal(t, true, firstBody["success"])
	assert.NotEqual(t, firstBody["url"], secondBody["url"])
	g.storage.AssertNumberOfCalls(t, "CreateSignedDownloadURL", 2)
}

func TestFileURL_StorageFailureIs500(t *testing.T) {
	g := newGateway(t)

	g.storage.On("CreateSignedDownloadURL", mock.Anything, "p", 10*time.Minute).Return("", assert.AnError)

	rec := g.do(http.MethodGet, "/functions/v1/comments-file-url?path=p", allowedOrigin, validToken, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "не удалось создать URL скачивания", decode(t, rec)["error"])
}
