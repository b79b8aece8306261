package simulator

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/models"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	return New(Options{Logger: logger.NewTestLogger(t)})
}

func post(t *testing.T, b *Backend, path string, body interface{}) (*Result, error) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	return b.Post(context.Background(), path, data)
}

func TestRegister_ConflictOnSecondCall(t *testing.T) {
	b := newTestBackend(t)
	req := models.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "pw"}

	res, err := post(t, b, "/auth/register", req)
	require.NoError(t, err)

	var auth models.AuthResponse
	require.NoError(t, json.Unmarshal(res.Data, &auth))
	assert.True(t, strings.HasPrefix(auth.User.ID, "user_"))
	assert.Equal(t, models.PlanFree, auth.User.Plan)
	assert.NotEmpty(t, auth.Token)

	_, err = post(t, b, "/auth/register", req)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeConflict))
	stdErr, _ := errors.As(err)
	assert.Equal(t, http.StatusBadRequest, stdErr.Status)
	assert.Equal(t, "Email already registered", stdErr.Message)
}

func TestLogin(t *testing.T) {
	b := newTestBackend(t)

	_, err := b.Login(models.LoginRequest{Email: "nobody@example.com", Password: "x"})
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))
	assert.Equal(t, "Invalid email or password", errors.Normalize(err).Message)

	_, err = b.Register(models.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "right"})
	require.NoError(t, err)

	// password is not checked
	auth, err := b.Login(models.LoginRequest{Email: "jane@example.com", Password: "wrong"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", auth.User.Name)

	claims, err := b.VerifyToken(auth.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.User.ID, claims.Subject)
	assert.Equal(t, "jane@example.com", claims.Email)
}

func TestVerifyToken_Rejects(t *testing.T) {
	b := newTestBackend(t)
	other := New(Options{TokenSecret: "another-secret"})

	auth, err := other.Register(models.RegisterRequest{Email: "a@b.co"})
	require.NoError(t, err)

	_, err = b.VerifyToken(auth.Token)
	assert.True(t, errors.IsUnauthorized(err))

	_, err = b.VerifyToken("not-a-jwt")
	assert.True(t, errors.IsUnauthorized(err))
}

func TestVerifyToken_Expired(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := New(Options{TokenTTL: time.Minute, Now: func() time.Time { return now }})

	auth, err := b.Register(models.RegisterRequest{Email: "a@b.co"})
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = b.VerifyToken(auth.Token)
	assert.True(t, errors.IsUnauthorized(err))
}

func TestProposals_CreateGetList(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	res, err := post(t, b, "/proposals", map[string]interface{}{
		"clientName":   "Acme",
		"projectTitle": "Site",
		"scopeOfWork":  "scope",
		"timeline":     map[string]string{"start": "A", "mid": "B", "end": "C"},
	})
	require.NoError(t, err)

	var created models.Proposal
	require.NoError(t, json.Unmarshal(res.Data, &created))
	assert.True(t, strings.HasPrefix(created.ID, "proposal_"))
	assert.Equal(t, models.StatusDraft, created.Status)
	_, ok := created.Created()
	assert.True(t, ok)
	assert.JSONEq(t, `{"start":"A","mid":"B","end":"C"}`, string(created.Timeline))

	res, err = b.Get(ctx, "/proposals/"+created.ID)
	require.NoError(t, err)
	var fetched models.Proposal
	require.NoError(t, json.Unmarshal(res.Data, &fetched))
	assert.Equal(t, created.ID, fetched.ID)

	_, err = b.Get(ctx, "/proposals/proposal_missing")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
	assert.Equal(t, "Proposal not found", errors.Normalize(err).Message)

	res, err = b.Get(ctx, "/proposals")
	require.NoError(t, err)
	var list []models.Proposal
	require.NoError(t, json.Unmarshal(res.Data, &list))
	assert.Len(t, list, 1)
}

func TestCreateProposal_KeepsGivenStatus(t *testing.T) {
	b := newTestBackend(t)

	p := b.CreateProposal(models.Proposal{ClientName: "Acme", Status: models.StatusSent})

	assert.Equal(t, models.StatusSent, p.Status)
}

func TestListProposals_FiltersByPrefix(t *testing.T) {
	b := newTestBackend(t)
	b.Seed(State{Proposals: []models.Proposal{
		{ID: "proposal_1", ProjectTitle: "kept"},
		{ID: "draft-2", ProjectTitle: "dropped"},
	}})

	list := b.ListProposals()

	require.Len(t, list, 1)
	assert.Equal(t, "proposal_1", list[0].ID)

	res, err := b.Get(context.Background(), "/proposals")
	require.NoError(t, err)
	assert.NotContains(t, string(res.Data), "draft-2")
}

func TestListProposals_EmptyIsArray(t *testing.T) {
	res, err := newTestBackend(t).Get(context.Background(), "/proposals")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(res.Data))
}

func TestTemplates(t *testing.T) {
	b := newTestBackend(t)

	res, err := post(t, b, "/templates", models.TemplateCreate{Title: "Web", Content: "Standard web build"})
	require.NoError(t, err)
	var tpl models.Template
	require.NoError(t, json.Unmarshal(res.Data, &tpl))
	assert.True(t, strings.HasPrefix(tpl.ID, "template_"))
	assert.NotEmpty(t, tpl.CreatedAt)

	list := b.ListTemplates()
	require.Len(t, list, 1)
	assert.Equal(t, "Standard web build", list[0].Content)
}

func TestUpdateProfile(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	_, err := b.Put(ctx, "/me", []byte(`{"name":"New"}`))
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
	assert.Equal(t, "User not found", errors.Normalize(err).Message)

	_, err = b.Register(models.RegisterRequest{Name: "Old", Email: "a@b.co"})
	require.NoError(t, err)

	res, err := b.Put(ctx, "/me", []byte(`{"name":"New"}`))
	require.NoError(t, err)
	var u models.User
	require.NoError(t, json.Unmarshal(res.Data, &u))
	assert.Equal(t, "New", u.Name)

	// the stored record follows
	auth, err := b.Login(models.LoginRequest{Email: "a@b.co"})
	require.NoError(t, err)
	assert.Equal(t, "New", auth.User.Name)

	// the returned copy is detached
	u.Name = "Mutated"
	cur, _ := b.CurrentUser()
	assert.Equal(t, "New", cur.Name)
}

func TestUpdateProfile_WithSubjectRenamesThatUser(t *testing.T) {
	b := newTestBackend(t)

	alice, err := b.Register(models.RegisterRequest{Name: "Alice", Email: "a@x.io"})
	require.NoError(t, err)
	_, err = b.Register(models.RegisterRequest{Name: "Bob", Email: "b@x.io"})
	require.NoError(t, err)

	res, err := b.Put(WithSubject(context.Background(), alice.User.ID), "/me", []byte(`{"name":"Alicia"}`))
	require.NoError(t, err)
	var u models.User
	require.NoError(t, json.Unmarshal(res.Data, &u))
	assert.Equal(t, alice.User.ID, u.ID)
	assert.Equal(t, "Alicia", u.Name)

	cur, ok := b.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Bob", cur.Name)

	_, err = b.Put(WithSubject(context.Background(), "user_gone"), "/me", []byte(`{"name":"x"}`))
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestUnknownRoutesAreNotImplemented(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	calls := []func() (*Result, error){
		func() (*Result, error) { return b.Delete(ctx, "/proposals/proposal_1") },
		func() (*Result, error) { return b.Delete(ctx, "/templates") },
		func() (*Result, error) { return b.Get(ctx, "/billing") },
		func() (*Result, error) { return b.Put(ctx, "/proposals/proposal_1", nil) },
		func() (*Result, error) { return b.Post(ctx, "/me", nil) },
	}

	for _, call := range calls {
		_, err := call()
		require.Error(t, err)
		stdErr, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeNotImplemented, stdErr.Code)
		assert.Equal(t, http.StatusNotImplemented, stdErr.Status)
		assert.Contains(t, stdErr.Message, "not implemented")
	}
}

func TestInvalidBodyIsBadRequest(t *testing.T) {
	_, err := newTestBackend(t).Post(context.Background(), "/templates", []byte(`{broken`))
	assert.True(t, errors.HasCode(err, errors.ErrCodeBadRequest))
}

func TestLatency(t *testing.T) {
	b := New(Options{ReadLatency: 30 * time.Millisecond, GenerateLatency: 80 * time.Millisecond})

	start := time.Now()
	_, err := b.Get(context.Background(), "/templates")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)

	start = time.Now()
	_, err = b.Post(context.Background(), "/ai/generate-proposal", []byte(`{}`))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestLatency_HonoursContext(t *testing.T) {
	b := New(Options{GenerateLatency: time.Hour})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := b.Post(ctx, "/ai/generate-proposal", []byte(`{}`))

	assert.True(t, errors.HasCode(err, errors.ErrCodeNetwork))
}

func TestConcurrentCreates(t *testing.T) {
	b := newTestBackend(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.CreateProposal(models.Proposal{ClientName: "Acme"})
		}()
	}
	wg.Wait()

	list := b.ListProposals()
	assert.Len(t, list, 20)
	ids := map[string]bool{}
	for _, p := range list {
		ids[p.ID] = true
	}
	assert.Len(t, ids, 20)
}

func TestSnapshot(t *testing.T) {
	b := newTestBackend(t)
	b.CreateTemplate(models.TemplateCreate{Title: "t"})

	s := b.Snapshot()
	s.Templates[0].Title = "changed"

	assert.Equal(t, "t", b.ListTemplates()[0].Title)
}
