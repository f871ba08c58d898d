package agent

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/fintrack-ai/fintrack-be/internal/models"
	"github.com/fintrack-ai/fintrack-be/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedReply struct {
	text string
	err  error
}

// scriptedModel returns canned replies in order and records every prompt.
type scriptedModel struct {
	mu      sync.Mutex
	replies []scriptedReply
	prompts []string
}

func (m *scriptedModel) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if len(m.replies) == 0 {
		return "", errors.New("script exhausted")
	}
	next := m.replies[0]
	m.replies = m.replies[1:]
	return next.text, next.err
}

func (m *scriptedModel) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

type fakePerms struct {
	perms models.PermissionSet
	err   error
}

func (f fakePerms) GetPermissions(ctx context.Context, userID string) (models.PermissionSet, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.perms, nil
}

type fakeQuerier struct {
	mu      sync.Mutex
	result  storage.QueryResult
	err     error
	queries []string
}

func (f *fakeQuerier) RunReadOnly(ctx context.Context, sql string) (storage.QueryResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, sql)
	if f.err != nil {
		return storage.QueryResult{}, f.err
	}
	return f.result, nil
}

func newTestPipeline(model ChatModel, perms PermissionSource, db storage.ReadOnlyQuerier) *Pipeline {
	return New(model, perms, db, nil, Options{})
}

func TestAnswerNetWorth(t *testing.T) {
	model := &scriptedModel{replies: []scriptedReply{
		{text: "What is the net worth (total asset value minus total outstanding liabilities) of user user_001?"},
		{text: "SELECT (SELECT COALESCE(SUM(value),0) FROM assets WHERE user_id = 'user_001') - (SELECT COALESCE(SUM(outstanding_balance),0) FROM liabilities WHERE user_id = 'user_001') AS net_worth"},
		{text: "Your net worth is **6,000**: assets of 10,000 minus liabilities of 4,000."},
	}}
	db := &fakeQuerier{result: storage.QueryResult{
		Columns: []string{"net_worth"},
		Rows:    [][]string{{"6000.00"}},
	}}
	p := newTestPipeline(model, fakePerms{perms: models.AllowAll()}, db)

	answer, err := p.Answer(context.Background(), "user_001", "what's my net worth")
	require.NoError(t, err)
	assert.Contains(t, answer, "6,000")

	// Reformulation must name the user explicitly.
	require.GreaterOrEqual(t, model.callCount(), 1)
	assert.Contains(t, model.prompts[0], "user_001")

	// The generated statement must have been executed as-is.
	require.Len(t, db.queries, 1)
	assert.Contains(t, db.queries[0], "net_worth")

	// The synthesis prompt carries the raw tabular result.
	require.Equal(t, 3, model.callCount())
	assert.Contains(t, model.prompts[2], "6000.00")
}

func TestAnswerAllCategoriesDenied(t *testing.T) {
	model := &scriptedModel{}
	db := &fakeQuerier{}
	p := newTestPipeline(model, fakePerms{perms: models.PermissionSet{}}, db)

	answer, err := p.Answer(context.Background(), "user_001", "how much money do I have?")
	require.NoError(t, err)
	assert.Equal(t, RefusalAnswer, answer)
	assert.Zero(t, model.callCount(), "no model call should be made for a fully denied user")
	assert.Empty(t, db.queries)
}

func TestAnswerDeniedCategoryInGeneratedSQL(t *testing.T) {
	perms := models.AllowAll()
	perms.Revoke(models.CategoryAssets)

	model := &scriptedModel{replies: []scriptedReply{
		{text: "What is the total asset value for user user_001?"},
		{text: "SELECT SUM(value) FROM assets WHERE user_id = 'user_001'"},
	}}
	db := &fakeQuerier{}
	p := newTestPipeline(model, fakePerms{perms: perms}, db)

	answer, err := p.Answer(context.Background(), "user_001", "what are my assets worth?")
	require.NoError(t, err)
	assert.Equal(t, RefusalAnswer, answer)
	assert.Empty(t, db.queries, "a denied statement must never reach the database")
}

func TestAnswerStarProjectionWithDeniedColumn(t *testing.T) {
	perms := models.AllowAll()
	perms.Revoke(models.CategoryCreditScore)

	// The statement names no denied identifier and passes validation, but
	// the executed result still carries the denied column.
	model := &scriptedModel{replies: []scriptedReply{
		{text: "Show the full profile of user user_001."},
		{text: "SELECT * FROM users WHERE user_id = 'user_001'"},
	}}
	db := &fakeQuerier{result: storage.QueryResult{
		Columns: []string{"user_id", "name", "credit_score", "epf_balance"},
		Rows:    [][]string{{"user_001", "Ada", "812", "1000.00"}},
	}}
	p := newTestPipeline(model, fakePerms{perms: perms}, db)

	answer, err := p.Answer(context.Background(), "user_001", "tell me everything about my profile")
	require.NoError(t, err)
	assert.Equal(t, RefusalAnswer, answer)
	assert.NotContains(t, answer, "812")
	require.Len(t, db.queries, 1)
	assert.Equal(t, 2, model.callCount(), "synthesis must never see denied data")
}

func TestAnswerNoDataSkipsSynthesis(t *testing.T) {
	model := &scriptedModel{replies: []scriptedReply{
		{text: "List all transactions for user user_042."},
		{text: "SELECT date, amount FROM transactions WHERE user_id = 'user_042'"},
	}}
	db := &fakeQuerier{result: storage.QueryResult{Columns: []string{"date", "amount"}}}
	p := newTestPipeline(model, fakePerms{perms: models.AllowAll()}, db)

	answer, err := p.Answer(context.Background(), "user_042", "show my spending")
	require.NoError(t, err)
	assert.Equal(t, NoDataAnswer, answer)
	assert.Equal(t, 2, model.callCount(), "synthesis must be skipped when there is no data")
}

func TestAnswerUserNotFound(t *testing.T) {
	p := newTestPipeline(&scriptedModel{}, fakePerms{err: storage.ErrNotFound}, &fakeQuerier{})

	_, err := p.Answer(context.Background(), "ghost", "hello")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAnswerRetriesTransientModelFailure(t *testing.T) {
	model := &scriptedModel{replies: []scriptedReply{
		{err: errors.New("upstream 503")},
		{text: "What is the EPF balance of user user_001?"},
		{text: "SELECT epf_balance FROM users WHERE user_id = 'user_001'"},
		{text: "Your EPF balance is **1,234**."},
	}}
	db := &fakeQuerier{result: storage.QueryResult{Columns: []string{"epf_balance"}, Rows: [][]string{{"1234"}}}}
	p := New(model, fakePerms{perms: models.AllowAll()}, db, nil, Options{ModelRetries: 1})

	answer, err := p.Answer(context.Background(), "user_001", "epf balance?")
	require.NoError(t, err)
	assert.Contains(t, answer, "1,234")
}

func TestAnswerModelFailureSurfacesUpstreamError(t *testing.T) {
	model := &scriptedModel{replies: []scriptedReply{
		{err: errors.New("quota exceeded")},
	}}
	p := New(model, fakePerms{perms: models.AllowAll()}, &fakeQuerier{}, nil, Options{ModelRetries: 0})

	_, err := p.Answer(context.Background(), "user_001", "anything")
	require.ErrorIs(t, err, ErrUpstreamModel)
	assert.NotContains(t, err.Error(), "SELECT", "upstream errors must not leak SQL")
}

func TestExecuteRegeneratesAfterRejectedStatement(t *testing.T) {
	model := &scriptedModel{replies: []scriptedReply{
		{text: "What did user user_001 spend?"},
		{text: "DELETE FROM transactions WHERE user_id = 'user_001'"},
		{text: "SELECT SUM(amount) FROM transactions WHERE user_id = 'user_001'"},
		{text: "You spent **500** overall."},
	}}
	db := &fakeQuerier{result: storage.QueryResult{Columns: []string{"sum"}, Rows: [][]string{{"500"}}}}
	p := newTestPipeline(model, fakePerms{perms: models.AllowAll()}, db)

	answer, err := p.Answer(context.Background(), "user_001", "total spending?")
	require.NoError(t, err)
	assert.Contains(t, answer, "500")
	require.Len(t, db.queries, 1, "the rejected statement must not execute")
	assert.True(t, strings.HasPrefix(db.queries[0], "SELECT"))
}

func TestExecuteGivesUpAfterRepeatedFailures(t *testing.T) {
	model := &scriptedModel{replies: []scriptedReply{
		{text: "Reformulated question for user_001."},
		{text: "DROP TABLE users"},
		{text: "TRUNCATE transactions"},
	}}
	p := newTestPipeline(model, fakePerms{perms: models.AllowAll()}, &fakeQuerier{})

	_, err := p.Answer(context.Background(), "user_001", "anything")
	require.ErrorIs(t, err, ErrUpstreamExecution)
}
