package document

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docquiz/docquiz/internal/quiz"
)

type memStore struct {
	docs map[string]*Document
}

func newMemStore() *memStore {
	return &memStore{docs: map[string]*Document{}}
}

func (m *memStore) Insert(_ context.Context, doc *Document) error {
	m.docs[doc.ID] = doc
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (*Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

func (m *memStore) ListByUser(_ context.Context, userID string) ([]*Document, error) {
	var out []*Document
	for _, doc := range m.docs {
		if doc.UserID == userID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *memStore) ReplaceScores(_ context.Context, id string, scores quiz.ScoreList) error {
	doc, ok := m.docs[id]
	if !ok {
		return ErrNotFound
	}
	doc.TopicScores = scores
	return nil
}

func (m *memStore) ReplaceQuestions(_ context.Context, id string, questions []string) error {
	doc, ok := m.docs[id]
	if !ok {
		return ErrNotFound
	}
	doc.Questions = questions
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	if _, ok := m.docs[id]; !ok {
		return ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

type staticTitler struct{ title string }

func (s staticTitler) GenerateTitle(_ context.Context, _ string) string { return s.title }

func newTestService(store Store, titles TitleGenerator) *Service {
	return NewService(store, titles, zerolog.Nop())
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(newMemStore(), nil)

	_, err := svc.Create(context.Background(), CreateRequest{Content: "text"})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), CreateRequest{UserID: "u1", Content: "  "})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), CreateRequest{
		UserID:      "u1",
		Content:     "text",
		TopicScores: quiz.ScoreList{{"Math": -1}},
	})
	assert.Error(t, err)
}

func TestCreateFillsTitleFromGenerator(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, staticTitler{title: "Linear Algebra Notes"})

	doc, err := svc.Create(context.Background(), CreateRequest{UserID: "u1", Content: "vectors and matrices"})
	require.NoError(t, err)

	assert.Equal(t, "Linear Algebra Notes", doc.Title)
	assert.NotEmpty(t, doc.ID)
	assert.NotNil(t, doc.TopicScores)
	assert.NotNil(t, doc.Questions)
	assert.Contains(t, store.docs, doc.ID)
}

func TestCreateKeepsExplicitTitle(t *testing.T) {
	svc := newTestService(newMemStore(), staticTitler{title: "generated"})

	doc, err := svc.Create(context.Background(), CreateRequest{UserID: "u1", Content: "text", Title: "My Notes"})
	require.NoError(t, err)
	assert.Equal(t, "My Notes", doc.Title)
}

func TestMergeScoresUpdatesInPlace(t *testing.T) {
	store := newMemStore()
	store.docs["d1"] = &Document{ID: "d1", TopicScores: quiz.ScoreList{{"Geo": 2}, {"Math": 3}}}
	svc := newTestService(store, nil)

	doc, err := svc.MergeScores(context.Background(), "d1", quiz.ScoreList{{"Math": 4}, {"Algebra": 1}})
	require.NoError(t, err)

	assert.Equal(t, quiz.ScoreList{{"Geo": 2}, {"Math": 4}, {"Algebra": 1}}, doc.TopicScores)
	assert.Equal(t, doc.TopicScores, store.docs["d1"].TopicScores)
}

func TestMergeScoresRejectsInvalid(t *testing.T) {
	store := newMemStore()
	store.docs["d1"] = &Document{ID: "d1"}
	svc := newTestService(store, nil)

	_, err := svc.MergeScores(context.Background(), "d1", quiz.ScoreList{{"Math": 12}})
	assert.Error(t, err)
}

func TestAppendQuestionsKeepsBound(t *testing.T) {
	store := newMemStore()
	var history []string
	for i := 0; i < maxQuestionHistory; i++ {
		history = append(history, fmt.Sprintf("q%d", i))
	}
	store.docs["d1"] = &Document{ID: "d1", Questions: history}
	svc := newTestService(store, nil)

	err := svc.AppendQuestions(context.Background(), "d1", []string{"fresh1", "fresh2"})
	require.NoError(t, err)

	got := store.docs["d1"].Questions
	require.Len(t, got, maxQuestionHistory)
	assert.Equal(t, "fresh2", got[len(got)-1])
	assert.Equal(t, "q2", got[0]) // oldest entries dropped
}

func TestAppendQuestionsNoopOnEmpty(t *testing.T) {
	svc := newTestService(newMemStore(), nil)

	// No store lookup happens for an empty batch, so a missing id is fine.
	assert.NoError(t, svc.AppendQuestions(context.Background(), "ghost", nil))
}

func TestSnapshotMapsNotFound(t *testing.T) {
	svc := newTestService(newMemStore(), nil)

	_, err := svc.Snapshot(context.Background(), "ghost")
	assert.ErrorIs(t, err, quiz.ErrDocumentNotFound)
}

func TestSnapshotExposesTopicsAndHistory(t *testing.T) {
	store := newMemStore()
	store.docs["d1"] = &Document{
		ID:          "d1",
		Content:     "text",
		TopicScores: quiz.ScoreList{{"Geo": 2}, {"Math": 3}},
		Questions:   []string{"old q"},
	}
	svc := newTestService(store, nil)

	snap, err := svc.Snapshot(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, "text", snap.Content)
	assert.Equal(t, []string{"Geo", "Math"}, snap.Topics)
	assert.Equal(t, []string{"old q"}, snap.History)
}
