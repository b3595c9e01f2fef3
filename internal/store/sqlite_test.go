package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeo-snapshot/aeo-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func pos(v int) *int { return &v }

func sampleAnalysis(brand string, score int) *model.Analysis {
	return &model.Analysis{
		Brand:     model.Brand{Name: brand, Sector: "banca"},
		Questions: []string{"¿Cuál es el mejor banco?"},
		QuestionResults: []model.MultiProviderQuestionResult{
			{
				ID:       "q1",
				Question: "¿Cuál es el mejor banco?",
				Results: []model.ProviderResult{
					{Provider: model.ProviderOpenAI, Question: "¿Cuál es el mejor banco?", Mentioned: true, Position: pos(1), Sentiment: model.SentimentPositive, Response: "..."},
					{Provider: model.ProviderClaude, Question: "¿Cuál es el mejor banco?", Mentioned: false, Sentiment: model.SentimentNeutral, Response: "..."},
				},
			},
		},
		VisibilityScore: score,
	}
}

func TestSQLite_SaveAndGetAnalysis(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	a := sampleAnalysis("Banco Cordillera", 50)
	require.NoError(t, st.SaveAnalysis(ctx, a))
	assert.NotEmpty(t, a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	got, err := st.GetAnalysis(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "Banco Cordillera", got.Brand.Name)
	assert.Equal(t, 50, got.VisibilityScore)
	require.Len(t, got.QuestionResults, 1)
	require.Len(t, got.QuestionResults[0].Results, 2)
	require.NotNil(t, got.QuestionResults[0].Results[0].Position)
	assert.Equal(t, 1, *got.QuestionResults[0].Results[0].Position)
}

func TestSQLite_GetAnalysis_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	got, err := st.GetAnalysis(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_ListAnalyses_NewestFirst(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	old := sampleAnalysis("Banco Cordillera", 25)
	old.CreatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, st.SaveAnalysis(ctx, old))

	recent := sampleAnalysis("Banco Cordillera", 75)
	require.NoError(t, st.SaveAnalysis(ctx, recent))

	got, err := st.ListAnalyses(ctx, AnalysisFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, recent.ID, got[0].ID)
	assert.Equal(t, old.ID, got[1].ID)
}

func TestSQLite_ListAnalyses_BrandFilter(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveAnalysis(ctx, sampleAnalysis("Banco Cordillera", 50)))
	require.NoError(t, st.SaveAnalysis(ctx, sampleAnalysis("Banco Andino", 30)))

	got, err := st.ListAnalyses(ctx, AnalysisFilter{Brand: "Banco Andino"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Banco Andino", got[0].Brand.Name)
}

func TestSQLite_ListAnalyses_Limit(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		a := sampleAnalysis("Banco Cordillera", i*10)
		a.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Minute)
		require.NoError(t, st.SaveAnalysis(ctx, a))
	}

	got, err := st.ListAnalyses(ctx, AnalysisFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
