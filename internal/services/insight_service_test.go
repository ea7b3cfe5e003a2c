package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderscleaning/quotes-api/config"
	"github.com/alexanderscleaning/quotes-api/internal/models"
	"github.com/alexanderscleaning/quotes-api/internal/scoring"
	"github.com/alexanderscleaning/quotes-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insightConfig() *config.Config {
	return &config.Config{
		Insight: config.InsightConfig{
			CacheTTL: time.Minute,
		},
	}
}

func testAssessment() models.Assessment {
	return models.Assessment{
		ZipCode:        "18503",
		HomeSize:       "medium",
		Stories:        "2",
		LastCleaned:    "over2yr",
		TrackCondition: "dirty",
	}
}

// A nil completion client exercises the fallback path directly.
func TestInsightService_FallbackWhenBackendUnconfigured(t *testing.T) {
	svc := services.NewInsightService(nil, insightConfig())

	insight := svc.GenerateInsights(context.Background(), testAssessment())

	require.NotNil(t, insight)
	assert.NotEmpty(t, insight.Observation)
	assert.NotEmpty(t, insight.RiskFactor)
	assert.NotEmpty(t, insight.FinancialImpact)
	assert.NotEmpty(t, insight.ProTip)

	expected := scoring.HealthScore("dirty", "over2yr", "medium", "2")
	assert.Equal(t, expected, insight.HealthScore)
}

func TestInsightService_FallbackMentionsAssessment(t *testing.T) {
	svc := services.NewInsightService(nil, insightConfig())

	insight := svc.GenerateInsights(context.Background(), testAssessment())

	assert.Contains(t, insight.Observation, "medium")
	assert.Contains(t, insight.Observation, "18503")
	assert.Contains(t, insight.Observation, "dirty")
}

func TestInsightService_FallbackNeverCleaned(t *testing.T) {
	svc := services.NewInsightService(nil, insightConfig())

	a := testAssessment()
	a.LastCleaned = "never"
	insight := svc.GenerateInsights(context.Background(), a)

	assert.Contains(t, insight.Observation, "never been professionally cleaned")
}

func TestInsightService_FallbackIsDeterministic(t *testing.T) {
	svc := services.NewInsightService(nil, insightConfig())

	first := svc.GenerateInsights(context.Background(), testAssessment())
	second := svc.GenerateInsights(context.Background(), testAssessment())

	assert.Equal(t, first, second)
}

func TestInsightService_ScoreStaysInRange(t *testing.T) {
	svc := services.NewInsightService(nil, insightConfig())

	worst := models.Assessment{
		ZipCode:        "18505",
		HomeSize:       "xl",
		Stories:        "3+",
		LastCleaned:    "never",
		TrackCondition: "neglected",
	}
	insight := svc.GenerateInsights(context.Background(), worst)

	assert.GreaterOrEqual(t, insight.HealthScore, 0)
	assert.LessOrEqual(t, insight.HealthScore, 100)
}

func TestInsightService_DistinctAssessmentsCachedSeparately(t *testing.T) {
	svc := services.NewInsightService(nil, insightConfig())

	clean := testAssessment()
	clean.TrackCondition = "clean"
	clean.LastCleaned = "recent"

	dirty := svc.GenerateInsights(context.Background(), testAssessment())
	pristine := svc.GenerateInsights(context.Background(), clean)

	assert.Greater(t, pristine.HealthScore, dirty.HealthScore)
}
