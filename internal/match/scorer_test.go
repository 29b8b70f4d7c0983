package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tradewise-kr/buyerscout/internal/model"
)

var scorerNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func cosmeticsQuery() model.MatchQuery {
	return model.MatchQuery{
		Industry:  "화장품/뷰티",
		HSCode:    "3304",
		Countries: []string{"United States"},
	}
}

func acmeRecord() model.BuyerRecord {
	return model.BuyerRecord{
		CompanyName: "Acme Corp",
		Country:     "United States",
		ProductText: "cosmetics packaging",
		HSCode:      "330499",
		Email:       "buyer@acme.com",
		Source:      "kotra",
	}
}

func TestScoreFullMatchClampsToMax(t *testing.T) {
	// +30 product keyword, +45 HS substring, +20 country, +20 email = 115.
	score := NewScorerAt(scorerNow).Score(acmeRecord(), cosmeticsQuery())
	assert.Equal(t, MaxScore, score)
}

func TestScoreClampsToMin(t *testing.T) {
	rec := model.BuyerRecord{CompanyName: "Plain Co", Country: "Nowhere"}
	query := model.MatchQuery{
		Countries:    []string{"United States"},
		RequireEmail: true,
	}

	// -15 country miss - 999 missing email = -1014, clamped to the floor.
	score := NewScorerAt(scorerNow).Score(rec, query)
	assert.Equal(t, MinScore, score)
}

func TestScoreCountryMiss(t *testing.T) {
	rec := acmeRecord()
	rec.Country = "Germany"

	// 30 + 45 - 15 + 20 = 80.
	score := NewScorerAt(scorerNow).Score(rec, cosmeticsQuery())
	assert.Equal(t, 80, score)
}

func TestScoreRequireEmailPenalty(t *testing.T) {
	rec := acmeRecord()
	rec.Email = ""
	query := cosmeticsQuery()
	query.RequireEmail = true

	// 30 + 45 + 20 - 999 = -904: far below any threshold but not clamped.
	score := NewScorerAt(scorerNow).Score(rec, query)
	assert.Equal(t, -904, score)
	assert.Less(t, score, Threshold(query))
}

func TestScoreAdditiveTerms(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.BuyerRecord, *model.MatchQuery)
		want   int
	}{
		{
			name:   "baseline company-only record",
			mutate: func(rec *model.BuyerRecord, q *model.MatchQuery) {},
			// -15 country miss only.
			want: -15,
		},
		{
			name: "company name keyword",
			mutate: func(rec *model.BuyerRecord, q *model.MatchQuery) {
				rec.CompanyName = "Global Beauty Trading"
			},
			want: -5,
		},
		{
			name: "hs code with internal spaces still matches",
			mutate: func(rec *model.BuyerRecord, q *model.MatchQuery) {
				rec.HSCode = "33 04 99"
				q.HSCode = "3304"
			},
			want: 30,
		},
		{
			name: "contact phone website bonuses",
			mutate: func(rec *model.BuyerRecord, q *model.MatchQuery) {
				rec.ContactPerson = "Kim"
				rec.Phone = "+1-555-0100"
				rec.Website = "acme.com"
			},
			want: 5,
		},
		{
			name: "no countries in query is neutral",
			mutate: func(rec *model.BuyerRecord, q *model.MatchQuery) {
				q.Countries = nil
			},
			want: 0,
		},
		{
			name: "country matching is case-insensitive substring",
			mutate: func(rec *model.BuyerRecord, q *model.MatchQuery) {
				rec.Country = "UNITED STATES OF AMERICA"
			},
			want: 20,
		},
		{
			name: "source weight added",
			mutate: func(rec *model.BuyerRecord, q *model.MatchQuery) {
				rec.Source = "buykorea"
				q.SourceWeights = map[string]int{"buykorea": 6}
			},
			want: -9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := model.BuyerRecord{CompanyName: "Plain Co", Country: "Nowhere"}
			query := model.MatchQuery{
				Industry:  "화장품/뷰티",
				Countries: []string{"United States"},
			}
			tt.mutate(&rec, &query)

			score := NewScorerAt(scorerNow).Score(rec, query)
			assert.Equal(t, tt.want, score)
		})
	}
}

func TestScoreRecencyBonus(t *testing.T) {
	tests := []struct {
		name    string
		daysAgo int
		want    int
	}{
		{"within 90 days", 30, 10},
		{"exactly 90 days", 90, 10},
		{"within a year", 200, 5},
		{"older than a year", 400, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date := scorerNow.AddDate(0, 0, -tt.daysAgo)
			rec := model.BuyerRecord{CompanyName: "Plain Co", Date: &date}

			score := NewScorerAt(scorerNow).Score(rec, model.MatchQuery{})
			assert.Equal(t, tt.want, score)
		})
	}
}

// Adding an industry keyword to the product text of an otherwise identical
// record raises the score by exactly 30.
func TestScoreProductKeywordDelta(t *testing.T) {
	scorer := NewScorerAt(scorerNow)
	query := model.MatchQuery{Industry: "전자제품", Countries: []string{"Japan"}}

	rec := model.BuyerRecord{CompanyName: "Plain Co", Country: "Japan", ProductText: "misc goods"}
	base := scorer.Score(rec, query)

	rec.ProductText = "misc goods and semiconductor wafers"
	assert.Equal(t, base+30, scorer.Score(rec, query))
}

func TestScoreIsDeterministic(t *testing.T) {
	scorer := NewScorerAt(scorerNow)
	rec := acmeRecord()
	query := cosmeticsQuery()

	first := scorer.Score(rec, query)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, scorer.Score(rec, query))
	}
}

func TestScoreUnknownIndustryNoKeywordBonus(t *testing.T) {
	rec := acmeRecord()
	query := cosmeticsQuery()
	query.Industry = "존재하지 않는 산업"

	// 45 HS + 20 country + 20 email, no keyword terms.
	score := NewScorerAt(scorerNow).Score(rec, query)
	assert.Equal(t, 85, score)
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, ThresholdWithHS, Threshold(model.MatchQuery{HSCode: "3304"}))
	assert.Equal(t, ThresholdDefault, Threshold(model.MatchQuery{}))
	assert.Equal(t, ThresholdDefault, Threshold(model.MatchQuery{HSCode: "   "}))
}

func TestIsKnownIndustry(t *testing.T) {
	for _, label := range Industries() {
		assert.True(t, IsKnownIndustry(label), label)
	}
	assert.False(t, IsKnownIndustry("농산물"))
}
