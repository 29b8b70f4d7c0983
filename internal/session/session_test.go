package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradewise-kr/buyerscout/internal/model"
)

func TestSessionLifecycle(t *testing.T) {
	query := model.MatchQuery{Industry: "화장품/뷰티", Countries: []string{"Japan"}}
	buyers := []model.DisplayBuyer{
		{CompanyName: "Acme Corp"},
		{CompanyName: "Bolt GmbH"},
	}

	sess := New(query, buyers)

	assert.Equal(t, query, sess.Query())
	assert.Equal(t, 2, sess.Len())
	assert.Equal(t, buyers, sess.Buyers())
	assert.False(t, sess.CreatedAt().IsZero())
}

func TestSessionReset(t *testing.T) {
	sess := New(model.MatchQuery{}, []model.DisplayBuyer{{CompanyName: "Acme"}})

	sess.Reset()

	assert.Equal(t, 0, sess.Len())
	assert.Empty(t, sess.Buyers())
	// The query survives a reset; only the results are cleared.
	assert.Equal(t, model.MatchQuery{}, sess.Query())
}
