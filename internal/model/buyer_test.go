package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateHashIsStable(t *testing.T) {
	rec := BuyerRecord{
		Source:      "kotra",
		CompanyName: "Acme Corp",
		Email:       "buyer@acme.com",
		Country:     "United States",
		HSCode:      "330499",
		ProductText: "cosmetics packaging",
	}

	first := rec.GenerateHash()
	assert.Equal(t, first, rec.GenerateHash())
	assert.Len(t, first, 64)
}

func TestGenerateHashIgnoresCase(t *testing.T) {
	a := BuyerRecord{Source: "kotra", CompanyName: "Acme Corp", Email: "Buyer@Acme.com", Country: "United States"}
	b := BuyerRecord{Source: "kotra", CompanyName: "ACME CORP", Email: "buyer@acme.com", Country: "united states"}

	assert.Equal(t, a.GenerateHash(), b.GenerateHash())
}

func TestGenerateHashDistinguishesSources(t *testing.T) {
	a := BuyerRecord{Source: "kotra", CompanyName: "Acme Corp"}
	b := BuyerRecord{Source: "buykorea", CompanyName: "Acme Corp"}

	assert.NotEqual(t, a.GenerateHash(), b.GenerateHash())
}

func TestHasContact(t *testing.T) {
	tests := []struct {
		name  string
		buyer DisplayBuyer
		want  bool
	}{
		{"real email", DisplayBuyer{Email: "kim@acme.com"}, true},
		{"synthesized placeholder without at sign", DisplayBuyer{Email: ""}, false},
		{"contact person", DisplayBuyer{ContactPerson: "Kim Minji"}, true},
		{"not extracted marker", DisplayBuyer{ContactPerson: NotExtracted}, false},
		{"nothing", DisplayBuyer{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.buyer.HasContact())
		})
	}
}
