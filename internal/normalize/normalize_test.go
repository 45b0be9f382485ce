package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrict(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercases", "Acme Widgets", "acme widgets"},
		{"punctuation to space", "Acme, Widgets (UK)!", "acme widgets uk"},
		{"ampersand expands", "Marks & Spencer", "marks and spencer"},
		{"squeezes whitespace", "  Acme \t Widgets  ", "acme widgets"},
		{"keeps digits", "Studio 54 Ltd", "studio 54 ltd"},
		{"diacritics kept as letters", "Café Rouge", "café rouge"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Strict(tt.in))
		})
	}
}

func TestLoose(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"strips ltd", "Acme Widgets Ltd", "acme widgets"},
		{"strips stacked suffixes", "Acme Holdings Co Ltd", "acme holdings"},
		{"suffix only", "Limited", ""},
		{"keeps interior suffix token", "Company of Artisans", "company of artisans"},
		{"strips gmbh", "Wurst GmbH", "wurst"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Loose(tt.in))
		})
	}
}

func TestIdempotent(t *testing.T) {
	inputs := []string{"", "Acme Ltd", "Marks & Spencer PLC", "  weird   spacing  ", "café-rouge (uk) llp"}
	for _, in := range inputs {
		assert.Equal(t, Strict(in), Strict(Strict(in)), "strict not idempotent for %q", in)
		assert.Equal(t, Loose(in), Loose(Loose(in)), "loose not idempotent for %q", in)
	}
}

func TestTokens(t *testing.T) {
	assert.Empty(t, Tokens(""))
	assert.Equal(t, []string{"acme", "widgets"}, Tokens("acme widgets"))
}
