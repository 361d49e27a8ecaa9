package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_Shape(t *testing.T) {
	tests := []struct {
		text    string
		title   bool
		upper   bool
		likeNum bool
	}{
		{"Kubernetes", true, false, false},
		{"JavaScript", false, false, false},
		{"AWS", false, true, false},
		{"I", true, true, false},
		{"python", false, false, false},
		{"2020", false, false, true},
		{"40%", false, false, true},
		{"1,000", false, false, true},
		{"C++", true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			tok := Token{Text: tt.text}
			assert.Equal(t, tt.title, tok.IsTitle(), "IsTitle")
			assert.Equal(t, tt.upper, tok.IsUpper(), "IsUpper")
			assert.Equal(t, tt.likeNum, tok.LikeNum(), "LikeNum")
		})
	}
}

func TestToken_IsNoun(t *testing.T) {
	assert.True(t, Token{Tag: "NN"}.IsNoun())
	assert.True(t, Token{Tag: "NNPS"}.IsNoun())
	assert.False(t, Token{Tag: "VBD"}.IsNoun())
	assert.False(t, Token{}.IsNoun())
}

func TestRuleProvider_Tokens(t *testing.T) {
	tokens, err := RuleProvider{}.Tokens("Built APIs with Node.js, C++ and C#. Used scikit-learn.")
	require.NoError(t, err)

	var texts []string
	for _, tok := range tokens {
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []string{"Built", "APIs", "with", "Node.js", "C++", "and", "C#", "Used", "scikit-learn"}, texts)
	assert.Equal(t, "NNP", tokens[0].Tag)
	assert.Equal(t, "", tokens[2].Tag)
}

func TestProseProvider_Tokens(t *testing.T) {
	provider, err := NewProseProvider()
	require.NoError(t, err)
	assert.Equal(t, "prose", provider.Name())

	tokens, err := provider.Tokens("Deployed Kubernetes clusters on AWS")
	require.NoError(t, err)
	require.NotEmpty(t, tokens)

	var texts []string
	for _, tok := range tokens {
		texts = append(texts, tok.Text)
		assert.NotEmpty(t, tok.Tag)
	}
	assert.Contains(t, texts, "Kubernetes")
	assert.Contains(t, texts, "AWS")
}

func TestProseProvider_ReusesModel(t *testing.T) {
	provider, err := NewProseProvider()
	require.NoError(t, err)
	require.NotNil(t, provider.model)
	loaded := provider.model

	for _, text := range []string{"Led a team of engineers", "Built Go services", "Shipped on AWS"} {
		_, err := provider.Tokens(text)
		require.NoError(t, err)
		assert.Same(t, loaded, provider.model)
	}
}

func TestProseProvider_RequiresModel(t *testing.T) {
	tokens, err := (&ProseProvider{}).Tokens("Go engineer")
	assert.Nil(t, tokens)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use NewProseProvider")
}

func TestPhraseMatcher(t *testing.T) {
	m := NewPhraseMatcher()
	m.Add("PROGRAMMING", "Python", "C++", "Go")
	m.Add("TOOL", "GitHub Actions", "Git")

	matches := m.MatchText("Wrote python and c++ services, shipped via GitHub actions and git.")

	var got []string
	for _, match := range matches {
		got = append(got, match.Label+": "+match.Text)
	}
	assert.Equal(t, []string{
		"PROGRAMMING: python",
		"PROGRAMMING: c++",
		"TOOL: GitHub actions",
		"TOOL: git",
	}, got)
}

func TestPhraseMatcher_NoMatches(t *testing.T) {
	m := NewPhraseMatcher()
	m.Add("PROGRAMMING", "Rust")

	assert.Empty(t, m.MatchText("Going places"))
	assert.Empty(t, m.Match(nil))
}
