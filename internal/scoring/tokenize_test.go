package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_StopWordsRemoved(t *testing.T) {
	tokens := Tokenize("the quick fox and the lazy dog")

	assert.NotContains(t, tokens, "the")
	assert.NotContains(t, tokens, "and")
	assert.Contains(t, tokens, "quick")
	assert.Contains(t, tokens, "fox")
	assert.Contains(t, tokens, "lazy")
	assert.Contains(t, tokens, "dog")
}

func TestTokenize_PreservesSpecialTokens(t *testing.T) {
	tokens := Tokenize("Experience with C++, C# and .NET plus node.js")

	assert.Contains(t, tokens, "c++")
	assert.Contains(t, tokens, "c#")
	assert.Contains(t, tokens, ".net")
	assert.Contains(t, tokens, "node.js")
}

func TestTokenize_StripsTrailingPeriod(t *testing.T) {
	tokens := Tokenize("We use Python. Also Django.")

	assert.Contains(t, tokens, "python")
	assert.Contains(t, tokens, "django")
	assert.NotContains(t, tokens, "python.")
	assert.NotContains(t, tokens, "django.")
}

func TestTokenize_DropsShortAndNumericTokens(t *testing.T) {
	tokens := Tokenize("5 years x 2024 Go")

	assert.NotContains(t, tokens, "5")
	assert.NotContains(t, tokens, "x")
	assert.NotContains(t, tokens, "2024")
	assert.Contains(t, tokens, "go")
}

func TestTokenize_Lowercases(t *testing.T) {
	tokens := Tokenize("PYTHON Django PostgreSQL")

	assert.Equal(t, []string{"python", "django", "postgresql"}, tokens)
}

func TestTokenize_EmptyInput(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   \n\t  "))
}

func TestTokenize_Deterministic(t *testing.T) {
	input := "Senior Backend Engineer with Go, Kubernetes and PostgreSQL experience."
	first := Tokenize(input)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Tokenize(input))
	}
}

func TestTokenize_PreservesOriginalOrder(t *testing.T) {
	tokens := Tokenize("kubernetes before docker after terraform")

	assert.Equal(t, []string{"kubernetes", "docker", "terraform"}, tokens)
}
