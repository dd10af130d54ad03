package lexer

import (
	"fmt"
	"strings"
	"testing"
)

// BenchmarkLexer1000LOC benchmarks lexing 1000 lines of code.
func BenchmarkLexer1000LOC(b *testing.B) {
	source := generateMoonSource(1000)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		l := New(source)
		_, _ = l.Tokenize()
	}
}

// BenchmarkLexer10000LOC benchmarks lexing 10000 lines of code.
func BenchmarkLexer10000LOC(b *testing.B) {
	source := generateMoonSource(10000)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		l := New(source)
		_, _ = l.Tokenize()
	}
}

// BenchmarkKeywordLookup benchmarks keyword lookup performance.
func BenchmarkKeywordLookup(b *testing.B) {
	keywords := []string{
		"if", "elif", "else", "while", "for", "func", "function",
		"class", "extends", "try", "catch", "switch",
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for _, kw := range keywords {
			_, _ = lookupKeyword(kw)
		}
	}
}

// BenchmarkIdentifiers benchmarks identifier scanning.
func BenchmarkIdentifiers(b *testing.B) {
	identifiers := []string{
		"username", "email", "created_at", "user_id", "post_title",
		"author_name", "category_slug", "published_at", "updated_at",
	}

	source := strings.Join(identifiers, " ")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		l := New(source)
		_, _ = l.Tokenize()
	}
}

// BenchmarkNumbers benchmarks number scanning.
func BenchmarkNumbers(b *testing.B) {
	numbers := []string{
		"42", "3.14", "1000000", "2.5e10", "0",
		"1000.50", "1.5e-3", "999999", "0.001", "0xFF",
	}

	source := strings.Join(numbers, " ")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		l := New(source)
		_, _ = l.Tokenize()
	}
}

// BenchmarkStrings benchmarks string scanning.
func BenchmarkStrings(b *testing.B) {
	literals := []string{
		`"hello"`, `"world"`, `"escape\nsequences"`,
		`"unicode 世界"`, `"path\\to\\file"`,
	}

	source := strings.Join(literals, " ")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		l := New(source)
		_, _ = l.Tokenize()
	}
}

// BenchmarkComplexFunction benchmarks a realistic function definition.
func BenchmarkComplexFunction(b *testing.B) {
	source := `
class Post extends Model
  func init(self, title, content, author)
    self.title = title
    self.content = content
    self.author = author
    self.published = false
  end

  func publish(self)
    try
      self.published = true
      self.published_at = now()
    catch err
      throw "failed to publish: " + err
    end
  end

  func summary(self, max_length)
    if self.content.length() <= max_length
      return self.content
    else
      return self.content.slice(0, max_length) + "..."
    end
  end
end

export func create_post(title, content, author)
  post = new Post(title, content, author)
  return post
end
`

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		l := New(source)
		_, _ = l.Tokenize()
	}
}

// BenchmarkUnicodeSupport benchmarks Unicode handling.
func BenchmarkUnicodeSupport(b *testing.B) {
	source := `
用户 = "alice"
名前 = "太郎"
メール = "test@example.com"
الاسم = "fatima"
имя = "ivan"
`

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		l := New(source)
		_, _ = l.Tokenize()
	}
}

// BenchmarkFailFast benchmarks the lexer's behavior when it hits an
// invalid character and stops immediately rather than recovering.
func BenchmarkFailFast(b *testing.B) {
	source := `
username = "alice"
invalid ` + "`" + ` character
email = "alice@example.com"
`

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		l := New(source)
		_, _ = l.Tokenize()
	}
}

// Helper functions

// generateMoonSource generates a realistic MoonLang source file with
// approximately the given number of lines.
func generateMoonSource(lines int) string {
	var builder strings.Builder

	functionTemplate := `
func process_%d(items)
  total = 0
  for item in items
    if item > 0
      total += item
    elif item < 0
      total -= item
    end
  end
  return total
end
`

	// Each function template is approximately 10 lines.
	functionsNeeded := (lines + 9) / 10

	for i := 0; i < functionsNeeded; i++ {
		builder.WriteString(fmt.Sprintf(functionTemplate, i))
	}

	return builder.String()
}

// BenchmarkMemoryAllocation specifically tests memory allocation patterns.
func BenchmarkMemoryAllocation(b *testing.B) {
	source := generateMoonSource(1000)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		l := New(source)
		tokens, _ := l.Tokenize()

		_ = len(tokens)
	}
}

// BenchmarkTokenCreation benchmarks just token creation.
func BenchmarkTokenCreation(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		tokens := make([]Token, 0, 1000)
		for j := 0; j < 1000; j++ {
			tokens = append(tokens, Token{
				Type:   TOKEN_IDENTIFIER,
				Lexeme: "identifier",
				Line:   1,
				Column: 1,
			})
		}
		_ = tokens
	}
}

// BenchmarkRuneConversion benchmarks string to rune conversion.
func BenchmarkRuneConversion(b *testing.B) {
	source := generateMoonSource(1000)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = []rune(source)
	}
}
