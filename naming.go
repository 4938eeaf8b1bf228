package simplex

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NameConverter rewrites a field name. Implementations must be pure and
// total.
type NameConverter interface {
	Convert(name string) string
}

// NameConverterFunc adapts a function to a NameConverter.
type NameConverterFunc func(name string) string

func (f NameConverterFunc) Convert(name string) string { return f(name) }

// NameConverterPair holds one converter per direction of a structural
// contract. Either may be nil, meaning names are compared unchanged.
type NameConverterPair struct {
	SourceToTarget NameConverter
	TargetToSource NameConverter
}

// Identity leaves names unchanged.
type Identity struct{}

func (Identity) Convert(name string) string { return name }

// SnakeToCamel converts snake_case to camelCase: "email_address" becomes
// "emailAddress".
type SnakeToCamel struct{}

func (SnakeToCamel) Convert(name string) string {
	return lowerFirst(joinUpper(strings.Split(name, "_")))
}

// SnakeToPascal converts snake_case to PascalCase, the form of exported Go
// field names: "email_address" becomes "EmailAddress".
type SnakeToPascal struct{}

func (SnakeToPascal) Convert(name string) string {
	return joinUpper(strings.Split(name, "_"))
}

// CamelToSnake converts camelCase and PascalCase to snake_case. Acronyms stay
// together: "XMLParser" becomes "xml_parser" and "orderID" becomes "order_id".
type CamelToSnake struct{}

func (CamelToSnake) Convert(name string) string {
	tokens := tokenizeCamelCase(name)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}
	return strings.Join(tokens, "_")
}

func joinUpper(parts []string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(upperFirst(p))
	}
	return b.String()
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "customerName" -> ["customer", "Name"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "already_snake" -> ["already", "snake"]
func tokenizeCamelCase(s string) []string {
	var (
		tokens  []string
		current strings.Builder
	)

	runes := []rune(s)
	for i, r := range runes {
		if r == '_' {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			continue
		}

		if i > 0 && startsToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

func startsToken(runes []rune, i int) bool {
	if !unicode.IsUpper(runes[i]) {
		return false
	}
	if !unicode.IsUpper(runes[i-1]) {
		return true
	}
	// end of an acronym: "XMLParser" splits before 'P'
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
