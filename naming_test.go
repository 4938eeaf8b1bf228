package simplex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameConverters(t *testing.T) {
	tests := []struct {
		name string
		conv NameConverter
		in   string
		want string
	}{
		{"identity", Identity{}, "email_address", "email_address"},

		{"snake to camel", SnakeToCamel{}, "email_address", "emailAddress"},
		{"snake to camel three words", SnakeToCamel{}, "is_enabled_now", "isEnabledNow"},
		{"snake to camel single word", SnakeToCamel{}, "username", "username"},
		{"snake to camel leading underscore", SnakeToCamel{}, "_private", "private"},
		{"snake to camel empty", SnakeToCamel{}, "", ""},

		{"snake to pascal", SnakeToPascal{}, "email_address", "EmailAddress"},
		{"snake to pascal single word", SnakeToPascal{}, "city", "City"},

		{"camel to snake", CamelToSnake{}, "emailAddress", "email_address"},
		{"camel to snake pascal", CamelToSnake{}, "EmailAddress", "email_address"},
		{"camel to snake trailing acronym", CamelToSnake{}, "orderID", "order_id"},
		{"camel to snake leading acronym", CamelToSnake{}, "XMLParser", "xml_parser"},
		{"camel to snake inner acronym", CamelToSnake{}, "newHTTPServer", "new_http_server"},
		{"camel to snake already snake", CamelToSnake{}, "already_snake", "already_snake"},
		{"camel to snake single word", CamelToSnake{}, "username", "username"},
		{"camel to snake empty", CamelToSnake{}, "", ""},

		{"func", NameConverterFunc(strings.ToUpper), "city", "CITY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.conv.Convert(tt.in))
		})
	}
}

func TestNameConverters_RoundTrip(t *testing.T) {
	for _, name := range []string{"username", "email_address", "is_enabled"} {
		assert.Equal(t, name, CamelToSnake{}.Convert(SnakeToCamel{}.Convert(name)), name)
	}
}
