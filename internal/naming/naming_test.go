package naming

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPascalCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello_world", "HelloWorld"},
		{"hello-world", "HelloWorld"},
		{"hello world", "HelloWorld"},
		{"helloWorld", "HelloWorld"},
		{"api_key", "APIKey"},
		{"user_id", "UserID"},
		{"get__users__id_", "GetUsersID"},
		{"Petstore API", "PetstoreAPI"},
		{"", ""},
		{"a", "A"},
		{"ABC", "Abc"},
		{"petId", "PetID"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, PascalCase(tt.input))
		})
	}
}

func TestCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello_world", "helloWorld"},
		{"HelloWorld", "helloWorld"},
		{"listUsers", "listUsers"},
		{"get__users__id_", "getUsersID"},
		{"post__v2_translate_text", "postV2TranslateText"},
		{"", ""},
		{"UserId", "userID"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, CamelCase(tt.input))
		})
	}
}

func TestSlugCases(t *testing.T) {
	tests := []struct {
		input     string
		snake     string
		kebab     string
		screaming string
		phpClass  string
	}{
		{"Petstore API", "petstore_api", "petstore-api", "PETSTORE_API", "Petstore_API"},
		{"DeepL Translator", "deep_l_translator", "deep-l-translator", "DEEP_L_TRANSLATOR", "Deep_L_Translator"},
		{"Post & Page Translation", "post_page_translation", "post-page-translation", "POST_PAGE_TRANSLATION", "Post_Page_Translation"},
		{"image.io v2", "image_io_v2", "image-io-v2", "IMAGE_IO_V2", "Image_Io_V2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.snake, SnakeCase(tt.input))
			require.Equal(t, tt.kebab, KebabCase(tt.input))
			require.Equal(t, tt.screaming, ScreamingSnakeCase(tt.input))
			require.Equal(t, tt.phpClass, PHPClass(tt.input))
		})
	}
}

func TestEnvName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Lingo API", "LINGO_API"},
		{"1Password Connect", "API_1_PASSWORD_CONNECT"},
		{"2Checkout", "API_2_CHECKOUT"},
		{"Café Menü", "CAF_MEN"},
		{"Ünïcode", "NCODE"},
		{"日本語", "API"},
		{"", "API"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.want, EnvName(tt.input))
		})
	}
}

func TestHeaderLine(t *testing.T) {
	require.Equal(t, "Translate text.", HeaderLine("\n  Translate text.\nMore detail."))
	require.Equal(t, "Ends early", HeaderLine("Ends early*/"))
	require.Equal(t, "", HeaderLine(" \n\t"))
}

func TestTitleCase(t *testing.T) {
	require.Equal(t, "Translation Manager", TitleCase("translation-manager"))
	require.Equal(t, "API Settings", TitleCase("api_settings"))
}

func TestJSIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"listUsers", "listUsers"},
		{"delete", "delete_"},
		{"123abc", "op123abc"},
		{"", "op"},
		{"get__users__id_", "getUsersID"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, JSIdentifier(tt.input))
		})
	}
}

func TestPHPIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"listUsers", "list_users"},
		{"list", "list_"},
		{"2fa-verify", "op_2fa_verify"},
		{"get__users__id_", "get_users_id"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, PHPIdentifier(tt.input))
		})
	}
}

func TestStringLiterals(t *testing.T) {
	require.Equal(t, `"say \"hi\""`, JSString(`say "hi"`))
	require.Equal(t, `'it\'s C:\\tmp'`, PHPString(`it's C:\tmp`))
	require.Equal(t, "a &amp; &quot;b&quot; &lt;c&gt;", HTMLAttr(`a & "b" <c>`))
	require.Equal(t, "a\n    b", Indent(4, "a\nb"))
}

func TestDict(t *testing.T) {
	require.Equal(t, map[string]any{"a": 1, "b": "x"}, Dict("a", 1, "b", "x"))
	require.Nil(t, Dict("a"))
}

func TestToJSON(t *testing.T) {
	out, err := ToJSON(map[string]any{"b": 1, "a": []string{"x"}})
	require.NoError(t, err)
	require.Equal(t, "{\n  \"a\": [\n    \"x\"\n  ],\n  \"b\": 1\n}", out)
}
