package media

import (
	"strings"
	"testing"
)

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"My Trip #fun @friend.mp4", "My Trip"},
		{"#only @tags.mp4", DefaultTitle},
		{"plain.mov", "plain"},
		{"  spaced   out   name .mp4", "spaced out name"},
		{"a#b#c title.mp4", "a title"},
		{"before@someone#tag after.mp4", "before after"},
		{"中文 标题 #话题.mp4", "中文 标题"},
		{"archive.tar.gz", "archive.tar"},
		{"no_extension", "no_extension"},
		{".mp4", DefaultTitle},
		{"", DefaultTitle},
		{"旅行 #fun\u3000日落.mp4", "旅行 日落"},
		{"晚霞 @小明\u3000海边.mp4", "晚霞 海边"},
		{"Sunset\u00a0\u00a0Beach.mp4", "Sunset Beach"},
		{"\u3000标题\u3000.mp4", "标题"},
	}

	for _, test := range tests {
		result := CleanFileName(test.input)
		if result != test.expected {
			t.Errorf("CleanFileName(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestCleanFileNameStripsTokens(t *testing.T) {
	inputs := []string{
		"Summer #beach #sun @alice @bob vibes.mp4",
		"@lead Title #x\t#y  end.mkv",
		"#a@b#c d.mp4",
		"全角\u3000\u3000空格 #话题\u3000尾巴.mp4",
		"nbsp\u00a0\u00a0run @x\u00a0end.mp4",
	}

	for _, input := range inputs {
		result := CleanFileName(input)
		if strings.ContainsAny(result, "#@") {
			t.Errorf("CleanFileName(%q) = %q still contains a tag marker", input, result)
		}
		if strings.Contains(result, "  ") || strings.ContainsAny(result, "\u3000\u00a0") {
			t.Errorf("CleanFileName(%q) = %q contains doubled whitespace", input, result)
		}
		if result != strings.TrimSpace(result) {
			t.Errorf("CleanFileName(%q) = %q is not trimmed", input, result)
		}
	}
}
