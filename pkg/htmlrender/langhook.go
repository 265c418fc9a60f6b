package htmlrender

import (
	"fmt"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// LanguageClassHook is a CodeHook that canonicalizes the info string to a
// known language name via enry's alias table before emitting the standard
// <pre><code class="language-..."> form, so "golang", "Go", and "go" all
// produce the same class. Unknown info strings fall back to the default
// rendering.
func LanguageClassHook(info, code string) (string, bool) {
	alias := info
	if sp := strings.IndexAny(alias, " \t"); sp >= 0 {
		alias = alias[:sp]
	}
	if alias == "" {
		return "", false
	}

	lang, ok := enry.GetLanguageByAlias(alias)
	if !ok {
		return "", false
	}
	class := strings.ToLower(strings.ReplaceAll(lang, " ", "-"))

	return fmt.Sprintf("<pre><code class=\"language-%s\">%s</code></pre>\n",
		escapeAttr(class), escapeHTML(code)), true
}
