package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptionStripsScripts(t *testing.T) {
	in := `<p>Cosy <strong>lakeside</strong> lodge</p><script>alert(1)</script>`
	out := Description(in)
	assert.Contains(t, out, "<strong>lakeside</strong>")
	assert.NotContains(t, out, "script")
}

func TestDescriptionStripsEventHandlers(t *testing.T) {
	out := Description(`<p onclick="steal()">hello</p>`)
	assert.Equal(t, "<p>hello</p>", out)
}

func TestDescriptionKeepsSafeLinks(t *testing.T) {
	out := Description(`<a href="https://example.com">site</a><a href="javascript:x()">bad</a>`)
	assert.Contains(t, out, `href="https://example.com"`)
	assert.Contains(t, out, `rel="nofollow"`)
	assert.NotContains(t, out, "javascript:")
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "Pine Lodge", Plain("<b>Pine</b> Lodge"))
}
