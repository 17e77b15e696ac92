package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAsset(t *testing.T, name string) string {
	t.Helper()
	b, err := Assets.ReadFile("static/" + name)
	require.NoError(t, err)
	return string(b)
}

func TestStaticFSServesIndex(t *testing.T) {
	srv := httptest.NewServer(http.FileServer(StaticFS()))
	defer srv.Close()

	for _, name := range []string{"/", "/app.js", "/style.css"} {
		res, err := http.Get(srv.URL + name)
		require.NoError(t, err)
		body, err := io.ReadAll(res.Body)
		res.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode, name)
		assert.NotEmpty(t, body, name)
	}
}

func TestBoardCellsSurviveRender(t *testing.T) {
	js := readAsset(t, "app.js")

	render := js[strings.Index(js, "function render("):]
	render = render[:strings.Index(render, "\n}\n")]
	assert.NotContains(t, render, "replaceChildren", "render must not rebuild cells")
	assert.NotContains(t, render, "createElement", "render must not rebuild cells")
	assert.Contains(t, render, "build(next.width, next.height)")

	assert.Contains(t, js, "square.dataset.index")
	assert.Contains(t, js, `board.addEventListener("click"`)
	assert.Contains(t, js, `board.addEventListener("mousedown"`)
	assert.Contains(t, js, `board.addEventListener("mouseup"`)
	assert.NotContains(t, js, "square.onclick")
}

func TestSocketReconnects(t *testing.T) {
	js := readAsset(t, "app.js")

	onclose := js[strings.Index(js, "socket.onclose"):]
	onclose = onclose[:strings.Index(onclose, "};")]
	assert.Contains(t, onclose, "setTimeout(reconnect")
}
