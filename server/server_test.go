package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gotest.tools/assert"
)

type playground struct {
	t      *testing.T
	engine *gin.Engine
}

func newPlayground(t *testing.T, config Config) *playground {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	makeServer(config).RegistryRouting(engine)
	return &playground{t: t, engine: engine}
}

func (p *playground) do(method, path, body string) (int, map[string]any) {
	p.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	p.engine.ServeHTTP(w, req)

	var res map[string]any
	assert.NilError(p.t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	return w.Code, res
}

func (p *playground) create() string {
	p.t.Helper()
	code, res := p.do(http.MethodPost, "/api/list", "")
	assert.Equal(p.t, code, http.StatusOK)
	return res["data"].(string)
}

func (p *playground) pushBack(id string, v int) int {
	p.t.Helper()
	code, _ := p.do(http.MethodPost, "/api/list/back?id="+id, fmt.Sprintf(`{"value": %d}`, v))
	return code
}

func TestServer_Scenario(t *testing.T) {
	p := newPlayground(t, Config{ScriptTimeout: time.Second})
	id := p.create()
	for i := 0; i < 10; i++ {
		assert.Equal(t, p.pushBack(id, 12+i), http.StatusOK)
	}

	_, res := p.do(http.MethodGet, "/api/list/len?id="+id, "")
	assert.Equal(t, res["data"], float64(10))
	_, res = p.do(http.MethodGet, "/api/list/at?id="+id+"&index=0", "")
	assert.Equal(t, res["data"], "12")
	_, res = p.do(http.MethodGet, "/api/list/at?id="+id+"&index=9", "")
	assert.Equal(t, res["data"], "21")

	code, res := p.do(http.MethodGet, "/api/list/find?id="+id+"&value=15", "")
	assert.Equal(t, code, http.StatusOK)
	assert.Equal(t, res["data"], float64(3))

	code, res = p.do(http.MethodDelete, "/api/list/value?id="+id+"&value=15.0", "")
	assert.Equal(t, code, http.StatusOK)
	assert.Equal(t, res["removed"], true)
	assert.Equal(t, res["data"], float64(9))

	code, _ = p.do(http.MethodGet, "/api/list/find?id="+id+"&value=15", "")
	assert.Equal(t, code, http.StatusNotFound)

	code, res = p.do(http.MethodDelete, "/api/list/index?id="+id+"&index=0", "")
	assert.Equal(t, code, http.StatusOK)
	assert.Equal(t, res["data"], float64(8))
	_, res = p.do(http.MethodGet, "/api/list/at?id="+id+"&index=0", "")
	assert.Equal(t, res["data"], "13")

	code, res = p.do(http.MethodPost, "/api/list/insert?id="+id+"&index=100", `{"value": 99}`)
	assert.Equal(t, code, http.StatusOK)
	assert.Equal(t, res["inserted"], false)
	assert.Equal(t, res["data"], float64(8))

	code, res = p.do(http.MethodPost, "/api/list/insert?id="+id+"&index=0", `{"value": "0.5"}`)
	assert.Equal(t, code, http.StatusOK)
	assert.Equal(t, res["inserted"], true)

	_, res = p.do(http.MethodGet, "/api/list?id="+id, "")
	assert.DeepEqual(t, res["data"], []any{"0.5", "13", "14", "16", "17", "18", "19", "20", "21"})
}

func TestServer_Errors(t *testing.T) {
	p := newPlayground(t, Config{MaxNodes: 2})
	id := p.create()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown list", http.MethodGet, "/api/list/len?id=nope", "", http.StatusNotFound},
		{"missing id", http.MethodGet, "/api/list/len", "", http.StatusBadRequest},
		{"get from empty list", http.MethodGet, "/api/list/at?id=" + id + "&index=0", "", http.StatusBadRequest},
		{"negative index", http.MethodDelete, "/api/list/index?id=" + id + "&index=-1", "", http.StatusBadRequest},
		{"bad index", http.MethodGet, "/api/list/at?id=" + id + "&index=x", "", http.StatusBadRequest},
		{"bad value", http.MethodGet, "/api/list/find?id=" + id + "&value=abc", "", http.StatusBadRequest},
		{"missing value", http.MethodPost, "/api/list/back?id=" + id, `{}`, http.StatusBadRequest},
		{"find in empty list", http.MethodGet, "/api/list/find?id=" + id + "&value=1", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, res := p.do(tt.method, tt.path, tt.body)
			assert.Equal(t, code, tt.want)
			assert.Assert(t, res["error"] != nil)
		})
	}

	t.Run("node budget", func(t *testing.T) {
		assert.Equal(t, p.pushBack(id, 1), http.StatusOK)
		assert.Equal(t, p.pushBack(id, 2), http.StatusOK)
		assert.Equal(t, p.pushBack(id, 3), http.StatusInsufficientStorage)
		_, res := p.do(http.MethodGet, "/api/list/len?id="+id, "")
		assert.Equal(t, res["data"], float64(2))
		code, _ := p.do(http.MethodGet, "/api/list/at?id="+id+"&index=5", "")
		assert.Equal(t, code, http.StatusNotFound)
	})
}

func TestServer_Lifecycle(t *testing.T) {
	p := newPlayground(t, Config{})
	a := p.create()
	b := p.create()

	_, res := p.do(http.MethodGet, "/api/lists", "")
	assert.Equal(t, len(res["data"].([]any)), 2)

	assert.Equal(t, p.pushBack(a, 7), http.StatusOK)
	code, res := p.do(http.MethodPost, "/api/list/front?id="+a, `{"value": 6}`)
	assert.Equal(t, code, http.StatusOK)
	assert.Equal(t, res["data"], float64(2))

	_, res = p.do(http.MethodGet, "/api/list/stats?id="+a, "")
	stats := res["data"].(map[string]any)
	assert.Equal(t, stats["id"], a)
	assert.Equal(t, stats["length"], float64(2))
	assert.Equal(t, stats["head"], "6")
	assert.Equal(t, stats["tail"], "7")

	code, _ = p.do(http.MethodPost, "/api/list/clear?id="+a, "")
	assert.Equal(t, code, http.StatusOK)
	code, _ = p.do(http.MethodPost, "/api/list/clear?id="+a, "")
	assert.Equal(t, code, http.StatusOK)
	_, res = p.do(http.MethodGet, "/api/list/stats?id="+a, "")
	stats = res["data"].(map[string]any)
	assert.Equal(t, stats["length"], float64(0))
	_, hasHead := stats["head"]
	assert.Assert(t, !hasHead)

	code, _ = p.do(http.MethodDelete, "/api/list?id="+b, "")
	assert.Equal(t, code, http.StatusOK)
	code, _ = p.do(http.MethodDelete, "/api/list?id="+b, "")
	assert.Equal(t, code, http.StatusNotFound)
	_, res = p.do(http.MethodGet, "/api/lists", "")
	assert.DeepEqual(t, res["data"], []any{a})
}

func TestServer_Script(t *testing.T) {
	p := newPlayground(t, Config{ScriptTimeout: time.Second})

	body, _ := json.Marshal(map[string]string{
		"script": "var l = require('list').create(); l.pushBack(1); l.pushFront(0); console.log(l.toString())",
	})
	code, res := p.do(http.MethodPost, "/api/script", string(body))
	assert.Equal(t, code, http.StatusOK)
	assert.Equal(t, res["data"], "[0 1]\n")

	code, res = p.do(http.MethodPost, "/api/script", `{"script": "throw new Error('nope')"}`)
	assert.Equal(t, code, http.StatusBadRequest)
	assert.Assert(t, strings.Contains(res["error"].(string), "nope"))

	code, _ = p.do(http.MethodPost, "/api/script", `{}`)
	assert.Equal(t, code, http.StatusBadRequest)
}

func TestServer_ScriptTimeout(t *testing.T) {
	p := newPlayground(t, Config{ScriptTimeout: 50 * time.Millisecond})
	code, res := p.do(http.MethodPost, "/api/script", `{"script": "console.log('spinning'); for (;;) {}"}`)
	assert.Equal(t, code, http.StatusRequestTimeout)
	_, hasOutput := res["output"]
	assert.Assert(t, !hasOutput, "timed out reply must not read the script output")
}

func TestServer_Debug(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	makeServer(Config{ScriptTimeout: time.Second}).RegistryRouting(engine)
	ts := httptest.NewServer(engine)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/debug"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NilError(t, err)
	defer ws.Close()

	script := `
		var l = require('list').create()
		l.pushBack(12)
		l.pushBack(13)
		console.log('len', l.length())
		console.log('first', l.getAt(0))
	`
	assert.NilError(t, ws.WriteMessage(websocket.TextMessage, []byte(script)))

	var lines []string
	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			assert.Assert(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)
			break
		}
		lines = append(lines, string(msg))
	}
	assert.DeepEqual(t, lines, []string{"len 2\n", "first 12\n"})
}
