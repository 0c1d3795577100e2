package server

import (
	"bytes"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/fatih/structs"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"linkedlist/js_exec"
	"linkedlist/logger"
	"linkedlist/struct/compare"
	"linkedlist/struct/list"
)

type Config struct {
	MaxNodes      int           // node budget of every list, 0 for none
	ScriptTimeout time.Duration // how long /api/script and /api/debug may run
}

type server struct {
	store   *store
	config  Config
	upgrade websocket.Upgrader
}

type valueBody struct {
	Value *decimal.Decimal `json:"value"`
}

type scriptBody struct {
	Script string `json:"script"`
}

type listStats struct {
	ID      string    `structs:"id"`
	Length  int       `structs:"length"`
	Head    string    `structs:"head,omitempty"`
	Tail    string    `structs:"tail,omitempty"`
	Created time.Time `structs:"created,omitnested"`
}

func makeServer(config Config) *server {
	return &server{
		store:  makeStore(config.MaxNodes),
		config: config,
		upgrade: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Start registers the playground routes on engine.
func Start(engine *gin.Engine, config Config) {
	s := makeServer(config)
	s.RegistryRouting(engine)
	logger.Info("list playground ready, node budget: ", config.MaxNodes)
}

func (s *server) RegistryRouting(engine *gin.Engine) {
	api := engine.Group("/api")
	{
		api.GET("/lists", s.Lists)
		api.POST("/list", s.Create)
		api.GET("/list", s.Get)
		api.DELETE("/list", s.Remove)
		api.POST("/list/front", s.PushFront)
		api.POST("/list/back", s.PushBack)
		api.POST("/list/insert", s.InsertAt)
		api.DELETE("/list/value", s.RemoveValue)
		api.DELETE("/list/index", s.RemoveAt)
		api.GET("/list/find", s.Find)
		api.GET("/list/at", s.GetAt)
		api.GET("/list/len", s.Len)
		api.POST("/list/clear", s.Clear)
		api.GET("/list/stats", s.Stats)
		api.POST("/script", s.Script)
		api.GET("/debug", s.Debug)
	}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, list.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, list.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, list.ErrAllocation):
		return http.StatusInsufficientStorage
	}
	return http.StatusInternalServerError
}

// lookup resolves the id query parameter and locks the list. The caller must
// unlock it.
func (s *server) lookup(c *gin.Context) (*entry, bool) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return nil, false
	}
	e, ok := s.store.get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
		return nil, false
	}
	e.mu.Lock()
	return e, true
}

func bindValue(c *gin.Context) (decimal.Decimal, error) {
	var body valueBody
	if err := c.ShouldBindJSON(&body); err != nil {
		return decimal.Decimal{}, errors.Wrap(err, "invalid body")
	}
	if body.Value == nil {
		return decimal.Decimal{}, errors.New("value is required")
	}
	return *body.Value, nil
}

func queryValue(c *gin.Context) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(c.Query("value"))
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(err, "invalid value %q", c.Query("value"))
	}
	return v, nil
}

func queryIndex(c *gin.Context) (int, error) {
	i, err := strconv.Atoi(c.Query("index"))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid index %q", c.Query("index"))
	}
	return i, nil
}

func (s *server) Lists(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.store.ids()})
}

func (s *server) Create(c *gin.Context) {
	id := s.store.create()
	logger.Debug("list created: ", id)
	c.JSON(http.StatusOK, gin.H{"data": id})
}

func (s *server) Get(c *gin.Context) {
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	defer e.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": e.list.Values()})
}

func (s *server) Remove(c *gin.Context) {
	id := c.Query("id")
	if !s.store.remove(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
		return
	}
	logger.Debug("list removed: ", id)
	c.JSON(http.StatusOK, gin.H{})
}

func (s *server) PushFront(c *gin.Context) {
	s.push(c, func(l *list.LinkedList[decimal.Decimal], v decimal.Decimal) error {
		return l.PushFront(v)
	})
}

func (s *server) PushBack(c *gin.Context) {
	s.push(c, func(l *list.LinkedList[decimal.Decimal], v decimal.Decimal) error {
		return l.PushBack(v)
	})
}

func (s *server) push(c *gin.Context, fn func(*list.LinkedList[decimal.Decimal], decimal.Decimal) error) {
	v, err := bindValue(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	defer e.mu.Unlock()
	if err = fn(e.list, v); err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": e.list.Len()})
}

func (s *server) InsertAt(c *gin.Context) {
	index, err := queryIndex(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v, err := bindValue(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	defer e.mu.Unlock()
	inserted, err := e.list.InsertAt(v, index)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"inserted": inserted, "data": e.list.Len()})
}

func (s *server) RemoveValue(c *gin.Context) {
	v, err := queryValue(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	defer e.mu.Unlock()
	removed, err := e.list.RemoveValue(v, compare.Decimal)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed, "data": e.list.Len()})
}

func (s *server) RemoveAt(c *gin.Context) {
	index, err := queryIndex(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	defer e.mu.Unlock()
	removed, err := e.list.RemoveAt(index)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed, "data": e.list.Len()})
}

func (s *server) Find(c *gin.Context) {
	v, err := queryValue(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	defer e.mu.Unlock()
	idx, err := e.list.Find(v, compare.Decimal)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": idx})
}

func (s *server) GetAt(c *gin.Context) {
	index, err := queryIndex(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	defer e.mu.Unlock()
	v, err := e.list.GetAt(index)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": v})
}

func (s *server) Len(c *gin.Context) {
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	defer e.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": e.list.Len()})
}

func (s *server) Clear(c *gin.Context) {
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	defer e.mu.Unlock()
	e.list.Clear()
	c.JSON(http.StatusOK, gin.H{})
}

func (s *server) Stats(c *gin.Context) {
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	defer e.mu.Unlock()
	stats := listStats{
		ID:      c.Query("id"),
		Length:  e.list.Len(),
		Created: e.created,
	}
	if front := e.list.Front(); front != nil {
		stats.Head = front.Value().String()
		stats.Tail = e.list.Back().Value().String()
	}
	c.JSON(http.StatusOK, gin.H{"data": structs.Map(stats)})
}

func (s *server) Script(c *gin.Context) {
	var body scriptBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Script == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "script is required"})
		return
	}
	var out bytes.Buffer
	err := js_exec.Run(body.Script, &out, s.config.ScriptTimeout)
	if errors.Is(err, js_exec.ErrTimeout) {
		// an abandoned vm may still be writing to out
		c.JSON(http.StatusRequestTimeout, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "output": out.String()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": out.String()})
}

type wsWriter struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (w *wsWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	err = w.ws.WriteMessage(websocket.TextMessage, p)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

/**********WS***********/

// Debug runs the script sent as the first message and streams every console
// line back as a text message.
func (s *server) Debug(c *gin.Context) {
	ws, err := s.upgrade.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("debug upgrade failed: ", err)
		return
	}
	defer func(ws *websocket.Conn) {
		_ = ws.Close()
	}(ws)

	_, script, err := ws.ReadMessage()
	if err != nil {
		return
	}
	write := &wsWriter{
		ws: ws,
	}
	if err = js_exec.Run(string(script), write, s.config.ScriptTimeout); err != nil {
		_, _ = write.Write([]byte("error: " + err.Error()))
	}
	write.mu.Lock()
	_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	write.mu.Unlock()
}

/**********************/
