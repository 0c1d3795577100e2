package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"linkedlist/js_exec"
	"linkedlist/logger"
	"linkedlist/server"
	"linkedlist/struct/list"
)

func main() {
	var mode string // running mode
	var ip string
	var port int
	var file string
	var timeout time.Duration
	var maxNodes int
	flag.StringVar(&mode, "m", "demo", "[demo], [serve] or [script] running mode,default is demo.")
	flag.StringVar(&ip, "ip", "", "bind ip address.default is empty for all address.")
	flag.IntVar(&port, "p", 8080, "bind port")
	flag.StringVar(&file, "f", "", "script file.required for script mode.")
	flag.DurationVar(&timeout, "t", 5*time.Second, "script timeout.")
	flag.IntVar(&maxNodes, "max", 0, "node budget of each served list, 0 for none.")
	flag.Parse()

	switch mode {
	case "demo":
		if err := runDemo(os.Stdout); err != nil {
			logger.Fatal(err)
		}
	case "script":
		if file == "" {
			logger.Fatal("script file is required.")
		}
		src, err := os.ReadFile(file)
		if err != nil {
			logger.Fatal(err)
		}
		if err = js_exec.Run(string(src), os.Stdout, timeout); err != nil {
			logger.Fatal(err)
		}
	case "serve":
		r := gin.Default()
		server.Start(r, server.Config{MaxNodes: maxNodes, ScriptTimeout: timeout})
		r.NoRoute(func(ctx *gin.Context) { ctx.JSON(http.StatusNotFound, gin.H{}) })
		err := r.Run(fmt.Sprintf("%s:%d", ip, port))
		if err != nil {
			logger.Error(err)
		}
	default:
		logger.Fatal("unknown mode: ", mode)
	}
}

// runDemo boxes 12..21, appends each one and prints the list by walking the
// nodes from the front.
func runDemo(w io.Writer) error {
	l := list.New[*int]()
	for i := 0; i < 10; i++ {
		k := new(int)
		*k = 12 + i
		if err := l.PushBack(k); err != nil {
			return err
		}
	}

	for current := l.Front(); current != nil; current = current.Next() {
		if _, err := fmt.Fprintln(w, *current.Value()); err != nil {
			return err
		}
	}

	l.Clear()
	return nil
}
