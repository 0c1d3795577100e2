package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/mitchellh/go-homedir"
)

var (
	mu      sync.Mutex
	logger  *log.Logger // file, nil when the log file could not be opened
	_logger *log.Logger // console
)

// prefix
const (
	DEBUG = "DEBUG"
	INFO  = "INFO"
	WARN  = "WARN"
	ERROR = "ERROR"
	FATAL = "FATAL"
)

const flags = log.LstdFlags | log.Lshortfile | log.LUTC

func init() {
	_logger = log.New(os.Stdout, "", flags)
	file, err := openLogFile()
	if err != nil {
		_logger.Println("[WARN] file logging disabled:", err)
		return
	}
	logger = log.New(file, "", flags)
}

func openLogFile() (*os.File, error) {
	dir, err := homedir.Dir()
	if err != nil {
		return nil, err
	}
	var path = filepath.Join(dir, ".sllist", "debug")
	err = os.MkdirAll(path, os.ModePerm)
	if err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(path, "sllistLog.txt"), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0766)
}

// SetOutput redirects console logging. File logging is unaffected.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	_logger.SetOutput(w)
}

func Debug(v ...any) {
	_log(DEBUG, v)
}
func Error(v ...any) {
	_log(ERROR, v)
}
func Info(v ...any) {
	_log(INFO, v)
}
func Warn(v ...any) {
	_log(WARN, v)
}

// Fatal logs and exits the process.
func Fatal(v ...any) {
	_log(FATAL, v)
	os.Exit(1)
}
func _log(prefix string, v []any) {
	mu.Lock()
	defer mu.Unlock()
	setPrefix(prefix)
	msg := fmt.Sprint(v...)
	if logger != nil {
		logger.Println(msg)
	}
	_logger.Println(msg)
}
func setPrefix(logType string) {
	_, file, line, ok := runtime.Caller(3)
	var logPrefix string
	if ok {
		logPrefix = fmt.Sprintf("[%s][%s:%d]", logType, filepath.Base(file), line)
	} else {
		logPrefix = fmt.Sprintf("[%s]", logType)
	}
	if logger != nil {
		logger.SetPrefix(logPrefix)
	}
	_logger.SetPrefix(logPrefix)
}
