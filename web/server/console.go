package server

import (
	"fmt"
	"log"
	"strings"

	"github.com/JMS55/raytracing-in-one-weekend/pkg/core"
)

// WebLogger implements core.Logger by writing render progress to the server log,
// tagged with the request that started the render
type WebLogger struct {
	renderID string
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string) core.Logger {
	return &WebLogger{renderID: renderID}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if wl.renderID == "" {
		log.Print(message)
		return
	}
	log.Printf("[%s] %s", wl.renderID, message)
}
