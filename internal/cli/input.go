// Package cli provides an interactive terminal harness for exercising the
// conversion engine manually, for debugging and testing new features before
// they reach the server.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sorairo/mozcgo/pkg/converter"
	"github.com/sorairo/mozcgo/pkg/engine"
)

// InputHandler reads reading keys from stdin, runs them through a
// ConverterInterface, and prints the resulting Segment/Candidate tree.
type InputHandler struct {
	conv         engine.ConverterInterface
	requestType  converter.RequestType
	requestCount int
}

// NewInputHandler builds an InputHandler driving conv, issuing requests of
// requestType (converter.Conversion by default semantics elsewhere).
func NewInputHandler(conv engine.ConverterInterface, requestType converter.RequestType) *InputHandler {
	return &InputHandler{conv: conv, requestType: requestType}
}

// Start begins the interactive loop. It prompts, reads one reading key per
// line from stdin, converts it, and prints the result. The loop terminates
// on a stdin read error (including EOF from Ctrl+D).
func (h *InputHandler) Start() error {
	log.Print("mozcgo CLI [BETA]")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a reading and press Enter to convert (Ctrl+C to exit):")

	for {
		log.Print("> ")
		key, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		h.handleInput(key)
	}
}

func (h *InputHandler) handleInput(key string) {
	h.requestCount++

	segments := converter.NewSegments()

	start := time.Now()
	var ok bool
	switch h.requestType {
	case converter.Prediction:
		ok = h.conv.StartPrediction(segments, key)
	case converter.Suggestion:
		ok = h.conv.StartSuggestion(segments, key)
	case converter.ReverseConversion:
		ok = h.conv.StartReverseConversion(segments, key)
	default:
		ok = h.conv.StartConversion(segments, key)
	}
	elapsed := time.Since(start)

	if !ok {
		log.Warnf("no conversion produced for '%s'", key)
		return
	}

	log.Debugf("took %v for '%s', request #%d", elapsed, key, h.requestCount)
	log.Printf("%d segment(s) for '%s':", segments.Size(), key)

	for i := 0; i < segments.Size(); i++ {
		seg := segments.Segment(i)
		log.Printf("segment %d [key=%s]", i, seg.Key())
		for j := 0; j < seg.CandidatesSize(); j++ {
			c := seg.Candidate(j)
			marker := " "
			if c.Attributes&converter.BestCandidate != 0 {
				marker = "*"
			}
			colored := fmt.Sprintf("\033[38;5;75m%s\033[0m", c.Value)
			log.Printf("  %s%2d. %-30s (cost: %6d)", marker, j+1, colored, c.Cost)
		}
	}
}
