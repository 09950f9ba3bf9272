// Interactive console for exercising the intent router without a server.
// Type a message per line; /switch_mode and /compare_modes work as in the
// hosted agent, /reset starts a fresh conversation, /quit exits.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/conversational-intent-router/internal/conversation"
)

func main() {
	logger := zap.NewNop()
	if os.Getenv("DEBUG") != "" {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	disamb := conversation.New(conversation.DefaultConfig(), logger)
	state := conversation.NewState(conversation.ModeJSON)

	fmt.Println("Intent router console. Type a message, /reset, or /quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			return
		case "/reset":
			state = conversation.NewState(state.Mode)
			fmt.Println("Conversation reset.")
			continue
		}

		if state.Phase == conversation.PhaseResolved && !strings.HasPrefix(line, "/") {
			state = conversation.NewState(state.Mode)
		}

		printResult(disamb.Advance(line, state))
	}
}

func printResult(result conversation.TurnResult) {
	fmt.Printf("[%s] %s\n", result.Status, result.MessageToUser)
	if result.RouteTo != "" {
		fmt.Printf("  route_to: %s\n", result.RouteTo)
	}
	for i, opt := range result.Options {
		fmt.Printf("  %d. %s (%s)\n", i+1, opt.Label, opt.ID)
	}
}
