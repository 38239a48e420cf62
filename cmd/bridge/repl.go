// In file: cmd/bridge/repl.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// runQueryLoop reads queries from stdin until EOF or "quit". Useful for
// poking at a tool host without standing up the HTTP surface.
func runQueryLoop(session QueryProcessor) {
	fmt.Println("MCP Bridge started. Type your queries or 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nQuery: ")
		if !scanner.Scan() {
			return
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if strings.EqualFold(query, "quit") {
			return
		}

		result, err := session.ProcessQuery(context.Background(), query)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		fmt.Println("\n" + result)
	}
}
