package main

import (
	"fmt"
	"os"

	"github.com/teranos/glbind/cmd/glbind/cmd"
	"github.com/teranos/glbind/errors"
	"github.com/teranos/glbind/logger"
)

func main() {
	err := cmd.Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
