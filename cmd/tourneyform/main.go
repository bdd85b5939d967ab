package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-tourneyform/cmd/tourneyform/cmds"
)

func runApp(ctx context.Context) int {
	err := cmds.Execute(ctx)
	if err != nil {
		var ee cmds.ExitError
		if errors.As(err, &ee) {
			if ee.Err != nil {
				fmt.Fprintln(os.Stderr, "Error: "+ee.Err.Error())
			}
			return ee.Code
		}

		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		return cmds.ExitUsage
	}

	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := runApp(ctx)
	stop()
	os.Exit(code)
}
