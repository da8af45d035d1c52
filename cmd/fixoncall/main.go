package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/fixoncall/fixoncall-client/api"
	"github.com/fixoncall/fixoncall-client/client"
	"github.com/fixoncall/fixoncall-client/internal/config"
	apperrors "github.com/fixoncall/fixoncall-client/internal/errors"
	"github.com/fixoncall/fixoncall-client/internal/logging"
	"github.com/fixoncall/fixoncall-client/router"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("fixoncall: %s\n", describe(err))
	}
}

// describe prefers the remote service's own message over the wrapped call chain.
func describe(err error) string {
	var apiErr *api.APIError
	if apperrors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	if len(args) == 0 {
		usage()
		return flag.ErrHelp
	}
	cmd, ok := commands[args[0]]
	if !ok {
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}

	c, err := config.Load()
	if err != nil {
		return err
	}
	if c.GetEnv() == "DEV" {
		displayAppname(c.GetAppName())
	}
	logger := logging.New(c)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cl, err := client.New(ctx, c,
		client.WithLogger(logger),
		client.WithNavigator(router.NavigatorFunc(func(route string) {
			fmt.Printf("-> %s\n", route)
		})),
	)
	if err != nil {
		return err
	}
	defer cl.Close()

	return cmd.run(ctx, cl, args[1:])
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: fixoncall <command> [flags]\n\ncommands:\n")
	for _, name := range commandOrder {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", name, commands[name].summary)
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
