// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/fragnav/internal/command"
	"github.com/staranto/fragnav/internal/config"
	mylog "github.com/staranto/fragnav/internal/log"
	"github.com/staranto/fragnav/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments short-circuits help and otherwise expands argument sets
// from the config file.
func mangleArguments(args []string) []string {
	if slices.ContainsFunc(args, func(a string) bool { return a == "--help" || a == "-h" }) {
		return []string{args[0], args[1], "--help"}
	}
	if strings.HasPrefix(args[1], "-") {
		return args
	}

	// The command namespace is needed before InitApp so the set can be found.
	if _, err := config.Load(args[1]); err != nil {
		log.WithError(err).Debug("no config for argument sets")
	}

	return expandArgSet(args, func(key string) []string {
		set, _ := config.GetStringSlice(key)
		return set
	})
}
