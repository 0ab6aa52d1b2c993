// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/fragnav/internal/output"
)

// GlobalFlagsValidator checks the table flags that can only be validated as
// a whole. Titles set with raw output is allowed since config may set both.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if spec := c.String("columns"); spec != "" {
		if _, err := output.ParseColumns(nil, spec); err != nil {
			return fmt.Errorf("--columns %w", err)
		}
	}
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if s, ok := value.(string); ok && strings.HasPrefix(s, "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

var validOutputs = []string{"text", "json", "raw", "yaml"}

func OutputValidator(value any) error {
	if s, ok := value.(string); !ok || !slices.Contains(validOutputs, s) {
		return fmt.Errorf("must be one of %v", validOutputs)
	}
	return nil
}

// PositiveValidator requires an int flag to be at least 1.
func PositiveValidator(value any) error {
	if n, ok := value.(int); !ok || n < 1 {
		return errors.New("must be at least 1")
	}
	return nil
}
