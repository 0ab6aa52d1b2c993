// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/fragnav/internal/meta"
)

const bashCompletionScript = `# bash completion for fragnav
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_fragnav()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "render resolve check browse completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local site="--site --base --tldr"
    local table="--columns -a --color -c --filter -f --output -o --sort -s --titles -t --schema"

    case "$cmd" in
        render)
            local opts="$site --nav --tab --out --text --history --stats"
            ;;
        resolve)
            local opts="$site $table --page -p --probe"
            ;;
        check)
            local opts="$site $table --pages --parallel -P"
            ;;
        browse)
            local opts="$site --inline"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$site"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --site|--out)
            COMPREPLY=( $(compgen -o dirnames -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Otherwise, we're on the PAGE positional
    COMPREPLY=( $(compgen -f -X '!*.html' -- "$cur") $(compgen -o dirnames -- "$cur") )
    return 0
}

complete -F _fragnav fragnav
`

const zshCompletionScript = `#compdef fragnav

_fragnav() {
  local -a cmds
  cmds=(
    'render:render a page after navigation'
    'resolve:resolve section fragment paths'
    'check:check a site for missing fragments'
    'browse:browse a site interactively'
    'completion:generate shell completion script'
  )

  local -a site
  site=(
  '--site[site root]:root:_files -/'
  '--base[base path]:base'
  '--tldr[show tldr page]'
  )

  local -a table
  table=(
  '(-a --columns)'{-a,--columns}'[columns to show]:columns'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--schema[dump schema]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'fragnav commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    render)
      _arguments -C \
        $site \
        '*--nav[hash navigation]:hash' \
        '*--tab[roster tab]:tab' \
        '--out[output file]:file:_files' \
        '--text[readable text only]' \
        '--history[print history]' \
        '--stats[print loader statistics]' \
        '::PAGE:_files -g "*.html"'
      ;;
    resolve)
      _arguments -C \
        $site \
        $table \
        '(-p --page)'{-p,--page}'[page location]:page' \
        '--probe[fetch each resolved path]' \
        '*:section'
      ;;
    check)
      _arguments -C \
        $site \
        $table \
        '(-P --parallel)'{-P,--parallel}'[concurrent pages]:n' \
        '*--pages[pages to check]:page'
      ;;
    browse)
      _arguments -C \
        $site \
        '--inline[no alternate screen]' \
        '::PAGE:_files -g "*.html"'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $site
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _fragnav fragnav
`

// CompletionCommandAction writes the completion script for the named shell,
// falling back to $SHELL.
func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	shell := cmd.Args().First()
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		fmt.Fprintln(cmd.Root().ErrWriter, "usage: fragnav completion [bash|zsh]")
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "fragnav completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
