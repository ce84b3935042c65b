package bookmark

import "fmt"

// bash/zsh share the wrapper function; completion differs per shell.
const shellFunction = `hop() {
  case "$1" in
    ""|list|ls)
      command hop list
      ;;
    add|rm|go|prune|pick|shell|version|help|-h|--help)
      command hop "$@"
      ;;
    *)
      local dest
      dest="$(command hop go "$1")" || return
      cd "$dest" || return
      ;;
  esac
}
`

const bashCompletion = `_hop_complete() {
  local cur="${COMP_WORDS[COMP_CWORD]}"
  COMPREPLY=($(compgen -W "$(command hop list --names)" -- "$cur"))
}
complete -F _hop_complete hop
`

const zshCompletion = `_hop_complete() {
  compadd -- $(command hop list --names)
}
compdef _hop_complete hop
`

// ShellScript returns the shell function plus completion snippet to be
// eval'd from the user's rc file, e.g. eval "$(hop shell bash)".
func ShellScript(shell string) (string, error) {
	switch shell {
	case "bash":
		return shellFunction + "\n" + bashCompletion, nil
	case "zsh":
		return shellFunction + "\n" + zshCompletion, nil
	default:
		return "", fmt.Errorf("unsupported shell %q (expected bash or zsh)", shell)
	}
}
