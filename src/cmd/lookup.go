package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apimgr/pokedex/src/lookup"
)

var lookupHelp = map[lookup.Kind]struct {
	use, short, example string
}{
	lookup.KindPokemon: {"pokemon <name>", "Show a pokemon's types, weight and type matchup", "pokedex pokemon mr. mime"},
	lookup.KindAbility: {"ability <name>", "Show an ability and its effect", "pokedex ability blaze"},
	lookup.KindMove:    {"move <name>", "Show a move's stats and effect", "pokedex move flamethrower"},
	lookup.KindItem:    {"item <name>", "Show an item and its effect", `pokedex item "king's rock"`},
	lookup.KindType:    {"type <name>...", "Show the combined defensive matchup of one or more types", "pokedex type ghost normal"},
}

// lookupCommands builds one subcommand per search kind. Arguments are joined
// with spaces, so multi-word names need no quoting.
func lookupCommands() []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(lookup.Kinds))
	for _, kind := range lookup.Kinds {
		help := lookupHelp[kind]
		cmds = append(cmds, &cobra.Command{
			Use:     help.use,
			Short:   help.short,
			Example: "  " + help.example,
			Args:    cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runLookup(cmd, kind, strings.Join(args, " "))
			},
		})
	}
	return cmds
}

func runLookup(cmd *cobra.Command, kind lookup.Kind, text string) error {
	if service == nil {
		return fmt.Errorf("lookup service not initialized")
	}
	return service.Run(cmd.Context(), kind, text, cmd.OutOrStdout())
}
