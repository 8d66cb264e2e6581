package main

import (
	"github.com/spf13/cobra"

	"github.com/on-the-ground/grimoire/compose"
)

var higherCmd = &cobra.Command{
	Use:   "higher",
	Short: "Composition, amplification and conditional application",
	RunE: func(cmd *cobra.Command, args []string) error {
		runHigher(env)
		return nil
	},
}

func runHigher(r *runtime) {
	fireball := func(power int) int { return power * 2 }
	shield := func(power int) int { return power + 5 }

	combined := compose.Then(fireball, shield)
	r.printf("combined(10): %d\n", combined(10))

	amplified := compose.Amplify(3)(fireball)
	r.printf("amplified(10): %d\n", amplified(10))

	overcharge := compose.When(func(p int) bool { return p > 50 }, func(p int) int { return p * 10 })
	r.printf("overcharge(40): %d, overcharge(60): %d\n", overcharge(40), overcharge(60))

	chain := compose.Pipe(fireball, shield, amplified)
	r.printf("chain(1): %d\n", chain(1))
}
