package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/on-the-ground/grimoire/compose"
	"github.com/on-the-ground/grimoire/dispatch"
	"github.com/on-the-ground/grimoire/memo"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Folding, partial application, memoization and dispatch",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLibrary(env)
	},
}

func runLibrary(r *runtime) error {
	powers := []int{10, 20, 30, 40}
	total := compose.Fold(powers, 0, func(acc, p int) int { return acc + p })
	r.printf("total power: %d\n", total)

	enchant := compose.Partial(func(element, target string) string {
		return element + " enchantment on " + target
	}, "Fire")
	r.printf("%s\n", enchant("the sword"))

	manaCost := memo.Memoize2(func(power, level int) (int, error) {
		return power*level + 7, nil
	})
	for range 2 {
		cost, err := manaCost(30, 4)
		if err != nil {
			return err
		}
		r.printf("mana cost(30, 4): %d\n", cost)
	}

	analyze := artifactAnalyzer(r.cfg.Dispatch.Strict)
	for _, artifact := range []any{
		42,
		"Staff of Wonders",
		[]string{"ring", "amulet"},
		map[string]any{"name": "Wand of Sparks", "power": 3},
		2.5,
	} {
		desc, err := analyze.Dispatch(artifact)
		if err != nil {
			r.printf("%v: %v\n", artifact, err)
			continue
		}
		r.printf("%s\n", desc)
	}

	fib := memo.NewFibonacci()
	for _, n := range []int{10, 50, 90} {
		v, err := fib.Of(n)
		if err != nil {
			return err
		}
		r.printf("fib(%d) = %d\n", n, v)
	}
	r.printf("fibonacci computations: %d\n", fib.Computations())
	return nil
}

func artifactAnalyzer(strict bool) *dispatch.Registry[string] {
	r := dispatch.NewStrictRegistry[string]()
	if !strict {
		r = dispatch.NewRegistry(func(dispatch.Value) (string, error) {
			return "Unknown artifact", nil
		})
	}
	r.Register(dispatch.TagInteger, dispatch.OnInteger(func(n dispatch.Integer) (string, error) {
		return fmt.Sprintf("Power level: %d", n), nil
	}))
	r.Register(dispatch.TagText, dispatch.OnText(func(s dispatch.Text) (string, error) {
		return fmt.Sprintf("Artifact name: %s", s), nil
	}))
	r.Register(dispatch.TagSequence, dispatch.OnSequence(func(s dispatch.Sequence) (string, error) {
		return fmt.Sprintf("Artifact set of %d", len(s)), nil
	}))
	r.Register(dispatch.TagMapping, dispatch.OnMapping(func(m dispatch.Mapping) (string, error) {
		return fmt.Sprintf("Artifact: %v (power=%v)", m["name"], m["power"]), nil
	}))
	return r
}
