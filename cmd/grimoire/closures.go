package main

import (
	"github.com/spf13/cobra"

	"github.com/on-the-ground/grimoire/closure"
)

var closuresCmd = &cobra.Command{
	Use:   "closures",
	Short: "Counters, accumulators and tagged closures",
	RunE: func(cmd *cobra.Command, args []string) error {
		runClosures(env)
		return nil
	},
}

func runClosures(r *runtime) {
	counterA := closure.MakeCounter()
	counterB := closure.MakeCounter()
	r.printf("counter a: %d %d %d\n", counterA(), counterA(), counterA())
	r.printf("counter b: %d\n", counterB())

	mana := closure.MakeAccumulator(100)
	r.printf("mana: %d\n", mana(20))
	r.printf("mana: %d\n", mana(10))

	spell := closure.Prefixer("Fireball")
	r.printf("%s\n", spell("at the goblin"))

	casts := closure.MakeKeyedCounter[string]()
	for _, name := range []string{"Fireball", "Heal", "Fireball"} {
		r.printf("%s cast %d time(s)\n", name, casts(name))
	}
}
