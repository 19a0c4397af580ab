package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etcsilver/barwatch/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Local .env files can set defaults (e.g. flags via environment);
	// a missing file is the common case.
	godotenv.Load()

	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion wires shell completion; it exits early when invoked by the
// shell's completion hook and is a no-op otherwise.
func completion() {
	fundFlags := map[string]complete.Predictor{
		"fund":  predict.Set{"invesco", "wisdomtree"},
		"funds": predict.Set{"invesco", "wisdomtree"},
	}
	spec := &complete.Command{
		Flags: map[string]complete.Predictor{
			"data-dir": predict.Dirs("*"),
		},
		Sub: map[string]*complete.Command{
			"verify": {Flags: map[string]complete.Predictor{
				"funds":      predict.Set{"invesco", "wisdomtree"},
				"invesco":    predict.Files("*"),
				"wisdomtree": predict.Files("*"),
				"o":          predict.Files("*.json"),
			}},
			"delta": {Flags: map[string]complete.Predictor{
				"fund":    predict.Set{"invesco", "wisdomtree"},
				"barlist": predict.Files("*"),
			}},
			"history": {Flags: fundFlags},
			"reset":   {Flags: fundFlags},
			"metrics": {Args: predict.Files("*.json"), Flags: fundFlags},
			"topic":   {},
		},
	}
	spec.Complete("bw")
}
