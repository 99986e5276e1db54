// Command makeultra is a parallel, rule-driven, incremental build engine.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/makeultra/makeultra"
)

func main() {
	var (
		dryRun     bool
		dotPath    string
		force      bool
		version    bool
		watch      bool
		jobs       int
		configPath string
		cachePath  string
	)

	pflag.BoolVarP(&dryRun, "dry", "n", false, "print but do not execute commands; do not persist cache")
	pflag.StringVarP(&dotPath, "dot", "d", "", "write a DOT-format graph dump to `file` after building")
	pflag.BoolVarP(&force, "force", "f", false, "treat every file as dirty")
	pflag.BoolVar(&version, "version", false, "print version and exit")
	pflag.BoolVar(&watch, "watch", false, "rebuild whenever a source file changes")
	pflag.IntVarP(&jobs, "jobs", "j", 0, "maximum number of commands to run in parallel (0 = unlimited)")
	pflag.StringVarP(&configPath, "config", "c", "makeultra.toml", "path to the configuration file")
	pflag.StringVar(&cachePath, "cache", makeultra.CacheFile, "path to the content-hash cache file")
	pflag.Parse()

	if version {
		fmt.Println(makeultra.Version)
		return
	}

	runOpts := makeultra.RunOptions{
		ConfigPath: configPath,
		CachePath:  cachePath,
		DotPath:    dotPath,
		Options: makeultra.Options{
			DryRun: dryRun,
			Force:  force,
			Jobs:   jobs,
		},
	}

	if watch {
		cfg, err := makeultra.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "makeultra:", err)
			os.Exit(1)
		}
		err = makeultra.Watch(cfg.Folders, func() error { return makeultra.Run(runOpts) })
		if err != nil {
			fmt.Fprintln(os.Stderr, "makeultra:", err)
			os.Exit(1)
		}
		return
	}

	if err := makeultra.Run(runOpts); err != nil {
		fmt.Fprintln(os.Stderr, "makeultra:", err)
		os.Exit(1)
	}
}
