package main

import (
	"flag"
)

// AppFlags holds the parsed command-line flags.
type AppFlags struct {
	TargetsFile      string
	GlobalConfigFile string
	Mode             string
}

// ParseFlags parses the command line, preferring long flags over aliases.
func ParseFlags() AppFlags {
	targetsFile := flag.String("file", "", "Path to a text file containing target URLs to monitor, merged with the config URL list.")
	targetsFileAlias := flag.String("f", "", "Alias for -file")

	globalConfigFile := flag.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("c", "", "Alias for -config")

	modeFlag := flag.String("mode", "", "Mode to run the tool: onetime or automated (overrides config file if set)")
	modeFlagAlias := flag.String("m", "", "Alias for -mode")

	flag.Parse()

	flags := AppFlags{}

	if *targetsFile != "" {
		flags.TargetsFile = *targetsFile
	} else if *targetsFileAlias != "" {
		flags.TargetsFile = *targetsFileAlias
	}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	if *modeFlag != "" {
		flags.Mode = *modeFlag
	} else if *modeFlagAlias != "" {
		flags.Mode = *modeFlagAlias
	}

	return flags
}
