/*
Copyright © 2026 the pqdif authors
*/
// Package cmd implements the pqdif command-line tool: a thin application
// layer over the physical/logical/registry libraries.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

// config holds the optional settings loadable from --config (JSON, TOML,
// or YAML) or PQDIF_-prefixed environment variables: the default
// tag-definition document path for `tags`, and the default compression
// algorithm/style `dump` falls back to when a file's leading record
// isn't a Container (so its own declared compression is never read).
type config struct {
	TagsDoc              string `mapstructure:"tags_doc"`
	CompressionAlgorithm uint8  `mapstructure:"compression_algorithm"`
	CompressionStyle     uint8  `mapstructure:"compression_style"`
}

var cfg config

var rootCmd = &cobra.Command{
	Use:   "pqdif",
	Short: "pqdif inspects and validates Power Quality Data Interchange Format files",
	Long: `pqdif is a reference command-line tool over the pqdif codec library:
it dumps a file's record and element tree, validates its checksums and
protocol structure, and lists the definitions known to the tag registry.`,
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlag(fs *pflag.FlagSet) {
	viper.SetEnvPrefix("PQDIF")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cobra.OnInitialize(initForCobra)
	fs.StringVarP(&cfgFile, "config", "C", cfgFile,
		"Read configuration from specified `FILE` (JSON, TOML, or YAML).")
}

func initForCobra() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read configuration file (%s): %v\n", cfgFile, err)
			os.Exit(1)
		}
	}
	// Bind each cfg key explicitly: AutomaticEnv alone does not make
	// Unmarshal see a variable whose key no config file has set.
	for _, key := range []string{"tags_doc", "compression_algorithm", "compression_style"} {
		viper.BindEnv(key)
	}
	// Unmarshal regardless of whether a config file was read, so
	// PQDIF_-prefixed environment variables alone still populate cfg,
	// mirroring JinVei-Laputa's app.UnmarshalConfig(&cfg) pattern.
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to parse configuration: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Write the full element tree to the terminal")
	addConfigFlag(rootCmd.PersistentFlags())
}
