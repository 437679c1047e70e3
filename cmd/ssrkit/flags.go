package main

import (
	"github.com/spf13/cobra"

	"github.com/3-lines-studio/ssrkit/internal/adapters/env"
)

type pathFlags struct {
	bundle   string
	template string
	public   string
	dist     string
	runtime  string
}

func (f *pathFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.bundle, "bundle", "", "server bundle JSON (SSR_BUNDLE)")
	cmd.Flags().StringVar(&f.template, "template", "", "HTML template with the outlet marker (SSR_TEMPLATE)")
	cmd.Flags().StringVar(&f.public, "public", "", "directory served at / (SSR_PUBLIC_DIR)")
	cmd.Flags().StringVar(&f.dist, "dist", "", "directory served at /dist (SSR_DIST_DIR)")
	cmd.Flags().StringVar(&f.runtime, "runtime", "", "JS runtime executable (SSR_RUNTIME)")
}

// apply overrides cfg with the flags set on the command line.
func (f *pathFlags) apply(cmd *cobra.Command, cfg *env.Config) {
	if cmd.Flags().Changed("bundle") {
		cfg.BundlePath = f.bundle
	}
	if cmd.Flags().Changed("template") {
		cfg.TemplatePath = f.template
	}
	if cmd.Flags().Changed("public") {
		cfg.PublicDir = f.public
	}
	if cmd.Flags().Changed("dist") {
		cfg.DistDir = f.dist
	}
	if cmd.Flags().Changed("runtime") {
		cfg.Runtime = f.runtime
	}
}
