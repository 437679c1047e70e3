package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/ssrkit/internal/adapters/cli"
	"github.com/3-lines-studio/ssrkit/internal/adapters/env"
	"github.com/3-lines-studio/ssrkit/internal/adapters/fs"
	"github.com/3-lines-studio/ssrkit/internal/usecase"
)

var errChecksFailed = errors.New("doctor checks failed")

func doctorCmd() *cobra.Command {
	var paths pathFlags

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the build artifacts and runtime before serving",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := env.Load()
			if err != nil {
				return err
			}
			paths.apply(cmd, cfg)

			svc := usecase.NewDoctorService(fs.NewOSFileSystem())
			checks := svc.Diagnose(usecase.DoctorInput{
				BundlePath:   cfg.BundlePath,
				TemplatePath: cfg.TemplatePath,
				PublicDir:    cfg.PublicDir,
				DistDir:      cfg.DistDir,
				Runtime:      cfg.Runtime,
			})

			if !usecase.Report(cli.NewOutput(), checks) {
				return errChecksFailed
			}
			return nil
		},
	}

	paths.register(cmd)
	return cmd
}
