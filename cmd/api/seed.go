package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"videos-api/internal/repository"
	"videos-api/internal/seed"
	"videos-api/internal/services"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load categories and videos from a YAML file",
	Long: `Create the categories and videos listed in a YAML fixture.

Records go through the same validation as the HTTP API. Categories whose
title already exists are skipped.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seeds/videos.yaml", "Path to the YAML fixture")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := log.Logger.WithContext(cmd.Context())

	fixture, err := seed.LoadFile(seedFile)
	if err != nil {
		return err
	}

	pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	categoryRepo := repository.NewCategoryRepository(pool)
	videoRepo := repository.NewVideoRepository(pool)

	seeder := seed.NewSeeder(
		services.NewCategoryService(categoryRepo, videoRepo),
		services.NewVideoService(videoRepo, categoryRepo, cfg.Videos.PageSize),
	)

	_, err = seeder.Apply(ctx, fixture)
	return err
}
