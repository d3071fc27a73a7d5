package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/jinzhu/configor"
	log "github.com/sirupsen/logrus"

	tcos "github.com/zandko/vite-plugin-tcos"
)

// AppConfig is the config-file surface of the CLI adapter. Pointer fields
// fall back to the library defaults when absent.
type AppConfig struct {
	COS struct {
		SecretID  string `required:"true"`
		SecretKey string `required:"true"`
		Bucket    string `required:"true"`
		Region    string `required:"true"`
		Endpoint  string
	}
	OutputDir   string `default:"dist"`
	Exclude     string
	Include     string
	EnableLog   *bool
	IgnoreError *bool
	RemoveMode  *bool
	BaseDir     string
	Project     string
	Retry       *int
	ExistCheck  *bool
	Gzip        *bool

	// IntervalMinutes re-runs the upload on a schedule; 0 uploads once.
	IntervalMinutes int

	Notify struct {
		Topic   string
		Region  string
		Profile string
	}
}

func main() {
	configFilePath := flag.String("configfile", "", "Configuration File Path")
	flag.Parse()

	if *configFilePath == "" {
		panic("Required flag -configfile not set but required")
	}

	var appConfig AppConfig
	if configErr := configor.Load(&appConfig, *configFilePath); configErr != nil {
		panic(configErr)
	}

	cfg, cfgErr := tcos.NewUploadConfig(tcos.Options{
		COS: tcos.COSOptions{
			SecretID:  appConfig.COS.SecretID,
			SecretKey: appConfig.COS.SecretKey,
			Bucket:    appConfig.COS.Bucket,
			Region:    appConfig.COS.Region,
			Endpoint:  appConfig.COS.Endpoint,
		},
		Exclude:     appConfig.Exclude,
		Include:     appConfig.Include,
		EnableLog:   appConfig.EnableLog,
		IgnoreError: appConfig.IgnoreError,
		RemoveMode:  appConfig.RemoveMode,
		BaseDir:     appConfig.BaseDir,
		Project:     appConfig.Project,
		Retry:       appConfig.Retry,
		ExistCheck:  appConfig.ExistCheck,
		Gzip:        appConfig.Gzip,
	})
	if cfgErr != nil {
		panic(cfgErr)
	}

	logger := log.New()
	if cfg.EnableLog {
		logger.SetLevel(log.DebugLevel)
	}

	store, storeErr := tcos.NewCOSClient(cfg.COS)
	if storeErr != nil {
		panic(fmt.Errorf("error creating cos client: %w", storeErr))
	}

	var notifier tcos.Notifier
	if appConfig.Notify.Topic != "" {
		var notifyErr error
		notifier, notifyErr = tcos.NewSNSNotifier(tcos.NotifyOptions{
			Topic:   appConfig.Notify.Topic,
			Region:  appConfig.Notify.Region,
			Profile: appConfig.Notify.Profile,
		})
		if notifyErr != nil {
			panic(fmt.Errorf("error creating sns notifier: %w", notifyErr))
		}
	}

	uploader := tcos.NewUploader(store, cfg, logger)

	uploadOnce := func() error {
		files, collectErr := tcos.CollectOutputFiles(appConfig.OutputDir)
		if collectErr != nil {
			return fmt.Errorf("collecting output files from %s: %w", appConfig.OutputDir, collectErr)
		}

		run, runErr := uploader.Run(context.Background(), files, tcos.RunOptions{})
		if notifier != nil {
			if publishErr := notifier.NotifyBatchResults(cfg, run); publishErr != nil {
				logger.Warnf("failed to publish batch results: %v", publishErr)
			}
		}

		return runErr
	}

	if appConfig.IntervalMinutes > 0 {
		scheduler := gocron.NewScheduler(time.UTC)
		if _, jobErr := scheduler.Every(appConfig.IntervalMinutes).Minutes().Do(func() {
			if runErr := uploadOnce(); runErr != nil {
				logger.Errorf("scheduled upload failed: %v", runErr)
			}
		}); jobErr != nil {
			panic(jobErr)
		}
		scheduler.StartBlocking()
		return
	}

	if runErr := uploadOnce(); runErr != nil {
		logger.Errorf("upload failed: %v", runErr)
		os.Exit(1)
	}
}
