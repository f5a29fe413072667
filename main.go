package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2/app"
	"github.com/ausocean/utils/logging"

	"github.com/ytget/video-batch-uploader/internal/api"
	"github.com/ytget/video-batch-uploader/internal/applog"
	"github.com/ytget/video-batch-uploader/internal/config"
	"github.com/ytget/video-batch-uploader/internal/license"
	"github.com/ytget/video-batch-uploader/internal/media"
	"github.com/ytget/video-batch-uploader/internal/objstore"
	"github.com/ytget/video-batch-uploader/internal/pipeline"
	"github.com/ytget/video-batch-uploader/internal/platform"
	"github.com/ytget/video-batch-uploader/internal/ui"
	"github.com/ytget/video-batch-uploader/internal/upload"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.video-batch-uploader"
	AppName = "Video Batch Uploader"
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewUploaderTheme())
	settings := config.NewSettings(myApp)

	log, logFile, closeLog := newLogger(settings.GetLogLevel())
	defer closeLog.Close()
	log.Info("starting", "app", AppName, "version", version)

	licensePath, err := platform.LicensePath()
	if err != nil {
		fatal(log, "no user data directory", err)
	}
	store := license.NewStore(licensePath, log)

	coverDir, err := platform.CoverDir()
	if err != nil {
		fatal(log, "no cover directory", err)
	}
	covers, err := media.NewFFmpegCoverExtractor(coverDir)
	if err != nil {
		fatal(log, "cover extractor unavailable", err)
	}

	factory := func(ctx context.Context) (*pipeline.Pipeline, func(), error) {
		transport, err := objstore.New(ctx, settings.StorageOptions())
		if err != nil {
			return nil, nil, err
		}
		release := func() {
			if c, ok := transport.(io.Closer); ok {
				if err := c.Close(); err != nil {
					log.Warning("could not close storage client", "error", err.Error())
				}
			}
		}
		uploader := upload.New(transport, settings.UploadConfig(), log)
		backend := api.New(settings.GetAPIBaseURL(), api.WithLogger(log))
		return pipeline.New(store, backend, uploader, covers, settings.PipelineOptions(), log), release, nil
	}

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	root := ui.NewRootUI(myWindow, ui.Deps{
		Settings:    settings,
		License:     store,
		NewPipeline: factory,
		Log:         log,
		LogFile:     logFile,
	})

	watcher, err := license.NewWatcher(store, license.DefaultCheckSchedule, root.OnLicenseChanged, log)
	if err != nil {
		fatal(log, "could not schedule license checks", err)
	}
	watcher.Start()
	defer watcher.Stop()

	root.CheckLicense()
	myWindow.ShowAndRun()
}

// newLogger writes to the rotated log file, falling back to stderr alone
func newLogger(level string) (logging.Logger, string, io.Closer) {
	dir, err := platform.LogDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "log directory unavailable: %v\n", err)
		return applog.NewStderr(level), "", io.NopCloser(nil)
	}
	log, closer := applog.New(dir, level, os.Stderr)
	return log, filepath.Join(dir, applog.LogFileName), closer
}

func fatal(log logging.Logger, msg string, err error) {
	log.Error(msg, "error", err.Error())
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
