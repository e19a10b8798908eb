package commands

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pluqqy/quicknotes/internal/logging"
	"github.com/pluqqy/quicknotes/pkg/composition"
	"github.com/pluqqy/quicknotes/pkg/config"
	"github.com/pluqqy/quicknotes/pkg/layout"
	"github.com/pluqqy/quicknotes/pkg/models"
	"github.com/pluqqy/quicknotes/pkg/widget"
)

// session is everything a command needs to drive the widget
type session struct {
	settings   *models.Settings
	configFile string
	logger     *logrus.Logger
	closer     io.Closer
	widget     *widget.App
}

// loadSettings reads the config file, the environment and the global flags
func loadSettings(cmd *cobra.Command, opts *GlobalOptions) (*models.Settings, string, error) {
	flags := cmd.Flags()
	loader := config.New(
		config.WithFile(opts.ConfigFile),
		config.WithFlag("log.file", flags.Lookup("log-file")),
		config.WithFlag("log.level", flags.Lookup("log-level")),
		config.WithFlag("layout.path", flags.Lookup("layout")),
	)
	settings, err := loader.Load()
	if err != nil {
		return nil, "", err
	}
	return settings, loader.ConfigFileUsed(), nil
}

// openSession loads settings, sets up logging and builds an initialized
// widget. Close must be called when done.
func openSession(cmd *cobra.Command, opts *GlobalOptions, widgetOpts ...widget.Option) (*session, error) {
	settings, configFile, err := loadSettings(cmd, opts)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(settings.Log.File, settings.Log.Level)
	if err != nil {
		return nil, err
	}
	s := &session{settings: settings, configFile: configFile, logger: logger, closer: closer}

	doc, err := layout.Load(settings.Layout.Path)
	if err != nil {
		s.Close()
		return nil, err
	}

	entry := logrus.NewEntry(logger)
	widgetOpts = append([]widget.Option{
		widget.WithLogger(entry),
		widget.WithPanelOptions(composition.WithLabels(settings.Labels)),
	}, widgetOpts...)

	s.widget, err = widget.New(doc, widgetOpts...)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to set up notes view: %w", err)
	}

	seed := make([]*models.Note, 0, len(settings.Notes))
	for _, note := range settings.Notes {
		seed = append(seed, note.Note())
	}
	if err := s.widget.Initialize(seed); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to render notes: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"config": configFile,
		"layout": settings.Layout.Path,
		"notes":  len(seed),
	}).Debug("session opened")
	return s, nil
}

// Close releases the log file
func (s *session) Close() {
	if s.closer != nil {
		_ = s.closer.Close()
	}
}
