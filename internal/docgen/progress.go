package docgen

// ProgressReporter provides callbacks for reporting generation progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(files int)

	// OnFileProcessingStart is called before processing files.
	OnFileProcessingStart(totalFiles int)

	// OnFileProcessed is called after each file, whether or not it failed.
	OnFileProcessed(relPath string)

	// OnComplete is called when a run finishes.
	OnComplete(stats *Stats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnDiscoveryComplete(files int)        {}
func (NoOpProgressReporter) OnFileProcessingStart(totalFiles int) {}
func (NoOpProgressReporter) OnFileProcessed(relPath string)       {}
func (NoOpProgressReporter) OnComplete(stats *Stats)              {}
