package scan

import (
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/fzlaunch/internal/model"
)

// All runs the desktop-entry and $PATH scans concurrently. The scans share
// no state and individually absorb their errors, so All never fails; it
// returns the two raw candidate lists for merging.
func All(appDirs, pathDirs []string) ([]model.Candidate, []model.Candidate) {
	var desktop, executables []model.Candidate
	var g errgroup.Group
	g.Go(func() error {
		desktop = DesktopEntries(appDirs)
		return nil
	})
	g.Go(func() error {
		executables = Executables(pathDirs)
		return nil
	})
	// Both closures return nil; Wait only synchronizes.
	_ = g.Wait()
	return desktop, executables
}
