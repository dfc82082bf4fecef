package yaml

import "os"

// StagedStore builds a full re-scrape in a temporary location and swaps it
// in atomically on Commit, so an interrupted run never destroys the
// existing store. Save writes go to <base>.tmp; Commit removes the old
// store and renames; Abort discards the staging directory.
type StagedStore struct {
	*Store
	finalDir string
}

// NewStagedStore creates a StagedStore staging into baseDir + ".tmp".
func NewStagedStore(baseDir string) *StagedStore {
	return &StagedStore{
		Store:    NewStore(baseDir + ".tmp"),
		finalDir: baseDir,
	}
}

// Commit replaces the live store with the staged one.
// The window between RemoveAll and Rename is the only moment a crash loses
// data, which is as close to atomic as a cross-directory swap gets here.
func (s *StagedStore) Commit() error {
	if err := os.RemoveAll(s.finalDir); err != nil {
		return err
	}
	return os.Rename(s.Store.BaseDir(), s.finalDir)
}

// Abort discards the staged store, leaving the live one untouched.
func (s *StagedStore) Abort() error {
	return os.RemoveAll(s.Store.BaseDir())
}
