package models

// Progress records how far a user got through a module.
type Progress struct {
	ID        string `json:"id"`
	LastStep  int    `json:"lastStep"`
	Completed bool   `json:"completed"`
}

// DefaultProgress is the progress of a module the user never opened.
func DefaultProgress(id string) Progress {
	return Progress{ID: id}
}

// FindProgress returns the entry for id, or the default progress.
func FindProgress(entries []Progress, id string) Progress {
	for _, p := range entries {
		if p.ID == id {
			return p
		}
	}
	return DefaultProgress(id)
}
