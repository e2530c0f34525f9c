package gtd

import (
	"errors"

	uuid "github.com/nu7hatch/gouuid"
	log "github.com/sirupsen/logrus"
)

// ErrZeroID is returned when applying a command that refers to an entity without specifying its id.
var ErrZeroID = errors.New("empty id")

// NewID returns a random (version 4) UUID in its canonical string form. Tasks, projects, areas, checklist items and
// commands are all identified this way, which keeps ids compatible with data files written by other clients.
func NewID() string {
	u, err := uuid.NewV4()
	if err != nil {
		// Only possible if the system's random source fails.
		log.WithField("cause", err).Error("Could not generate UUID")
		return ""
	}
	return u.String()
}

// ValidID reports whether value looks like a UUID as generated by NewID. Ids created by other clients need not be
// UUIDs, so this is only used to tell ids from other arguments, e.g., on the command line.
func ValidID(value string) bool {
	_, err := uuid.ParseHex(value)
	return err == nil
}
