package stagecue

import (
	"errors"

	"github.com/himanishpuri/StageCue/pkg/stagecue/script"
)

var (
	ErrScriptNotFound = errors.New("script not found")
	ErrBeatNotFound   = errors.New("beat not found")
	ErrTakeNotFound   = errors.New("take not found")
	ErrEmptyScript    = script.ErrNoBeats
)

// ErrInvalidBeat is returned for beat edits with an unknown emotion or an
// intensity outside 0-10.
var ErrInvalidBeat = errors.New("invalid beat")
