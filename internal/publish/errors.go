package publish

import (
	"errors"
	"fmt"
)

// Failure kinds surfaced by the workflow. Callers match them with errors.Is;
// kinds raised by collaborators (semver.ErrInvalidKind,
// project.ErrManifestMissing, project.ErrVersionNotFound) pass through the
// same wrapping.
var (
	ErrDirtyWorkTree  = errors.New("git working tree is not clean")
	ErrNoRemote       = errors.New("no git remote 'origin' configured")
	ErrCommitFailed   = errors.New("git commit failed")
	ErrTagFailed      = errors.New("git tag failed")
	ErrPushRolledBack = errors.New("git push failed, local changes rolled back")
	ErrBuildFailed    = errors.New("build failed")
	ErrUploadFailed   = errors.New("upload failed")
)

// Error is the single reporting type for every terminal workflow failure,
// whether a domain failure, a nonzero external command, or an unexpected
// internal error.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

func failf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// wrap normalizes err into *Error so callers see one failure taxonomy.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	var perr *Error
	if errors.As(err, &perr) {
		return err
	}
	return &Error{Kind: err}
}
