package models

// Identity is the already-authenticated caller context, produced by the
// token middleware and passed explicitly into every core call. The core
// trusts it as-is; issuing and refreshing tokens is the auth collaborator's
// job.
type Identity struct {
	SubjectID  string
	Role       string
	State      string
	District   string
	Department string
}
