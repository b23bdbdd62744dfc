// Package shared holds the collaborator interfaces and execution policies used by
// the archive maintenance services.
package shared
