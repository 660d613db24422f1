// Package revalidate tells the host which views are stale after a mutation.
//
// Views are identified by path tokens such as "/events/<id>/budget". The
// host maps them onto its own refresh mechanism.
package revalidate

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"
)

// Notifier is signaled with the path tokens of all views that need a refresh.
type Notifier interface {
	Revalidate(ctx context.Context, paths ...string)
}

// Path tokens of the views that mutations invalidate.
func StaffList() string {
	return "/staff"
}

func StaffDetail(id uuid.UUID) string {
	return fmt.Sprintf("/staff/%s", id)
}

func EventStaff(eventID uuid.UUID) string {
	return fmt.Sprintf("/events/%s/staff", eventID)
}

func EventBudget(eventID uuid.UUID) string {
	return fmt.Sprintf("/events/%s/budget", eventID)
}

func EventSponsors(eventID uuid.UUID) string {
	return fmt.Sprintf("/events/%s/sponsors", eventID)
}

func EventAgenda(eventID uuid.UUID) string {
	return fmt.Sprintf("/events/%s/agenda", eventID)
}

// LogNotifier writes the invalidated paths to the log.
type LogNotifier struct{}

func (LogNotifier) Revalidate(_ context.Context, paths ...string) {
	log.Debug().Strs("paths", paths).Msg("revalidate")
}

// Multi fans out to several notifiers.
type Multi []Notifier

func (m Multi) Revalidate(ctx context.Context, paths ...string) {
	for _, n := range m {
		n.Revalidate(ctx, paths...)
	}
}

// Recorder remembers all paths it was signaled with.
type Recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *Recorder) Revalidate(_ context.Context, paths ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, paths...)
}

// Paths returns a copy of all recorded paths in signaling order.
func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

// Matches reports whether any recorded path matches the glob pattern,
// e.g. "/events/*/budget".
func (r *Recorder) Matches(pattern string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.paths {
		if glob.Glob(pattern, p) {
			return true
		}
	}
	return false
}

// Reset forgets all recorded paths.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = nil
}

// filter returns the paths matching at least one of the patterns.
// No patterns means everything matches.
func filter(patterns, paths []string) []string {
	if len(patterns) == 0 {
		return paths
	}

	var out []string
	for _, p := range paths {
		for _, pattern := range patterns {
			if glob.Glob(pattern, p) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
