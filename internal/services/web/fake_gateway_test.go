package web

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"sync"

	"github.com/louisbranch/activityboard/internal/activities"
)

// fakeGateway mimics the activities API in memory.
type fakeGateway struct {
	mu          sync.Mutex
	collection  activities.Collection
	listErr     error
	signupErr   error
	listCalls   int
	signupCalls int
	unregisters []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{collection: activities.Collection{
		{Name: "Chess Club", Description: "Learn strategies and compete in chess tournaments", Schedule: "Fridays, 3:30 PM - 5:00 PM", MaxParticipants: 12, Participants: []string{"michael@mergington.edu", "daniel@mergington.edu"}},
		{Name: "Programming Class", Description: "Learn programming fundamentals", Schedule: "Tuesdays and Thursdays, 3:30 PM - 4:30 PM", MaxParticipants: 20, Participants: []string{}},
	}}
}

func (g *fakeGateway) ListActivities(context.Context) (activities.Collection, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listCalls++
	if g.listErr != nil {
		return nil, g.listErr
	}
	out := make(activities.Collection, len(g.collection))
	for i, activity := range g.collection {
		activity.Participants = append([]string{}, activity.Participants...)
		out[i] = activity
	}
	return out, nil
}

func (g *fakeGateway) Signup(_ context.Context, activity string, email string) (activities.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.signupCalls++
	if g.signupErr != nil {
		return activities.Result{}, g.signupErr
	}
	idx := g.indexLocked(activity)
	if idx < 0 {
		return activities.Result{}, &activities.APIError{StatusCode: http.StatusNotFound, Detail: "Activity not found"}
	}
	if slices.Contains(g.collection[idx].Participants, email) {
		return activities.Result{}, &activities.APIError{StatusCode: http.StatusBadRequest, Detail: "Student is already signed up"}
	}
	g.collection[idx].Participants = append(g.collection[idx].Participants, email)
	return activities.Result{Message: "Signed up " + email + " for " + activity}, nil
}

func (g *fakeGateway) Unregister(_ context.Context, activity string, email string) (activities.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.unregisters = append(g.unregisters, activity+"|"+email)
	idx := g.indexLocked(activity)
	if idx < 0 {
		return activities.Result{}, &activities.APIError{StatusCode: http.StatusNotFound, Detail: "Activity not found"}
	}
	kept := g.collection[idx].Participants[:0]
	found := false
	for _, p := range g.collection[idx].Participants {
		if p == email {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return activities.Result{}, &activities.APIError{StatusCode: http.StatusBadRequest, Detail: "Student is not signed up"}
	}
	g.collection[idx].Participants = kept
	return activities.Result{Message: "Unregistered " + email + " from " + activity}, nil
}

func (g *fakeGateway) indexLocked(name string) int {
	for i, activity := range g.collection {
		if activity.Name == name {
			return i
		}
	}
	return -1
}

func (g *fakeGateway) counts() (list int, signup int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.listCalls, g.signupCalls
}

func (g *fakeGateway) setListErr(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listErr = err
}

var errUnavailable = errors.New("connection refused")
