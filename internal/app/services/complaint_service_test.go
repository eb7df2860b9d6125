package services

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/app/repositories/memory"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
	"github.com/yigit/messdesk/internal/pkg/notify"
)

func (f *fixture) complaintAt(t *testing.T, status models.ComplaintStatus, studentID, messID int64) *models.Complaint {
	t.Helper()
	c := &models.Complaint{
		StudentID:   studentID,
		MessID:      messID,
		Category:    "Hygiene",
		Description: "Plates were not washed",
		Status:      status,
	}
	if err := f.store.CreateComplaint(f.ctx, c); err != nil {
		t.Fatalf("CreateComplaint: %v", err)
	}
	return c
}

func TestTransitionSucceedsExactlyOnGraphEdges(t *testing.T) {
	f := newFixture(t)

	for _, role := range models.AllRoles() {
		for _, from := range models.AllStatuses() {
			for _, to := range models.AllStatuses() {
				c := f.complaintAt(t, from, 7, 3)
				updated, err := f.svc.Complaints.Transition(f.ctx, c.ID, role, to, nil)

				if from.CanTransitionTo(to) {
					if err != nil {
						t.Errorf("%s %s->%s: unexpected error %v", role, from, to, err)
						continue
					}
					if updated.Status != to {
						t.Errorf("%s %s->%s: status is %s", role, from, to, updated.Status)
					}
					continue
				}

				if apperrors.Kind(err) != apperrors.KindInvalidTransition {
					t.Errorf("%s %s->%s: expected invalid transition, got %v", role, from, to, err)
				}
				stored, _ := f.svc.Complaints.GetComplaint(f.ctx, c.ID)
				if stored.Status != from {
					t.Errorf("%s %s->%s: rejected transition changed status to %s", role, from, to, stored.Status)
				}
			}
		}
	}
}

func TestResolvedIsTerminal(t *testing.T) {
	f := newFixture(t)
	c := f.complaintAt(t, models.StatusResolved, 7, 3)

	for _, to := range models.AllStatuses() {
		if _, err := f.svc.Complaints.Transition(f.ctx, c.ID, models.RoleAdmin, to, nil); apperrors.Kind(err) != apperrors.KindInvalidTransition {
			t.Errorf("Resolved->%s: expected invalid transition, got %v", to, err)
		}
	}
}

func TestComplaintScenario(t *testing.T) {
	f := newFixture(t)
	f.supervisor(t, "menon@campus.edu", "SUP-004", 3)

	c, route, err := f.svc.Complaints.CreateComplaint(f.ctx, NewComplaint{
		StudentID:   7,
		MessID:      int64Ptr(3),
		Category:    "Hygiene",
		Description: "Plates were not washed",
	})
	if err != nil {
		t.Fatalf("CreateComplaint: %v", err)
	}
	if c.Status != models.StatusNew {
		t.Fatalf("new complaint is %s", c.Status)
	}
	if !route.Routable || len(route.Supervisors) != 1 || route.Supervisors[0].SupervisorID != "SUP-004" {
		t.Errorf("unexpected route %+v", route)
	}

	c, err = f.svc.Complaints.Transition(f.ctx, c.ID, models.RoleSupervisor, models.StatusForwarded, nil)
	if err != nil || c.Status != models.StatusForwarded {
		t.Fatalf("forward: %+v %v", c, err)
	}
	c, err = f.svc.Complaints.Transition(f.ctx, c.ID, models.RoleCoordinator, models.StatusResolved, nil)
	if err != nil || c.Status != models.StatusResolved {
		t.Fatalf("resolve: %+v %v", c, err)
	}
	if _, err := f.svc.Complaints.Transition(f.ctx, c.ID, models.RoleSupervisor, models.StatusForwarded, nil); apperrors.Kind(err) != apperrors.KindInvalidTransition {
		t.Fatalf("expected invalid transition after resolve, got %v", err)
	}

	events := f.events.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Kind != notify.KindComplaintCreated || events[0].SubjectID != c.ID {
		t.Errorf("unexpected first event %+v", events[0])
	}
	wantChanges := [][2]models.ComplaintStatus{
		{models.StatusNew, models.StatusForwarded},
		{models.StatusForwarded, models.StatusResolved},
	}
	for i, want := range wantChanges {
		e := events[i+1]
		change, ok := e.Payload.(models.StatusChange)
		if e.Kind != notify.KindStatusChanged || !ok {
			t.Fatalf("event %d: unexpected %+v", i+1, e)
		}
		if change.ComplaintID != c.ID || change.OldStatus != want[0] || change.NewStatus != want[1] || change.Timestamp.IsZero() {
			t.Errorf("event %d: unexpected change %+v", i+1, change)
		}
	}

	if got := testutil.ToFloat64(f.metrics.Transitions.WithLabelValues("New", "Forwarded")); got != 1 {
		t.Errorf("expected one New->Forwarded recorded, got %v", got)
	}
}

func TestCreateComplaintWithoutSupervisorIsUnroutable(t *testing.T) {
	f := newFixture(t)

	c, route, err := f.svc.Complaints.CreateComplaint(f.ctx, NewComplaint{
		StudentID:   7,
		MessID:      int64Ptr(8),
		Category:    "Taste",
		Description: "Too salty",
	})
	if err != nil {
		t.Fatalf("CreateComplaint: %v", err)
	}
	if route.Routable || c.Status != models.StatusNew {
		t.Errorf("expected unroutable New complaint, got %+v %+v", c, route)
	}
	if _, err := f.svc.Complaints.GetComplaint(f.ctx, c.ID); err != nil {
		t.Errorf("unroutable complaint must still be stored: %v", err)
	}

	events := f.events.Events()
	payload, ok := events[0].Payload.(notify.ComplaintCreatedPayload)
	if !ok || payload.Routable {
		t.Errorf("event should report unroutable, got %+v", events[0])
	}
	if got := testutil.ToFloat64(f.metrics.UnroutableCreated); got != 1 {
		t.Errorf("expected one unroutable recorded, got %v", got)
	}
}

func TestCreateComplaintValidation(t *testing.T) {
	calls := 0
	f := newFixture(t, memory.WithFault(func(string) error {
		calls++
		return errors.New("store offline")
	}))

	bad := "not a uri"
	cases := map[string]NewComplaint{
		"missing mess":        {StudentID: 7, Category: "Hygiene", Description: "x"},
		"zero mess":           {StudentID: 7, MessID: int64Ptr(0), Category: "Hygiene", Description: "x"},
		"missing category":    {StudentID: 7, MessID: int64Ptr(3), Category: "  ", Description: "x"},
		"missing description": {StudentID: 7, MessID: int64Ptr(3), Category: "Hygiene"},
		"relative image":      {StudentID: 7, MessID: int64Ptr(3), Category: "Hygiene", Description: "x", Image: &bad},
		"missing student":     {MessID: int64Ptr(3), Category: "Hygiene", Description: "x"},
	}
	for name, in := range cases {
		if _, _, err := f.svc.Complaints.CreateComplaint(f.ctx, in); apperrors.Kind(err) != apperrors.KindValidation {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}
	if calls != 0 {
		t.Errorf("store touched %d times by invalid input", calls)
	}
	if len(f.events.Events()) != 0 {
		t.Error("invalid complaints must not emit events")
	}
}

func TestTransitionExpectedStatus(t *testing.T) {
	f := newFixture(t)
	c := f.complaintAt(t, models.StatusForwarded, 7, 3)

	_, err := f.svc.Complaints.Transition(f.ctx, c.ID, models.RoleCoordinator, models.StatusResolved, statusPtr(models.StatusNew))
	if apperrors.Kind(err) != apperrors.KindInvalidTransition {
		t.Fatalf("expected invalid transition on stale status, got %v", err)
	}
	updated, err := f.svc.Complaints.Transition(f.ctx, c.ID, models.RoleCoordinator, models.StatusResolved, statusPtr(models.StatusForwarded))
	if err != nil || updated.Status != models.StatusResolved {
		t.Fatalf("expected resolve, got %+v %v", updated, err)
	}
}

func TestTransitionInputErrors(t *testing.T) {
	f := newFixture(t)
	c := f.complaintAt(t, models.StatusNew, 7, 3)

	if _, err := f.svc.Complaints.Transition(f.ctx, c.ID, models.RoleSupervisor, "Closed", nil); apperrors.Kind(err) != apperrors.KindValidation {
		t.Errorf("unknown status: expected validation error, got %v", err)
	}
	if _, err := f.svc.Complaints.Transition(f.ctx, c.ID, "chef", models.StatusForwarded, nil); apperrors.Kind(err) != apperrors.KindValidation {
		t.Errorf("unknown role: expected validation error, got %v", err)
	}
	if _, err := f.svc.Complaints.Transition(f.ctx, 404, models.RoleSupervisor, models.StatusForwarded, nil); apperrors.Kind(err) != apperrors.KindNotFound {
		t.Errorf("unknown complaint: expected not found, got %v", err)
	}
}

func TestConcurrentTransitionsHaveOneWinner(t *testing.T) {
	f := newFixture(t)
	c := f.complaintAt(t, models.StatusNew, 7, 3)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Complaints.Transition(f.ctx, c.ID, models.RoleDirector, models.StatusResolved, nil)
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
				return
			}
			if apperrors.Kind(err) != apperrors.KindInvalidTransition {
				t.Errorf("unexpected error %v", err)
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
	if n := len(f.events.Events()); n != 1 {
		t.Errorf("expected one status event, got %d", n)
	}
}

func TestTransitionAsEnforcesPolicy(t *testing.T) {
	f := newFixture(t)
	owner := f.student(t, "owner@campus.edu", "2024CS001", "2024CS")
	other := f.student(t, "other@campus.edu", "2024CS002", "2024CS")
	rep := f.representative(t, "rep@campus.edu", "2024CS003", 3)
	sup := f.supervisor(t, "s3@campus.edu", "SUP-3", 3)
	foreignSup := f.supervisor(t, "s4@campus.edu", "SUP-4", 4)
	coord := f.staff(t, "coord@campus.edu", models.RoleCoordinator)

	session := func(id int64, role models.RoleType) models.Session {
		return models.Session{UserID: id, Role: role}
	}

	fresh := f.complaintAt(t, models.StatusNew, owner, 3)
	if _, err := f.svc.Complaints.TransitionAs(f.ctx, session(owner, models.RoleStudent), fresh.ID, models.StatusForwarded, nil); apperrors.Kind(err) != apperrors.KindPermission {
		t.Errorf("student forwarding: expected permission denied, got %v", err)
	}
	if _, err := f.svc.Complaints.TransitionAs(f.ctx, session(foreignSup, models.RoleSupervisor), fresh.ID, models.StatusForwarded, nil); apperrors.Kind(err) != apperrors.KindPermission {
		t.Errorf("supervisor of another mess: expected permission denied, got %v", err)
	}
	if _, err := f.svc.Complaints.TransitionAs(f.ctx, session(sup, models.RoleSupervisor), fresh.ID, models.StatusForwarded, nil); err != nil {
		t.Fatalf("supervisor forwarding: %v", err)
	}

	if _, err := f.svc.Complaints.TransitionAs(f.ctx, session(other, models.RoleStudent), fresh.ID, models.StatusReraised, nil); apperrors.Kind(err) != apperrors.KindPermission {
		t.Errorf("student re-raising someone else's complaint: expected permission denied, got %v", err)
	}
	if _, err := f.svc.Complaints.TransitionAs(f.ctx, session(owner, models.RoleStudent), fresh.ID, models.StatusReraised, nil); err != nil {
		t.Fatalf("owner re-raising: %v", err)
	}

	if _, err := f.svc.Complaints.TransitionAs(f.ctx, session(rep, models.RoleRepresentative), fresh.ID, models.StatusResolved, nil); apperrors.Kind(err) != apperrors.KindPermission {
		t.Errorf("representative resolving: expected permission denied, got %v", err)
	}
	if _, err := f.svc.Complaints.TransitionAs(f.ctx, session(coord, models.RoleCoordinator), fresh.ID, models.StatusResolved, nil); err != nil {
		t.Fatalf("coordinator resolving: %v", err)
	}

	if _, err := f.svc.Complaints.TransitionAs(f.ctx, session(coord, models.RoleCoordinator), fresh.ID, models.StatusForwarded, nil); apperrors.Kind(err) != apperrors.KindInvalidTransition {
		t.Errorf("resolved complaint: expected invalid transition, got %v", err)
	}
	if got := testutil.ToFloat64(f.metrics.TransitionsRejected.WithLabelValues(string(apperrors.KindPermission))); got != 4 {
		t.Errorf("expected 4 permission rejections recorded, got %v", got)
	}
}

func TestListComplaintsForMessIsRestartable(t *testing.T) {
	f := newFixture(t)
	f.complaintAt(t, models.StatusNew, 7, 3)
	f.complaintAt(t, models.StatusNew, 8, 4)

	seq, err := f.svc.Complaints.ListComplaintsForMess(f.ctx, 3)
	if err != nil {
		t.Fatalf("ListComplaintsForMess: %v", err)
	}
	count := func() int {
		n := 0
		for c, err := range seq {
			if err != nil {
				t.Fatalf("iteration: %v", err)
			}
			if c.MessID != 3 {
				t.Errorf("complaint of mess %d in mess 3 worklist", c.MessID)
			}
			n++
		}
		return n
	}

	if n := count(); n != 1 {
		t.Fatalf("expected 1 complaint, got %d", n)
	}
	f.complaintAt(t, models.StatusForwarded, 9, 3)
	if n := count(); n != 2 {
		t.Fatalf("second pass should see the new complaint, got %d", n)
	}

	if _, err := f.svc.Complaints.ListComplaintsForMess(f.ctx, 0); apperrors.Kind(err) != apperrors.KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestListComplaintsForStudent(t *testing.T) {
	f := newFixture(t)
	first := f.complaintAt(t, models.StatusNew, 7, 3)
	second := f.complaintAt(t, models.StatusNew, 7, 4)
	f.complaintAt(t, models.StatusNew, 8, 3)

	list, err := f.svc.Complaints.ListComplaintsForStudent(f.ctx, 7)
	if err != nil {
		t.Fatalf("ListComplaintsForStudent: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("expected newest first, got %+v", list)
	}
}

func TestCreateComplaintAsUsesAssignedMess(t *testing.T) {
	f := newFixture(t)
	student := f.student(t, "a@campus.edu", "2024CS001", "2024CS")
	session := models.Session{UserID: student, Role: models.RoleStudent}

	_, _, err := f.svc.Complaints.CreateComplaintAs(f.ctx, session, NewComplaint{Category: "Taste", Description: "Cold food"})
	if apperrors.Kind(err) != apperrors.KindValidation {
		t.Fatalf("unassigned student without messId: expected validation error, got %v", err)
	}

	if _, err := f.svc.Assignments.AssignMessByUserID(f.ctx, student, int64Ptr(6)); err != nil {
		t.Fatalf("assign: %v", err)
	}
	c, _, err := f.svc.Complaints.CreateComplaintAs(f.ctx, session, NewComplaint{Category: "Taste", Description: "Cold food"})
	if err != nil {
		t.Fatalf("CreateComplaintAs: %v", err)
	}
	if c.MessID != 6 || c.StudentID != student {
		t.Errorf("unexpected complaint %+v", c)
	}

	if _, err := f.svc.Complaints.GetComplaintAs(f.ctx, session, c.ID); err != nil {
		t.Errorf("owner should see the complaint: %v", err)
	}
	stranger := f.student(t, "b@campus.edu", "2024CS002", "2024CS")
	if _, err := f.svc.Complaints.GetComplaintAs(f.ctx, models.Session{UserID: stranger, Role: models.RoleStudent}, c.ID); apperrors.Kind(err) != apperrors.KindPermission {
		t.Errorf("stranger: expected permission denied, got %v", err)
	}
	if _, err := f.svc.Complaints.ListComplaintsForMessAs(f.ctx, session, 6); apperrors.Kind(err) != apperrors.KindPermission {
		t.Errorf("students have no worklist: expected permission denied, got %v", err)
	}
}

func TestCreateComplaintAsRejectsOtherMess(t *testing.T) {
	f := newFixture(t)
	student := f.student(t, "a@campus.edu", "2024CS001", "2024CS")
	if _, err := f.svc.Assignments.AssignMessByUserID(f.ctx, student, int64Ptr(3)); err != nil {
		t.Fatalf("assign: %v", err)
	}
	session := models.Session{UserID: student, Role: models.RoleStudent}

	_, _, err := f.svc.Complaints.CreateComplaintAs(f.ctx, session, NewComplaint{MessID: int64Ptr(9), Category: "Taste", Description: "Cold food"})
	if apperrors.Kind(err) != apperrors.KindPermission {
		t.Fatalf("filing against mess 9: expected permission denied, got %v", err)
	}
	seq, err := f.svc.Complaints.ListComplaintsForMess(f.ctx, 9)
	if err != nil {
		t.Fatal(err)
	}
	for c := range seq {
		t.Errorf("complaint stored against mess 9: %+v", c)
	}

	c, _, err := f.svc.Complaints.CreateComplaintAs(f.ctx, session, NewComplaint{MessID: int64Ptr(3), Category: "Taste", Description: "Cold food"})
	if err != nil || c.MessID != 3 {
		t.Fatalf("filing against the assigned mess: %+v %v", c, err)
	}

	coord := f.staff(t, "coord@campus.edu", models.RoleCoordinator)
	_, _, err = f.svc.Complaints.CreateComplaintAs(f.ctx, models.Session{UserID: coord, Role: models.RoleCoordinator},
		NewComplaint{MessID: int64Ptr(3), Category: "Taste", Description: "Cold food"})
	if apperrors.Kind(err) != apperrors.KindPermission {
		t.Errorf("coordinator filing: expected permission denied, got %v", err)
	}
}

func TestCreateComplaintAsValidatesBeforeStore(t *testing.T) {
	var offline atomic.Bool
	var calls atomic.Int32
	f := newFixture(t, memory.WithFault(func(string) error {
		if !offline.Load() {
			return nil
		}
		calls.Add(1)
		return errors.New("store offline")
	}))
	student := f.student(t, "a@campus.edu", "2024CS001", "2024CS")
	offline.Store(true)

	bad := "not a uri"
	cases := map[string]struct {
		session models.Session
		in      NewComplaint
	}{
		"empty input":       {models.Session{UserID: student, Role: models.RoleStudent}, NewComplaint{}},
		"unknown student":   {models.Session{UserID: 999, Role: models.RoleStudent}, NewComplaint{}},
		"blank description": {models.Session{UserID: student, Role: models.RoleStudent}, NewComplaint{Category: "Taste", Description: "  "}},
		"relative image":    {models.Session{UserID: student, Role: models.RoleStudent}, NewComplaint{Category: "Taste", Description: "x", Image: &bad}},
		"zero mess":         {models.Session{UserID: student, Role: models.RoleStudent}, NewComplaint{MessID: int64Ptr(0), Category: "Taste", Description: "x"}},
	}
	for name, tc := range cases {
		if _, _, err := f.svc.Complaints.CreateComplaintAs(f.ctx, tc.session, tc.in); apperrors.Kind(err) != apperrors.KindValidation {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("store touched %d times by invalid input", n)
	}
}

func TestRejectedEdgeCountedOnce(t *testing.T) {
	f := newFixture(t)
	coord := f.staff(t, "coord@campus.edu", models.RoleCoordinator)
	c := f.complaintAt(t, models.StatusResolved, 7, 3)

	if _, err := f.svc.Complaints.TransitionAs(f.ctx, models.Session{UserID: coord, Role: models.RoleCoordinator}, c.ID, models.StatusForwarded, nil); apperrors.Kind(err) != apperrors.KindInvalidTransition {
		t.Fatalf("TransitionAs: expected invalid transition, got %v", err)
	}
	if _, err := f.svc.Complaints.Transition(f.ctx, c.ID, models.RoleDirector, models.StatusForwarded, nil); apperrors.Kind(err) != apperrors.KindInvalidTransition {
		t.Fatalf("Transition: expected invalid transition, got %v", err)
	}
	if got := testutil.ToFloat64(f.metrics.TransitionsRejected.WithLabelValues(string(apperrors.KindInvalidTransition))); got != 2 {
		t.Errorf("expected 2 rejections recorded, got %v", got)
	}
}
