package services

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/yigit/messdesk/internal/app/repositories/memory"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
)

func TestAssignMessByBatchOnlyTouchesBatch(t *testing.T) {
	f := newFixture(t)
	a := f.student(t, "a@campus.edu", "2024CS001", "2024CS")
	b := f.student(t, "b@campus.edu", "2024CS002", "2024CS")
	other := f.student(t, "c@campus.edu", "2024EE001", "2024EE")

	result, err := f.svc.Assignments.AssignMessByBatch(f.ctx, "2024CS", int64Ptr(3))
	if err != nil {
		t.Fatalf("AssignMessByBatch: %v", err)
	}
	if !result.Complete() || len(result.Updated) != 2 {
		t.Fatalf("unexpected result %+v", result)
	}

	for _, id := range []int64{a, b} {
		p, err := f.svc.Directory.GetProfile(f.ctx, id)
		if err != nil {
			t.Fatalf("GetProfile: %v", err)
		}
		if p.Student.MessID == nil || *p.Student.MessID != 3 {
			t.Errorf("student %d not assigned: %v", id, p.Student.MessID)
		}
	}
	p, err := f.svc.Directory.GetProfile(f.ctx, other)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if p.Student.MessID != nil {
		t.Errorf("student outside the batch was assigned to %d", *p.Student.MessID)
	}

	if got := testutil.ToFloat64(f.metrics.Assignments.WithLabelValues("batch")); got != 2 {
		t.Errorf("expected 2 batch assignments recorded, got %v", got)
	}
}

func TestAssignMessRequiresMessID(t *testing.T) {
	f := newFixture(t)
	f.student(t, "a@campus.edu", "2024CS001", "2024CS")

	for _, mess := range []*int64{nil, int64Ptr(0), int64Ptr(-2)} {
		if _, err := f.svc.Assignments.AssignMessByBatch(f.ctx, "2024CS", mess); apperrors.Kind(err) != apperrors.KindValidation {
			t.Errorf("batch: expected validation error, got %v", err)
		}
		if _, err := f.svc.Assignments.AssignMessByCollegeID(f.ctx, "2024CS001", mess); apperrors.Kind(err) != apperrors.KindValidation {
			t.Errorf("collegeId: expected validation error, got %v", err)
		}
		if _, err := f.svc.Assignments.AssignSupervisorMess(f.ctx, "SUP-1", mess); apperrors.Kind(err) != apperrors.KindValidation {
			t.Errorf("supervisor: expected validation error, got %v", err)
		}
	}
}

func TestAssignMessNotFound(t *testing.T) {
	f := newFixture(t)
	f.student(t, "a@campus.edu", "2024CS001", "2024CS")

	if _, err := f.svc.Assignments.AssignMessByBatch(f.ctx, "1999XX", int64Ptr(3)); apperrors.Kind(err) != apperrors.KindNotFound {
		t.Errorf("empty batch: expected not found, got %v", err)
	}
	if _, err := f.svc.Assignments.AssignMessByCollegeID(f.ctx, "NOPE-1", int64Ptr(3)); apperrors.Kind(err) != apperrors.KindNotFound {
		t.Errorf("unknown college id: expected not found, got %v", err)
	}
	if _, err := f.svc.Assignments.AssignMessByUserID(f.ctx, 99, int64Ptr(3)); apperrors.Kind(err) != apperrors.KindNotFound {
		t.Errorf("unknown user: expected not found, got %v", err)
	}
	if _, err := f.svc.Assignments.AssignSupervisorMess(f.ctx, "SUP-404", int64Ptr(3)); apperrors.Kind(err) != apperrors.KindNotFound {
		t.Errorf("unknown supervisor: expected not found, got %v", err)
	}
}

func TestAssignMessByBatchReportsPartialFailure(t *testing.T) {
	writes := 0
	failSecond := false
	f := newFixture(t, memory.WithFault(func(op string) error {
		if !failSecond || op != "assign student mess" {
			return nil
		}
		writes++
		if writes == 2 {
			return errors.New("disk full")
		}
		return nil
	}))
	a := f.student(t, "a@campus.edu", "2024CS001", "2024CS")
	b := f.student(t, "b@campus.edu", "2024CS002", "2024CS")
	c := f.student(t, "c@campus.edu", "2024CS003", "2024CS")
	failSecond = true

	result, err := f.svc.Assignments.AssignMessByBatch(f.ctx, "2024CS", int64Ptr(5))
	if err != nil {
		t.Fatalf("AssignMessByBatch: %v", err)
	}
	if result.Complete() {
		t.Fatal("expected a partial result")
	}
	if len(result.Updated) != 2 || result.Updated[0] != a || result.Updated[1] != c {
		t.Errorf("unexpected updated list %v", result.Updated)
	}
	if len(result.Failed) != 1 || result.Failed[0].UserID != b || result.Failed[0].Kind != string(apperrors.KindStore) {
		t.Errorf("unexpected failures %+v", result.Failed)
	}
	if got := testutil.ToFloat64(f.metrics.AssignmentFailures); got != 1 {
		t.Errorf("expected one failure recorded, got %v", got)
	}
}

func TestAssignByCollegeIDAndUserID(t *testing.T) {
	f := newFixture(t)
	a := f.student(t, "a@campus.edu", "2024CS001", "2024CS")

	st, err := f.svc.Assignments.AssignMessByCollegeID(f.ctx, "2024CS001", int64Ptr(2))
	if err != nil || st.MessID == nil || *st.MessID != 2 {
		t.Fatalf("AssignMessByCollegeID: %+v %v", st, err)
	}
	st, err = f.svc.Assignments.AssignMessByUserID(f.ctx, a, int64Ptr(4))
	if err != nil || st.MessID == nil || *st.MessID != 4 {
		t.Fatalf("AssignMessByUserID: %+v %v", st, err)
	}
}

func TestAssignReturnsWrittenRow(t *testing.T) {
	var readsDown atomic.Bool
	f := newFixture(t, memory.WithFault(func(op string) error {
		if readsDown.Load() && op == "get student" {
			return errors.New("replica lagging")
		}
		return nil
	}))
	a := f.student(t, "a@campus.edu", "2024CS001", "2024CS")
	readsDown.Store(true)

	st, err := f.svc.Assignments.AssignMessByUserID(f.ctx, a, int64Ptr(5))
	if err != nil {
		t.Fatalf("assignment applied but reported as failed: %v", err)
	}
	if st.UserID != a || st.MessID == nil || *st.MessID != 5 {
		t.Fatalf("unexpected student %+v", st)
	}
}

func TestSupervisorsForMess(t *testing.T) {
	f := newFixture(t)
	f.supervisor(t, "s1@campus.edu", "SUP-1", 3)
	f.supervisor(t, "s2@campus.edu", "SUP-2", 3)
	f.supervisor(t, "s3@campus.edu", "SUP-3", 4)

	list, err := f.svc.Assignments.ListSupervisorsForMess(f.ctx, 3)
	if err != nil {
		t.Fatalf("ListSupervisorsForMess: %v", err)
	}
	if len(list) != 2 || list[0].SupervisorID != "SUP-1" || list[1].SupervisorID != "SUP-2" {
		t.Errorf("unexpected supervisors %+v", list)
	}

	empty, err := f.svc.Assignments.ListSupervisorsForMess(f.ctx, 9)
	if err != nil || len(empty) != 0 {
		t.Errorf("expected no supervisors, got %+v %v", empty, err)
	}
}
